package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mxpv/codetracker/pkg/model"
)

const (
	defaultMongoDatabase   = "codetracker"
	defaultMongoCollection = "bookmarks"
	mongoMetaCollection    = "meta"
	mongoConnectTimeout    = 10 * time.Second
)

// MongoConfig represents MongoDB connection parameters
type MongoConfig struct {
	URL        string `toml:"url"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

type mongoBookmark struct {
	Key     string         `bson:"_id"`
	Contest *model.Contest `bson:"contest"`
	Created time.Time      `bson:"created"`
}

type Mongo struct {
	client *mongo.Client
	col    *mongo.Collection
	meta   *mongo.Collection
}

var _ Storage = (*Mongo)(nil)

func NewMongo(ctx context.Context, config *MongoConfig) (*Mongo, error) {
	if config == nil || config.URL == "" {
		return nil, errors.New("mongo url is required")
	}

	database := config.Database
	if database == "" {
		database = defaultMongoDatabase
	}

	collection := config.Collection
	if collection == "" {
		collection = defaultMongoCollection
	}

	log.Infof("connecting to mongo database %q", database)

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URL))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	storage := &Mongo{
		client: client,
		col:    client.Database(database).Collection(collection),
		meta:   client.Database(database).Collection(mongoMetaCollection),
	}

	_, err = storage.meta.UpdateOne(ctx,
		bson.M{"_id": "version"},
		bson.M{"$setOnInsert": bson.M{"value": CurrentVersion}},
		options.Update().SetUpsert(true))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to init database version")
	}

	return storage, nil
}

func (m *Mongo) Close() error {
	log.Debug("closing mongo connection")
	return m.client.Disconnect(context.Background())
}

func (m *Mongo) Version() (int, error) {
	doc := struct {
		Value int `bson:"value"`
	}{}

	if err := m.meta.FindOne(context.Background(), bson.M{"_id": "version"}).Decode(&doc); err != nil {
		return -1, errors.Wrap(err, "failed to read database version")
	}

	return doc.Value, nil
}

func (m *Mongo) AddBookmark(ctx context.Context, contest *model.Contest) error {
	if contest == nil || contest.Title == "" {
		return errors.New("contest title is required")
	}

	saved := *contest
	saved.IsBookmarked = true

	_, err := m.col.InsertOne(ctx, mongoBookmark{
		Key:     contest.Key(),
		Contest: &saved,
		Created: time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrAlreadyExists
	}

	return errors.Wrap(err, "failed to insert bookmark")
}

func (m *Mongo) GetBookmark(ctx context.Context, key string) (*model.Contest, error) {
	doc := mongoBookmark{}

	err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, model.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to find bookmark %q", key)
	}

	return doc.Contest, nil
}

func (m *Mongo) DeleteBookmark(ctx context.Context, key string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return errors.Wrapf(err, "failed to delete bookmark %q", key)
	}

	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (m *Mongo) WalkBookmarks(ctx context.Context, cb func(contest *model.Contest) error) error {
	cursor, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return errors.Wrap(err, "failed to query bookmarks")
	}

	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		doc := mongoBookmark{}
		if err := cursor.Decode(&doc); err != nil {
			return errors.Wrap(err, "failed to decode bookmark")
		}

		if err := cb(doc.Contest); err != nil {
			return err
		}
	}

	return cursor.Err()
}
