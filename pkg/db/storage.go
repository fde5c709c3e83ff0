package db

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mxpv/codetracker/pkg/model"
)

const (
	CurrentVersion = 1
)

type Storage interface {
	Close() error
	Version() (int, error)

	// AddBookmark saves a contest bookmark, returns model.ErrAlreadyExists if contest is already bookmarked
	AddBookmark(ctx context.Context, contest *model.Contest) error

	// GetBookmark gets a bookmark by contest key (see model.Contest.Key)
	GetBookmark(ctx context.Context, key string) (*model.Contest, error)

	// DeleteBookmark removes a bookmark, returns model.ErrNotFound if there is nothing to delete
	DeleteBookmark(ctx context.Context, key string) error

	// WalkBookmarks iterates over bookmarks ordered by key
	WalkBookmarks(ctx context.Context, cb func(contest *model.Contest) error) error
}

// NewStorage opens MongoDB storage when configured and falls back to local BadgerDB.
// Databases written by a different schema version are rejected.
func NewStorage(ctx context.Context, config *Config) (Storage, error) {
	var (
		storage Storage
		err     error
	)

	if config.Mongo != nil && config.Mongo.URL != "" {
		storage, err = NewMongo(ctx, config.Mongo)
	} else {
		storage, err = NewBadger(config)
	}

	if err != nil {
		return nil, err
	}

	version, err := storage.Version()
	if err != nil {
		_ = storage.Close()
		return nil, errors.Wrap(err, "failed to read database version")
	}

	if version != CurrentVersion {
		_ = storage.Close()
		return nil, errors.Errorf("unsupported database version %d (want %d)", version, CurrentVersion)
	}

	return storage, nil
}
