package db

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxpv/codetracker/pkg/model"
)

func openTestMongo(t *testing.T) *Mongo {
	t.Helper()

	url := os.Getenv("MONGO_TEST_URL")
	if url == "" {
		t.Skip("MONGO_TEST_URL is not set")
	}

	db, err := NewMongo(testCtx, &MongoConfig{
		URL:        url,
		Database:   "codetracker_test",
		Collection: fmt.Sprintf("bookmarks_%d", time.Now().UnixNano()),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.col.Drop(testCtx)
		_ = db.Close()
	})

	return db
}

func TestNewMongoRequiresURL(t *testing.T) {
	_, err := NewMongo(testCtx, &MongoConfig{})
	assert.Error(t, err)

	_, err = NewMongo(testCtx, nil)
	assert.Error(t, err)
}

func TestNewStorageFallsBackToBadger(t *testing.T) {
	storage, err := NewStorage(testCtx, &Config{Dir: t.TempDir(), Mongo: &MongoConfig{}})
	require.NoError(t, err)
	defer storage.Close()

	_, ok := storage.(*Badger)
	assert.True(t, ok)
}

func TestMongo_Version(t *testing.T) {
	db := openTestMongo(t)

	ver, err := db.Version()
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, ver)
}

func TestMongo_Bookmarks(t *testing.T) {
	db := openTestMongo(t)

	first := getContest("Weekly Contest 400")
	second := getContest("Starters 176 (Rated for Div 3)")

	require.NoError(t, db.AddBookmark(testCtx, second))
	require.NoError(t, db.AddBookmark(testCtx, first))
	assert.Equal(t, model.ErrAlreadyExists, db.AddBookmark(testCtx, first))

	saved, err := db.GetBookmark(testCtx, first.Key())
	require.NoError(t, err)
	assert.Equal(t, first.Title, saved.Title)
	assert.True(t, saved.IsBookmarked)

	var keys []string
	err = db.WalkBookmarks(testCtx, func(contest *model.Contest) error {
		keys = append(keys, contest.Key())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{second.Key(), first.Key()}, keys)

	require.NoError(t, db.DeleteBookmark(testCtx, first.Key()))
	assert.Equal(t, model.ErrNotFound, db.DeleteBookmark(testCtx, first.Key()))

	_, err = db.GetBookmark(testCtx, first.Key())
	assert.Equal(t, model.ErrNotFound, err)
}
