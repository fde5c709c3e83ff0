package db

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxpv/codetracker/pkg/model"
)

var testCtx = context.TODO()

func TestNewBadger(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(&Config{Dir: dir})
	require.NoError(t, err)

	err = db.Close()
	assert.NoError(t, err)
}

func TestBadger_Version(t *testing.T) {
	db := openTestDB(t)

	ver, err := db.Version()
	assert.NoError(t, err)
	assert.Equal(t, CurrentVersion, ver)
}

func TestNewStorage_VersionMismatch(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(&Config{Dir: dir})
	require.NoError(t, err)

	err = db.db.Update(func(txn *badger.Txn) error {
		return db.setObj(txn, []byte(versionPath), CurrentVersion+1, true)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewStorage(testCtx, &Config{Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database version")
}

func TestBadger_AddBookmark(t *testing.T) {
	db := openTestDB(t)

	contest := getContest("Starters 176 (Rated for Div 3)")
	err := db.AddBookmark(testCtx, contest)
	assert.NoError(t, err)

	// Input is not modified
	assert.False(t, contest.IsBookmarked)

	err = db.AddBookmark(testCtx, contest)
	assert.Equal(t, model.ErrAlreadyExists, err)
}

func TestBadger_AddBookmarkRequiresTitle(t *testing.T) {
	db := openTestDB(t)

	assert.Error(t, db.AddBookmark(testCtx, &model.Contest{Platform: model.PlatformCodeChef}))
	assert.Error(t, db.AddBookmark(testCtx, nil))
}

func TestBadger_GetBookmark(t *testing.T) {
	db := openTestDB(t)

	contest := getContest("Starters 176 (Rated for Div 3)")
	require.NoError(t, db.AddBookmark(testCtx, contest))

	saved, err := db.GetBookmark(testCtx, contest.Key())
	require.NoError(t, err)

	assert.Equal(t, contest.Title, saved.Title)
	assert.Equal(t, contest.Platform, saved.Platform)
	assert.Equal(t, contest.URL, saved.URL)
	assert.True(t, contest.StartTime.Equal(saved.StartTime))
	assert.True(t, saved.IsBookmarked)

	_, err = db.GetBookmark(testCtx, "codechef/missing")
	assert.Equal(t, model.ErrNotFound, err)
}

func TestBadger_DeleteBookmark(t *testing.T) {
	db := openTestDB(t)

	contest := getContest("Starters 176 (Rated for Div 3)")
	require.NoError(t, db.AddBookmark(testCtx, contest))

	err := db.DeleteBookmark(testCtx, contest.Key())
	require.NoError(t, err)

	_, err = db.GetBookmark(testCtx, contest.Key())
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = db.DeleteBookmark(testCtx, contest.Key())
	assert.Equal(t, model.ErrNotFound, err)
}

func TestBadger_WalkBookmarks(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddBookmark(testCtx, getContest("Starters 177")))
	require.NoError(t, db.AddBookmark(testCtx, getContest("Starters 176")))
	require.NoError(t, db.AddBookmark(testCtx, &model.Contest{Title: "Weekly Contest 400", Platform: model.PlatformLeetCode}))

	var titles []string
	err := db.WalkBookmarks(testCtx, func(contest *model.Contest) error {
		titles = append(titles, contest.Title)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Starters 176", "Starters 177", "Weekly Contest 400"}, titles)
}

func TestBadger_WalkBookmarksStops(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddBookmark(testCtx, getContest("Starters 176")))
	require.NoError(t, db.AddBookmark(testCtx, getContest("Starters 177")))

	stop := errors.New("stop")
	calls := 0
	err := db.WalkBookmarks(testCtx, func(contest *model.Contest) error {
		calls++
		return stop
	})

	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestBadger_Reopen(t *testing.T) {
	dir := t.TempDir()

	db, err := NewBadger(&Config{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, db.AddBookmark(testCtx, getContest("Starters 176")))
	require.NoError(t, db.Close())

	db, err = NewBadger(&Config{Dir: dir})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.GetBookmark(testCtx, "codechef/Starters 176")
	assert.NoError(t, err)
}

func openTestDB(t *testing.T) *Badger {
	t.Helper()

	db, err := NewBadger(&Config{Dir: t.TempDir()})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func getContest(title string) *model.Contest {
	return &model.Contest{
		Title:      title,
		Platform:   model.PlatformCodeChef,
		StartTime:  time.Date(2025, 3, 19, 14, 30, 0, 0, time.UTC),
		Duration:   2 * time.Hour,
		URL:        "https://codechef.com/START176",
		IsFinished: true,
	}
}
