// Package tracker aggregates contest listings and finds solution videos
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mxpv/codetracker/pkg/cache"
	"github.com/mxpv/codetracker/pkg/contest"
	"github.com/mxpv/codetracker/pkg/db"
	"github.com/mxpv/codetracker/pkg/match"
	"github.com/mxpv/codetracker/pkg/model"
	"github.com/mxpv/codetracker/pkg/stats"
)

const (
	contestsKey = "contests/%s"
	playlistKey = "playlist/%s"
)

// Listing is an aggregated contest list.
// Failed lists platforms that could not be loaded, their contests are missing.
type Listing struct {
	Contests []*model.Contest `json:"contests"`
	Failed   []model.Platform `json:"failed"`
}

type Config struct {
	// Fetchers per platform, see contest.NewAll
	Fetchers map[model.Platform]contest.Fetcher
	// Storage keeps bookmarks
	Storage db.Storage
	// Videos is optional, solutions are unavailable without it
	Videos videoSource
	// Playlists maps platform to YouTube playlist with solutions
	Playlists map[model.Platform]string
	// Cache is optional
	Cache       cacheStore
	ContestsTTL time.Duration
	PlaylistTTL time.Duration
}

type Tracker struct {
	fetchers    map[model.Platform]contest.Fetcher
	storage     db.Storage
	videos      videoSource
	playlists   map[model.Platform]string
	cache       cacheStore
	contestsTTL time.Duration
	playlistTTL time.Duration

	// Serializes bookmark toggles so two concurrent toggles of the same contest can't both win
	bookmarkLock sync.Mutex
}

func New(cfg Config) (*Tracker, error) {
	if len(cfg.Fetchers) == 0 {
		return nil, errors.New("at least one contest fetcher is required")
	}

	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	t := &Tracker{
		fetchers:    cfg.Fetchers,
		storage:     cfg.Storage,
		videos:      cfg.Videos,
		playlists:   cfg.Playlists,
		cache:       cfg.Cache,
		contestsTTL: cfg.ContestsTTL,
		playlistTTL: cfg.PlaylistTTL,
	}

	if t.playlists == nil {
		t.playlists = map[model.Platform]string{}
	}

	if t.contestsTTL == 0 {
		t.contestsTTL = model.DefaultContestsTTL
	}

	if t.playlistTTL == 0 {
		t.playlistTTL = model.DefaultPlaylistTTL
	}

	return t, nil
}

// Contests queries all platforms concurrently and returns filtered listing.
// A failing platform doesn't fail the whole listing, it's reported in Listing.Failed.
func (t *Tracker) Contests(ctx context.Context, query Query) (*Listing, error) {
	platforms := t.platforms()
	results := make([]*contest.Result, len(platforms))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, platform := range platforms {
		i, platform := i, platform
		group.Go(func() error {
			res, err := t.fetch(groupCtx, platform, false)
			if err != nil {
				log.WithError(err).WithField("platform", platform).Error("failed to load contests")
				return nil
			}
			results[i] = res
			return nil
		})
	}

	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bookmarks, err := t.bookmarkKeys(ctx)
	if err != nil {
		return nil, err
	}

	listing := &Listing{
		Contests: []*model.Contest{},
		Failed:   []model.Platform{},
	}

	for i, res := range results {
		if res == nil {
			listing.Failed = append(listing.Failed, platforms[i])
			continue
		}

		for _, c := range res.Contests {
			item := *c
			item.IsBookmarked = bookmarks[item.Key()]
			listing.Contests = append(listing.Contests, &item)
		}
	}

	listing.Contests = Filter(listing.Contests, query)
	return listing, nil
}

// Raw returns upstream JSON for the given platform as is
func (t *Tracker) Raw(ctx context.Context, platform model.Platform) (json.RawMessage, error) {
	res, err := t.fetch(ctx, platform, false)
	if err != nil {
		return nil, err
	}

	return res.Raw, nil
}

// Solutions returns videos from platform playlist that belong to the contest
func (t *Tracker) Solutions(ctx context.Context, platform model.Platform, contestTitle string) ([]*model.Video, error) {
	if !platform.Valid() {
		return nil, errors.Wrapf(model.ErrUnsupportedPlatform, "%q", platform)
	}

	videos, err := t.playlistVideos(ctx, platform, false)
	if err != nil {
		return nil, err
	}

	found := match.Match(platform, contestTitle, videos)

	stats.SolutionLookups.WithLabelValues(string(platform)).Inc()
	stats.SolutionMatches.WithLabelValues(string(platform)).Add(float64(len(found)))

	log.WithFields(log.Fields{
		"platform":   platform,
		"contest":    contestTitle,
		"candidates": len(videos),
		"matched":    len(found),
	}).Debug("matched solution videos")

	return found, nil
}

// ToggleBookmark flips bookmark state for the contest and returns new state
func (t *Tracker) ToggleBookmark(ctx context.Context, c *model.Contest) (bool, error) {
	if c == nil || c.Title == "" || !c.Platform.Valid() {
		return false, errors.New("contest title and valid platform are required")
	}

	t.bookmarkLock.Lock()
	defer t.bookmarkLock.Unlock()

	_, err := t.storage.GetBookmark(ctx, c.Key())
	switch {
	case err == nil:
		if err := t.storage.DeleteBookmark(ctx, c.Key()); err != nil && !errors.Is(err, model.ErrNotFound) {
			return false, errors.Wrap(err, "failed to delete bookmark")
		}

		log.WithField("contest", c.Key()).Info("bookmark removed")
		return false, nil

	case !errors.Is(err, model.ErrNotFound):
		return false, errors.Wrap(err, "failed to query bookmark")
	}

	if err := t.storage.AddBookmark(ctx, c); err != nil {
		return false, errors.Wrap(err, "failed to add bookmark")
	}

	log.WithField("contest", c.Key()).Info("bookmark added")
	return true, nil
}

// Bookmarks returns all bookmarked contests
func (t *Tracker) Bookmarks(ctx context.Context) ([]*model.Contest, error) {
	out := []*model.Contest{}
	err := t.storage.WalkBookmarks(ctx, func(c *model.Contest) error {
		c.IsBookmarked = true
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk bookmarks")
	}

	return out, nil
}

// Refresh bypasses cache and reloads contest listings and configured playlists.
// Platforms are refreshed independently: one failing upstream doesn't stop the others,
// all failures are reported together.
func (t *Tracker) Refresh(ctx context.Context) error {
	var (
		group  errgroup.Group
		lock   sync.Mutex
		result *multierror.Error
	)

	report := func(err error) {
		lock.Lock()
		defer lock.Unlock()
		result = multierror.Append(result, err)
	}

	for _, platform := range t.platforms() {
		platform := platform
		group.Go(func() error {
			if _, err := t.fetch(ctx, platform, true); err != nil {
				report(errors.Wrapf(err, "failed to refresh %s contests", platform))
			}
			return nil
		})
	}

	if t.videos != nil {
		for platform := range t.playlists {
			platform := platform
			group.Go(func() error {
				_, err := t.playlistVideos(ctx, platform, true)
				if err == nil {
					return nil
				}

				// Playlist is gone upstream, don't keep serving stale videos
				if errors.Is(err, model.ErrNotFound) {
					t.invalidate(ctx, fmt.Sprintf(playlistKey, t.playlists[platform]))
				}

				report(errors.Wrapf(err, "failed to refresh %s playlist", platform))
				return nil
			})
		}
	}

	_ = group.Wait()
	return result.ErrorOrNil()
}

func (t *Tracker) platforms() []model.Platform {
	out := make([]model.Platform, 0, len(t.fetchers))
	for _, platform := range model.Platforms() {
		if _, ok := t.fetchers[platform]; ok {
			out = append(out, platform)
		}
	}
	return out
}

func (t *Tracker) fetch(ctx context.Context, platform model.Platform, force bool) (*contest.Result, error) {
	fetcher, ok := t.fetchers[platform]
	if !ok {
		return nil, errors.Wrapf(model.ErrUnsupportedPlatform, "%q", platform)
	}

	key := fmt.Sprintf(contestsKey, platform)

	if !force {
		res := &contest.Result{}
		if t.load(ctx, "contests", key, res) {
			return res, nil
		}
	}

	res, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	t.save(ctx, key, res, t.contestsTTL)
	return res, nil
}

func (t *Tracker) playlistVideos(ctx context.Context, platform model.Platform, force bool) ([]*model.Video, error) {
	playlistID := t.playlists[platform]
	if playlistID == "" || t.videos == nil {
		return nil, errors.Wrapf(model.ErrUnsupportedPlatform, "no solutions playlist for %s", platform)
	}

	key := fmt.Sprintf(playlistKey, playlistID)

	if !force {
		var videos []*model.Video
		if t.load(ctx, "playlist", key, &videos) {
			return videos, nil
		}
	}

	videos, err := t.videos.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	t.save(ctx, key, videos, t.playlistTTL)
	return videos, nil
}

// load returns true on cache hit. Cache failures are logged and treated as misses.
func (t *Tracker) load(ctx context.Context, kind, key string, out interface{}) bool {
	if t.cache == nil {
		return false
	}

	err := t.cache.GetItem(ctx, key, out)
	if err == nil {
		stats.CacheHit(kind)
		return true
	}

	stats.CacheMiss(kind)
	if err != cache.ErrNotFound {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
	}

	return false
}

func (t *Tracker) save(ctx context.Context, key string, item interface{}, ttl time.Duration) {
	if t.cache == nil {
		return
	}

	if err := t.cache.SaveItem(ctx, key, item, ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (t *Tracker) invalidate(ctx context.Context, keys ...string) {
	if t.cache == nil {
		return
	}

	if err := t.cache.Invalidate(ctx, keys...); err != nil {
		log.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}

func (t *Tracker) bookmarkKeys(ctx context.Context) (map[string]bool, error) {
	keys := map[string]bool{}
	err := t.storage.WalkBookmarks(ctx, func(c *model.Contest) error {
		keys[c.Key()] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk bookmarks")
	}
	return keys, nil
}
