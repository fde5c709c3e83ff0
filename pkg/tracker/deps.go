package tracker

import (
	"context"
	"time"

	"github.com/mxpv/codetracker/pkg/model"
)

type videoSource interface {
	PlaylistVideos(ctx context.Context, playlistID string) ([]*model.Video, error)
}

type cacheStore interface {
	SaveItem(ctx context.Context, key string, item interface{}, exp time.Duration) error
	GetItem(ctx context.Context, key string, item interface{}) error
	Invalidate(ctx context.Context, keys ...string) error
}
