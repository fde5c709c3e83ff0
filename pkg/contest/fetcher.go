package contest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/mxpv/codetracker/pkg/model"
)

// Result is a single upstream query outcome.
// Raw is the JSON relayed to legacy clients, Contests is its normalized form.
type Result struct {
	Platform model.Platform   `msgpack:"platform"`
	Raw      json.RawMessage  `msgpack:"raw"`
	Contests []*model.Contest `msgpack:"contests"`
}

type Fetcher interface {
	Platform() model.Platform
	Fetch(ctx context.Context) (*Result, error)
}

func New(platform model.Platform, cfg Config) (Fetcher, error) {
	cfg.ApplyDefaults()

	switch platform {
	case model.PlatformLeetCode:
		return NewLeetCodeFetcher(cfg), nil
	case model.PlatformCodeforces:
		return NewCodeforcesFetcher(cfg), nil
	case model.PlatformCodeChef:
		return NewCodeChefFetcher(cfg), nil
	default:
		return nil, errors.Wrapf(model.ErrUnsupportedPlatform, "%q", platform)
	}
}

// NewAll creates fetchers for every supported platform
func NewAll(cfg Config) (map[model.Platform]Fetcher, error) {
	out := map[model.Platform]Fetcher{}
	for _, platform := range model.Platforms() {
		fetcher, err := New(platform, cfg)
		if err != nil {
			return nil, err
		}
		out[platform] = fetcher
	}
	return out, nil
}

func truncate(list []*model.Contest, limit int) []*model.Contest {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

type clock func() time.Time
