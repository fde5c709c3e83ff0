package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type refresher interface {
	Refresh(ctx context.Context) error
}

// newRefreshCron schedules cache warm up.
// Returns nil when there is no cache: refreshing would only spend upstream and YouTube quota.
func newRefreshCron(ctx context.Context, svc refresher, schedule string, cached bool) (*cron.Cron, error) {
	if !cached {
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(schedule, func() {
		log.Debug("refreshing contests and playlists")
		if err := svc.Refresh(ctx); err != nil {
			log.WithError(err).Warn("refresh failed")
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "invalid refresh schedule %q", schedule)
	}

	log.Debugf("-> refresh schedule %q", schedule)
	return c, nil
}
