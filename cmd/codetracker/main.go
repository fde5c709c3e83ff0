package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mxpv/codetracker/pkg/cache"
	"github.com/mxpv/codetracker/pkg/config"
	"github.com/mxpv/codetracker/pkg/contest"
	"github.com/mxpv/codetracker/pkg/db"
	"github.com/mxpv/codetracker/pkg/server"
	"github.com/mxpv/codetracker/pkg/tracker"
	"github.com/mxpv/codetracker/pkg/youtube"
)

type Opts struct {
	ConfigPath string `long:"config" short:"c" default:"config.toml" env:"CODETRACKER_CONFIG_PATH"`
	Debug      bool   `long:"debug"`
	NoBanner   bool   `long:"no-banner"`
}

const banner = `
  ___         _     _____               _
 / __|___  __| |___|_   _| _ __ _ __ __| |_____ _ _
| (__/ _ \/ _' / -_) | || '_/ _' / _/ /| / / -_) '_|
 \___\___/\__,_\___| |_||_| \__,_\__\_\|_\_\___|_|
`

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	// Parse args
	opts := Opts{}
	_, err := flags.Parse(&opts)
	if err != nil {
		log.WithError(err).Fatal("failed to parse command line arguments")
	}

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if !opts.NoBanner {
		log.Info(banner)
	}

	log.WithFields(log.Fields{
		"version": version,
		"commit":  commit,
		"date":    date,
	}).Info("running codetracker")

	// Load TOML file
	log.Debugf("loading configuration %q", opts.ConfigPath)
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration file")
	}

	if cfg.Log.Filename != "" {
		log.Infof("using log file: %s", cfg.Log.Filename)
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.Filename,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
	}

	database, err := db.NewStorage(ctx, &cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}

	defer func() {
		if err := database.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	fetchers, err := contest.NewAll(cfg.Upstream)
	if err != nil {
		log.WithError(err).Fatal("failed to create contest fetchers")
	}

	trackerCfg := tracker.Config{
		Fetchers:    fetchers,
		Storage:     database,
		Playlists:   cfg.Playlists.Map(),
		ContestsTTL: cfg.Redis.ContestsTTL,
		PlaylistTTL: cfg.Redis.PlaylistTTL,
	}

	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}

		defer func() {
			if err := redisCache.Close(); err != nil {
				log.WithError(err).Error("failed to close redis connection")
			}
		}()

		trackerCfg.Cache = redisCache
	} else {
		log.Warn("redis is not configured, upstream responses won't be cached")
	}

	if len(cfg.Tokens.YouTube) > 0 {
		keys, err := youtube.NewKeyProvider(cfg.Tokens.YouTube)
		if err != nil {
			log.WithError(err).Fatal("failed to create youtube key provider")
		}

		videos, err := youtube.New(ctx, keys, cfg.YouTube, &http.Client{Timeout: cfg.Upstream.Timeout})
		if err != nil {
			log.WithError(err).Fatal("failed to create youtube client")
		}

		trackerCfg.Videos = videos
	} else {
		log.Warn("youtube token is not configured, solutions are disabled")
	}

	svc, err := tracker.New(trackerCfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create tracker")
	}

	refresh, err := newRefreshCron(ctx, svc, cfg.RefreshSchedule, trackerCfg.Cache != nil)
	if err != nil {
		log.WithError(err).Fatal("failed to schedule refresh")
	}

	if refresh != nil {
		group.Go(func() error {
			defer func() {
				log.Info("shutting down cron")
				refresh.Stop()
			}()

			// Warm up caches after restart
			if err := svc.Refresh(ctx); err != nil {
				log.WithError(err).Warn("initial refresh failed")
			}

			refresh.Start()

			<-ctx.Done()
			return ctx.Err()
		})
	} else {
		log.Info("cache is disabled, skipping scheduled refresh")
	}

	// Run web server
	srv := NewServer(cfg.Server, server.New(svc, cfg.Server))

	group.Go(func() error {
		log.Infof("running listener at %s", srv.Addr)
		return srv.ListenAndServe()
	})

	group.Go(func() error {
		// Shutdown web server
		defer func() {
			log.Info("shutting down web server")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("server shutdown failed")
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			cancel()
			return nil
		}
	})

	if err := group.Wait(); err != nil && (err != context.Canceled && err != http.ErrServerClosed) {
		log.WithError(err).Error("wait error")
	}

	log.Info("gracefully stopped")
}
