package model

import (
	"time"
)

const (
	DefaultPort            = 3001
	DefaultListLimit       = 10
	DefaultPlaylistPages   = 4
	DefaultUpstreamTimeout = 15 * time.Second
	DefaultUpstreamRate    = 2.0 // requests per second per upstream
	DefaultUpstreamRetries = 2
	DefaultUserAgent       = "codetracker/1.0"
	DefaultContestsTTL     = 10 * time.Minute
	DefaultPlaylistTTL     = 1 * time.Hour
	DefaultRefreshSchedule = "@every 10m"
	DefaultLogMaxSize      = 50 // megabytes
	DefaultLogMaxAge       = 30 // days
	DefaultLogMaxBackups   = 7
)
