package config

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/mxpv/codetracker/pkg/cache"
	"github.com/mxpv/codetracker/pkg/contest"
	"github.com/mxpv/codetracker/pkg/db"
	"github.com/mxpv/codetracker/pkg/model"
	"github.com/mxpv/codetracker/pkg/server"
	"github.com/mxpv/codetracker/pkg/youtube"
)

type Config struct {
	// Server is the web server configuration
	Server server.Config `toml:"server"`
	// Log is the optional logging configuration
	Log Log `toml:"log"`
	// Database keeps bookmarks
	Database db.Config `toml:"database"`
	// Redis is the optional cache for upstream responses
	Redis cache.Config `toml:"redis"`
	// Tokens is API keys to use to access YouTube API.
	Tokens Tokens `toml:"tokens"`
	// Playlists holds YouTube playlist IDs with solution videos per platform
	Playlists Playlists `toml:"playlists"`
	// YouTube API query options
	YouTube youtube.Config `toml:"youtube"`
	// Upstream contest APIs configuration
	Upstream contest.Config `toml:"upstream"`
	// RefreshSchedule is a cron expression to warm up caches
	RefreshSchedule string `toml:"refresh_schedule"`
}

type Log struct {
	// Filename to write the log to (instead of stdout)
	Filename string `toml:"filename"`
	// MaxSize is the maximum size of the log file in MB
	MaxSize int `toml:"max_size"`
	// MaxBackups is the maximum number of log file backups to keep after rotation
	MaxBackups int `toml:"max_backups"`
	// MaxAge is the maximum number of days to keep the logs for
	MaxAge int `toml:"max_age"`
	// Compress old backups
	Compress bool `toml:"compress"`
}

type Tokens struct {
	// YouTube API key(s).
	// See https://developers.google.com/youtube/registering_an_application
	YouTube StringSlice `toml:"youtube"`
}

type Playlists struct {
	LeetCode   string `toml:"leetcode"`
	Codeforces string `toml:"codeforces"`
	CodeChef   string `toml:"codechef"`
}

// Get returns playlist ID for the given platform or empty string if not configured
func (p Playlists) Get(platform model.Platform) string {
	switch platform {
	case model.PlatformLeetCode:
		return p.LeetCode
	case model.PlatformCodeforces:
		return p.Codeforces
	case model.PlatformCodeChef:
		return p.CodeChef
	default:
		return ""
	}
}

// Map returns configured playlists only
func (p Playlists) Map() map[model.Platform]string {
	out := map[model.Platform]string{}
	for _, platform := range model.Platforms() {
		if id := p.Get(platform); id != "" {
			out[platform] = id
		}
	}
	return out
}

// LoadConfig loads TOML configuration from a file path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	config := Config{}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal toml")
	}

	config.applyDefaults(path)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		result = multierror.Append(result, errors.Errorf("invalid server port %d", c.Server.Port))
	}

	if len(c.Playlists.Map()) > 0 && len(c.Tokens.YouTube) == 0 {
		result = multierror.Append(result, errors.New("youtube token is required when playlists are configured"))
	}

	for _, key := range c.Tokens.YouTube {
		if key == "" {
			result = multierror.Append(result, errors.New("youtube token can't be empty"))
		}
	}

	if c.Upstream.Rate <= 0 {
		result = multierror.Append(result, errors.New("upstream rate must be positive"))
	}

	if c.Upstream.Retries != nil && *c.Upstream.Retries < 0 {
		result = multierror.Append(result, errors.Errorf("invalid upstream retries %d", *c.Upstream.Retries))
	}

	if c.Upstream.Limit < 0 {
		result = multierror.Append(result, errors.Errorf("invalid upstream limit %d", c.Upstream.Limit))
	}

	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "invalid refresh schedule %q", c.RefreshSchedule))
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) applyDefaults(configPath string) {
	if c.Server.Port == 0 {
		c.Server.Port = model.DefaultPort
	}

	if c.Log.Filename != "" {
		if c.Log.MaxSize == 0 {
			c.Log.MaxSize = model.DefaultLogMaxSize
		}
		if c.Log.MaxAge == 0 {
			c.Log.MaxAge = model.DefaultLogMaxAge
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = model.DefaultLogMaxBackups
		}
	}

	if c.Database.Dir == "" {
		c.Database.Dir = filepath.Join(filepath.Dir(configPath), "db")
	}

	if c.Redis.ContestsTTL == 0 {
		c.Redis.ContestsTTL = model.DefaultContestsTTL
	}

	if c.Redis.PlaylistTTL == 0 {
		c.Redis.PlaylistTTL = model.DefaultPlaylistTTL
	}

	if c.YouTube.MaxPages == 0 {
		c.YouTube.MaxPages = model.DefaultPlaylistPages
	}

	c.Upstream.ApplyDefaults()

	if c.RefreshSchedule == "" {
		c.RefreshSchedule = model.DefaultRefreshSchedule
	}
}
