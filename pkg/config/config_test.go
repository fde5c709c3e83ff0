package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxpv/codetracker/pkg/model"
)

func TestLoadConfig(t *testing.T) {
	const file = `
refresh_schedule = "@every 5m"

[tokens]
youtube = ["123", "456"]

[server]
port = 8080
bind_address = "127.0.0.1"
cors_origins = ["http://localhost:3000"]

[database]
dir = "/home/user/db/"

[redis]
url = "redis://localhost:6379"
contests_ttl = "5m"

[playlists]
leetcode = "PL_LEET"
codechef = "PL_CHEF"

[youtube]
max_pages = 2

[upstream]
timeout = "3s"
rate = 0.5
retries = 1
limit = 20
user_agent = "test-agent"

[log]
filename = "codetracker.log"
max_size = 10
`
	path := setup(t, file)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "@every 5m", config.RefreshSchedule)
	assert.EqualValues(t, []string{"123", "456"}, config.Tokens.YouTube)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.BindAddress)
	assert.Equal(t, []string{"http://localhost:3000"}, config.Server.CORSOrigins)

	assert.Equal(t, "/home/user/db/", config.Database.Dir)

	assert.Equal(t, "redis://localhost:6379", config.Redis.URL)
	assert.Equal(t, 5*time.Minute, config.Redis.ContestsTTL)
	assert.Equal(t, model.DefaultPlaylistTTL, config.Redis.PlaylistTTL)

	assert.Equal(t, "PL_LEET", config.Playlists.Get(model.PlatformLeetCode))
	assert.Equal(t, "", config.Playlists.Get(model.PlatformCodeforces))
	assert.Len(t, config.Playlists.Map(), 2)

	assert.Equal(t, 2, config.YouTube.MaxPages)

	assert.Equal(t, 3*time.Second, config.Upstream.Timeout)
	assert.Equal(t, 0.5, config.Upstream.Rate)
	require.NotNil(t, config.Upstream.Retries)
	assert.Equal(t, 1, *config.Upstream.Retries)
	assert.Equal(t, 20, config.Upstream.Limit)
	assert.Equal(t, "test-agent", config.Upstream.UserAgent)

	assert.Equal(t, "codetracker.log", config.Log.Filename)
	assert.Equal(t, 10, config.Log.MaxSize)
	assert.Equal(t, model.DefaultLogMaxAge, config.Log.MaxAge)
	assert.Equal(t, model.DefaultLogMaxBackups, config.Log.MaxBackups)
}

func TestApplyDefaults(t *testing.T) {
	path := setup(t, `[server]`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPort, config.Server.Port)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "db"), config.Database.Dir)
	assert.Equal(t, model.DefaultContestsTTL, config.Redis.ContestsTTL)
	assert.Equal(t, model.DefaultPlaylistPages, config.YouTube.MaxPages)
	assert.Equal(t, model.DefaultUpstreamTimeout, config.Upstream.Timeout)
	assert.Equal(t, model.DefaultUpstreamRate, config.Upstream.Rate)
	assert.Equal(t, model.DefaultListLimit, config.Upstream.Limit)
	require.NotNil(t, config.Upstream.Retries)
	assert.Equal(t, model.DefaultUpstreamRetries, *config.Upstream.Retries)
	assert.Equal(t, model.DefaultUserAgent, config.Upstream.UserAgent)
	assert.Equal(t, model.DefaultRefreshSchedule, config.RefreshSchedule)
	assert.Empty(t, config.Log.Filename)
	assert.Zero(t, config.Log.MaxSize)
}

func TestSingleToken(t *testing.T) {
	path := setup(t, `
[tokens]
youtube = "123"

[playlists]
codeforces = "PL_CF"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.EqualValues(t, []string{"123"}, config.Tokens.YouTube)
}

func TestRetriesDisabled(t *testing.T) {
	path := setup(t, `
[upstream]
retries = 0
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config.Upstream.Retries)
	assert.Equal(t, 0, *config.Upstream.Retries)
}

func TestValidation(t *testing.T) {
	path := setup(t, `
refresh_schedule = "every once in a while"

[server]
port = 70000

[playlists]
leetcode = "PL_LEET"

[upstream]
rate = -1.0
retries = -1
`)

	_, err := LoadConfig(path)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "invalid server port")
	assert.Contains(t, err.Error(), "youtube token is required")
	assert.Contains(t, err.Error(), "upstream rate must be positive")
	assert.Contains(t, err.Error(), "invalid upstream retries")
	assert.Contains(t, err.Error(), "invalid refresh schedule")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func setup(t *testing.T, file string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(file), 0644)
	require.NoError(t, err)

	return path
}
