package contest

import (
	"time"

	"github.com/mxpv/codetracker/pkg/model"
)

const (
	DefaultLeetCodeURL   = "https://leetcode.com/graphql"
	DefaultCodeforcesURL = "https://codeforces.com/api/contest.list"
	DefaultCodeChefURL   = "https://www.codechef.com/api/list/contests/all"
)

// Config describes how to reach upstream contest APIs
type Config struct {
	// Timeout is a per request timeout
	Timeout time.Duration `toml:"timeout"`
	// Rate is the number of requests per second allowed to each upstream
	Rate float64 `toml:"rate"`
	// Retries is the number of retries (not counting the first attempt) for failed GETs.
	// Zero disables retries, nil means default.
	Retries *int `toml:"retries"`
	// Limit is the number of contests to keep from LeetCode and Codeforces listings
	Limit int `toml:"limit"`
	// UserAgent header to send upstream
	UserAgent string `toml:"user_agent"`

	LeetCodeURL   string `toml:"leetcode_url"`
	CodeforcesURL string `toml:"codeforces_url"`
	CodeChefURL   string `toml:"codechef_url"`
}

func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = model.DefaultUpstreamTimeout
	}

	if c.Rate == 0 {
		c.Rate = model.DefaultUpstreamRate
	}

	if c.Retries == nil {
		retries := model.DefaultUpstreamRetries
		c.Retries = &retries
	}

	if c.Limit == 0 {
		c.Limit = model.DefaultListLimit
	}

	if c.UserAgent == "" {
		c.UserAgent = model.DefaultUserAgent
	}

	if c.LeetCodeURL == "" {
		c.LeetCodeURL = DefaultLeetCodeURL
	}

	if c.CodeforcesURL == "" {
		c.CodeforcesURL = DefaultCodeforcesURL
	}

	if c.CodeChefURL == "" {
		c.CodeChefURL = DefaultCodeChefURL
	}
}
