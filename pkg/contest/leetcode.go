package contest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mxpv/codetracker/pkg/model"
)

const leetCodeQuery = `query getContestList {
  allContests {
    title
    startTime
    duration
    titleSlug
  }
}`

type leetCodeContest struct {
	Title     string          `json:"title"`
	StartTime model.Timestamp `json:"startTime"`
	Duration  int64           `json:"duration"`
	TitleSlug string          `json:"titleSlug"`
}

type leetCodeResponse struct {
	Data struct {
		AllContests json.RawMessage `json:"allContests"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// LeetCodeFetcher queries contest list via LeetCode GraphQL endpoint
type LeetCodeFetcher struct {
	client *Client
	url    string
	limit  int
	now    clock
}

func NewLeetCodeFetcher(cfg Config) *LeetCodeFetcher {
	cfg.ApplyDefaults()

	return &LeetCodeFetcher{
		client: NewClient(string(model.PlatformLeetCode), cfg),
		url:    cfg.LeetCodeURL,
		limit:  cfg.Limit,
		now:    time.Now,
	}
}

func (f *LeetCodeFetcher) Platform() model.Platform {
	return model.PlatformLeetCode
}

func (f *LeetCodeFetcher) Fetch(ctx context.Context) (*Result, error) {
	body, err := f.client.PostJSON(ctx, f.url, map[string]string{"query": leetCodeQuery})
	if err != nil {
		return nil, errors.Wrap(err, "failed to query leetcode contests")
	}

	resp := leetCodeResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode leetcode response")
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, errors.Errorf("leetcode graphql error: %s", strings.Join(messages, "; "))
	}

	var list []leetCodeContest
	if err := json.Unmarshal(resp.Data.AllContests, &list); err != nil {
		return nil, errors.Wrap(err, "failed to decode leetcode contest list")
	}

	now := f.now()
	contests := make([]*model.Contest, 0, len(list))
	for _, item := range list {
		start := item.StartTime.Time()
		contests = append(contests, &model.Contest{
			Title:      item.Title,
			Platform:   model.PlatformLeetCode,
			StartTime:  start,
			Duration:   time.Duration(item.Duration) * time.Second,
			URL:        fmt.Sprintf("https://leetcode.com/contest/%s", item.TitleSlug),
			IsFinished: !start.After(now),
		})
	}

	return &Result{
		Platform: model.PlatformLeetCode,
		Raw:      resp.Data.AllContests,
		Contests: truncate(contests, f.limit),
	}, nil
}
