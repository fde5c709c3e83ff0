package contest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/mxpv/codetracker/pkg/model"
)

const codeforcesPhaseBefore = "BEFORE"

type codeforcesContest struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Phase            string          `json:"phase"`
	DurationSeconds  int64           `json:"durationSeconds"`
	StartTimeSeconds model.Timestamp `json:"startTimeSeconds"`
}

type codeforcesResponse struct {
	Status  string              `json:"status"`
	Comment string              `json:"comment"`
	Result  []codeforcesContest `json:"result"`
}

// CodeforcesFetcher queries https://codeforces.com/apiHelp/methods#contest.list
type CodeforcesFetcher struct {
	client *Client
	url    string
	limit  int
}

func NewCodeforcesFetcher(cfg Config) *CodeforcesFetcher {
	cfg.ApplyDefaults()

	return &CodeforcesFetcher{
		client: NewClient(string(model.PlatformCodeforces), cfg),
		url:    cfg.CodeforcesURL,
		limit:  cfg.Limit,
	}
}

func (f *CodeforcesFetcher) Platform() model.Platform {
	return model.PlatformCodeforces
}

func (f *CodeforcesFetcher) Fetch(ctx context.Context) (*Result, error) {
	body, err := f.client.GetJSON(ctx, f.url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query codeforces contests")
	}

	resp := codeforcesResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode codeforces response")
	}

	if resp.Status != "OK" {
		return nil, errors.Errorf("codeforces api error: %s (%s)", resp.Status, resp.Comment)
	}

	contests := make([]*model.Contest, 0, len(resp.Result))
	for _, item := range resp.Result {
		contests = append(contests, &model.Contest{
			Title:      item.Name,
			Platform:   model.PlatformCodeforces,
			StartTime:  item.StartTimeSeconds.Time(),
			Duration:   time.Duration(item.DurationSeconds) * time.Second,
			URL:        fmt.Sprintf("https://codeforces.com/contest/%d", item.ID),
			IsFinished: item.Phase != codeforcesPhaseBefore,
		})
	}

	return &Result{
		Platform: model.PlatformCodeforces,
		Raw:      body,
		Contests: truncate(contests, f.limit),
	}, nil
}
