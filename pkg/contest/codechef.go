package contest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/mxpv/codetracker/pkg/model"
)

// CodeChef reports local dates in IST
const codeChefDateLayout = "02 Jan 2006  15:04:05"

var istLocation = time.FixedZone("IST", 5*60*60+30*60)

type codeChefContest struct {
	Code         string  `json:"contest_code"`
	Name         string  `json:"contest_name"`
	StartDate    string  `json:"contest_start_date"`
	StartDateISO string  `json:"contest_start_date_iso"`
	Duration     minutes `json:"contest_duration"`
}

type codeChefResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Future  []json.RawMessage `json:"future_contests"`
	Past    []json.RawMessage `json:"past_contests"`
}

// CodeChefFetcher queries future and past contests from CodeChef
type CodeChefFetcher struct {
	client *Client
	url    string
}

func NewCodeChefFetcher(cfg Config) *CodeChefFetcher {
	cfg.ApplyDefaults()

	return &CodeChefFetcher{
		client: NewClient(string(model.PlatformCodeChef), cfg),
		url:    cfg.CodeChefURL,
	}
}

func (f *CodeChefFetcher) Platform() model.Platform {
	return model.PlatformCodeChef
}

func (f *CodeChefFetcher) Fetch(ctx context.Context) (*Result, error) {
	body, err := f.client.GetJSON(ctx, f.url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query codechef contests")
	}

	resp := codeChefResponse{}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode codechef response")
	}

	if resp.Status != "" && resp.Status != "success" {
		return nil, errors.Errorf("codechef api error: %s (%s)", resp.Status, resp.Message)
	}

	future, err := f.convert(resp.Future, false)
	if err != nil {
		return nil, err
	}

	past, err := f.convert(resp.Past, true)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(map[string]interface{}{
		"future_contests": nonNil(resp.Future),
		"past_contests":   nonNil(resp.Past),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode codechef relay")
	}

	return &Result{
		Platform: model.PlatformCodeChef,
		Raw:      raw,
		Contests: append(future, past...),
	}, nil
}

func (f *CodeChefFetcher) convert(items []json.RawMessage, finished bool) ([]*model.Contest, error) {
	out := make([]*model.Contest, 0, len(items))
	for _, data := range items {
		item := codeChefContest{}
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, errors.Wrap(err, "failed to decode codechef contest")
		}

		out = append(out, &model.Contest{
			Title:      item.Name,
			Platform:   model.PlatformCodeChef,
			StartTime:  parseCodeChefDate(item.StartDateISO, item.StartDate),
			Duration:   time.Duration(item.Duration) * time.Minute,
			URL:        fmt.Sprintf("https://codechef.com/%s", item.Code),
			IsFinished: finished,
		})
	}
	return out, nil
}

func parseCodeChefDate(iso, local string) time.Time {
	if iso != "" {
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			return t
		}
	}

	if t, err := time.ParseInLocation(codeChefDateLayout, local, istLocation); err == nil {
		return t
	}

	return time.Time{}
}

func nonNil(list []json.RawMessage) []json.RawMessage {
	if list == nil {
		return []json.RawMessage{}
	}
	return list
}

// minutes accepts both "120" and 120
type minutes int64

func (m *minutes) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}

	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}

	*m = minutes(v)
	return nil
}
