// Package youtube lists solution videos from YouTube playlists
package youtube

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/mxpv/codetracker/pkg/model"
	"github.com/mxpv/codetracker/pkg/stats"
)

const maxYoutubeResults = 50

type Config struct {
	// MaxPages limits the number of playlist pages (50 items each) to query.
	// NOTE: every page costs quota units.
	MaxPages int `toml:"max_pages"`
	// Endpoint overrides YouTube API base path
	Endpoint string `toml:"endpoint"`
}

type apiKey string

func (key apiKey) Get() (string, string) {
	return "key", string(key)
}

type Client struct {
	client   *youtube.Service
	keys     KeyProvider
	maxPages int
}

func New(ctx context.Context, keys KeyProvider, cfg Config, httpClient *http.Client) (*Client, error) {
	if keys == nil {
		return nil, errors.New("key provider is required")
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create youtube client")
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = model.DefaultPlaylistPages
	}

	return &Client{client: svc, keys: keys, maxPages: maxPages}, nil
}

// PlaylistVideos returns playlist items in playlist order
func (yt *Client) PlaylistVideos(ctx context.Context, playlistID string) ([]*model.Video, error) {
	var (
		videos    []*model.Video
		pageToken string
	)

	for page := 0; page < yt.maxPages; page++ {
		items, next, err := yt.listPlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			if video := yt.convert(item); video != nil {
				videos = append(videos, video)
			}
		}

		if next == "" {
			break
		}

		pageToken = next
	}

	log.WithFields(log.Fields{
		"playlist_id": playlistID,
		"videos":      len(videos),
	}).Debug("queried playlist")

	return videos, nil
}

// Cost: 3 units (call: 1, snippet: 2)
// See https://developers.google.com/youtube/v3/docs/playlistItems/list#part
func (yt *Client) listPlaylistItems(ctx context.Context, playlistID string, pageToken string) ([]*youtube.PlaylistItem, string, error) {
	req := yt.client.PlaylistItems.List([]string{"snippet"}).
		MaxResults(maxYoutubeResults).
		PlaylistId(playlistID).
		Context(ctx)

	if pageToken != "" {
		req = req.PageToken(pageToken)
	}

	resp, err := req.Do(apiKey(yt.keys.Get()))
	stats.UpstreamRequests.WithLabelValues("youtube").Inc()
	if err != nil {
		stats.UpstreamFailures.WithLabelValues("youtube").Inc()
		return nil, "", errors.Wrapf(translateError(err), "failed to query playlist items %q", playlistID)
	}

	return resp.Items, resp.NextPageToken, nil
}

func (yt *Client) convert(item *youtube.PlaylistItem) *model.Video {
	snippet := item.Snippet
	if snippet == nil || snippet.ResourceId == nil {
		return nil
	}

	videoID := snippet.ResourceId.VideoId
	return &model.Video{
		Title:      snippet.Title,
		VideoID:    videoID,
		PlaylistID: snippet.PlaylistId,
		Thumbnail:  selectThumbnail(snippet.Thumbnails, videoID),
	}
}

func selectThumbnail(snippet *youtube.ThumbnailDetails, videoID string) string {
	if snippet != nil {
		for _, thumb := range []*youtube.Thumbnail{snippet.High, snippet.Medium, snippet.Default} {
			if thumb != nil && thumb.Url != "" {
				return thumb.Url
			}
		}
	}

	if videoID != "" {
		return fmt.Sprintf("https://img.youtube.com/vi/%s/default.jpg", videoID)
	}

	return ""
}

func translateError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	for _, item := range apiErr.Errors {
		switch item.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			return errors.Wrap(model.ErrQuotaExceeded, apiErr.Message)
		}
	}

	if apiErr.Code == http.StatusNotFound {
		return errors.Wrap(model.ErrNotFound, apiErr.Message)
	}

	return err
}
