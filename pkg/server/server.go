//go:generate mockgen -source=server.go -destination=server_mock_test.go -package=server

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mxpv/codetracker/pkg/contest"
	"github.com/mxpv/codetracker/pkg/model"
	"github.com/mxpv/codetracker/pkg/stats"
	"github.com/mxpv/codetracker/pkg/tracker"
)

const maxTitleLength = 256

type trackerService interface {
	Contests(ctx context.Context, query tracker.Query) (*tracker.Listing, error)
	Raw(ctx context.Context, platform model.Platform) (json.RawMessage, error)
	Solutions(ctx context.Context, platform model.Platform, contestTitle string) ([]*model.Video, error)
	ToggleBookmark(ctx context.Context, contest *model.Contest) (bool, error)
	Bookmarks(ctx context.Context) ([]*model.Contest, error)
}

type handler struct {
	tracker trackerService
}

func New(tracker trackerService, cfg Config) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	h := handler{tracker: tracker}

	// Legacy proxy routes relaying upstream JSON
	r.GET("/leetcode/contest-list", h.relay(model.PlatformLeetCode))
	r.GET("/codeforce/contest-list", h.relay(model.PlatformCodeforces))
	r.GET("/codechef/contest-list", h.relay(model.PlatformCodeChef))

	r.GET("/api/ping", h.ping)
	r.GET("/api/contests", h.contests)
	r.GET("/api/solutions", h.solutions)
	r.GET("/api/bookmarks", h.bookmarks)
	r.POST("/api/bookmarks/toggle", h.toggleBookmark)

	r.GET("/metrics", gin.WrapH(stats.Handler()))

	return r
}

func (h handler) ping(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h handler) relay(platform model.Platform) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := h.tracker.Raw(c.Request.Context(), platform)
		if err != nil {
			log.WithError(err).WithField("platform", platform).Error("failed to fetch contest list")
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("error fetching %s contest list", platform)})
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
	}
}

func (h handler) contests(c *gin.Context) {
	query := tracker.Query{
		Search: c.Query("q"),
	}

	if values, ok := c.GetQueryArray("platform"); ok {
		query.Platforms = []model.Platform{}
		for _, value := range values {
			if value == "" {
				continue
			}

			platform, err := model.ParsePlatform(value)
			if err != nil {
				c.JSON(badRequest(err))
				return
			}

			query.Platforms = append(query.Platforms, platform)
		}
	}

	if value := c.Query("bookmarked"); value != "" {
		bookmarked, err := strconv.ParseBool(value)
		if err != nil {
			c.JSON(badRequest(errors.Errorf("invalid bookmarked value %q", value)))
			return
		}
		query.BookmarkedOnly = bookmarked
	}

	listing, err := h.tracker.Contests(c.Request.Context(), query)
	if err != nil {
		c.JSON(serverError(err))
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h handler) solutions(c *gin.Context) {
	platform, err := model.ParsePlatform(c.Query("platform"))
	if err != nil {
		c.JSON(badRequest(err))
		return
	}

	title := c.Query("title")
	if title == "" || len(title) > maxTitleLength {
		c.JSON(badRequest(errors.New("invalid contest title")))
		return
	}

	videos, err := h.tracker.Solutions(c.Request.Context(), platform, title)
	if err != nil {
		c.JSON(serverError(err))
		return
	}

	type videoResponse struct {
		*model.Video
		URL string `json:"url"`
	}

	out := make([]videoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, videoResponse{Video: video, URL: video.URL()})
	}

	c.JSON(http.StatusOK, gin.H{"videos": out})
}

func (h handler) bookmarks(c *gin.Context) {
	list, err := h.tracker.Bookmarks(c.Request.Context())
	if err != nil {
		c.JSON(serverError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"contests": list})
}

func (h handler) toggleBookmark(c *gin.Context) {
	req := &model.Contest{}
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(badRequest(err))
		return
	}

	if req.Title == "" || len(req.Title) > maxTitleLength || !req.Platform.Valid() {
		c.JSON(badRequest(errors.New("contest title and valid platform are required")))
		return
	}

	state, err := h.tracker.ToggleBookmark(c.Request.Context(), req)
	if err != nil {
		c.JSON(serverError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": state})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(started),
		}).Debug("handled request")
	}
}

func badRequest(err error) (int, interface{}) {
	return http.StatusBadRequest, gin.H{"error": err.Error()}
}

func serverError(err error) (int, interface{}) {
	code := http.StatusInternalServerError

	var statusErr *contest.StatusError
	switch {
	case errors.Is(err, model.ErrUnsupportedPlatform):
		code = http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, model.ErrQuotaExceeded):
		code = http.StatusTooManyRequests
	case errors.As(err, &statusErr):
		code = http.StatusBadGateway
	}

	if code == http.StatusInternalServerError {
		log.WithError(err).Error("server error")
	}

	return code, gin.H{"error": err.Error()}
}
