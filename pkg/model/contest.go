package model

import (
	"fmt"
	"time"
)

type Contest struct {
	Title        string        `json:"title"`
	Platform     Platform      `json:"platform"`
	StartTime    time.Time     `json:"startTime"`
	Duration     time.Duration `json:"duration"`
	URL          string        `json:"url"`
	IsFinished   bool          `json:"isFinished"`
	IsBookmarked bool          `json:"isBookmarked"`
}

// Key identifies a contest across platforms (used for bookmarks)
func (c *Contest) Key() string {
	return fmt.Sprintf("%s/%s", c.Platform, c.Title)
}
