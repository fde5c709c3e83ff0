package model

import (
	"fmt"
)

// Video is a playlist entry that may hold a contest solution
type Video struct {
	Title      string `json:"title"`
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId"`
	Thumbnail  string `json:"thumbnail"`
}

// URL returns watch link that keeps the playlist context
func (v *Video) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&list=%s", v.VideoID, v.PlaylistID)
}
