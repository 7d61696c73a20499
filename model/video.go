package model

import (
	"fmt"
	"time"
)

// YouTubeVideoID is the external platform identifier, distinct from the
// internal store id.
type YouTubeVideoID string

// Video is a search result tied to a Keyword. KeywordID must reference an
// existing Keyword before insertion, the orchestrator checks this, the
// store does not. Videos are immutable after creation.
type Video struct {
	ID           string
	KeywordID    string
	Category     string
	ThumbnailURL string
	URL          string
	YouTubeID    YouTubeVideoID
	Title        string
	Duration     int
	Views        int
	Likes        int
	Comments     int
	Language     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *Video) Validate() error {
	if v.KeywordID == "" {
		return violation("keyword_id", "non-empty string", `""`)
	}
	if v.Category == "" {
		return violation("video_category", "non-empty string", `""`)
	}
	if v.URL == "" {
		return violation("video_url", "non-empty string", `""`)
	}
	if v.YouTubeID == "" {
		return violation("video_youtube_id", "non-empty string", `""`)
	}
	if v.Title == "" {
		return violation("video_title", "non-empty string", `""`)
	}
	if v.Duration < 0 {
		return violation("video_duration", "integer >= 0", fmt.Sprintf("%d", v.Duration))
	}
	if v.Views < 0 {
		return violation("video_views", "integer >= 0", fmt.Sprintf("%d", v.Views))
	}
	if v.Likes < 0 {
		return violation("video_likes", "integer >= 0", fmt.Sprintf("%d", v.Likes))
	}
	if v.Comments < 0 {
		return violation("video_comments", "integer >= 0", fmt.Sprintf("%d", v.Comments))
	}
	if v.Language == "" {
		return violation("video_language", "non-empty string", `""`)
	}

	return nil
}
