package model

import "time"

// Article is generated long-form content referencing the whole chain of
// keyword, video and transcript. Published is the only field that may
// change after creation.
type Article struct {
	ID           string
	KeywordID    string
	TranscriptID string
	VideoID      string
	Language     string
	Title        string
	Content      string
	Tags         string
	SEOMetadata  map[string]any
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Article) Validate() error {
	if a.KeywordID == "" {
		return violation("keyword_id", "non-empty string", `""`)
	}
	if a.TranscriptID == "" {
		return violation("transcript_id", "non-empty string", `""`)
	}
	if a.VideoID == "" {
		return violation("video_id", "non-empty string", `""`)
	}
	if a.Language == "" {
		return violation("article_language", "non-empty string", `""`)
	}
	if a.Title == "" {
		return violation("title", "non-empty string", `""`)
	}
	if a.Content == "" {
		return violation("content", "non-empty string", `""`)
	}
	if a.SEOMetadata == nil {
		return violation("seo_metadata", "map", "nil")
	}

	return nil
}
