package model

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies the source a trending keyword was discovered on.
type Platform string

const (
	PlatformGoogleTrends    Platform = "google_trends"
	PlatformTwitter         Platform = "twitter"
	PlatformYouTubeTrending Platform = "youtube_trending"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformGoogleTrends, PlatformTwitter, PlatformYouTubeTrending:
		return true
	}

	return false
}

func (p Platform) String() string {
	return string(p)
}

// Keyword is a trending term discovered on a platform for a region. A
// (platform, region, rank) triple is not unique, repeated runs produce
// duplicates on purpose. Keywords are never updated after creation.
type Keyword struct {
	ID        string
	Keyword   string
	Rank      int
	Score     int
	Platform  Platform
	Region    Region
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (k *Keyword) Validate() error {
	if strings.TrimSpace(k.Keyword) == "" {
		return violation("keyword", "non-empty string", fmt.Sprintf("%q", k.Keyword))
	}
	if k.Rank < 1 {
		return violation("rank", "positive integer", fmt.Sprintf("%d", k.Rank))
	}
	if k.Score < 0 {
		return violation("score", "integer >= 0", fmt.Sprintf("%d", k.Score))
	}
	if !k.Platform.Valid() {
		return violation("platform", "one of google_trends, twitter, youtube_trending", fmt.Sprintf("%q", k.Platform))
	}
	if !k.Region.Valid() {
		return violation("region", "known region code", fmt.Sprintf("%q", k.Region))
	}
	if k.Metadata == nil {
		return violation("metadata", "map", "nil")
	}

	return nil
}
