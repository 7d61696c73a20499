package fetcher

import (
	"context"

	"ytdigest/model"
)

// RawKeyword is one record as a trend source produced it. Field types are
// deliberately loose, upstream sources disagree about them, the normalizer
// turns a RawKeyword into a strict model.Keyword or rejects it.
type RawKeyword struct {
	Keyword  any
	Rank     any
	Score    any
	Metadata map[string]any
}

// KeywordFetcher fetches trending keywords for one platform and region.
// Implementations own their own timeout and retry policy.
type KeywordFetcher interface {
	Platform() model.Platform
	Region() model.Region
	Fetch(ctx context.Context) ([]RawKeyword, error)
}
