package storage

import (
	"context"

	"ytdigest/model"
)

// Repositories wrap the document store, stamp timestamps and hand out
// opaque string identifiers. FindByID returns (nil, nil) when the id does
// not resolve, absence is a result, not an error.

type KeywordRepository interface {
	Insert(ctx context.Context, keyword *model.Keyword) (string, error)
	FindByID(ctx context.Context, id string) (*model.Keyword, error)
	FindByPlatformRegion(ctx context.Context, platform model.Platform, region model.Region) ([]*model.Keyword, error)
}

type VideoRepository interface {
	Insert(ctx context.Context, video *model.Video) (string, error)
	FindByID(ctx context.Context, id string) (*model.Video, error)
	FindByKeywordID(ctx context.Context, keywordID string) ([]*model.Video, error)
}

type TranscriptRepository interface {
	Insert(ctx context.Context, transcript *model.Transcript) (string, error)
	FindByID(ctx context.Context, id string) (*model.Transcript, error)
	// FindByVideoID returns the newest transcript for the video, so a
	// re-run supersedes older ones without deleting them.
	FindByVideoID(ctx context.Context, videoID string) (*model.Transcript, error)
	FindByLanguage(ctx context.Context, language string) ([]*model.Transcript, error)
}

type ArticleRepository interface {
	Insert(ctx context.Context, article *model.Article) (string, error)
	FindByID(ctx context.Context, id string) (*model.Article, error)
	FindByLanguage(ctx context.Context, language string) ([]*model.Article, error)
	FindPublished(ctx context.Context) ([]*model.Article, error)
	// SetPublished reports whether the record actually changed. Setting
	// the value it already has is a no-op, not an error.
	SetPublished(ctx context.Context, id string, published bool) (bool, error)
}

// TranscriptIndex is an optional vector side-store for semantic search
// over transcripts. Index failures never fail a run.
type TranscriptIndex interface {
	Save(ctx context.Context, transcript *model.Transcript) error
}
