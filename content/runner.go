package content

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"

	"ytdigest/model"
	"ytdigest/storage"
)

var ErrMissingGenerator = errors.New("no article generator configured")

// ArticleDrafter is what Runner needs from a generator, kept narrow so
// tests can script it.
type ArticleDrafter interface {
	Generate(ctx context.Context, keyword *model.Keyword, video *model.Video, transcript *model.Transcript) (*model.Article, error)
}

// Runner turns every transcript in a language into an article, one at a
// time. The same per-item isolation as the daily workflow applies, a
// failed draft skips that transcript only.
type Runner struct {
	drafter     ArticleDrafter
	keywords    storage.KeywordRepository
	videos      storage.VideoRepository
	transcripts storage.TranscriptRepository
	articles    storage.ArticleRepository
	logger      *slog.Logger
}

func NewRunner(drafter ArticleDrafter, keywords storage.KeywordRepository, videos storage.VideoRepository, transcripts storage.TranscriptRepository, articles storage.ArticleRepository, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		drafter:     drafter,
		keywords:    keywords,
		videos:      videos,
		transcripts: transcripts,
		articles:    articles,
		logger:      logger,
	}
}

// Run drafts articles for all transcripts in the given language and
// reports how many were created.
func (r *Runner) Run(ctx context.Context, language string) (int, error) {
	if r.drafter == nil {
		return 0, ErrMissingGenerator
	}

	transcripts, err := r.transcripts.FindByLanguage(ctx, language)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, transcript := range transcripts {
		logger := r.logger.With(slog.String("transcript_id", transcript.ID))

		video, err := r.videos.FindByID(ctx, transcript.VideoID)
		if err != nil {
			logger.Error("failed to resolve video", err)
			continue
		}
		if video == nil {
			logger.Warn("video id did not resolve", slog.String("video_id", transcript.VideoID))
			continue
		}

		keyword, err := r.keywords.FindByID(ctx, video.KeywordID)
		if err != nil {
			logger.Error("failed to resolve keyword", err)
			continue
		}
		if keyword == nil {
			logger.Warn("keyword id did not resolve", slog.String("keyword_id", video.KeywordID))
			continue
		}

		article, err := r.drafter.Generate(ctx, keyword, video, transcript)
		if err != nil {
			logger.Error("failed to generate article", err)
			continue
		}
		if _, err := r.articles.Insert(ctx, article); err != nil {
			logger.Error("failed to insert article", err)
			continue
		}
		created++
		logger.Info("created article", slog.String("title", article.Title))
	}

	return created, nil
}
