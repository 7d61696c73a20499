package content_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"ytdigest/content"
	"ytdigest/model"
	"ytdigest/storage"
)

func TestFormatBlog(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	got := content.FormatBlog("A Title", "https://www.youtube.com/watch?v=aaa", date, "  the body\n")

	assert.Equal(t, "# A Title\n\n2024-03-15 | https://www.youtube.com/watch?v=aaa\n\nthe body\n", got)
}

func TestExcerpt(t *testing.T) {
	t.Run("short text stays whole", func(t *testing.T) {
		assert.Equal(t, "short", content.Excerpt(" short ", 160))
	})

	t.Run("long text is cut at a word boundary", func(t *testing.T) {
		got := content.Excerpt("alpha beta gamma delta", 12)
		assert.Equal(t, "alpha beta...", got)
	})

	t.Run("no boundary means a hard cut", func(t *testing.T) {
		got := content.Excerpt(strings.Repeat("x", 20), 10)
		assert.Equal(t, strings.Repeat("x", 10)+"...", got)
	})
}

type fakeDrafter struct {
	failFor map[string]bool
	drafted []string
}

func (d *fakeDrafter) Generate(_ context.Context, keyword *model.Keyword, video *model.Video, transcript *model.Transcript) (*model.Article, error) {
	if d.failFor[transcript.ID] {
		return nil, errors.New("model overloaded")
	}
	d.drafted = append(d.drafted, transcript.ID)

	return &model.Article{
		KeywordID:    keyword.ID,
		TranscriptID: transcript.ID,
		VideoID:      video.ID,
		Language:     transcript.Language,
		Title:        video.Title,
		Content:      "drafted from " + transcript.Transcript,
		Tags:         keyword.Keyword,
		SEOMetadata:  map[string]any{},
	}, nil
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard))

	keywords := storage.NewMemoryKeywordRepository()
	videos := storage.NewMemoryVideoRepository()
	transcripts := storage.NewMemoryTranscriptRepository()
	articles := storage.NewMemoryArticleRepository()

	keywordID, err := keywords.Insert(ctx, &model.Keyword{
		Keyword:  "ai agents",
		Rank:     1,
		Platform: model.PlatformGoogleTrends,
		Region:   model.RegionTaiwan,
		Metadata: map[string]any{},
	})
	require.NoError(t, err)

	videoID, err := videos.Insert(ctx, &model.Video{
		KeywordID: keywordID,
		Category:  "education",
		URL:       "https://www.youtube.com/watch?v=aaa",
		YouTubeID: "aaa",
		Title:     "a video",
		Language:  "en",
	})
	require.NoError(t, err)

	goodID, err := transcripts.Insert(ctx, &model.Transcript{VideoID: videoID, Transcript: "good", Language: "en"})
	require.NoError(t, err)
	badID, err := transcripts.Insert(ctx, &model.Transcript{VideoID: videoID, Transcript: "bad", Language: "en"})
	require.NoError(t, err)
	// a transcript whose video is gone must not abort the batch
	_, err = transcripts.Insert(ctx, &model.Transcript{VideoID: "orphan", Transcript: "lost", Language: "en"})
	require.NoError(t, err)

	drafter := &fakeDrafter{failFor: map[string]bool{badID: true}}
	runner := content.NewRunner(drafter, keywords, videos, transcripts, articles, logger)

	created, err := runner.Run(ctx, "en")
	require.NoError(t, err)

	assert.Equal(t, 1, created)
	assert.Equal(t, []string{goodID}, drafter.drafted)

	stored, err := articles.FindByLanguage(ctx, "en")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, goodID, stored[0].TranscriptID)
	assert.False(t, stored[0].Published)
}

func TestRunnerRunNoDrafter(t *testing.T) {
	runner := content.NewRunner(nil, nil, nil, storage.NewMemoryTranscriptRepository(), nil, nil)

	_, err := runner.Run(context.Background(), "en")
	assert.ErrorIs(t, err, content.ErrMissingGenerator)
}
