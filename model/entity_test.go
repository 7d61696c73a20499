package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytdigest/model"
)

func validKeyword() *model.Keyword {
	return &model.Keyword{
		Keyword:  "ai agents",
		Rank:     1,
		Score:    120,
		Platform: model.PlatformGoogleTrends,
		Region:   model.RegionTaiwan,
		Metadata: map[string]any{},
	}
}

func TestKeywordValidate(t *testing.T) {
	require.NoError(t, validKeyword().Validate())

	for _, tc := range []struct {
		name   string
		mutate func(k *model.Keyword)
		field  string
	}{
		{"blank keyword", func(k *model.Keyword) { k.Keyword = "  " }, "keyword"},
		{"zero rank", func(k *model.Keyword) { k.Rank = 0 }, "rank"},
		{"negative score", func(k *model.Keyword) { k.Score = -1 }, "score"},
		{"unknown platform", func(k *model.Keyword) { k.Platform = "myspace" }, "platform"},
		{"unknown region", func(k *model.Keyword) { k.Region = "ZZ" }, "region"},
		{"nil metadata", func(k *model.Keyword) { k.Metadata = nil }, "metadata"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keyword := validKeyword()
			tc.mutate(keyword)

			err := keyword.Validate()
			var violation *model.SchemaViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, tc.field, violation.Field)
		})
	}
}

func validVideo() *model.Video {
	return &model.Video{
		KeywordID:    "k-1",
		Category:     "education",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		YouTubeID:    "dQw4w9WgXcQ",
		Title:        "a video",
		Duration:     452,
		Views:        1000,
		Likes:        10,
		Comments:     2,
		Language:     "en",
	}
}

func TestVideoValidate(t *testing.T) {
	require.NoError(t, validVideo().Validate())

	t.Run("thumbnail may be empty", func(t *testing.T) {
		video := validVideo()
		video.ThumbnailURL = ""
		assert.NoError(t, video.Validate())
	})

	for _, tc := range []struct {
		name   string
		mutate func(v *model.Video)
		field  string
	}{
		{"missing keyword id", func(v *model.Video) { v.KeywordID = "" }, "keyword_id"},
		{"missing url", func(v *model.Video) { v.URL = "" }, "video_url"},
		{"missing youtube id", func(v *model.Video) { v.YouTubeID = "" }, "video_youtube_id"},
		{"missing title", func(v *model.Video) { v.Title = "" }, "video_title"},
		{"negative duration", func(v *model.Video) { v.Duration = -1 }, "video_duration"},
		{"negative views", func(v *model.Video) { v.Views = -1 }, "video_views"},
		{"missing language", func(v *model.Video) { v.Language = "" }, "video_language"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			video := validVideo()
			tc.mutate(video)

			err := video.Validate()
			var violation *model.SchemaViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, tc.field, violation.Field)
		})
	}
}

func TestTranscriptValidate(t *testing.T) {
	transcript := &model.Transcript{
		VideoID:    "v-1",
		Transcript: "hello world",
		Language:   "en",
	}
	require.NoError(t, transcript.Validate())

	transcript.Transcript = ""
	err := transcript.Validate()
	var violation *model.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "transcript", violation.Field)
}

func TestArticleValidate(t *testing.T) {
	article := &model.Article{
		KeywordID:    "k-1",
		TranscriptID: "t-1",
		VideoID:      "v-1",
		Language:     "en",
		Title:        "a title",
		Content:      "a body",
		SEOMetadata:  map[string]any{},
	}
	require.NoError(t, article.Validate())

	article.SEOMetadata = nil
	err := article.Validate()
	var violation *model.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "seo_metadata", violation.Field)
	assert.Contains(t, violation.Error(), "seo_metadata")
}
