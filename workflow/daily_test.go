package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"ytdigest/fetcher"
	"ytdigest/model"
	"ytdigest/storage"
	"ytdigest/transcribe"
	"ytdigest/workflow"
	"ytdigest/youtube"
)

type fakeFetcher struct {
	platform model.Platform
	region   model.Region
	raws     []fetcher.RawKeyword
	err      error
}

func (f *fakeFetcher) Platform() model.Platform { return f.platform }
func (f *fakeFetcher) Region() model.Region     { return f.region }

func (f *fakeFetcher) Fetch(_ context.Context) ([]fetcher.RawKeyword, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.raws, nil
}

type fakeSearcher struct {
	results map[string][]youtube.Result
	err     error
	queries []string
}

func (s *fakeSearcher) Search(_ context.Context, query string, _ youtube.SearchOptions) ([]youtube.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}

	return s.results[query], nil
}

type fakeDownloader struct {
	failFor map[string]bool
}

func (d *fakeDownloader) Download(_ context.Context, url string) (string, error) {
	if d.failFor[url] {
		return "", errors.New("yt-dlp exited with status 1")
	}

	return "/tmp/" + url + ".mp3", nil
}

type fakeTranscriber struct {
	err error
}

func (t *fakeTranscriber) Transcribe(_ context.Context, path string) (transcribe.Result, error) {
	if t.err != nil {
		return transcribe.Result{}, t.err
	}

	return transcribe.Result{Text: "transcript of " + path, Language: "en"}, nil
}

type fakeIndex struct {
	saved []string
	err   error
}

func (i *fakeIndex) Save(_ context.Context, transcript *model.Transcript) error {
	if i.err != nil {
		return i.err
	}
	i.saved = append(i.saved, transcript.ID)

	return nil
}

func searchResult(id string) youtube.Result {
	return youtube.Result{
		VideoID:  id,
		Title:    "video " + id,
		URL:      "https://www.youtube.com/watch?v=" + id,
		Duration: "PT7M32S",
		Views:    1000,
		Likes:    10,
		Comments: 2,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func newConfig() workflow.DailyWorkflowConfig {
	return workflow.DailyWorkflowConfig{
		Fetchers: []fetcher.KeywordFetcher{&fakeFetcher{
			platform: model.PlatformGoogleTrends,
			region:   model.RegionTaiwan,
			raws:     []fetcher.RawKeyword{{Keyword: "ai agents", Rank: 1}},
		}},
		Keywords:    storage.NewMemoryKeywordRepository(),
		Videos:      storage.NewMemoryVideoRepository(),
		Transcripts: storage.NewMemoryTranscriptRepository(),
		Searcher:    &fakeSearcher{},
		Downloader:  &fakeDownloader{},
		Transcriber: &fakeTranscriber{},
		Logger:      quietLogger(),
	}
}

func TestDailyWorkflowRun(t *testing.T) {
	ctx := context.Background()

	cfg := newConfig()
	cfg.Fetchers = []fetcher.KeywordFetcher{&fakeFetcher{
		platform: model.PlatformGoogleTrends,
		region:   model.RegionTaiwan,
		raws: []fetcher.RawKeyword{
			{Keyword: "ai agents", Rank: 1, Score: 120},
			{Keyword: 42, Rank: 2},
			{Keyword: "quantum", Rank: "3"},
		},
	}}
	searcher := &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa")},
		"quantum":   {searchResult("bbb")},
	}}
	cfg.Searcher = searcher
	index := &fakeIndex{}
	cfg.TranscriptIndex = index
	keywords := cfg.Keywords
	videos := cfg.Videos
	transcripts := cfg.Transcripts

	daily := workflow.NewDailyWorkflow(cfg)
	require.Equal(t, workflow.StateIdle, daily.State())

	summary, err := daily.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateDone, daily.State())

	// the malformed record is dropped, everything else flows through
	assert.Equal(t, workflow.Summary{
		KeywordsFetched:    2,
		VideosFound:        2,
		VideosDownloaded:   2,
		TranscriptsCreated: 2,
	}, summary)
	assert.Equal(t, []string{"ai agents", "quantum"}, searcher.queries)

	stored, err := keywords.FindByPlatformRegion(ctx, model.PlatformGoogleTrends, model.RegionTaiwan)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, stored[0].CreatedAt, stored[0].UpdatedAt)

	vids, err := videos.FindByKeywordID(ctx, stored[0].ID)
	require.NoError(t, err)
	require.Len(t, vids, 1)
	assert.Equal(t, 452, vids[0].Duration)
	assert.Equal(t, "education", vids[0].Category)

	transcript, err := transcripts.FindByVideoID(ctx, vids[0].ID)
	require.NoError(t, err)
	require.NotNil(t, transcript)
	assert.Equal(t, "en", transcript.Language)

	assert.Len(t, index.saved, 2)
}

func TestDailyWorkflowNoResults(t *testing.T) {
	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{}}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)

	// an empty pipeline is still a completed run
	assert.Equal(t, workflow.StateDone, daily.State())
	assert.Equal(t, workflow.Summary{KeywordsFetched: 1}, summary)
}

func TestDailyWorkflowDownloadFailureIsolation(t *testing.T) {
	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa"), searchResult("bbb")},
	}}
	cfg.Downloader = &fakeDownloader{failFor: map[string]bool{
		"https://www.youtube.com/watch?v=aaa": true,
	}}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, workflow.StateDone, daily.State())
	assert.Equal(t, 2, summary.VideosFound)
	assert.Equal(t, 1, summary.VideosDownloaded)
	assert.Equal(t, 1, summary.TranscriptsCreated)
}

func TestDailyWorkflowFetcherFailureIsolation(t *testing.T) {
	cfg := newConfig()
	cfg.Fetchers = []fetcher.KeywordFetcher{
		&fakeFetcher{
			platform: model.PlatformGoogleTrends,
			region:   model.RegionTaiwan,
			err:      errors.New("rss feed unavailable"),
		},
		&fakeFetcher{
			platform: model.PlatformTwitter,
			region:   model.RegionJapan,
			raws:     []fetcher.RawKeyword{{Keyword: "hanabi", Rank: 1}},
		},
	}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, workflow.StateDone, daily.State())
	assert.Equal(t, 1, summary.KeywordsFetched)
}

func TestDailyWorkflowMalformedDurationDropsVideo(t *testing.T) {
	bad := searchResult("bad")
	bad.Duration = "PTxS"
	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa"), bad},
	}}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.VideosFound)
	assert.Equal(t, 1, summary.TranscriptsCreated)
}

func TestDailyWorkflowTranscriberFailure(t *testing.T) {
	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa")},
	}}
	cfg.Transcriber = &fakeTranscriber{err: errors.New("whisper unavailable")}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, workflow.StateDone, daily.State())
	assert.Equal(t, 1, summary.VideosDownloaded)
	assert.Equal(t, 0, summary.TranscriptsCreated)
}

func TestDailyWorkflowIndexFailureDoesNotLoseTranscript(t *testing.T) {
	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa")},
	}}
	cfg.TranscriptIndex = &fakeIndex{err: errors.New("weaviate down")}
	daily := workflow.NewDailyWorkflow(cfg)

	summary, err := daily.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TranscriptsCreated)
}

func TestDailyWorkflowNotConfigured(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(cfg *workflow.DailyWorkflowConfig)
	}{
		{"no fetchers", func(cfg *workflow.DailyWorkflowConfig) { cfg.Fetchers = nil }},
		{"missing keyword repo", func(cfg *workflow.DailyWorkflowConfig) { cfg.Keywords = nil }},
		{"missing searcher", func(cfg *workflow.DailyWorkflowConfig) { cfg.Searcher = nil }},
		{"missing downloader", func(cfg *workflow.DailyWorkflowConfig) { cfg.Downloader = nil }},
		{"missing transcriber", func(cfg *workflow.DailyWorkflowConfig) { cfg.Transcriber = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newConfig()
			tc.mutate(&cfg)
			daily := workflow.NewDailyWorkflow(cfg)

			summary, err := daily.Run(context.Background())
			require.ErrorIs(t, err, workflow.ErrNotConfigured)
			assert.Equal(t, workflow.StateFailed, daily.State())
			assert.Equal(t, workflow.Summary{}, summary)
		})
	}
}

func TestDailyWorkflowRepeatedRunsAccumulateTranscripts(t *testing.T) {
	ctx := context.Background()

	cfg := newConfig()
	cfg.Searcher = &fakeSearcher{results: map[string][]youtube.Result{
		"ai agents": {searchResult("aaa")},
	}}
	transcripts := cfg.Transcripts

	first := workflow.NewDailyWorkflow(cfg)
	_, err := first.Run(ctx)
	require.NoError(t, err)
	second := workflow.NewDailyWorkflow(cfg)
	_, err = second.Run(ctx)
	require.NoError(t, err)

	all, err := transcripts.FindByLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Len(t, all, 2, fmt.Sprintf("each run keeps its own transcript, got %d", len(all)))
}
