package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"ytdigest/fetcher"
	"ytdigest/model"
	"ytdigest/storage"
	"ytdigest/transcribe"
	"ytdigest/youtube"
)

// State names the stage the workflow is in. Transitions are strictly
// sequential, Failed is reachable only before the first stage starts.
type State string

const (
	StateIdle             State = "idle"
	StateFetchingKeywords State = "fetching_keywords"
	StateSearchingVideos  State = "searching_videos"
	StateDownloadingMedia State = "downloading_media"
	StateTranscribing     State = "transcribing"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// ErrNotConfigured is the structural failure that aborts a run before any
// stage begins. Once stages run, individual item failures never escalate.
var ErrNotConfigured = errors.New("workflow not configured")

// Summary reports how many items survived each stage. Gaps between the
// counts are the expected signal of partial failure.
type Summary struct {
	KeywordsFetched    int
	VideosFound        int
	VideosDownloaded   int
	TranscriptsCreated int
}

type VideoSearcher interface {
	Search(ctx context.Context, query string, opts youtube.SearchOptions) ([]youtube.Result, error)
}

type MediaDownloader interface {
	Download(ctx context.Context, url string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (transcribe.Result, error)
}

type DailyWorkflowConfig struct {
	Fetchers    []fetcher.KeywordFetcher
	Keywords    storage.KeywordRepository
	Videos      storage.VideoRepository
	Transcripts storage.TranscriptRepository
	Searcher    VideoSearcher
	Downloader  MediaDownloader
	Transcriber Transcriber

	// TranscriptIndex is optional, nil disables vector indexing.
	TranscriptIndex storage.TranscriptIndex

	// MaxResults caps the videos searched per keyword, SearchWindow bounds
	// how old they may be.
	MaxResults   int64
	SearchWindow time.Duration

	Category string
	Language string

	Logger *slog.Logger
}

// DailyWorkflow drives one batch run: keyword discovery, video search,
// media download, transcription. Items are processed one at a time in
// input order, the downstream collaborators are rate-limited and must not
// be hit concurrently.
type DailyWorkflow struct {
	fetchers        []fetcher.KeywordFetcher
	keywordRepo     storage.KeywordRepository
	videoRepo       storage.VideoRepository
	transcriptRepo  storage.TranscriptRepository
	searcher        VideoSearcher
	downloader      MediaDownloader
	transcriber     Transcriber
	transcriptIndex storage.TranscriptIndex
	maxResults      int64
	searchWindow    time.Duration
	category        string
	language        string
	state           State
	logger          *slog.Logger
}

func NewDailyWorkflow(cfg DailyWorkflowConfig) *DailyWorkflow {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 3
	}
	if cfg.SearchWindow <= 0 {
		cfg.SearchWindow = 7 * 24 * time.Hour
	}
	if cfg.Category == "" {
		cfg.Category = "education"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &DailyWorkflow{
		fetchers:        cfg.Fetchers,
		keywordRepo:     cfg.Keywords,
		videoRepo:       cfg.Videos,
		transcriptRepo:  cfg.Transcripts,
		searcher:        cfg.Searcher,
		downloader:      cfg.Downloader,
		transcriber:     cfg.Transcriber,
		transcriptIndex: cfg.TranscriptIndex,
		maxResults:      cfg.MaxResults,
		searchWindow:    cfg.SearchWindow,
		category:        cfg.Category,
		language:        cfg.Language,
		state:           StateIdle,
		logger:          cfg.Logger,
	}
}

func (w *DailyWorkflow) State() State {
	return w.state
}

// Run executes the complete workflow. After the first stage starts the
// returned error is always nil, partial failure shows up as gaps between
// the summary counts, inspectable through the repositories.
func (w *DailyWorkflow) Run(ctx context.Context) (Summary, error) {
	if err := w.checkConfigured(); err != nil {
		w.state = StateFailed
		return Summary{}, err
	}

	w.state = StateFetchingKeywords
	keywordIDs := w.fetchKeywords(ctx)
	w.logger.Info("fetched keywords", slog.Int("count", len(keywordIDs)))

	w.state = StateSearchingVideos
	videoIDs := w.searchVideos(ctx, keywordIDs)
	w.logger.Info("found videos", slog.Int("count", len(videoIDs)))

	w.state = StateDownloadingMedia
	mediaPaths := w.downloadMedia(ctx, videoIDs)
	w.logger.Info("downloaded media", slog.Int("count", len(mediaPaths)))

	w.state = StateTranscribing
	transcribed := w.transcribeVideos(ctx, videoIDs, mediaPaths)
	w.logger.Info("created transcripts", slog.Int("count", transcribed))

	w.state = StateDone

	return Summary{
		KeywordsFetched:    len(keywordIDs),
		VideosFound:        len(videoIDs),
		VideosDownloaded:   len(mediaPaths),
		TranscriptsCreated: transcribed,
	}, nil
}

func (w *DailyWorkflow) checkConfigured() error {
	switch {
	case len(w.fetchers) == 0:
		return fmt.Errorf("%w: no keyword fetchers", ErrNotConfigured)
	case w.keywordRepo == nil || w.videoRepo == nil || w.transcriptRepo == nil:
		return fmt.Errorf("%w: missing repositories", ErrNotConfigured)
	case w.searcher == nil:
		return fmt.Errorf("%w: missing video searcher", ErrNotConfigured)
	case w.downloader == nil:
		return fmt.Errorf("%w: missing media downloader", ErrNotConfigured)
	case w.transcriber == nil:
		return fmt.Errorf("%w: missing transcriber", ErrNotConfigured)
	}

	return nil
}

// fetchKeywords walks every configured (region, platform) source. A source
// failure aborts only that source, a malformed record drops only that
// record.
func (w *DailyWorkflow) fetchKeywords(ctx context.Context) []string {
	var keywordIDs []string
	for _, f := range w.fetchers {
		logger := w.logger.With(
			slog.String("platform", f.Platform().String()),
			slog.String("region", f.Region().String()),
		)

		raws, err := f.Fetch(ctx)
		if err != nil {
			logger.Error("failed to fetch keywords", err)
			continue
		}
		logger.Info("fetched keyword records", slog.Int("count", len(raws)))

		for _, raw := range raws {
			keyword, err := fetcher.Normalize(raw, f.Platform(), f.Region())
			if err != nil {
				logger.Warn("dropped malformed keyword record", slog.String("reason", err.Error()))
				continue
			}
			id, err := w.keywordRepo.Insert(ctx, keyword)
			if err != nil {
				logger.Error("failed to insert keyword", err, slog.String("keyword", keyword.Keyword))
				continue
			}
			keywordIDs = append(keywordIDs, id)
		}
	}

	if len(keywordIDs) == 0 {
		w.logger.Warn("no keywords were fetched from any source")
	}

	return keywordIDs
}

func (w *DailyWorkflow) searchVideos(ctx context.Context, keywordIDs []string) []string {
	var videoIDs []string
	for _, keywordID := range keywordIDs {
		keyword, err := w.keywordRepo.FindByID(ctx, keywordID)
		if err != nil {
			w.logger.Error("failed to resolve keyword", err, slog.String("keyword_id", keywordID))
			continue
		}
		if keyword == nil {
			// an id handed over by the previous stage must resolve,
			// absence means the store is inconsistent
			w.logger.Warn("keyword id did not resolve", slog.String("keyword_id", keywordID))
			continue
		}

		results, err := w.searcher.Search(ctx, keyword.Keyword, youtube.SearchOptions{
			MaxResults:     w.maxResults,
			PublishedAfter: time.Now().Add(-w.searchWindow),
			RegionCode:     keyword.Region.YouTubeCode(),
		})
		if err != nil {
			w.logger.Error("video search failed", err, slog.String("keyword", keyword.Keyword))
			continue
		}

		for _, result := range results {
			duration, err := youtube.ParseDuration(result.Duration)
			if err != nil {
				w.logger.Warn("dropped video with malformed duration",
					slog.String("youtube_id", result.VideoID),
					slog.String("reason", err.Error()))
				continue
			}

			video := &model.Video{
				KeywordID:    keywordID,
				Category:     w.category,
				ThumbnailURL: result.ThumbnailURL,
				URL:          result.URL,
				YouTubeID:    model.YouTubeVideoID(result.VideoID),
				Title:        result.Title,
				Duration:     duration,
				Views:        result.Views,
				Likes:        result.Likes,
				Comments:     result.Comments,
				Language:     w.language,
			}
			id, err := w.videoRepo.Insert(ctx, video)
			if err != nil {
				w.logger.Error("failed to insert video", err, slog.String("youtube_id", result.VideoID))
				continue
			}
			videoIDs = append(videoIDs, id)
			w.logger.Info("inserted video", slog.String("title", result.Title))
		}
	}

	return videoIDs
}

// downloadMedia maps video id to local media path. A failed download just
// leaves its video out of the map, it is not retried within the run.
func (w *DailyWorkflow) downloadMedia(ctx context.Context, videoIDs []string) map[string]string {
	mediaPaths := make(map[string]string)
	for _, videoID := range videoIDs {
		video, err := w.videoRepo.FindByID(ctx, videoID)
		if err != nil {
			w.logger.Error("failed to resolve video", err, slog.String("video_id", videoID))
			continue
		}
		if video == nil {
			w.logger.Warn("video id did not resolve", slog.String("video_id", videoID))
			continue
		}

		path, err := w.downloader.Download(ctx, video.URL)
		if err != nil {
			w.logger.Error("failed to download media", err, slog.String("video_id", videoID))
			continue
		}
		mediaPaths[videoID] = path
		w.logger.Info("downloaded media", slog.String("video_id", videoID), slog.String("path", path))
	}

	return mediaPaths
}

func (w *DailyWorkflow) transcribeVideos(ctx context.Context, videoIDs []string, mediaPaths map[string]string) int {
	created := 0
	for _, videoID := range videoIDs {
		path, ok := mediaPaths[videoID]
		if !ok {
			continue
		}

		result, err := w.transcriber.Transcribe(ctx, path)
		if err != nil {
			w.logger.Error("failed to transcribe video", err, slog.String("video_id", videoID))
			continue
		}

		transcript := &model.Transcript{
			VideoID:    videoID,
			Transcript: result.Text,
			Language:   result.Language,
		}
		id, err := w.transcriptRepo.Insert(ctx, transcript)
		if err != nil {
			w.logger.Error("failed to insert transcript", err, slog.String("video_id", videoID))
			continue
		}
		created++
		w.logger.Info("transcribed video", slog.String("video_id", videoID))

		if w.transcriptIndex != nil {
			transcript.ID = id
			if err := w.transcriptIndex.Save(ctx, transcript); err != nil {
				w.logger.Error("failed to index transcript", err, slog.String("transcript_id", id))
			}
		}
	}

	return created
}
