package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ytdigest/config"
	"ytdigest/content"
	"ytdigest/fetcher"
	"ytdigest/handler"
	"ytdigest/model"
	"ytdigest/storage"
	"ytdigest/transcribe"
	"ytdigest/workflow"
	"ytdigest/youtube"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "ytdigest",
		Short:         "turn trending keywords into videos, transcripts and articles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
	root.AddCommand(runCmd(), serveCmd(), initDBCmd(), emptyDBCmd(), generateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr))
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "run the daily workflow once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			youtubeKey := config.GetParam("YOUTUBE_API_KEY", "")
			if youtubeKey == "" {
				return fmt.Errorf("YOUTUBE_API_KEY is not set")
			}
			openaiKey := config.GetParam("OPENAI_API_KEY", "")
			if openaiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}

			regions, err := cfg.ParsedRegions()
			if err != nil {
				return err
			}

			mongo, err := storage.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer mongo.Close(ctx)

			ytClient, err := yt.NewService(ctx, option.WithAPIKey(youtubeKey))
			if err != nil {
				return fmt.Errorf("failed to create youtube service: %w", err)
			}

			var fetchers []fetcher.KeywordFetcher
			for _, region := range regions {
				for _, platform := range cfg.Platforms {
					switch model.Platform(platform) {
					case model.PlatformGoogleTrends:
						fetchers = append(fetchers, fetcher.NewGoogleTrends(region, 10))
					case model.PlatformTwitter:
						fetchers = append(fetchers, fetcher.NewTwitterTrends(region, 10))
					case model.PlatformYouTubeTrending:
						fetchers = append(fetchers, fetcher.NewYouTubeTrending(ytClient, region, 10))
					default:
						return fmt.Errorf("unknown platform %q in config", platform)
					}
				}
			}

			downloader, err := youtube.NewDownloader(cfg.Download.OutputDir)
			if err != nil {
				return err
			}

			var transcriptIndex storage.TranscriptIndex
			if cfg.Weaviate.Host != "" {
				weaviate, err := storage.NewWeaviate(cfg.Weaviate.Host, config.GetParam("WEAVIATE_API_KEY", ""), openaiKey)
				if err != nil {
					return fmt.Errorf("failed to create weaviate client: %w", err)
				}
				transcriptIndex = weaviate
			}

			daily := workflow.NewDailyWorkflow(workflow.DailyWorkflowConfig{
				Fetchers:        fetchers,
				Keywords:        storage.NewMongoKeywordRepository(mongo),
				Videos:          storage.NewMongoVideoRepository(mongo),
				Transcripts:     storage.NewMongoTranscriptRepository(mongo),
				Searcher:        youtube.NewSearcher(ytClient),
				Downloader:      downloader,
				Transcriber:     transcribe.NewWhisper(openai.NewClient(openaiKey)),
				TranscriptIndex: transcriptIndex,
				MaxResults:      int64(cfg.Search.MaxResults),
				SearchWindow:    time.Duration(cfg.Search.WindowDays) * 24 * time.Hour,
				Category:        cfg.Article.Category,
				Language:        cfg.Article.Language,
				Logger:          logger,
			})

			summary, err := daily.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("keywords fetched:    %d\n", summary.KeywordsFetched)
			fmt.Printf("videos found:        %d\n", summary.VideosFound)
			fmt.Printf("videos downloaded:   %d\n", summary.VideosDownloaded)
			fmt.Printf("transcripts created: %d\n", summary.TranscriptsCreated)

			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the reporting api",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			mongo, err := storage.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer mongo.Close(ctx)

			srv := handler.NewServer(
				storage.NewMongoArticleRepository(mongo),
				storage.NewMongoTranscriptRepository(mongo),
				logger,
			)
			logger.Info("serving reporting api", slog.Int("port", cfg.API.Port))

			return http.ListenAndServe(fmt.Sprintf(":%d", cfg.API.Port), srv)
		},
	}
}

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "create collections, indexes and the transcript index schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			mongo, err := storage.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer mongo.Close(ctx)

			if err := mongo.Setup(ctx); err != nil {
				return err
			}
			logger.Info("collections and indexes are in place", slog.String("database", cfg.Mongo.Database))

			if cfg.Weaviate.Host != "" {
				weaviate, err := storage.NewWeaviate(cfg.Weaviate.Host, config.GetParam("WEAVIATE_API_KEY", ""), config.GetParam("OPENAI_API_KEY", ""))
				if err != nil {
					return fmt.Errorf("failed to create weaviate client: %w", err)
				}
				if err := weaviate.ResetSchema(); err != nil {
					return err
				}
				logger.Info("transcript index schema reset", slog.String("host", cfg.Weaviate.Host))
			}

			return nil
		},
	}
}

func emptyDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "emptydb",
		Short: "remove all documents from every collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			mongo, err := storage.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer mongo.Close(ctx)

			if err := mongo.Empty(ctx); err != nil {
				return err
			}
			logger.Info("emptied all collections", slog.String("database", cfg.Mongo.Database))

			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "draft articles from stored transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := newLogger()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			openaiKey := config.GetParam("OPENAI_API_KEY", "")
			if openaiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}

			mongo, err := storage.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
			if err != nil {
				return err
			}
			defer mongo.Close(ctx)

			runner := content.NewRunner(
				content.NewGenerator(openai.NewClient(openaiKey), cfg.Article.Language),
				storage.NewMongoKeywordRepository(mongo),
				storage.NewMongoVideoRepository(mongo),
				storage.NewMongoTranscriptRepository(mongo),
				storage.NewMongoArticleRepository(mongo),
				logger,
			)

			created, err := runner.Run(ctx, cfg.Article.Language)
			if err != nil {
				return err
			}
			fmt.Printf("articles created: %d\n", created)

			return nil
		},
	}
}
