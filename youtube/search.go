package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	yt "google.golang.org/api/youtube/v3"
)

type SearchOptions struct {
	MaxResults     int64
	PublishedAfter time.Time
	RegionCode     string
}

// Result is one video from a search, engagement counters included.
// Duration stays in the API's ISO 8601 form, parsing it is the caller's
// concern.
type Result struct {
	VideoID      string
	Title        string
	URL          string
	ThumbnailURL string
	Duration     string
	Views        int
	Likes        int
	Comments     int
}

type Searcher struct {
	client *yt.Service
}

func NewSearcher(client *yt.Service) *Searcher {
	return &Searcher{client: client}
}

// Search runs a two-step lookup: a search call for matching video ids,
// then a videos call for statistics and duration, which the search
// endpoint does not return.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 50
	}

	searchCall := s.client.Search.
		List([]string{"id"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)
	if !opts.PublishedAfter.IsZero() {
		searchCall = searchCall.PublishedAfter(opts.PublishedAfter.UTC().Format(time.RFC3339))
	}
	if opts.RegionCode != "" {
		searchCall = searchCall.RegionCode(opts.RegionCode)
	}

	searchResponse, err := searchCall.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	if len(searchResponse.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	videosResponse, err := s.client.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}

	results := make([]Result, 0, len(videosResponse.Items))
	for _, item := range videosResponse.Items {
		result := Result{
			VideoID: item.Id,
			URL:     "https://www.youtube.com/watch?v=" + item.Id,
		}
		if item.Snippet != nil {
			result.Title = item.Snippet.Title
			result.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
		}
		if item.Statistics != nil {
			result.Views = int(item.Statistics.ViewCount)
			result.Likes = int(item.Statistics.LikeCount)
			result.Comments = int(item.Statistics.CommentCount)
		}
		if item.ContentDetails != nil {
			result.Duration = item.ContentDetails.Duration
		}
		results = append(results, result)
	}

	return results, nil
}

func bestThumbnail(details *yt.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, t := range []*yt.Thumbnail{details.Maxres, details.Standard, details.High, details.Medium, details.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}

	return ""
}
