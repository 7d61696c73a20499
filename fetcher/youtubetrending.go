package fetcher

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"

	"ytdigest/model"
)

// YouTubeTrending reads the mostPopular chart and treats video titles as
// trending keywords, with the view count as the score.
type YouTubeTrending struct {
	client *youtube.Service
	region model.Region
	limit  int64
}

func NewYouTubeTrending(client *youtube.Service, region model.Region, limit int64) *YouTubeTrending {
	return &YouTubeTrending{
		client: client,
		region: region,
		limit:  limit,
	}
}

func (y *YouTubeTrending) Platform() model.Platform { return model.PlatformYouTubeTrending }

func (y *YouTubeTrending) Region() model.Region { return y.region }

func (y *YouTubeTrending) Fetch(ctx context.Context) ([]RawKeyword, error) {
	call := y.client.Videos.
		List([]string{"snippet", "statistics"}).
		Chart("mostPopular").
		MaxResults(y.limit).
		Context(ctx)
	if code := y.region.YouTubeCode(); code != "" {
		call = call.RegionCode(code)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending chart: %w", err)
	}

	var raws []RawKeyword
	for i, item := range response.Items {
		var views uint64
		var likes uint64
		if item.Statistics != nil {
			views = item.Statistics.ViewCount
			likes = item.Statistics.LikeCount
		}
		raws = append(raws, RawKeyword{
			Keyword: item.Snippet.Title,
			Rank:    i + 1,
			Score:   views,
			Metadata: map[string]any{
				"platform":   string(model.PlatformYouTubeTrending),
				"region":     y.region,
				"video_id":   item.Id,
				"tags":       item.Snippet.Tags,
				"view_count": views,
				"like_count": likes,
			},
		})
	}

	return raws, nil
}
