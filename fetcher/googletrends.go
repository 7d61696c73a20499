package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"ytdigest/model"
)

const googleTrendsFeed = "https://trends.google.com/trending/rss?geo=%s"

// GoogleTrends reads the daily trending-searches RSS feed for a region.
type GoogleTrends struct {
	region model.Region
	parser *gofeed.Parser
	limit  int
}

func NewGoogleTrends(region model.Region, limit int) *GoogleTrends {
	return &GoogleTrends{
		region: region,
		parser: gofeed.NewParser(),
		limit:  limit,
	}
}

func (g *GoogleTrends) Platform() model.Platform { return model.PlatformGoogleTrends }

func (g *GoogleTrends) Region() model.Region { return g.region }

func (g *GoogleTrends) Fetch(ctx context.Context) ([]RawKeyword, error) {
	geo := g.region.GoogleTrendsCode()
	if geo == "WORLDWIDE" {
		// the rss feed has no worldwide edition, US is the closest
		geo = "US"
	}

	feed, err := g.parser.ParseURLWithContext(fmt.Sprintf(googleTrendsFeed, geo), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google trends feed: %w", err)
	}

	var raws []RawKeyword
	for i, item := range feed.Items {
		if i >= g.limit {
			break
		}
		raws = append(raws, RawKeyword{
			Keyword: item.Title,
			Rank:    i + 1,
			Score:   approxTraffic(item),
			Metadata: map[string]any{
				"platform":  string(model.PlatformGoogleTrends),
				"region":    g.region,
				"type":      "trending",
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
	}

	return raws, nil
}

// approxTraffic extracts the ht:approx_traffic extension value, a figure
// like "50,000+". Returns nil when the feed does not carry one, the
// normalizer maps that to a zero score.
func approxTraffic(item *gofeed.Item) any {
	exts, ok := item.Extensions["ht"]
	if !ok {
		return nil
	}
	traffic, ok := exts["approx_traffic"]
	if !ok || len(traffic) == 0 {
		return nil
	}

	cleaned := strings.NewReplacer(",", "", "+", "").Replace(traffic[0].Value)
	if cleaned == "" {
		return nil
	}

	return cleaned
}
