package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ytdigest/model"
)

const twitterTrendsSite = "https://trends24.in/"

var twitterTrendsSlug = map[model.Region]string{
	model.RegionTaiwan:    "taiwan/",
	model.RegionHongKong:  "hong-kong/",
	model.RegionJapan:     "japan/",
	model.RegionKorea:     "korea/",
	model.RegionUSA:       "united-states/",
	model.RegionSingapore: "singapore/",
	model.RegionGlobal:    "",
}

// TwitterTrends scrapes the public trends aggregator for a region. The
// authenticated trend API needs credentials most deployments do not have,
// the scrape needs none.
type TwitterTrends struct {
	region model.Region
	client *http.Client
	limit  int
}

func NewTwitterTrends(region model.Region, limit int) *TwitterTrends {
	return &TwitterTrends{
		region: region,
		client: &http.Client{Timeout: 30 * time.Second},
		limit:  limit,
	}
}

func (t *TwitterTrends) Platform() model.Platform { return model.PlatformTwitter }

func (t *TwitterTrends) Region() model.Region { return t.region }

func (t *TwitterTrends) Fetch(ctx context.Context) ([]RawKeyword, error) {
	url := twitterTrendsSite + twitterTrendsSlug[t.region]
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch twitter trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse twitter trends page: %w", err)
	}

	var raws []RawKeyword
	// first trend card holds the most recent snapshot
	doc.Find(".trend-card").First().Find(".trend-card__list li a.trend-link").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= t.limit {
			return false
		}
		raws = append(raws, RawKeyword{
			Keyword: sel.Text(),
			Rank:    i + 1,
			Score:   nil,
			Metadata: map[string]any{
				"platform": string(model.PlatformTwitter),
				"region":   t.region,
				"woeid":    t.region.TwitterWOEID(),
			},
		})
		return true
	})

	return raws, nil
}
