package fetcher

import (
	"fmt"
	"strconv"
	"strings"

	"ytdigest/model"
)

// Normalize turns one raw fetcher record into a Keyword ready for
// insertion, or returns an error meaning the record should be dropped. The
// caller logs and skips, a malformed record must never take down the batch.
func Normalize(raw RawKeyword, platform model.Platform, region model.Region) (*model.Keyword, error) {
	text, err := coerceString(raw.Keyword)
	if err != nil {
		return nil, fmt.Errorf("keyword: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("keyword: empty after trim")
	}

	rank, err := coerceInt(raw.Rank)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	score := 0
	if raw.Score != nil {
		if score, err = coerceInt(raw.Score); err != nil {
			return nil, fmt.Errorf("score: %w", err)
		}
	}

	metadata := raw.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	// sources sometimes stuff a region handle into the metadata, persist
	// the canonical code instead
	if r, ok := metadata["region"].(model.Region); ok {
		metadata["region"] = r.String()
	}

	return &model.Keyword{
		Keyword:  text,
		Rank:     rank,
		Score:    score,
		Platform: platform,
		Region:   region,
		Metadata: metadata,
	}, nil
}

func coerceString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}

	return strings.TrimSpace(s), nil
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("expected integer, got fractional %v", n)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
