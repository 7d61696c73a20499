package youtube

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts an ISO 8601 duration like "PT1H2M10S" to seconds.
// Any subset of the H, M and S tokens may be present, a missing token
// contributes zero.
func ParseDuration(duration string) (int, error) {
	rest := strings.TrimPrefix(duration, "PT")

	seconds := 0
	for _, unit := range []struct {
		token string
		mult  int
	}{
		{"H", 3600},
		{"M", 60},
		{"S", 1},
	} {
		idx := strings.Index(rest, unit.token)
		if idx < 0 {
			continue
		}
		n, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", duration, err)
		}
		seconds += n * unit.mult
		rest = rest[idx+1:]
	}
	if rest != "" {
		return 0, fmt.Errorf("invalid duration %q: unparsed %q", duration, rest)
	}

	return seconds, nil
}
