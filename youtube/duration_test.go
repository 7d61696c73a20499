package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytdigest/youtube"
)

func TestParseDuration(t *testing.T) {
	for _, tc := range []struct {
		duration string
		seconds  int
	}{
		{"PT7M32S", 452},
		{"PT1H2M10S", 3730},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1H30S", 3630},
		{"PT0S", 0},
		{"", 0},
	} {
		t.Run(tc.duration, func(t *testing.T) {
			seconds, err := youtube.ParseDuration(tc.duration)
			require.NoError(t, err)
			assert.Equal(t, tc.seconds, seconds)
		})
	}

	for _, tc := range []string{
		"PTxS",
		"PT1X",
		"P1D",
		"7m32s",
	} {
		t.Run(tc, func(t *testing.T) {
			_, err := youtube.ParseDuration(tc)
			assert.Error(t, err)
		})
	}
}
