package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytdigest/model"
)

func TestParseRegion(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		lower, err := model.ParseRegion("tw")
		require.NoError(t, err)
		upper, err := model.ParseRegion("TW")
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
		assert.Equal(t, model.RegionTaiwan, lower)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		region, err := model.ParseRegion(" jp ")
		require.NoError(t, err)
		assert.Equal(t, model.RegionJapan, region)
	})

	t.Run("unknown code fails", func(t *testing.T) {
		_, err := model.ParseRegion("ZZ")
		assert.ErrorIs(t, err, model.ErrInvalidRegion)
	})

	t.Run("empty code fails", func(t *testing.T) {
		_, err := model.ParseRegion("")
		assert.ErrorIs(t, err, model.ErrInvalidRegion)
	})
}

func TestRegionPlatformCodes(t *testing.T) {
	assert.Equal(t, "TW", model.RegionTaiwan.GoogleTrendsCode())
	assert.Equal(t, "WORLDWIDE", model.RegionGlobal.GoogleTrendsCode())

	assert.Equal(t, "KR", model.RegionKorea.YouTubeCode())
	assert.Equal(t, "", model.RegionGlobal.YouTubeCode(), "global means no region filter")

	assert.Equal(t, 23424856, model.RegionJapan.TwitterWOEID())
	assert.Equal(t, 1, model.RegionGlobal.TwitterWOEID())
}
