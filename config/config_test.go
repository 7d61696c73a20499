package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytdigest/config"
	"ytdigest/model"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
regions:
  - tw
  - JP
platforms:
  - google_trends
  - youtube_trending
search:
  max_results: 5
mongo:
  database: ytdigest_test
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"tw", "JP"}, cfg.Regions)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, "ytdigest_test", cfg.Mongo.Database)

	// unset keys keep their defaults
	assert.Equal(t, 7, cfg.Search.WindowDays)
	assert.Equal(t, "en", cfg.Article.Language)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)

	regions, err := cfg.ParsedRegions()
	require.NoError(t, err)
	assert.Equal(t, []model.Region{model.RegionTaiwan, model.RegionJapan}, regions)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParsedRegionsUnknownCode(t *testing.T) {
	cfg := config.Default()
	cfg.Regions = []string{"TW", "ZZ"}

	_, err := cfg.ParsedRegions()
	assert.ErrorIs(t, err, model.ErrInvalidRegion)
}

func TestGetParam(t *testing.T) {
	t.Setenv("YTDIGEST_TEST_PARAM", "from-env")
	assert.Equal(t, "from-env", config.GetParam("YTDIGEST_TEST_PARAM", "fallback"))
	assert.Equal(t, "fallback", config.GetParam("YTDIGEST_TEST_PARAM_UNSET", "fallback"))
}
