package model

import (
	"errors"
	"fmt"
	"strings"
)

// Region is a canonical region code. Canonical form is uppercase, parsing is
// case-insensitive. Unknown codes fail fast instead of defaulting, only the
// explicit Global entry maps to platform-specific worldwide sentinels.
type Region string

const (
	RegionTaiwan    Region = "TW"
	RegionHongKong  Region = "HK"
	RegionJapan     Region = "JP"
	RegionKorea     Region = "KR"
	RegionUSA       Region = "US"
	RegionSingapore Region = "SG"
	RegionGlobal    Region = "GLOBAL"
)

var ErrInvalidRegion = errors.New("invalid region code")

var regions = map[Region]struct{}{
	RegionTaiwan:    {},
	RegionHongKong:  {},
	RegionJapan:     {},
	RegionKorea:     {},
	RegionUSA:       {},
	RegionSingapore: {},
	RegionGlobal:    {},
}

// ParseRegion resolves a region code to its canonical form.
func ParseRegion(code string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := regions[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegion, code)
	}

	return r, nil
}

func (r Region) Valid() bool {
	_, ok := regions[r]
	return ok
}

func (r Region) String() string {
	return string(r)
}

// GoogleTrendsCode returns the Google Trends geo code for the region.
func (r Region) GoogleTrendsCode() string {
	if r == RegionGlobal {
		return "WORLDWIDE"
	}

	return string(r)
}

// YouTubeCode returns the YouTube Data API region code. An empty string
// means no region filter, which is how the API addresses worldwide.
func (r Region) YouTubeCode() string {
	if r == RegionGlobal {
		return ""
	}

	return string(r)
}

var twitterWOEID = map[Region]int{
	RegionTaiwan:    23424971,
	RegionHongKong:  24865698,
	RegionJapan:     23424856,
	RegionKorea:     23424868,
	RegionUSA:       23424977,
	RegionSingapore: 23424948,
	RegionGlobal:    1,
}

// TwitterWOEID returns the Where On Earth ID used by the trend endpoints.
func (r Region) TwitterWOEID() int {
	if woeid, ok := twitterWOEID[r]; ok {
		return woeid
	}

	return twitterWOEID[RegionGlobal]
}
