package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
	"github.com/NCI-Agency/anet-orgchart/pkg/orgchart"
)

// Layout holds the chart settings a deployment tunes once: box geometry,
// the rank scale used to order people, and the collation locale.
//
//	locale = "fr"
//	ranks  = ["CIV", "OR-1", "OF-1", "OF-2"]
//
//	[geometry]
//	node_width   = 240
//	depth_indent = 30
type Layout struct {
	Locale   string            `toml:"locale"`
	Ranks    org.RankScale     `toml:"ranks"`
	Geometry orgchart.Geometry `toml:"geometry"`
}

// DefaultLayout returns the built-in layout settings.
func DefaultLayout() Layout {
	return Layout{
		Ranks:    org.DefaultRankScale(),
		Geometry: orgchart.DefaultGeometry(),
	}
}

// LoadLayoutFile reads a TOML layout file over [DefaultLayout]. Keys the
// file omits keep their defaults; unknown keys are an error. An empty path
// returns the defaults.
func LoadLayoutFile(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}
	if _, err := os.Stat(path); err != nil {
		return layout, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout config %s", path)
	}

	md, err := toml.DecodeFile(path, &layout)
	if err != nil {
		return layout, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return layout, errors.New(errors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if len(layout.Ranks) == 0 {
		layout.Ranks = org.DefaultRankScale()
	}
	if err := layout.Geometry.Validate(); err != nil {
		return layout, err
	}
	return layout, nil
}
