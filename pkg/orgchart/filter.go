package orgchart

import (
	"strings"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

// FilterMode selects which staffed positions are shown under each node.
type FilterMode string

// Filter modes.
const (
	FilterNone               FilterMode = "NONE"
	FilterLeaders            FilterMode = "LEADERS"
	FilterLeadersAndDeputies FilterMode = "LEADERS_AND_DEPUTIES"
	FilterTopPosition        FilterMode = "TOP_POSITION"
	FilterTop2Positions      FilterMode = "TOP_2_POSITIONS"
	FilterAll                FilterMode = "ALL"
)

// DefaultFilterMode shows every staffed position.
const DefaultFilterMode = FilterAll

var filterModes = []FilterMode{
	FilterNone,
	FilterLeaders,
	FilterLeadersAndDeputies,
	FilterTopPosition,
	FilterTop2Positions,
	FilterAll,
}

// AllFilterModes returns every filter mode in cycling order.
func AllFilterModes() []FilterMode {
	out := make([]FilterMode, len(filterModes))
	copy(out, filterModes)
	return out
}

// ParseFilterMode parses a mode name. Matching ignores case and accepts
// dashes or spaces in place of underscores, so "top-2-positions" parses.
// An empty string yields [DefaultFilterMode].
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFilterMode, nil
	}
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(s))
	for _, m := range filterModes {
		if string(m) == norm {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFilterMode,
		"invalid filter mode %q (want one of %s)", s, strings.Join(filterModeNames(), ", "))
}

func filterModeNames() []string {
	names := make([]string, len(filterModes))
	for i, m := range filterModes {
		names[i] = string(m)
	}
	return names
}

// String returns the mode name.
func (m FilterMode) String() string { return string(m) }

// Valid reports whether m is a known mode.
func (m FilterMode) Valid() bool {
	for _, k := range filterModes {
		if k == m {
			return true
		}
	}
	return false
}

// Next returns the following mode in [AllFilterModes] order, wrapping
// around. Unknown modes return the first mode.
func (m FilterMode) Next() FilterMode {
	for i, k := range filterModes {
		if k == m {
			return filterModes[(i+1)%len(filterModes)]
		}
	}
	return filterModes[0]
}

// limit returns the truncation length for the mode, or -1 for no limit.
func (m FilterMode) limit() int {
	switch m {
	case FilterNone:
		return 0
	case FilterTopPosition:
		return 1
	case FilterTop2Positions:
		return 2
	default:
		return -1
	}
}
