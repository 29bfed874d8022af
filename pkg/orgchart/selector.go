package orgchart

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

// DefaultLocale is the collation locale used for name ordering.
const DefaultLocale = "en"

// Selector picks the people to show under a node.
//
// A Selector owns a collator, which is not safe for concurrent use. Build
// one per layout run.
type Selector struct {
	mode     FilterMode
	ranks    org.RankScale
	collator *collate.Collator
}

// NewSelector returns a selector for the given mode. Person ranks are
// weighted by ranks (nil uses [org.DefaultRankScale]); names are compared
// using the collation rules of locale ("" uses [DefaultLocale]). Unknown
// modes behave like [FilterAll].
func NewSelector(mode FilterMode, ranks org.RankScale, locale string) *Selector {
	if !mode.Valid() {
		mode = DefaultFilterMode
	}
	if ranks == nil {
		ranks = org.DefaultRankScale()
	}
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Selector{
		mode:     mode,
		ranks:    ranks,
		collator: collate.New(tag),
	}
}

// Mode returns the selector's filter mode.
func (s *Selector) Mode() FilterMode { return s.mode }

// Select returns the people of the staffed positions that pass the mode's
// role filter, ordered by role (highest first), person rank (highest
// first), person name, position name and position UUID, then truncated for
// the TOP_* modes. Positions without a person are always dropped. The input
// slice is not modified.
func (s *Selector) Select(positions []org.Position) []org.Person {
	if s.mode == FilterNone {
		return []org.Person{}
	}

	kept := make([]org.Position, 0, len(positions))
	for _, p := range positions {
		if p.Person != nil && s.includes(p.Role) {
			kept = append(kept, p)
		}
	}

	slices.SortStableFunc(kept, s.compare)

	if n := s.mode.limit(); n >= 0 && len(kept) > n {
		kept = kept[:n]
	}

	people := make([]org.Person, len(kept))
	for i, p := range kept {
		people[i] = *p.Person
	}
	return people
}

func (s *Selector) includes(role org.Role) bool {
	switch s.mode {
	case FilterLeaders:
		return role == org.RoleLeader
	case FilterLeadersAndDeputies:
		return role == org.RoleLeader || role == org.RoleDeputy
	default:
		return true
	}
}

func (s *Selector) compare(a, b org.Position) int {
	if c := cmp.Compare(b.Role.Rank(), a.Role.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(s.ranks.Weight(b.Person.Rank), s.ranks.Weight(a.Person.Rank)); c != 0 {
		return c
	}
	if c := s.collator.CompareString(a.Person.Name, b.Person.Name); c != 0 {
		return c
	}
	if c := s.collator.CompareString(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.UUID, b.UUID)
}
