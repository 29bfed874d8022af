package org

import (
	"fmt"
	"strings"
)

// Role is the role a position plays inside its organization.
type Role string

// Position roles, lowest authority first.
const (
	RoleMember Role = "MEMBER"
	RoleDeputy Role = "DEPUTY"
	RoleLeader Role = "LEADER"
)

// Rank returns the authority rank of the role: LEADER 2, DEPUTY 1,
// MEMBER 0. Unknown roles rank -1 so they sort after every known role.
func (r Role) Rank() int {
	switch r {
	case RoleLeader:
		return 2
	case RoleDeputy:
		return 1
	case RoleMember:
		return 0
	default:
		return -1
	}
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if r.Rank() < 0 {
		return "", fmt.Errorf("unknown position role %q", s)
	}
	return r, nil
}

// RankScale orders person rank tags from lowest to highest.
// Ranks are configured per ANET deployment, so the scale is data rather
// than an enumeration.
type RankScale []string

// Weight returns the position of rank in the scale, or -1 if rank is not
// part of it. Matching ignores case and surrounding whitespace.
func (s RankScale) Weight(rank string) int {
	rank = strings.TrimSpace(rank)
	if rank == "" {
		return -1
	}
	for i, r := range s {
		if strings.EqualFold(r, rank) {
			return i
		}
	}
	return -1
}

// DefaultRankScale returns the rank scale of a default ANET dictionary:
// civilians and contractors, then NATO OR, WO and OF codes.
func DefaultRankScale() RankScale {
	scale := RankScale{"CIV", "CTR"}
	for i := 1; i <= 9; i++ {
		scale = append(scale, fmt.Sprintf("OR-%d", i))
	}
	for i := 1; i <= 5; i++ {
		scale = append(scale, fmt.Sprintf("WO-%d", i))
	}
	for i := 1; i <= 10; i++ {
		scale = append(scale, fmt.Sprintf("OF-%d", i))
	}
	return scale
}
