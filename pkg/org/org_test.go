package org

import (
	"encoding/json"
	"testing"
)

func TestRoleRank(t *testing.T) {
	tests := []struct {
		role Role
		want int
	}{
		{RoleLeader, 2},
		{RoleDeputy, 1},
		{RoleMember, 0},
		{Role("ADVISOR"), -1},
		{Role(""), -1},
	}
	for _, tt := range tests {
		if got := tt.role.Rank(); got != tt.want {
			t.Errorf("%q.Rank() = %d, want %d", tt.role, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" leader "); err != nil || r != RoleLeader {
		t.Errorf("ParseRole(leader) = %q, %v", r, err)
	}
	if _, err := ParseRole("boss"); err == nil {
		t.Error("ParseRole(boss) should fail")
	}
}

func TestRankScaleWeight(t *testing.T) {
	scale := DefaultRankScale()
	tests := []struct {
		rank string
		want int
	}{
		{"CIV", 0},
		{"ctr", 1},
		{"OR-1", 2},
		{"OF-10", len(scale) - 1},
		{"  of-1 ", len(scale) - 10},
		{"", -1},
		{"GENERAL", -1},
	}
	for _, tt := range tests {
		if got := scale.Weight(tt.rank); got != tt.want {
			t.Errorf("Weight(%q) = %d, want %d", tt.rank, got, tt.want)
		}
	}
	if scale.Weight("OF-5") <= scale.Weight("OR-9") {
		t.Error("officers should outrank other ranks")
	}
}

func TestOrganizationJSON(t *testing.T) {
	data := []byte(`{
		"uuid": "b1",
		"shortName": "EF 1",
		"parentOrg": {"uuid": "a0"},
		"ascendantOrgs": [{"uuid": "a0"}],
		"app6context": "0",
		"app6standardIdentity": "3",
		"positions": [
			{"uuid": "p1", "name": "Chief", "role": "LEADER", "person": {"uuid": "x", "name": "ROGWELL, Roger", "rank": "OF-6"}},
			{"uuid": "p2", "name": "Clerk", "role": "MEMBER", "person": null}
		]
	}`)

	var o Organization
	if err := json.Unmarshal(data, &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if o.ParentUUID() != "a0" {
		t.Errorf("ParentUUID() = %q, want a0", o.ParentUUID())
	}
	if o.StandardIdentity != "3" {
		t.Errorf("StandardIdentity = %q, want 3", o.StandardIdentity)
	}
	if len(o.Positions) != 2 || o.Positions[1].Person != nil {
		t.Fatalf("Positions = %+v", o.Positions)
	}
	if o.Positions[0].Role != RoleLeader || o.Positions[0].Person.Rank != "OF-6" {
		t.Errorf("Positions[0] = %+v", o.Positions[0])
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		org  Organization
		want string
	}{
		{Organization{UUID: "u", ShortName: "S", LongName: "L"}, "S"},
		{Organization{UUID: "u", LongName: "L"}, "L"},
		{Organization{UUID: "u"}, "u"},
	}
	for _, tt := range tests {
		if got := tt.org.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
	var top Organization
	if top.ParentUUID() != "" {
		t.Error("top-level org should have no parent")
	}
}
