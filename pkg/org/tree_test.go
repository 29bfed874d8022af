package org

import (
	"testing"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

func child(uuid, parent string, ascendants ...string) Organization {
	o := Organization{UUID: uuid, ShortName: uuid, ParentOrg: &Ref{UUID: parent}}
	for _, a := range ascendants {
		o.AscendantOrgs = append(o.AscendantOrgs, Ref{UUID: a})
	}
	return o
}

// A{B{D},C}
func sampleTree() *Tree {
	return &Tree{
		Root: Organization{UUID: "A", ShortName: "A"},
		Descendants: []Organization{
			child("B", "A", "A"),
			child("C", "A", "A"),
			child("D", "B", "B", "A"),
		},
	}
}

func ids(orgs []*Organization) []string {
	out := make([]string, len(orgs))
	for i, o := range orgs {
		out[i] = o.UUID
	}
	return out
}

func TestTreeChildren(t *testing.T) {
	tree := sampleTree()
	tests := []struct {
		uuid string
		want []string
	}{
		{"A", []string{"B", "C"}},
		{"B", []string{"D"}},
		{"C", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.uuid, func(t *testing.T) {
			got := ids(tree.Children(tt.uuid))
			if len(got) != len(tt.want) {
				t.Fatalf("Children(%q) = %v, want %v", tt.uuid, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Children(%q)[%d] = %q, want %q", tt.uuid, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTreeChildrenDuplicatesAndRoot(t *testing.T) {
	tree := &Tree{
		Root: Organization{UUID: "A"},
		Descendants: []Organization{
			child("B", "A"),
			{UUID: "B", ShortName: "second B", ParentOrg: &Ref{UUID: "A"}},
			child("A", "B"),
			{UUID: "", ParentOrg: &Ref{UUID: "A"}},
		},
	}

	kids := tree.Children("A")
	if len(kids) != 1 {
		t.Fatalf("Children(A) = %v, want [B]", ids(kids))
	}
	if kids[0].ShortName != "B" {
		t.Errorf("kept %q, want first occurrence", kids[0].ShortName)
	}
	if got := tree.Children("B"); len(got) != 0 {
		t.Errorf("Children(B) = %v, want none (root cannot be re-parented)", ids(got))
	}
}

func TestTreeDepth(t *testing.T) {
	tree := &Tree{
		Root: Organization{UUID: "A"},
		Descendants: []Organization{
			child("B", "A"),
			child("D", "B"),
			child("O", "nowhere"),
			child("X", "Y"),
			child("Y", "X"),
		},
	}
	tests := []struct {
		uuid string
		want int
	}{
		{"A", 0},
		{"B", 1},
		{"D", 2},
		{"O", -1},
		{"X", -1},
		{"unknown", -1},
	}
	for _, tt := range tests {
		if got := tree.Depth(tt.uuid); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.uuid, got, tt.want)
		}
	}
}

func TestTreeMaxDepth(t *testing.T) {
	tests := []struct {
		name string
		tree *Tree
		want int
	}{
		{"nil", nil, 0},
		{"root only", &Tree{Root: Organization{UUID: "A"}}, 0},
		{"from ascendant chains", sampleTree(), 2},
		{
			name: "chain relative to root",
			tree: &Tree{
				Root: Organization{UUID: "A", AscendantOrgs: []Ref{{UUID: "TOP"}}},
				Descendants: []Organization{
					child("B", "A", "A", "TOP"),
				},
			},
			want: 1,
		},
		{
			name: "falls back to parent links",
			tree: &Tree{
				Root: Organization{UUID: "A"},
				Descendants: []Organization{
					child("B", "A"),
					child("C", "B"),
					child("D", "C"),
				},
			},
			want: 3,
		},
		{
			name: "ignores orphans",
			tree: &Tree{
				Root: Organization{UUID: "A"},
				Descendants: []Organization{
					child("B", "A"),
					child("O", "elsewhere"),
				},
			},
			want: 1,
		},
		{
			name: "chain listing the record itself",
			tree: &Tree{
				Root: Organization{UUID: "A"},
				Descendants: []Organization{
					child("B", "A", "B", "A"),
					child("C", "B", "C", "B", "A"),
				},
			},
			want: 2,
		},
		{
			name: "ignores orphans whose chain names the root",
			tree: &Tree{
				Root: Organization{UUID: "A"},
				Descendants: []Organization{
					child("B", "A", "A"),
					child("O", "elsewhere", "elsewhere", "X", "Y", "A"),
				},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.MaxDepth(); got != tt.want {
				t.Errorf("MaxDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTreeValidate(t *testing.T) {
	var nilTree *Tree
	if err := nilTree.Validate(); !errors.Is(err, errors.ErrCodeNoLayout) {
		t.Errorf("nil tree: got %v, want NO_LAYOUT", err)
	}
	if err := (&Tree{}).Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty root: got %v, want INVALID_INPUT", err)
	}
	if err := sampleTree().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestIndexLookup(t *testing.T) {
	idx := sampleTree().Index()
	if idx.Root().UUID != "A" {
		t.Errorf("Root() = %q, want A", idx.Root().UUID)
	}
	if o, ok := idx.Lookup("D"); !ok || o.ParentUUID() != "B" {
		t.Errorf("Lookup(D) = %v, %v", o, ok)
	}
	if _, ok := idx.Lookup("Z"); ok {
		t.Error("Lookup(Z) should miss")
	}
}

func TestIndexAscendants(t *testing.T) {
	tree := sampleTree()
	tree.Descendants = append(tree.Descendants, child("X", "missing"))
	idx := tree.Index()

	tests := []struct {
		uuid string
		want []string
	}{
		{"A", nil},
		{"B", []string{"A"}},
		{"D", []string{"B", "A"}},
		{"X", nil},
		{"Z", nil},
	}
	for _, tt := range tests {
		var got []string
		for _, r := range idx.Ascendants(tt.uuid) {
			got = append(got, r.UUID)
		}
		if len(got) != len(tt.want) {
			t.Errorf("Ascendants(%s) = %v, want %v", tt.uuid, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Ascendants(%s) = %v, want %v", tt.uuid, got, tt.want)
				break
			}
		}
	}
}
