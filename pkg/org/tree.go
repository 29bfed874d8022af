package org

import (
	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

// Tree is the organization whose chart is drawn, together with the flat
// list of all its descendant organizations.
//
// The root's own ascendant chain lives in Root.AscendantOrgs; it does not
// influence the chart, where the root always has depth 0.
type Tree struct {
	Root        Organization   `json:"root" bson:"root" yaml:"root"`
	Descendants []Organization `json:"descendants" bson:"descendants" yaml:"descendants"`
}

// Validate checks that the tree has a root to draw.
func (t *Tree) Validate() error {
	if t == nil {
		return errors.New(errors.ErrCodeNoLayout, "organization tree is not loaded")
	}
	if t.Root.UUID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "organization tree has no root uuid")
	}
	return nil
}

// Size returns the number of records in the tree, root included.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	return 1 + len(t.Descendants)
}

// Index returns a read-only child index over the tree.
// Building it is O(n); callers that look up many children should build it
// once and reuse it.
func (t *Tree) Index() *Index {
	idx := &Index{
		byUUID:   make(map[string]*Organization, t.Size()),
		children: make(map[string][]*Organization),
	}
	if t == nil {
		return idx
	}

	idx.root = &t.Root
	idx.byUUID[t.Root.UUID] = &t.Root
	for i := range t.Descendants {
		d := &t.Descendants[i]
		if d.UUID == "" {
			continue
		}
		// first occurrence wins; a descendant can never replace the root
		if _, dup := idx.byUUID[d.UUID]; dup {
			continue
		}
		idx.byUUID[d.UUID] = d
		if p := d.ParentUUID(); p != "" {
			idx.children[p] = append(idx.children[p], d)
		}
	}
	return idx
}

// Children returns the direct children of the organization with the given
// UUID, in descendant-list order. See [Index.Children].
func (t *Tree) Children(uuid string) []*Organization {
	return t.Index().Children(uuid)
}

// Depth returns the distance from the root along parent links, or -1.
// See [Index.Depth].
func (t *Tree) Depth(uuid string) int {
	return t.Index().Depth(uuid)
}

// MaxDepth returns the maximum depth of any descendant relative to the
// root. See [Index.MaxDepth].
func (t *Tree) MaxDepth() int {
	return t.Index().MaxDepth()
}

// Index answers structural questions about a [Tree].
type Index struct {
	root     *Organization
	byUUID   map[string]*Organization
	children map[string][]*Organization
}

// Root returns the root organization, or nil for an empty tree.
func (x *Index) Root() *Organization { return x.root }

// Lookup returns the record with the given UUID.
func (x *Index) Lookup(uuid string) (*Organization, bool) {
	o, ok := x.byUUID[uuid]
	return o, ok
}

// Children returns every record whose parent reference equals uuid, in
// descendant-list order. Records whose parent is not in the tree are never
// returned for any uuid reachable from the root.
func (x *Index) Children(uuid string) []*Organization {
	return x.children[uuid]
}

// Depth returns the number of parent links between the record and the
// root: 0 for the root, -1 for unknown records and orphans.
func (x *Index) Depth(uuid string) int {
	if x.root == nil {
		return -1
	}
	depth := 0
	seen := make(map[string]bool)
	for cur := uuid; cur != x.root.UUID; depth++ {
		o, ok := x.byUUID[cur]
		if !ok || seen[cur] {
			return -1
		}
		seen[cur] = true
		cur = o.ParentUUID()
	}
	return depth
}

// MaxDepth returns the maximum ascendant-chain length among the
// descendants, measured relative to the root. A descendant's depth is the
// 1-based position of the root in its AscendantOrgs chain; descendants
// without a usable chain fall back to [Index.Depth]. Descendants that
// cannot be reached from the root through parent links are ignored, even
// when their chain names the root. An empty tree has max depth 0.
func (x *Index) MaxDepth() int {
	if x.root == nil {
		return 0
	}
	best := 0
	for id, o := range x.byUUID {
		if id == x.root.UUID {
			continue
		}
		linked := x.Depth(id)
		if linked < 0 {
			continue
		}
		d := chainDepth(o.AscendantOrgs, id, x.root.UUID)
		if d < 0 {
			d = linked
		}
		best = max(best, d)
	}
	return best
}

// chainDepth returns the 1-based index of root in the ascendant chain of
// self (nearest ascendant first), or -1 if the root is not in it. Entries
// naming self are skipped; ANET's recursive queries may include the record
// itself.
func chainDepth(chain []Ref, self, root string) int {
	depth := 0
	for _, r := range chain {
		if r.UUID == self {
			continue
		}
		depth++
		if r.UUID == root {
			return depth
		}
	}
	return -1
}

// Ascendants derives the ascendant chain of a record from parent links,
// nearest ascendant first and ending with the root. It returns nil for the
// root itself, unknown records and orphans.
func (x *Index) Ascendants(uuid string) []Ref {
	d := x.Depth(uuid)
	if d <= 0 {
		return nil
	}
	chain := make([]Ref, 0, d)
	o := x.byUUID[uuid]
	for range d {
		p := o.ParentUUID()
		chain = append(chain, Ref{UUID: p})
		o = x.byUUID[p]
	}
	return chain
}
