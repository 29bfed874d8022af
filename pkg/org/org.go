// Package org defines the organization records the chart is drawn from.
//
// The types mirror the shape ANET's GraphQL API returns for an organization
// query: an organization with its parent reference, its ascendant chain,
// its staffed positions and (for the queried root) the flat list of all
// descendant organizations. JSON and BSON tags use the GraphQL field names
// so the same struct decodes API responses, tree files and Mongo documents.
//
// # Tree Structure
//
// Children are not stored. They are derived by scanning the descendant list
// for records whose parent reference points at a given organization, see
// [Tree.Children]. A descendant whose parent is not part of the tree is an
// orphan: it never matches a parent lookup and is silently left out of the
// chart.
//
//	tree := &org.Tree{Root: root, Descendants: descendants}
//	for _, child := range tree.Children(root.UUID) {
//	    fmt.Println(child.ShortName, tree.Depth(child.UUID))
//	}
package org

// Ref is a reference to another organization by identity.
type Ref struct {
	UUID string `json:"uuid" bson:"uuid" yaml:"uuid"`
}

// Symbology carries the APP-6 fields used by the symbol renderer.
// They are passed through untouched.
type Symbology struct {
	Context          string `json:"app6context,omitempty" bson:"app6context,omitempty" yaml:"app6context,omitempty"`
	StandardIdentity string `json:"app6standardIdentity,omitempty" bson:"app6standardIdentity,omitempty" yaml:"app6standardIdentity,omitempty"`
	SymbolSet        string `json:"app6symbolSet,omitempty" bson:"app6symbolSet,omitempty" yaml:"app6symbolSet,omitempty"`
}

// Organization is a single organization record.
type Organization struct {
	UUID               string     `json:"uuid" bson:"uuid" yaml:"uuid"`
	ShortName          string     `json:"shortName" bson:"shortName" yaml:"shortName"`
	LongName           string     `json:"longName,omitempty" bson:"longName,omitempty" yaml:"longName,omitempty"`
	IdentificationCode string     `json:"identificationCode,omitempty" bson:"identificationCode,omitempty" yaml:"identificationCode,omitempty"`
	ParentOrg          *Ref       `json:"parentOrg" bson:"parentOrg" yaml:"parentOrg"`
	AscendantOrgs      []Ref      `json:"ascendantOrgs,omitempty" bson:"ascendantOrgs,omitempty" yaml:"ascendantOrgs,omitempty"`
	Positions          []Position `json:"positions,omitempty" bson:"positions,omitempty" yaml:"positions,omitempty"`

	Symbology `bson:",inline" yaml:",inline"`
}

// ParentUUID returns the parent organization's UUID, or "" for top-level
// organizations.
func (o *Organization) ParentUUID() string {
	if o.ParentOrg == nil {
		return ""
	}
	return o.ParentOrg.UUID
}

// DisplayName returns the short name if set, otherwise the long name,
// otherwise the UUID.
func (o *Organization) DisplayName() string {
	switch {
	case o.ShortName != "":
		return o.ShortName
	case o.LongName != "":
		return o.LongName
	default:
		return o.UUID
	}
}

// Position is an organizational position together with the person
// currently assigned to it, if any.
type Position struct {
	UUID   string  `json:"uuid" bson:"uuid" yaml:"uuid"`
	Name   string  `json:"name" bson:"name" yaml:"name"`
	Type   string  `json:"type,omitempty" bson:"type,omitempty" yaml:"type,omitempty"`
	Role   Role    `json:"role" bson:"role" yaml:"role"`
	Person *Person `json:"person" bson:"person" yaml:"person"`
}

// Person is someone assigned to a position.
type Person struct {
	UUID       string `json:"uuid" bson:"uuid" yaml:"uuid"`
	Name       string `json:"name" bson:"name" yaml:"name"`
	Rank       string `json:"rank,omitempty" bson:"rank,omitempty" yaml:"rank,omitempty"`
	AvatarUUID string `json:"avatarUuid,omitempty" bson:"avatarUuid,omitempty" yaml:"avatarUuid,omitempty"`
}
