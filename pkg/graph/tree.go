package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

// =============================================================================
// Tree Documents
// =============================================================================

// OrgWithDescendants is an organization as returned by the ANET GraphQL
// API when its descendants are requested.
type OrgWithDescendants struct {
	org.Organization `yaml:",inline"`

	DescendantOrgs []org.Organization `json:"descendantOrgs" yaml:"descendantOrgs"`
}

// Tree converts the API shape into a tree.
func (o *OrgWithDescendants) Tree() *org.Tree {
	return &org.Tree{Root: o.Organization, Descendants: o.DescendantOrgs}
}

// treeDocument accepts both the canonical and the API file shapes.
type treeDocument struct {
	Root         *org.Organization   `json:"root,omitempty" yaml:"root,omitempty"`
	Descendants  []org.Organization  `json:"descendants,omitempty" yaml:"descendants,omitempty"`
	Organization *OrgWithDescendants `json:"organization,omitempty" yaml:"organization,omitempty"`
	Data         *struct {
		Organization *OrgWithDescendants `json:"organization" yaml:"organization"`
	} `json:"data,omitempty" yaml:"data,omitempty"`
}

func (d *treeDocument) tree() (*org.Tree, error) {
	var t *org.Tree
	switch {
	case d.Root != nil:
		t = &org.Tree{Root: *d.Root, Descendants: d.Descendants}
	case d.Organization != nil:
		t = d.Organization.Tree()
	case d.Data != nil && d.Data.Organization != nil:
		t = d.Data.Organization.Tree()
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "tree document has no root organization")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// =============================================================================
// Tree Serialization API
// =============================================================================

// FormatFor returns the tree file format implied by the path's extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported tree file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ReadTreeFile reads a tree from a JSON or YAML file.
func ReadTreeFile(path string) (*org.Tree, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree file %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTree(f, format)
}

// ReadTree decodes a tree in the given format.
func ReadTree(r io.Reader, format string) (*org.Tree, error) {
	var doc treeDocument
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json tree")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml tree")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q", format)
	}
	return doc.tree()
}

// UnmarshalTree decodes JSON bytes into a tree.
func UnmarshalTree(data []byte) (*org.Tree, error) {
	return ReadTree(bytes.NewReader(data), FormatJSON)
}

// MarshalTree encodes a tree as pretty-printed JSON in the canonical shape.
func MarshalTree(t *org.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteTree(t, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTree encodes a tree in the given format.
func WriteTree(t *org.Tree, w io.Writer, format string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	doc := treeDocument{Root: &t.Root, Descendants: t.Descendants}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q", format)
	}
	return nil
}

// WriteTreeFile writes a tree to a file, choosing the format from the
// extension. The file is created with 0644 permissions.
func WriteTreeFile(t *org.Tree, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTree(t, f, format)
}
