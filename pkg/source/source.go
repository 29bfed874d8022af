package source

import (
	"context"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
	"github.com/NCI-Agency/anet-orgchart/pkg/graph"
	"github.com/NCI-Agency/anet-orgchart/pkg/org"
)

// Source fetches an organization and its descendants.
type Source interface {
	// Name identifies the source in logs and cache keys.
	Name() string
	// Fetch returns the tree rooted at orgUUID.
	Fetch(ctx context.Context, orgUUID string) (*org.Tree, error)
}

// ValidateOrgUUID checks an organization UUID before a fetch.
func ValidateOrgUUID(orgUUID string) error {
	return errors.ValidateUUID(orgUUID)
}

// File reads trees from a file on disk.
type File struct {
	Path string
}

// NewFile returns a file source for path.
func NewFile(path string) (*File, error) {
	if err := errors.ValidateTreeFile(path); err != nil {
		return nil, err
	}
	return &File{Path: path}, nil
}

func (f *File) Name() string { return "file:" + f.Path }

// Fetch reads the tree file. An empty orgUUID accepts whatever root the
// file holds; otherwise the file's root must match.
func (f *File) Fetch(ctx context.Context, orgUUID string) (*org.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if orgUUID != "" {
		if err := ValidateOrgUUID(orgUUID); err != nil {
			return nil, err
		}
	}
	tree, err := graph.ReadTreeFile(f.Path)
	if err != nil {
		return nil, err
	}
	if orgUUID != "" && tree.Root.UUID != orgUUID {
		return nil, errors.New(errors.ErrCodeOrgNotFound, "organization %s not found in %s (root is %s)", orgUUID, f.Path, tree.Root.UUID)
	}
	return tree, nil
}

var _ Source = (*File)(nil)
