package errors

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateUUID validates an organization identifier.
// ANET identifiers are RFC 4122 UUIDs in their canonical 36-character form;
// braced, URN and hex-only spellings accepted by uuid.Parse are rejected so
// that cache keys and API paths stay canonical.
func ValidateUUID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidUUID, "organization uuid cannot be empty")
	}
	if len(id) != 36 {
		return New(ErrCodeInvalidUUID, "invalid organization uuid: %q", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidUUID, err, "invalid organization uuid: %q", id)
	}
	return nil
}

// treeFileExts lists the tree file extensions understood by pkg/graph.
var treeFileExts = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// ValidateTreeFile validates a tree file path supplied on the command line
// or through configuration.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json, .yaml or .yml
func ValidateTreeFile(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "tree file path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tree file path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !treeFileExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported tree file extension %q (must be .json, .yaml or .yml)", ext)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
