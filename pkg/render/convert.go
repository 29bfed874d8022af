package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/NCI-Agency/anet-orgchart/pkg/errors"
)

const rsvgConvert = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert. The page takes
// the SVG's own width and height.
func ToPDF(svg []byte) ([]byte, error) {
	if len(svg) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty SVG document")
	}
	if _, err := exec.LookPath(rsvgConvert); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.Command(rsvgConvert, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rsvgConvert, err, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
