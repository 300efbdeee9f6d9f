// Package fetcher parses uploaded CSV and XLSX exports into the in-memory
// table the pipeline consumes. Parsing stops at the boundary: a file that
// cannot be read is a structured error here, and the core never sees it.
package fetcher

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/automind/leadscope/internal/model"
)

// Options configures parsing of one export file.
type Options struct {
	SheetName string // XLSX only; empty selects the first sheet
	Delimiter rune   // CSV only; default ','
}

// ReadFile parses path by extension (.xlsx, otherwise CSV) and returns the
// table. The first row is the header; data rows may be ragged and are
// padded to the header width.
func ReadFile(path string, opts Options) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: open %s", path)
	}
	defer f.Close()

	return Read(filepath.Base(path), f, opts)
}

// Read parses a named stream. The filename decides the format, matching
// upload handling where only the client-supplied name is available.
func Read(filename string, r io.Reader, opts Options) (*model.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return ReadXLSX(r, opts)
	}
	return ReadCSV(r, opts)
}
