package ingest

import (
	"errors"
	"strings"

	"github.com/borisandre/mrb-cli/internal/frame"
)

// Options controls how source files are read.
type Options struct {
	// Delimiter for CSV. If 0, sniffs among ',', ';', '\t'.
	Delimiter rune
	// SheetName selects an XLSX sheet by name; takes precedence over SheetIndex.
	SheetName string
	// SheetIndex selects an XLSX sheet 1-based. <= 0 means the first sheet.
	SheetIndex int
	// MaxRows limits data rows read per file; 0 means unlimited.
	MaxRows int
}

// Reader reads one source file format into a raw table.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (*frame.Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates the file extension is not a recognized export format.
var ErrUnsupported = errors.New("unsupported file format (want .csv, .tsv or .xlsx)")

// ReadFile selects a reader by filename and returns the raw table.
func ReadFile(path string, opt Options) (*frame.Table, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(path, opt)
		}
	}
	return nil, ErrUnsupported
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}
