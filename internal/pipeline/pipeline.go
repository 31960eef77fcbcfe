package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/borisandre/mrb-cli/internal/frame"
	"github.com/borisandre/mrb-cli/internal/ingest"
)

// ErrNoValidFiles is returned when a load action yields no readable file at
// all. The caller must leave any previous canonical table unset and refuse to
// render reports.
var ErrNoValidFiles = errors.New("no valid files were loaded")

// Session is the result of one load action: the canonical batch table, the
// dosing-unit registry it was built with, and the warnings collected along
// the way. It is read-only to report code and replaced wholesale by the next
// load.
type Session struct {
	ID       string
	Files    []string
	Records  []Record
	Registry Registry
	Warnings []string
}

// Load ingests the given files and runs the full pipeline: normalize each
// file, concatenate, discover active units, map per-unit columns, build
// canonical records, apply corrections and aggregate.
//
// A file that fails to read is reported in Warnings and skipped; the load
// succeeds with the remaining files. Only a load with zero readable files
// fails, with ErrNoValidFiles.
func Load(paths []string, opt ingest.Options) (*Session, error) {
	s := &Session{ID: uuid.NewString()}
	var combined *frame.Table
	for _, p := range paths {
		t, err := ingest.ReadFile(p, opt)
		if err != nil {
			s.Warnings = append(s.Warnings, fmt.Sprintf("skipped %s: %v", filepath.Base(p), err))
			continue
		}
		NormalizeTable(t)
		if combined == nil {
			combined = t
		} else {
			combined.Append(t)
		}
		s.Files = append(s.Files, p)
	}
	if combined == nil {
		return nil, ErrNoValidFiles
	}

	units := DiscoverUnits(combined)
	if len(units) == 0 {
		s.Warnings = append(s.Warnings, "no active dosing units found in the loaded dataset")
	}
	s.Registry = MapUnitColumns(combined, units)
	recs := BuildRecords(combined, s.Registry)
	ApplyCorrections(recs, s.Registry)
	s.Records = Aggregate(recs)
	return s, nil
}
