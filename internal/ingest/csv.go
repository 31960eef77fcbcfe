package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/borisandre/mrb-cli/internal/frame"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool {
	return hasSuffixFold(filename, ".csv") || hasSuffixFold(filename, ".tsv")
}

func (csvReader) Read(path string, opt Options) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(f, path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = true
	r.Comma = delim

	rec, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return frame.New(nil, nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	// ReuseRecord recycles the slice on the next Read; the header must be copied.
	header := make([]string, len(rec))
	for i := range rec {
		header[i] = strings.TrimSpace(rec[i])
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		cp := make([]string, len(rec))
		copy(cp, rec)
		rows = append(rows, cp)
	}
	return frame.New(header, rows), nil
}

// sniffDelimiter inspects the first line and picks the separator that splits
// it into the most fields. TSV files short-circuit on extension.
func sniffDelimiter(f *os.File, path string) rune {
	if hasSuffixFold(path, ".tsv") {
		return '\t'
	}
	br := bufio.NewReader(f)
	line, _ := br.ReadString('\n')
	_, _ = f.Seek(0, io.SeekStart)
	best, bestCount := ',', strings.Count(line, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
