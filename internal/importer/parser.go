package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opsboard/bulk_importer/internal/domain"
)

// ParseResult carries everything one decode pass produced: the header row,
// the raw records in file order, and per-row parse failures. Parse failures
// are kept apart from validation errors so the caller can tell a broken file
// from bad data.
type ParseResult struct {
	Headers   []string
	Records   []Row
	RowErrors []domain.RowError
}

// Row pairs a decoded record with its 1-based position among the data rows.
// Positions are assigned before malformed rows are skipped, so they always
// match what the uploader sees in the file.
type Row struct {
	Number int
	Record domain.RawRecord
}

// TotalRows counts every data row seen, including rows that failed to parse.
func (r *ParseResult) TotalRows() int {
	return len(r.Records) + len(r.RowErrors)
}

func ParseFile(filename string) (_ *ParseResult, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return Parse(f)
}

// Parse decodes header-first comma-separated text. A single corrupt row is
// recorded and skipped; only a missing header fails the whole parse.
func Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	// column counts are checked per row below so one short row does not
	// abort the remaining file
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	result := &ParseResult{Headers: headers}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			result.RowErrors = append(result.RowErrors, domain.RowError{
				Row:     row,
				Message: fmt.Sprintf("unparseable line: %v", err),
			})
			continue
		}

		if len(fields) != len(headers) {
			result.RowErrors = append(result.RowErrors, domain.RowError{
				Row:     row,
				Message: fmt.Sprintf("expected %d columns, got %d", len(headers), len(fields)),
			})
			continue
		}

		record := make(domain.RawRecord, len(headers))
		for i, h := range headers {
			record[h] = fields[i]
		}

		result.Records = append(result.Records, Row{Number: row, Record: record})
	}

	return result, nil
}
