package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opsboard/bulk_importer/internal/domain"
)

// headerAliases maps common human-readable headers from exported
// spreadsheets to the canonical field names the importer expects. Used by the
// bulk conversion utility, not by the live upload pipeline.
var headerAliases = map[string]string{
	"owner":         "owner_name",
	"team":          "department",
	"e-mail":        "email",
	"email address": "email",
	"first name":    "first_name",
	"last name":     "last_name",
	"full name":     "full_name",
	"due":           "due_date",
	"due date":      "due_date",
	"completion":    "completion_percentage",
	"complete %":    "completion_percentage",
	"measurable":    "name",
	"process name":  "name",
	"q":             "quarter",
}

// CanonicalHeader lower-cases, trims and de-aliases one header cell.
func CanonicalHeader(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	if canonical, ok := headerAliases[key]; ok {
		return canonical
	}

	return strings.ReplaceAll(key, " ", "_")
}

// ConvertHeaders copies CSV from in to out with the header row rewritten to
// canonical field names. Data rows pass through untouched.
func ConvertHeaders(in io.Reader, out io.Writer) error {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.ErrEmptyFile
	}
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = CanonicalHeader(h)
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}

		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}
