package domain

import "fmt"

// RawRecord is one data row of an uploaded file, keyed by column header.
// Column order is carried separately by the parser, since maps do not keep it.
type RawRecord map[string]string

// RowError is a single parse or validation failure tied to a 1-based data row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// RowErrorStrings flattens row errors into the human-readable form returned
// over the API.
func RowErrorStrings(errs []RowError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.String())
	}
	return out
}
