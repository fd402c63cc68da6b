package domain

// ImportReport is the aggregate outcome of one import call. It is built
// incrementally, one row at a time, and returned once; nothing here is
// persisted by the importer itself.
type ImportReport struct {
	ID            string     `json:"id"`
	Type          ImportType `json:"type"`
	TotalRows     int        `json:"total_rows"`
	ImportedCount int        `json:"imported_count"`
	Errors        []string   `json:"errors"`
	Results       []Record   `json:"results"`
}

func (r *ImportReport) HasErrors() bool {
	return len(r.Errors) > 0
}
