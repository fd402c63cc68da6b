package report_generator

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/opsboard/bulk_importer/internal/domain"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// GenerateSummary writes a one-page PDF recap of an import run: counts first,
// then every recorded row error.
func (g *Generator) GenerateSummary(outputPath string, report *domain.ImportReport) error {
	cfg := config.NewBuilder().
		WithPageNumber().
		Build()

	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, "Import Summary", props.Text{
		Size:  14,
		Style: fontstyle.Bold,
	}))

	m.AddRow(8,
		text.NewCol(6, fmt.Sprintf("Type: %s", report.Type)),
		text.NewCol(6, fmt.Sprintf("Import ID: %s", report.ID)),
	)

	m.AddRow(8,
		text.NewCol(4, fmt.Sprintf("Total rows: %d", report.TotalRows)),
		text.NewCol(4, fmt.Sprintf("Imported: %d", report.ImportedCount)),
		text.NewCol(4, fmt.Sprintf("Errors: %d", len(report.Errors))),
	)

	if len(report.Errors) > 0 {
		m.AddRow(10, text.NewCol(12, "Row errors", props.Text{
			Size:  11,
			Style: fontstyle.Bold,
		}))

		for _, e := range report.Errors {
			m.AddRow(6, text.NewCol(12, e, props.Text{Size: 8}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate summary pdf: %w", err)
	}

	if err := doc.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save summary pdf: %w", err)
	}

	return nil
}
