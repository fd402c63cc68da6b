package importer

import (
	"context"

	"github.com/opsboard/bulk_importer/internal/domain"
)

type RecordInserter interface {
	InsertRecord(ctx context.Context, rec domain.Record) error
}

type MemberAdder interface {
	AddMember(ctx context.Context, m *domain.Membership) error
}

type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReportGenerator interface {
	GenerateSummary(outputPath string, report *domain.ImportReport) error
}
