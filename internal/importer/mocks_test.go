package importer_test

import (
	"context"

	"github.com/opsboard/bulk_importer/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRecordInserter struct {
	mock.Mock
}

func (m *MockRecordInserter) InsertRecord(ctx context.Context, rec domain.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockMemberAdder struct {
	mock.Mock
}

func (m *MockMemberAdder) AddMember(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// MockTransactor runs the callback in place unless an error was stubbed,
// mirroring how the real manager behaves around a healthy transaction.
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx)
}

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateSummary(outputPath string, report *domain.ImportReport) error {
	args := m.Called(outputPath, report)
	return args.Error(0)
}
