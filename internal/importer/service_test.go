package importer_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opsboard/bulk_importer/internal/domain"
	"github.com/opsboard/bulk_importer/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service    *importer.Service
	uploadsDir string
	reportsDir string
	records    *MockRecordInserter
	members    *MockMemberAdder
	transactor *MockTransactor
	reports    *MockReportGenerator
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		uploadsDir: t.TempDir(),
		reportsDir: t.TempDir(),
		records:    &MockRecordInserter{},
		members:    &MockMemberAdder{},
		transactor: &MockTransactor{},
		reports:    &MockReportGenerator{},
	}

	f.reports.On("GenerateSummary", mock.Anything, mock.Anything).Return(nil).Maybe()

	f.service = importer.NewService(
		slog.New(slog.DiscardHandler),
		f.uploadsDir,
		f.reportsDir,
		importer.NewRegistry(),
		f.records,
		f.members,
		f.transactor,
		f.reports,
	)

	return f
}

func (f *serviceFixture) uploadRocks(t *testing.T, rows ...string) string {
	t.Helper()

	body := "title,quarter,year\n" + strings.Join(rows, "\n") + "\n"

	result, err := f.service.Upload(context.Background(), strings.NewReader(body), domain.TypeRocks)
	require.NoError(t, err)

	return result.Filename
}

func TestService_Upload_HappyPath(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	body := strings.Join([]string{
		"title,quarter,year",
		"Launch portal,2,2025",
		"Hire ops lead,3,2025",
		"Migrate billing,4,2025",
		"Open new office,1,2026",
		"Revamp website,2,2026",
		"Write handbook,3,2026",
	}, "\n")

	result, err := f.service.Upload(context.Background(), strings.NewReader(body), domain.TypeRocks)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))
	assert.Equal(t, 6, result.RecordCount)
	assert.Len(t, result.Preview, 5, "preview is capped at 5 records")
	assert.Equal(t, []string{"title", "quarter", "year"}, result.Headers)
	assert.Empty(t, result.ValidationErrors)
	assert.True(t, result.IsValid)

	// the uploaded file stays on disk awaiting the import call
	_, statErr := os.Stat(filepath.Join(f.uploadsDir, result.Filename))
	require.NoError(t, statErr)
}

func TestService_Upload_InvalidRowsMarkWholeUploadInvalid(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	body := strings.Join([]string{
		"title,quarter,year",
		"A,1,2024",
		",5,2024",
		"C,2,1999",
	}, "\n")

	result, err := f.service.Upload(context.Background(), strings.NewReader(body), domain.TypeRocks)
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	require.Len(t, result.ValidationErrors, 3)
	assert.Equal(t, 2, result.ValidationErrors[0].Row)
	assert.Equal(t, 2, result.ValidationErrors[1].Row)
	assert.Equal(t, 3, result.ValidationErrors[2].Row)
}

func TestService_Upload_UnsupportedType(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Upload(context.Background(), strings.NewReader("a,b\n1,2\n"), "invoices")
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestService_Upload_EmptyFileLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Upload(context.Background(), strings.NewReader(""), domain.TypeTodos)
	require.ErrorIs(t, err, domain.ErrEmptyFile)

	entries, readErr := os.ReadDir(f.uploadsDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "failed upload must not leave a temp file")
}

func TestService_Import_HappyPath(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t, "Launch portal,2,2025", "Hire ops lead,3,2025")

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 2, report.ImportedCount)
	assert.Empty(t, report.Errors)
	require.Len(t, report.Results, 2)

	rock, ok := report.Results[0].(*domain.Rock)
	require.True(t, ok)
	assert.Equal(t, orgID, rock.OrganizationID)
	assert.Equal(t, userID, rock.OwnerID)

	// temp file is gone after the import completes
	_, statErr := os.Stat(filepath.Join(f.uploadsDir, filename))
	require.ErrorIs(t, statErr, os.ErrNotExist)

	f.records.AssertNumberOfCalls(t, "InsertRecord", 2)
}

func TestService_Import_RowIsolationOnStoreFailure(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t,
		"Launch portal,2,2025",
		"Hire ops lead,3,2025",
		"Migrate billing,4,2025",
	)

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil).Once()
	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(errors.New("duplicate key")).Once()
	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil).Once()

	report, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 2, report.ImportedCount, "rows after the failing one must still import")
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "row 2")
	assert.Contains(t, report.Errors[0], "duplicate key")
}

func TestService_Import_InvalidRowsSkippedNotFatal(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t, "A,1,2024", ",5,2024", "C,2,2024")

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.ImportedCount)
	require.Len(t, report.Errors, 2, "both violations on row 2 are reported")
	assert.Contains(t, report.Errors[0], "row 2")

	f.records.AssertNumberOfCalls(t, "InsertRecord", 2)
}

func TestService_Import_RowNumbersSurviveParseErrors(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t,
		"Launch portal,2,2025",
		"short row,1",
		",5,2025",
	)

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 1, report.ImportedCount)
	require.Len(t, report.Errors, 3)
	assert.Contains(t, report.Errors[0], "row 2")
	assert.Contains(t, report.Errors[1], "row 3")
	assert.Contains(t, report.Errors[2], "row 3")
}

func TestService_Import_UsersGetMembership(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	body := "email,first_name,last_name,role\njordan@example.com,Jordan,Rivera,admin\n"
	result, err := f.service.Upload(context.Background(), strings.NewReader(body), domain.TypeUsers)
	require.NoError(t, err)

	f.transactor.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)
	f.members.On("AddMember", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
		return m.OrganizationID == orgID && m.Role == "admin" && m.UserID != ""
	})).Return(nil)

	report, err := f.service.Import(context.Background(), result.Filename, domain.TypeUsers, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 1, report.ImportedCount)
	f.members.AssertExpectations(t)
	f.transactor.AssertExpectations(t)
}

func TestService_Import_MembershipFailureFailsTheRow(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	body := "email,first_name,last_name\njordan@example.com,Jordan,Rivera\n"
	result, err := f.service.Upload(context.Background(), strings.NewReader(body), domain.TypeUsers)
	require.NoError(t, err)

	f.transactor.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)
	f.members.On("AddMember", mock.Anything, mock.Anything).Return(errors.New("membership insert failed"))

	report, err := f.service.Import(context.Background(), result.Filename, domain.TypeUsers, orgID, userID)
	require.NoError(t, err)

	assert.Equal(t, 0, report.ImportedCount)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "row 1")
}

func TestService_Import_FileNotFound(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	_, err := f.service.Import(context.Background(), "missing.csv", domain.TypeRocks, orgID, userID)
	require.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestService_Import_SecondCallFailsCleanly(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t, "Launch portal,2,2025")

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	_, err = f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestService_Import_FilenameIsConfinedToUploadsDir(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)

	outside := filepath.Join(t.TempDir(), "outside.csv")
	require.NoError(t, os.WriteFile(outside, []byte("title,quarter,year\nA,1,2024\n"), 0o644))

	// a traversal path must resolve inside uploadsDir and therefore miss
	_, err := f.service.Import(context.Background(), "../"+filepath.Base(outside), domain.TypeRocks, orgID, userID)
	require.ErrorIs(t, err, domain.ErrUploadNotFound)

	_, statErr := os.Stat(outside)
	require.NoError(t, statErr, "file outside the uploads dir must not be touched")
}

func TestService_Import_WritesSummaryReport(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t)
	filename := f.uploadRocks(t, "Launch portal,2,2025")

	f.records.On("InsertRecord", mock.Anything, mock.Anything).Return(nil)

	report, err := f.service.Import(context.Background(), filename, domain.TypeRocks, orgID, userID)
	require.NoError(t, err)

	f.reports.AssertCalled(t, "GenerateSummary",
		filepath.Join(f.reportsDir, report.ID+".pdf"), report)
}
