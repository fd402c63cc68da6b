package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/opsboard/bulk_importer/internal/domain"
)

// previewRows caps how many raw records the upload response echoes back.
const previewRows = 5

// Service orchestrates the import pipeline: upload → parse → preview,
// then import → per-row transform + insert → aggregate report.
type Service struct {
	log        *slog.Logger
	uploadsDir string
	reportsDir string
	registry   *Registry
	records    RecordInserter
	members    MemberAdder
	transactor Transactor
	reports    ReportGenerator
}

func NewService(
	log *slog.Logger,
	uploadsDir string,
	reportsDir string,
	registry *Registry,
	records RecordInserter,
	members MemberAdder,
	transactor Transactor,
	reports ReportGenerator,
) *Service {
	return &Service{
		log:        log,
		uploadsDir: uploadsDir,
		reportsDir: reportsDir,
		registry:   registry,
		records:    records,
		members:    members,
		transactor: transactor,
		reports:    reports,
	}
}

// UploadResult is the preview returned after a successful upload. The file
// stays in the uploads directory until a follow-up Import call references it
// by filename.
type UploadResult struct {
	Filename         string
	Type             domain.ImportType
	RecordCount      int
	Headers          []string
	Preview          []domain.RawRecord
	ParseErrors      []domain.RowError
	ValidationErrors []domain.RowError
	IsValid          bool
}

func (s *Service) Upload(ctx context.Context, r io.Reader, typ domain.ImportType) (*UploadResult, error) {
	desc, err := s.registry.Lookup(typ)
	if err != nil {
		return nil, err
	}

	filename := uuid.NewString() + ".csv"
	path := filepath.Join(s.uploadsDir, filename)

	if err := s.saveUpload(path, r); err != nil {
		return nil, err
	}

	parsed, err := ParseFile(path)
	if err != nil {
		// nothing to import from an unreadable file, drop it right away
		s.removeUpload(ctx, path)
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}

	var validationErrors []domain.RowError
	for _, row := range parsed.Records {
		validationErrors = append(validationErrors, desc.Validate(row.Record, row.Number)...)
	}

	preview := make([]domain.RawRecord, 0, previewRows)
	for _, row := range parsed.Records {
		if len(preview) == previewRows {
			break
		}
		preview = append(preview, row.Record)
	}

	s.log.InfoContext(ctx, "upload parsed",
		slog.String("filename", filename),
		slog.String("type", typ.String()),
		slog.Int("record_count", len(parsed.Records)),
		slog.Int("validation_errors", len(validationErrors)),
	)

	return &UploadResult{
		Filename:         filename,
		Type:             typ,
		RecordCount:      len(parsed.Records),
		Headers:          parsed.Headers,
		Preview:          preview,
		ParseErrors:      parsed.RowErrors,
		ValidationErrors: validationErrors,
		IsValid:          len(validationErrors) == 0 && len(parsed.RowErrors) == 0,
	}, nil
}

func (s *Service) saveUpload(path string, r io.Reader) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}

	return nil
}

// Import re-parses a previously uploaded file and processes it strictly in
// file order, one row at a time. A failing row is recorded and skipped; it
// never aborts the rest of the batch. The uploaded file is removed no matter
// how the call ends.
func (s *Service) Import(
	ctx context.Context,
	filename string,
	typ domain.ImportType,
	orgID string,
	actingUserID string,
) (*domain.ImportReport, error) {
	desc, err := s.registry.Lookup(typ)
	if err != nil {
		return nil, err
	}

	// the filename crossed the client boundary, keep it inside uploadsDir
	path := filepath.Join(s.uploadsDir, filepath.Base(filename))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUploadNotFound, filename)
		}
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}

	defer s.removeUpload(ctx, path)

	parsed, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", filename, err)
	}

	report := &domain.ImportReport{
		ID:        uuid.NewString(),
		Type:      typ,
		TotalRows: parsed.TotalRows(),
		Errors:    domain.RowErrorStrings(parsed.RowErrors),
	}

	for _, row := range parsed.Records {
		if rowErrs := desc.Validate(row.Record, row.Number); len(rowErrs) > 0 {
			report.Errors = append(report.Errors, domain.RowErrorStrings(rowErrs)...)
			continue
		}

		record := desc.Transform(row.Record, orgID, actingUserID)

		if err := s.insertRecord(ctx, typ, record); err != nil {
			report.Errors = append(report.Errors, domain.RowError{Row: row.Number, Message: err.Error()}.String())
			continue
		}

		report.ImportedCount++
		report.Results = append(report.Results, record)
	}

	s.log.InfoContext(ctx, "import finished",
		slog.String("filename", filename),
		slog.String("type", typ.String()),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("imported", report.ImportedCount),
		slog.Int("errors", len(report.Errors)),
	)

	s.writeSummary(ctx, report)

	return report, nil
}

// insertRecord persists one transformed record. Imported users additionally
// join the organization under the same role, atomically with the user row.
func (s *Service) insertRecord(ctx context.Context, typ domain.ImportType, rec domain.Record) error {
	if typ != domain.TypeUsers {
		return s.records.InsertRecord(ctx, rec)
	}

	user, ok := rec.(*domain.User)
	if !ok {
		return fmt.Errorf("unexpected record type %T for users import", rec)
	}

	return s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.records.InsertRecord(ctx, user); err != nil {
			return err
		}

		return s.members.AddMember(ctx, &domain.Membership{
			OrganizationID: user.OrganizationID,
			UserID:         user.ID,
			Role:           user.Role,
		})
	})
}

// writeSummary renders the PDF recap. The import already succeeded at this
// point, so a summary failure is logged, not returned.
func (s *Service) writeSummary(ctx context.Context, report *domain.ImportReport) {
	if s.reports == nil || s.reportsDir == "" {
		return
	}

	path := filepath.Join(s.reportsDir, report.ID+".pdf")
	if err := s.reports.GenerateSummary(path, report); err != nil {
		s.log.ErrorContext(ctx, "failed to generate import summary",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}

func (s *Service) removeUpload(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.ErrorContext(ctx, "failed to remove uploaded file",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}
