package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opsboard/bulk_importer/internal/controller/http/middleware"
	"github.com/opsboard/bulk_importer/internal/domain"
	"github.com/opsboard/bulk_importer/internal/importer"
)

// maxUploadSize caps multipart parsing memory; larger files spill to disk.
const maxUploadSize = 10 << 20

type ImportService interface {
	Upload(ctx context.Context, r io.Reader, typ domain.ImportType) (*importer.UploadResult, error)
	Import(ctx context.Context, filename string, typ domain.ImportType, orgID, actingUserID string) (*domain.ImportReport, error)
}

type ImportHandler struct {
	service  ImportService
	registry *importer.Registry
}

func NewImportHandler(service ImportService, registry *importer.Registry) *ImportHandler {
	return &ImportHandler{
		service:  service,
		registry: registry,
	}
}

type importTypeSummary struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredFields []string `json:"requiredFields"`
	OptionalFields []string `json:"optionalFields"`
	SampleData     any      `json:"sampleData"`
}

type listImportTypesResponse struct {
	Types []importTypeSummary `json:"types"`
}

func (h *ImportHandler) ListImportTypes(w http.ResponseWriter, r *http.Request) {
	descriptors := h.registry.Types()

	resp := listImportTypesResponse{Types: make([]importTypeSummary, 0, len(descriptors))}
	for _, d := range descriptors {
		resp.Types = append(resp.Types, importTypeSummary{
			Type:           d.Type.String(),
			Name:           d.Name,
			Description:    d.Description,
			RequiredFields: d.RequiredFields,
			OptionalFields: d.OptionalFields,
			SampleData:     d.Sample,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type uploadResponse struct {
	Message          string             `json:"message"`
	Filename         string             `json:"filename"`
	Type             string             `json:"type"`
	RecordCount      int                `json:"recordCount"`
	Preview          []domain.RawRecord `json:"preview"`
	Headers          []string           `json:"headers"`
	ParseErrors      []string           `json:"parseErrors"`
	ValidationErrors []string           `json:"validationErrors"`
	IsValid          bool               `json:"isValid"`
}

func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "invalid multipart form")
		return
	}

	typ := domain.ImportType(r.FormValue("type"))

	// reject an unknown type before touching the file at all
	if _, err := h.registry.Lookup(typ); err != nil {
		writeError(w, http.StatusBadRequest, CodeUnsupportedType, err.Error())
		return
	}

	file, _, err := r.FormFile("csvFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "missing csvFile field")
		return
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), file, typ)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyFile):
			writeError(w, http.StatusBadRequest, CodeEmptyFile, "uploaded file is empty")
		case errors.Is(err, domain.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, CodeUnsupportedType, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, CodeInternalError, err.Error())
		}
		return
	}

	preview := result.Preview
	if preview == nil {
		preview = []domain.RawRecord{}
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:          fmt.Sprintf("parsed %d records", result.RecordCount),
		Filename:         result.Filename,
		Type:             result.Type.String(),
		RecordCount:      result.RecordCount,
		Preview:          preview,
		Headers:          result.Headers,
		ParseErrors:      domain.RowErrorStrings(result.ParseErrors),
		ValidationErrors: domain.RowErrorStrings(result.ValidationErrors),
		IsValid:          result.IsValid,
	})
}

type importRequest struct {
	Filename       string `json:"filename"`
	Type           string `json:"type"`
	OrganizationID string `json:"organizationId"`
	UserID         string `json:"userId"`
}

type importResponse struct {
	Message       string          `json:"message"`
	ImportedCount int             `json:"importedCount"`
	TotalRows     int             `json:"totalRows"`
	Errors        []string        `json:"errors"`
	HasErrors     bool            `json:"hasErrors"`
	Results       []domain.Record `json:"results"`
}

func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "invalid request body")
		return
	}

	if req.Filename == "" || req.Type == "" || req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationError, "filename, type and organizationId are required")
		return
	}

	typ := domain.ImportType(req.Type)

	report, err := h.service.Import(r.Context(), req.Filename, typ, req.OrganizationID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, CodeUnsupportedType, err.Error())
		case errors.Is(err, domain.ErrUploadNotFound):
			writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, CodeInternalError, err.Error())
		}
		return
	}

	middleware.RowsImportedTotal.WithLabelValues(typ.String()).Add(float64(report.ImportedCount))
	middleware.RowsFailedTotal.WithLabelValues(typ.String()).Add(float64(len(report.Errors)))

	respErrors := report.Errors
	if respErrors == nil {
		respErrors = []string{}
	}
	results := report.Results
	if results == nil {
		results = []domain.Record{}
	}

	writeJSON(w, http.StatusOK, importResponse{
		Message:       fmt.Sprintf("imported %d of %d rows", report.ImportedCount, report.TotalRows),
		ImportedCount: report.ImportedCount,
		TotalRows:     report.TotalRows,
		Errors:        respErrors,
		HasErrors:     report.HasErrors(),
		Results:       results,
	})
}

func (h *ImportHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	typ := domain.ImportType(chi.URLParam(r, "type"))

	desc, err := h.registry.Lookup(typ)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeUnsupportedType, err.Error())
		return
	}

	data, err := desc.Template()
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeInternalError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", typ.String()+"_template.csv"))
	w.Write(data)
}
