package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/museconnect/tutor-admin-api/internal/models"
	appErrors "github.com/museconnect/tutor-admin-api/pkg/errors"
	"github.com/museconnect/tutor-admin-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

var enquiryExportHeaders = []string{"Booking Owner", "Email", "Phone", "Student", "Age", "Instruments", "Level", "Type", "Status"}

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the enquiry list to downloadable documents.
type ExportService struct {
	enquiries *EnquiryService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
	enabled   bool
}

// NewExportService constructs an ExportService.
func NewExportService(enquiries *EnquiryService, enabled bool, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		enquiries: enquiries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		enabled:   enabled,
	}
}

// Export renders the current enquiry view in the requested format.
func (s *ExportService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled")
	}

	enquiries, err := s.enquiries.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := buildEnquiryDataset(enquiries)

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "enquiries.csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Enquiries")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "enquiries.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func buildEnquiryDataset(enquiries []models.Enquiry) export.Dataset {
	rows := make([]map[string]string, 0, len(enquiries))
	for _, e := range enquiries {
		age := ""
		if e.StudentAge != nil {
			age = strconv.Itoa(*e.StudentAge)
		}
		level := ""
		if e.Level != nil {
			level = *e.Level
		}
		rows = append(rows, map[string]string{
			"Booking Owner": e.FirstName + " " + e.LastName,
			"Email":         e.Email,
			"Phone":         e.Phone,
			"Student":       e.StudentName,
			"Age":           age,
			"Instruments":   e.Instruments,
			"Level":         level,
			"Type":          string(e.BookingType),
			"Status":        string(e.Status),
		})
	}
	return export.Dataset{Headers: enquiryExportHeaders, Rows: rows}
}
