package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/s-ao213/next-task-app/internal/models"
	appErrors "github.com/s-ao213/next-task-app/pkg/errors"
	"github.com/s-ao213/next-task-app/pkg/export"
)

// ExportFormat enumerates supported task list renditions.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult carries a rendered export back to the transport layer.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders the viewer's visible task list to CSV or PDF.
type ExportService struct {
	tasks   taskLister
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
	enabled bool
}

// NewExportService constructs an ExportService.
func NewExportService(tasks taskLister, enabled bool, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		tasks:   tasks,
		csv:     csv,
		pdf:     pdf,
		logger:  logger,
		now:     time.Now,
		enabled: enabled,
	}
}

// Enabled reports whether exports are switched on.
func (s *ExportService) Enabled() bool {
	return s != nil && s.enabled
}

// TaskList renders the viewer's tasks in the requested format.
func (s *ExportService) TaskList(ctx context.Context, viewerID string, format ExportFormat) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled")
	}
	format = ExportFormat(strings.ToLower(string(format)))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	tasks, err := s.tasks.ListForViewer(ctx, viewerID, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	dataset := taskDataset(tasks, now)
	stamp := now.Format("20060102")

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv render failed")
		}
		return &ExportResult{
			Data:        data,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("tasks-%s.csv", stamp),
		}, nil
	default:
		data, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf render failed")
		}
		return &ExportResult{
			Data:        data,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("tasks-%s.pdf", stamp),
		}, nil
	}
}

func taskDataset(tasks []models.TaskWithStatus, generated time.Time) export.Dataset {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		deadline := ""
		if !models.HasNoDeadline(t.Deadline) {
			deadline = t.Deadline.Format("2006-01-02 15:04")
		}
		completed := "no"
		if t.IsCompleted {
			completed = "yes"
		}
		rows = append(rows, []string{t.Subject, t.Title, deadline, string(t.DeadlineStatus), completed})
	}
	return export.Dataset{
		Title:     "Task List",
		Columns:   export.TaskListColumns(),
		Rows:      rows,
		Generated: generated,
	}
}
