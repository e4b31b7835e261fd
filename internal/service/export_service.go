package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

// ExportFormat selects the file format of an export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// Export is a downloadable file.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

var csvHeader = []string{
	"id", "title", "subtitle", "creator", "publisher", "published_year", "isbn",
	"category", "status", "total_units", "units_completed", "rating", "favorite",
	"tags", "notes", "language", "format", "price", "started_at", "finished_at",
	"created_at", "updated_at",
}

// ExportService dumps a user's whole collection.
type ExportService interface {
	Export(ctx context.Context, userID uuid.UUID, format ExportFormat) (*Export, error)
}

type exportService struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(itemRepo repository.ItemRepository) ExportService {
	return &exportService{itemRepo: itemRepo, now: time.Now}
}

func (s *exportService) Export(ctx context.Context, userID uuid.UUID, format ExportFormat) (*Export, error) {
	if format == "" {
		format = ExportJSON
	}
	if format != ExportJSON && format != ExportCSV {
		return nil, errors.Validation(fmt.Sprintf("unsupported export format %q", format))
	}

	items, err := s.itemRepo.List(ctx, userID, repository.ItemFilter{Sort: repository.SortCreated})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	out := &Export{
		Filename: fmt.Sprintf("bookshelf-export-%s.%s", s.now().Format("20060102-150405"), format),
	}
	switch format {
	case ExportCSV:
		out.ContentType = "text/csv; charset=utf-8"
		out.Data, err = encodeCSV(items)
	default:
		out.ContentType = "application/json; charset=utf-8"
		if items == nil {
			items = []model.Item{}
		}
		out.Data, err = json.MarshalIndent(items, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return out, nil
}

func encodeCSV(items []model.Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, it := range items {
		price := ""
		if it.Price.Valid {
			price = it.Price.Decimal.StringFixed(2)
		}
		record := []string{
			it.ID.String(), it.Title, it.Subtitle, it.Creator, it.Publisher,
			strconv.Itoa(it.PublishedYear), it.ISBN, it.Category, string(it.Status),
			strconv.Itoa(it.TotalUnits), strconv.Itoa(it.UnitsCompleted), strconv.Itoa(it.Rating),
			strconv.FormatBool(it.Favorite), it.Tags, it.Notes, it.Language, it.Format, price,
			formatTime(it.StartedAt), formatTime(it.FinishedAt),
			it.CreatedAt.Format(time.RFC3339), it.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
