package services

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"

	"shelflife/internal/expiry"
)

type exportRow struct {
	ID           string `csv:"id"`
	Barcode      string `csv:"barcode"`
	Name         string `csv:"name"`
	Price        string `csv:"price"`
	ExpiryDate   string `csv:"expiry_date"`
	BatchNumber  string `csv:"batch_number"`
	Aisle        string `csv:"aisle"`
	Status       string `csv:"status"`
	DaysToExpiry int    `csv:"days_to_expiry"`
	CreatedAt    string `csv:"created_at"`
	UpdatedAt    string `csv:"updated_at"`
}

type ExportService struct {
	Catalog *CatalogService
}

func NewExportService(catalog *CatalogService) *ExportService {
	return &ExportService{Catalog: catalog}
}

// WriteCSV writes the whole catalog, in collection order, with a header row.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	now := s.Catalog.Now()
	rows := []*exportRow{}
	for _, v := range expiry.View(s.Catalog.ListAll(ctx), now) {
		rows = append(rows, &exportRow{
			ID:           v.ID,
			Barcode:      v.Barcode,
			Name:         v.Name,
			Price:        strconv.FormatFloat(v.Price, 'f', 2, 64),
			ExpiryDate:   v.ExpiryDate.Format(time.RFC3339),
			BatchNumber:  v.BatchNumber,
			Aisle:        v.Aisle,
			Status:       string(v.Status),
			DaysToExpiry: v.DaysToExpiry,
			CreatedAt:    v.CreatedAt.Format(time.RFC3339),
			UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(rows, w)
}
