package export

import (
	"bytes"
	"fmt"

	"homehero/internal/models"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingColumns = []string{"ID", "Service ID", "Booking date", "Price", "User email", "Status", "Created at", "Updated at"}

// BookingsWorkbook renders bookings as a single-sheet xlsx file.
func BookingsWorkbook(bookings []*models.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return nil, err
	}

	for i, b := range bookings {
		row := []any{
			b.ID.Hex(),
			b.ServiceID,
			b.BookingDate,
			b.Price,
			b.UserEmail,
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
			"",
		}
		if b.UpdatedAt != nil {
			row[7] = b.UpdatedAt.Format("2006-01-02 15:04:05")
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(bookingsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 28)
	_ = f.SetColWidth(bookingsSheet, "B", "H", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File) error {
	header := make([]any, len(bookingColumns))
	for i, c := range bookingColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
	return f.SetCellStyle(bookingsSheet, "A1", last, style)
}
