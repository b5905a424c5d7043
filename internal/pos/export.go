package pos

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"restaurant-pos/internal/database/models"
)

const (
	isoLayout   = "2006-01-02T15:04:05.000Z07:00"
	salesSheet  = "Sales"
	dailySheet  = "Daily"
	defaultFile = "Sheet1"
)

var csvHeader = []string{"id", "timestamp", "items", "subtotal", "tax", "total", "paymentMethod"}

func CSVFilename(year int, month time.Month) string {
	return fmt.Sprintf("sales-%d-%02d.csv", year, int(month))
}

func XLSXFilename(year int, month time.Month) string {
	return fmt.Sprintf("sales-%d-%02d.xlsx", year, int(month))
}

// ItemsSummary renders lines as "name xQty@price" joined by ";".
func ItemsSummary(items []models.CartLine) string {
	parts := make([]string, 0, len(items))
	for _, line := range items {
		parts = append(parts, fmt.Sprintf("%s x%d@%s", line.Name, line.Qty, line.Price.String()))
	}
	return strings.Join(parts, ";")
}

// ExportCSV writes the header line followed by one line per sale, in input
// order. The items column is always quoted.
func ExportCSV(w io.Writer, sales []models.Sale) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(csvHeader, ",") + "\n"); err != nil {
		return err
	}

	for _, sale := range sales {
		fields := []string{
			csvField(sale.ID),
			csvField(sale.Timestamp.UTC().Format(isoLayout)),
			quote(ItemsSummary(sale.Items)),
			sale.Subtotal.StringFixed(2),
			sale.Tax.StringFixed(2),
			sale.Total.StringFixed(2),
			csvField(sale.PaymentMethod),
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

// ExportXLSX writes a workbook with a Sales sheet (same columns as the CSV)
// and a Daily sheet with the per-day aggregation.
func ExportXLSX(w io.Writer, sales []models.Sale) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultFile, salesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return err
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(salesSheet, "A1", &header); err != nil {
		return err
	}

	for i, sale := range sales {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			sale.ID,
			sale.Timestamp.UTC().Format(isoLayout),
			ItemsSummary(sale.Items),
			sale.Subtotal.InexactFloat64(),
			sale.Tax.InexactFloat64(),
			sale.Total.InexactFloat64(),
			sale.PaymentMethod,
		}
		if err := f.SetSheetRow(salesSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetSheetRow(dailySheet, "A1", &[]interface{}{"day", "orders", "revenue"}); err != nil {
		return err
	}
	for i, day := range AggregateByDay(sales) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{day.Day, day.Orders, day.Revenue.InexactFloat64()}
		if err := f.SetSheetRow(dailySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
