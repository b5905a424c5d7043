package pos

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

func sale(id string, ts time.Time, total string, lines ...models.CartLine) models.Sale {
	return models.Sale{
		ID:            id,
		Timestamp:     ts,
		Items:         lines,
		Subtotal:      money(total),
		Tax:           money("0"),
		Total:         money(total),
		PaymentMethod: DefaultPaymentMethod,
	}
}

func januarySales() []models.Sale {
	return []models.Sale{
		sale("s1", time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC), "10"),
		sale("s2", time.Date(2025, 1, 9, 12, 0, 0, 0, time.UTC), "20"),
		sale("s3", time.Date(2025, 1, 3, 15, 45, 0, 0, time.UTC), "30"),
	}
}

func TestSummarizeAndAggregate(t *testing.T) {
	sales := januarySales()

	summary := Summarize(sales)
	assert.Equal(t, 3, summary.TotalOrders)
	assertMoney(t, "60.00", summary.TotalRevenue)

	days := AggregateByDay(sales)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-01-03", days[0].Day)
	assert.Equal(t, 2, days[0].Orders)
	assertMoney(t, "40.00", days[0].Revenue)
	assert.Equal(t, "2025-01-09", days[1].Day)
	assertMoney(t, "60.00", days[0].Revenue.Add(days[1].Revenue))
}

func TestAggregateByDay_KeysOnUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	sales := []models.Sale{
		sale("late", time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC), "10"),
		sale("local", time.Date(2025, 2, 1, 1, 0, 0, 0, ist), "5"),
	}

	days := AggregateByDay(sales)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-01-31", days[0].Day)
	assert.Equal(t, 2, days[0].Orders)
}

func TestMonthlyReport_DayMatchesStoredInstant(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	opts.Location = time.FixedZone("IST", 5*3600+1800)
	evening := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)
	svc := newTestService(t, nil, opts, WithClock(func() time.Time { return evening }))
	_, err := svc.SeedOrMigrate(ctx)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, itemByName(t, svc, "Dosa").ID)
	require.NoError(t, err)
	sold, err := svc.CompleteSale(ctx)
	require.NoError(t, err)

	report, err := svc.MonthlyReport(ctx, 2025, time.January)
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.Equal(t, sold.Timestamp.UTC().Format("2006-01-02"), report.Days[0].Day)
	assert.Equal(t, "2025-01-15", report.Days[0].Day)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.TotalOrders)
	assertMoney(t, "0.00", summary.TotalRevenue)
	assert.Empty(t, AggregateByDay(nil))
}

func TestMonthlySales(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	opts := testOptions()
	opts.Location = time.FixedZone("IST", 5*3600+1800)
	svc := newTestService(t, backend, opts)

	ledger := append(januarySales(),
		sale("edge", time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC), "5"),
		sale("feb", time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC), "50"),
		sale("lastyear", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), "70"),
	)
	require.NoError(t, store.Write(ctx, backend, svc.keys.sales, ledger))

	jan, err := svc.MonthlySales(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2", "s3"}, saleIDs(jan))

	feb, err := svc.MonthlySales(ctx, 2025, time.February)
	require.NoError(t, err)
	assert.Equal(t, []string{"edge", "feb"}, saleIDs(feb))

	_, err = svc.MonthlySales(ctx, 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	_, err = svc.MonthlySales(ctx, 2025, 0)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	report, err := svc.MonthlyReport(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Summary.TotalOrders)
	assertMoney(t, "60.00", report.Summary.TotalRevenue)
	assert.Len(t, report.Days, 2)
	assert.Len(t, svc.AllSales(ctx), 6)
}

func TestMonthlySales_CorruptLedgerReadsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	svc := newTestService(t, backend, testOptions())
	require.NoError(t, backend.Save(ctx, svc.keys.sales, []byte("nope")))

	got, err := svc.MonthlySales(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func saleIDs(sales []models.Sale) []string {
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestExportCSV(t *testing.T) {
	sales := []models.Sale{
		sale("s1", time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC), "55",
			models.CartLine{ItemID: "a", Name: "Idly", Qty: 2, Price: money("20")},
			models.CartLine{ItemID: "b", Name: "Vada", Qty: 1, Price: money("15")},
		),
		sale("s2", time.Date(2025, 1, 6, 7, 5, 9, 0, time.UTC), "120",
			models.CartLine{ItemID: "c", Name: `Chef's "Special"`, Qty: 1, Price: money("120")},
		),
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, sales))

	want := strings.Join([]string{
		"id,timestamp,items,subtotal,tax,total,paymentMethod",
		`s1,2025-01-05T10:30:00.000Z,"Idly x2@20;Vada x1@15",55.00,0.00,55.00,UPI`,
		`s2,2025-01-06T07:05:09.000Z,"Chef's ""Special"" x1@120",120.00,0.00,120.00,UPI`,
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestExportCSV_LineCountMatchesSales(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		sales := januarySales()[:n]
		var buf bytes.Buffer
		require.NoError(t, ExportCSV(&buf, sales))

		lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Equal(t, "id,timestamp,items,subtotal,tax,total,paymentMethod", lines[0])
		assert.Len(t, lines, n+1)
	}
}

func TestExportFilenames(t *testing.T) {
	assert.Equal(t, "sales-2025-01.csv", CSVFilename(2025, time.January))
	assert.Equal(t, "sales-2024-12.xlsx", XLSXFilename(2024, time.December))
}

func TestExportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportXLSX(&buf, januarySales()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "s1", rows[1][0])

	daily, err := f.GetRows("Daily")
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"day", "orders", "revenue"}, daily[0])
	assert.Equal(t, "2025-01-03", daily[1][0])
	assert.Equal(t, "2", daily[1][1])
}
