package pos

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/database/models"
)

const dayKeyLayout = "2006-01-02"

// AggregateByDay groups sales by the UTC date of their timestamp, the same
// date the export writes. Rows come back in ascending YYYY-MM-DD order.
func AggregateByDay(sales []models.Sale) []models.DayStat {
	byDay := make(map[string]*models.DayStat)
	for _, sale := range sales {
		key := sale.Timestamp.UTC().Format(dayKeyLayout)
		stat, ok := byDay[key]
		if !ok {
			stat = &models.DayStat{Day: key, Revenue: decimal.Zero}
			byDay[key] = stat
		}
		stat.Orders++
		stat.Revenue = stat.Revenue.Add(sale.Total)
	}

	days := make([]models.DayStat, 0, len(byDay))
	for _, stat := range byDay {
		days = append(days, *stat)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}

func Summarize(sales []models.Sale) models.Summary {
	revenue := decimal.Zero
	for _, sale := range sales {
		revenue = revenue.Add(sale.Total)
	}
	return models.Summary{
		TotalOrders:  len(sales),
		TotalRevenue: revenue,
	}
}

func (s *Service) MonthlyReport(ctx context.Context, year int, month time.Month) (models.MonthlyReport, error) {
	sales, err := s.MonthlySales(ctx, year, month)
	if err != nil {
		return models.MonthlyReport{}, err
	}
	return models.MonthlyReport{
		Year:    year,
		Month:   month,
		Summary: Summarize(sales),
		Days:    AggregateByDay(sales),
	}, nil
}
