package pos

import (
	"context"
	"encoding/json"
	"time"

	"restaurant-pos/internal/database/models"
)

// appendSale adds sale to the end of the ledger in one backend update.
// An unreadable ledger aborts the append so recorded history is never
// replaced by an empty list.
func (s *Service) appendSale(ctx context.Context, sale models.Sale) error {
	return s.store.Update(ctx, s.keys.sales, func(current []byte, found bool) ([]byte, error) {
		sales := []models.Sale{}
		if found {
			if err := json.Unmarshal(current, &sales); err != nil {
				return nil, ErrLedgerCorrupt
			}
		}
		sales = append(sales, sale)
		return json.Marshal(sales)
	})
}

// AllSales returns the ledger in append order.
func (s *Service) AllSales(ctx context.Context) []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSales(ctx)
}

// MonthlySales returns the sales whose timestamp, seen in the shop's
// location, falls in the given calendar month. month is 1-based.
func (s *Service) MonthlySales(ctx context.Context, year int, month time.Month) ([]models.Sale, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidPeriod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return FilterMonth(s.loadSales(ctx), year, month, s.opts.Location), nil
}

func FilterMonth(sales []models.Sale, year int, month time.Month, loc *time.Location) []models.Sale {
	out := []models.Sale{}
	for _, sale := range sales {
		t := sale.Timestamp.In(loc)
		if t.Year() == year && t.Month() == month {
			out = append(out, sale)
		}
	}
	return out
}
