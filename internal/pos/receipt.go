package pos

import (
	"context"

	"restaurant-pos/internal/database/models"
)

// Receipt renders the current cart as a printable receipt.
func (s *Service) Receipt(ctx context.Context) models.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadCart(ctx)

	lines := make([]models.ReceiptLine, 0, len(cart.Items))
	for _, line := range cart.Items {
		lines = append(lines, models.ReceiptLine{
			Name:      line.Name,
			Qty:       line.Qty,
			LineTotal: round2(line.LineTotal()),
		})
	}

	return models.Receipt{
		ShopName:    s.opts.ShopName,
		ShopAddress: s.opts.ShopAddress,
		IssuedAt:    s.now(),
		Lines:       lines,
		Subtotal:    cart.Subtotal,
		Tax:         cart.Tax,
		Total:       cart.Total,
	}
}
