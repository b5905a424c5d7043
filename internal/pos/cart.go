package pos

import (
	"context"

	"go.uber.org/zap"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

func (s *Service) GetCart(ctx context.Context) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCart(ctx)
}

// modifyCart applies fn to the stored cart, recomputes totals and persists it.
func (s *Service) modifyCart(ctx context.Context, op string, fn func(*models.Cart) error) (models.Cart, error) {
	cart, status, err := store.Modify(ctx, s.store, s.keys.cart, models.EmptyCart, func(c *models.Cart) error {
		if c.Items == nil {
			c.Items = []models.CartLine{}
		}
		if err := fn(c); err != nil {
			return err
		}
		*c = RecalcTotals(*c, s.opts.TaxRatePercent)
		return nil
	})
	s.logFallback(s.keys.cart, status)
	if err != nil {
		return models.Cart{}, wrapOp(op, err)
	}
	return cart, nil
}

// AddItem puts one unit of a menu item in the cart. A second add of the same
// item raises the quantity of its line instead of adding another line.
func (s *Service) AddItem(ctx context.Context, itemID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var item *models.MenuItem
	for _, m := range s.loadMenu(ctx) {
		if m.ID == itemID {
			m := m
			item = &m
			break
		}
	}
	if item == nil {
		return models.Cart{}, ErrItemNotFound
	}
	if !item.IsAvailable {
		return models.Cart{}, ErrItemUnavailable
	}

	cart, err := s.modifyCart(ctx, "add item", func(c *models.Cart) error {
		if i := c.FindLine(itemID); i >= 0 {
			c.Items[i].Qty++
			return nil
		}
		c.Items = append(c.Items, models.CartLine{
			ItemID: item.ID,
			Name:   item.Name,
			Qty:    1,
			Price:  item.Price,
		})
		return nil
	})
	if err != nil {
		return models.Cart{}, err
	}

	s.logger.Debug("item added", zap.String("item_id", itemID), zap.String("name", item.Name))
	return cart, nil
}

// UpdateQty shifts a line's quantity by delta. A line that reaches zero or
// below is removed rather than kept at zero.
func (s *Service) UpdateQty(ctx context.Context, itemID string, delta int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.modifyCart(ctx, "update quantity", func(c *models.Cart) error {
		i := c.FindLine(itemID)
		if i < 0 {
			return ErrLineNotFound
		}
		c.Items[i].Qty += delta
		if c.Items[i].Qty <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return nil
	})
}

// RemoveLine drops the line for itemID. An absent line leaves the cart as is.
func (s *Service) RemoveLine(ctx context.Context, itemID string) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.modifyCart(ctx, "remove line", func(c *models.Cart) error {
		if i := c.FindLine(itemID); i >= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clearCart(ctx)
}

func (s *Service) clearCart(ctx context.Context) (models.Cart, error) {
	empty := models.EmptyCart()
	if err := store.Write(ctx, s.store, s.keys.cart, empty); err != nil {
		return models.Cart{}, wrapOp("clear cart", err)
	}
	return empty, nil
}

// CompleteSale moves the cart into the ledger as a Sale and resets the cart.
// The ledger append happens first; if it fails the cart is left untouched.
func (s *Service) CompleteSale(ctx context.Context) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadCart(ctx)
	if cart.IsEmpty() {
		return models.Sale{}, ErrEmptyCart
	}

	sale := models.Sale{
		ID:            s.newID(),
		Timestamp:     s.now().UTC(),
		Items:         append([]models.CartLine(nil), cart.Items...),
		Subtotal:      cart.Subtotal,
		Tax:           cart.Tax,
		Total:         cart.Total,
		PaymentMethod: s.opts.PaymentMethod,
	}

	if err := s.appendSale(ctx, sale); err != nil {
		s.logger.Error("sale not recorded, cart kept", zap.String("sale_id", sale.ID), zap.Error(err))
		return models.Sale{}, wrapOp("record sale", err)
	}

	if _, err := s.clearCart(ctx); err != nil {
		s.logger.Error("sale recorded but cart not reset", zap.String("sale_id", sale.ID), zap.Error(err))
		return sale, resetFailed(err)
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("total", sale.Total.StringFixed(2)),
		zap.Int("lines", len(sale.Items)))

	s.publishSaleCompleted(ctx, sale)
	return sale, nil
}
