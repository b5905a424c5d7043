package pos

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

type MenuFilter struct {
	Query         string
	OnlyAvailable bool
}

func (f MenuFilter) match(item models.MenuItem) bool {
	if f.OnlyAvailable && !item.IsAvailable {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(item.Name), q)
}

// ItemInput carries the editable fields of a menu item. A nil IsAvailable
// keeps the stored flag on edit and means available on create.
type ItemInput struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"imageUrl"`
	IsAvailable *bool           `json:"isAvailable"`
}

func emptyMenu() []models.MenuItem {
	return []models.MenuItem{}
}

// ListMenu returns the catalog in insertion order, narrowed by filter.
func (s *Service) ListMenu(ctx context.Context, filter MenuFilter) []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	menu := s.loadMenu(ctx)
	out := make([]models.MenuItem, 0, len(menu))
	for _, item := range menu {
		if filter.match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) GetItem(ctx context.Context, id string) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.loadMenu(ctx) {
		if item.ID == id {
			return item, nil
		}
	}
	return models.MenuItem{}, ErrItemNotFound
}

// UpsertItem edits the item with a matching ID or appends a new one with a
// fresh ID. The ID of an existing item never changes.
func (s *Service) UpsertItem(ctx context.Context, item ItemInput) (models.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.ImageRef = strings.TrimSpace(item.ImageRef)
	if item.Name == "" || item.Price.IsNegative() {
		return models.MenuItem{}, ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var saved models.MenuItem
	_, status, err := store.Modify(ctx, s.store, s.keys.menu, emptyMenu, func(menu *[]models.MenuItem) error {
		if item.ID != "" {
			for i := range *menu {
				existing := &(*menu)[i]
				if existing.ID != item.ID {
					continue
				}
				existing.Name = item.Name
				existing.Price = item.Price
				if item.ImageRef != "" {
					existing.ImageRef = item.ImageRef
				}
				if item.IsAvailable != nil {
					existing.IsAvailable = *item.IsAvailable
				}
				saved = *existing
				return nil
			}
		}

		saved = models.MenuItem{
			ID:          s.newID(),
			Name:        item.Name,
			Price:       item.Price,
			ImageRef:    item.ImageRef,
			IsAvailable: item.IsAvailable == nil || *item.IsAvailable,
		}
		if saved.ImageRef == "" {
			saved.ImageRef = PlaceholderImage
		}
		*menu = append(*menu, saved)
		return nil
	})
	s.logFallback(s.keys.menu, status)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("save menu item: %w", err)
	}

	s.logger.Info("menu item saved", zap.String("item_id", saved.ID), zap.String("name", saved.Name))
	return saved, nil
}

// RemoveItem deletes the item. Removing an unknown ID is not an error.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, status, err := store.Modify(ctx, s.store, s.keys.menu, emptyMenu, func(menu *[]models.MenuItem) error {
		kept := (*menu)[:0]
		for _, item := range *menu {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		*menu = kept
		return nil
	})
	s.logFallback(s.keys.menu, status)
	if err != nil {
		return fmt.Errorf("remove menu item: %w", err)
	}
	return nil
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated models.MenuItem
	_, status, err := store.Modify(ctx, s.store, s.keys.menu, emptyMenu, func(menu *[]models.MenuItem) error {
		for i := range *menu {
			if (*menu)[i].ID == id {
				(*menu)[i].IsAvailable = available
				updated = (*menu)[i]
				return nil
			}
		}
		return ErrItemNotFound
	})
	s.logFallback(s.keys.menu, status)
	if err != nil {
		return models.MenuItem{}, wrapOp("set availability", err)
	}
	return updated, nil
}

// SetImage replaces the item's image reference in a single store update.
func (s *Service) SetImage(ctx context.Context, id, ref string) (models.MenuItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.MenuItem{}, ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated models.MenuItem
	_, status, err := store.Modify(ctx, s.store, s.keys.menu, emptyMenu, func(menu *[]models.MenuItem) error {
		for i := range *menu {
			if (*menu)[i].ID == id {
				(*menu)[i].ImageRef = ref
				updated = (*menu)[i]
				return nil
			}
		}
		return ErrItemNotFound
	})
	s.logFallback(s.keys.menu, status)
	if err != nil {
		return models.MenuItem{}, wrapOp("set image", err)
	}
	return updated, nil
}
