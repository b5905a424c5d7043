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

// DataVersion is bumped whenever DefaultSeed changes in a way existing
// installs should pick up (today: image references).
const DataVersion = 2

type SeedItem struct {
	Name     string
	Price    decimal.Decimal
	ImageRef string
}

var DefaultSeed = []SeedItem{
	{Name: "Idly", Price: decimal.NewFromInt(20), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/4/4f/Idli_Sambar.jpg"},
	{Name: "Dosa", Price: decimal.NewFromInt(40), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/5/5f/Masala_dosa.jpg"},
	{Name: "Poori", Price: decimal.NewFromInt(35), ImageRef: "https://i.pinimg.com/564x/1c/be/ac/1cbeacdf93d762cba6b5fafda2e317ee.jpg"},
	{Name: "Vada", Price: decimal.NewFromInt(15), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/9/9b/Medu_Vada.jpg"},
	{Name: "Pongal", Price: decimal.NewFromInt(30), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/8/89/Ven_Pongal.jpg"},
	{Name: "Coffee", Price: decimal.NewFromInt(20), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/4/45/A_South_Indian_filter_coffee.jpg"},
	{Name: "Puttu", Price: decimal.NewFromInt(45), ImageRef: "https://upload.wikimedia.org/wikipedia/commons/2/26/Puttu_with_kadala_curry.jpg"},
}

type SeedOutcome int

const (
	SeedUnchanged SeedOutcome = iota
	SeedWritten
	SeedMigrated
)

func (o SeedOutcome) String() string {
	switch o {
	case SeedUnchanged:
		return "unchanged"
	case SeedWritten:
		return "seeded"
	case SeedMigrated:
		return "migrated"
	default:
		return "unknown"
	}
}

// SeedOrMigrate writes the seed menu on first run. When the stored data
// version is stale it only refreshes image references of items whose name
// matches a seed item, so prices and availability set by the owner survive.
func (s *Service) SeedOrMigrate(ctx context.Context) (SeedOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	menu, menuStatus := store.Read(ctx, s.store, s.keys.menu, []models.MenuItem(nil))
	s.logFallback(s.keys.menu, menuStatus)
	version, versionStatus := store.Read(ctx, s.store, s.keys.version, 0)
	s.logFallback(s.keys.version, versionStatus)

	if menuStatus != store.ReadFound || menu == nil {
		if err := store.Write(ctx, s.store, s.keys.menu, s.seedMenu()); err != nil {
			return SeedUnchanged, fmt.Errorf("write seed menu: %w", err)
		}
		if err := store.Write(ctx, s.store, s.keys.version, DataVersion); err != nil {
			return SeedUnchanged, fmt.Errorf("stamp data version: %w", err)
		}
		s.logger.Info("menu seeded", zap.Int("items", len(s.seed)), zap.Int("version", DataVersion))
		return SeedWritten, nil
	}

	if version == DataVersion {
		return SeedUnchanged, nil
	}

	images := make(map[string]string, len(s.seed))
	for _, item := range s.seed {
		images[strings.ToLower(item.Name)] = item.ImageRef
	}

	patched := 0
	_, _, err := store.Modify(ctx, s.store, s.keys.menu, func() []models.MenuItem { return menu }, func(items *[]models.MenuItem) error {
		patched = 0
		for i := range *items {
			if img, ok := images[strings.ToLower((*items)[i].Name)]; ok {
				(*items)[i].ImageRef = img
				patched++
			}
		}
		return nil
	})
	if err != nil {
		return SeedUnchanged, fmt.Errorf("migrate menu: %w", err)
	}
	if err := store.Write(ctx, s.store, s.keys.version, DataVersion); err != nil {
		return SeedUnchanged, fmt.Errorf("stamp data version: %w", err)
	}

	s.logger.Info("menu migrated",
		zap.Int("from_version", version),
		zap.Int("to_version", DataVersion),
		zap.Int("patched_items", patched))
	return SeedMigrated, nil
}

func (s *Service) seedMenu() []models.MenuItem {
	items := make([]models.MenuItem, 0, len(s.seed))
	for _, seed := range s.seed {
		items = append(items, models.MenuItem{
			ID:          s.newID(),
			Name:        seed.Name,
			Price:       seed.Price,
			ImageRef:    seed.ImageRef,
			IsAvailable: true,
		})
	}
	return items
}
