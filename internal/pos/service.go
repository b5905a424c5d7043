// Package pos holds the point-of-sale core: menu catalog, cart engine,
// sales ledger, report aggregation and payment settings.
//
// All state lives in a store.Backend. Service serializes its operations so
// that each one runs to completion before the next starts, the same
// contract a single counter terminal has.
package pos

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"restaurant-pos/config"
	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

const (
	DefaultPaymentMethod = "UPI"
	PlaceholderImage     = "assets/menu/placeholder.svg"
)

type Options struct {
	Namespace      string
	ShopName       string
	ShopAddress    string
	DefaultUPIID   string
	TaxRatePercent decimal.Decimal
	PaymentMethod  string
	Location       *time.Location
}

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Namespace:      cfg.Store.Namespace,
		ShopName:       cfg.Shop.Name,
		ShopAddress:    cfg.Shop.Address,
		DefaultUPIID:   cfg.Shop.DefaultUPIID,
		TaxRatePercent: cfg.Shop.TaxRatePercent,
		PaymentMethod:  cfg.Shop.PaymentMethod,
		Location:       cfg.Shop.Location,
	}
}

type keys struct {
	menu     string
	cart     string
	sales    string
	version  string
	settings string
}

func newKeys(namespace string) keys {
	if namespace == "" {
		namespace = "restaurant"
	}
	return keys{
		menu:     namespace + ".menu",
		cart:     namespace + ".cart",
		sales:    namespace + ".sales",
		version:  namespace + ".version",
		settings: namespace + ".settings",
	}
}

type Service struct {
	mu        sync.Mutex
	store     store.Backend
	opts      Options
	keys      keys
	logger    *zap.Logger
	publisher Publisher
	seed      []SeedItem
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithSeed(seed []SeedItem) Option {
	return func(s *Service) { s.seed = seed }
}

func NewService(backend store.Backend, opts Options, logger *zap.Logger, options ...Option) *Service {
	if opts.PaymentMethod == "" {
		opts.PaymentMethod = DefaultPaymentMethod
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:     backend,
		opts:      opts,
		keys:      newKeys(opts.Namespace),
		logger:    logger,
		publisher: NopPublisher{},
		seed:      DefaultSeed,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *Service) Options() Options {
	return s.opts
}

// logFallback records a read that had to substitute a default value.
func (s *Service) logFallback(key string, status store.ReadStatus) {
	if status == store.ReadFallback {
		s.logger.Warn("stored value unreadable, using default", zap.String("key", key))
	}
}

func (s *Service) loadMenu(ctx context.Context) []models.MenuItem {
	menu, status := store.Read(ctx, s.store, s.keys.menu, []models.MenuItem{})
	s.logFallback(s.keys.menu, status)
	if menu == nil {
		menu = []models.MenuItem{}
	}
	return menu
}

func (s *Service) loadCart(ctx context.Context) models.Cart {
	cart, status := store.Read(ctx, s.store, s.keys.cart, models.EmptyCart())
	s.logFallback(s.keys.cart, status)
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	return RecalcTotals(cart, s.opts.TaxRatePercent)
}

func (s *Service) loadSales(ctx context.Context) []models.Sale {
	sales, status := store.Read(ctx, s.store, s.keys.sales, []models.Sale{})
	s.logFallback(s.keys.sales, status)
	return sales
}
