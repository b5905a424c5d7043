package pos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

var errDiskFull = errors.New("disk full")

var fixedNow = time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

// faultyBackend fails Save or Update for the configured keys.
type faultyBackend struct {
	store.Backend
	failSave   map[string]bool
	failUpdate map[string]bool
}

func (f *faultyBackend) Save(ctx context.Context, key string, value []byte) error {
	if f.failSave[key] {
		return errDiskFull
	}
	return f.Backend.Save(ctx, key, value)
}

func (f *faultyBackend) Update(ctx context.Context, key string, fn store.UpdateFunc) error {
	if f.failUpdate[key] {
		return errDiskFull
	}
	return f.Backend.Update(ctx, key, fn)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testOptions() Options {
	return Options{
		Namespace:      "test",
		ShopName:       "Test Kitchen",
		ShopAddress:    "1 Test Street",
		DefaultUPIID:   "default@upi",
		TaxRatePercent: decimal.Zero,
		Location:       time.UTC,
	}
}

func newTestService(t *testing.T, backend store.Backend, opts Options, extra ...Option) *Service {
	t.Helper()
	if backend == nil {
		backend = store.NewMemoryBackend()
	}
	options := append([]Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	}, extra...)
	return NewService(backend, opts, zap.NewNop(), options...)
}

// seededService returns a service whose menu holds the default seed.
func seededService(t *testing.T, backend store.Backend, extra ...Option) *Service {
	t.Helper()
	svc := newTestService(t, backend, testOptions(), extra...)
	_, err := svc.SeedOrMigrate(context.Background())
	require.NoError(t, err)
	return svc
}

func itemByName(t *testing.T, svc *Service, name string) models.MenuItem {
	t.Helper()
	for _, item := range svc.ListMenu(context.Background(), MenuFilter{}) {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("menu item %q not found", name)
	return models.MenuItem{}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}
