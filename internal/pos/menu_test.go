package pos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

func TestSeedOrMigrate_FirstRunWritesSeed(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	svc := newTestService(t, backend, testOptions())

	outcome, err := svc.SeedOrMigrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedWritten, outcome)

	menu := svc.ListMenu(ctx, MenuFilter{})
	require.Len(t, menu, len(DefaultSeed))
	for i, item := range menu {
		assert.Equal(t, DefaultSeed[i].Name, item.Name)
		assert.True(t, item.IsAvailable)
		assert.NotEmpty(t, item.ID)
	}

	version, status := store.Read(ctx, backend, svc.keys.version, 0)
	assert.Equal(t, store.ReadFound, status)
	assert.Equal(t, DataVersion, version)

	outcome, err = svc.SeedOrMigrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedUnchanged, outcome)
	assert.Len(t, svc.ListMenu(ctx, MenuFilter{}), len(DefaultSeed))
}

func TestSeedOrMigrate_CorruptMenuIsReseeded(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	svc := newTestService(t, backend, testOptions())
	require.NoError(t, backend.Save(ctx, svc.keys.menu, []byte("{broken")))

	outcome, err := svc.SeedOrMigrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedWritten, outcome)
	assert.Len(t, svc.ListMenu(ctx, MenuFilter{}), len(DefaultSeed))
}

func TestSeedOrMigrate_VersionBumpOnlyPatchesImages(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	seed := []SeedItem{{Name: "Dosa", Price: money("40"), ImageRef: "new.jpg"}}
	svc := newTestService(t, backend, testOptions(), WithSeed(seed))

	existing := []models.MenuItem{
		{ID: "dosa", Name: "Dosa", Price: money("99"), ImageRef: "old.jpg", IsAvailable: false},
		{ID: "special", Name: "Chef Special", Price: money("120"), ImageRef: "special.jpg", IsAvailable: true},
	}
	require.NoError(t, store.Write(ctx, backend, svc.keys.menu, existing))
	require.NoError(t, store.Write(ctx, backend, svc.keys.version, 1))

	outcome, err := svc.SeedOrMigrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedMigrated, outcome)

	dosa, err := svc.GetItem(ctx, "dosa")
	require.NoError(t, err)
	assertMoney(t, "99.00", dosa.Price)
	assert.False(t, dosa.IsAvailable)
	assert.Equal(t, "new.jpg", dosa.ImageRef)

	special, err := svc.GetItem(ctx, "special")
	require.NoError(t, err)
	assert.Equal(t, "special.jpg", special.ImageRef)

	version, _ := store.Read(ctx, backend, svc.keys.version, 0)
	assert.Equal(t, DataVersion, version)
}

func TestListMenu_Filter(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, nil)

	_, err := svc.SetAvailability(ctx, itemByName(t, svc, "Dosa").ID, false)
	require.NoError(t, err)

	got := svc.ListMenu(ctx, MenuFilter{Query: "  DO "})
	require.Len(t, got, 1)
	assert.Equal(t, "Dosa", got[0].Name)

	assert.Empty(t, svc.ListMenu(ctx, MenuFilter{Query: "dosa", OnlyAvailable: true}))
	assert.Len(t, svc.ListMenu(ctx, MenuFilter{OnlyAvailable: true}), len(DefaultSeed)-1)
}

func TestUpsertItem_CreateAndEdit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, testOptions())

	created, err := svc.UpsertItem(ctx, ItemInput{Name: "  Masala Tea ", Price: money("12.5")})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "Masala Tea", created.Name)
	assert.Equal(t, PlaceholderImage, created.ImageRef)
	assert.True(t, created.IsAvailable)

	edited, err := svc.UpsertItem(ctx, ItemInput{ID: created.ID, Name: "Masala Chai", Price: money("15")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Masala Chai", edited.Name)
	assert.Equal(t, PlaceholderImage, edited.ImageRef)
	assert.True(t, edited.IsAvailable)

	menu := svc.ListMenu(ctx, MenuFilter{})
	require.Len(t, menu, 1)
	assertMoney(t, "15.00", menu[0].Price)
}

func TestUpsertItem_EditKeepsSoldOutFlag(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, nil)
	dosa := itemByName(t, svc, "Dosa")

	_, err := svc.SetAvailability(ctx, dosa.ID, false)
	require.NoError(t, err)

	edited, err := svc.UpsertItem(ctx, ItemInput{ID: dosa.ID, Name: dosa.Name, Price: money("45")})
	require.NoError(t, err)
	assert.False(t, edited.IsAvailable)
	assertMoney(t, "45.00", edited.Price)

	available := true
	edited, err = svc.UpsertItem(ctx, ItemInput{ID: dosa.ID, Name: dosa.Name, Price: money("45"), IsAvailable: &available})
	require.NoError(t, err)
	assert.True(t, edited.IsAvailable)
}

func TestUpsertItem_UnknownIDAppends(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, nil, testOptions())

	saved, err := svc.UpsertItem(ctx, ItemInput{ID: "ghost", Name: "Kesari", Price: money("25"), ImageRef: "kesari.jpg"})
	require.NoError(t, err)
	assert.NotEqual(t, "ghost", saved.ID)
	assert.Equal(t, "kesari.jpg", saved.ImageRef)
	assert.Len(t, svc.ListMenu(ctx, MenuFilter{}), 1)
}

func TestUpsertItem_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, nil)
	before := svc.ListMenu(ctx, MenuFilter{})

	_, err := svc.UpsertItem(ctx, ItemInput{Name: "   ", Price: money("10")})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.UpsertItem(ctx, ItemInput{Name: "Refund", Price: money("-1")})
	assert.ErrorIs(t, err, ErrInvalidItem)

	assert.Equal(t, before, svc.ListMenu(ctx, MenuFilter{}))
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, nil)
	idly := itemByName(t, svc, "Idly")

	require.NoError(t, svc.RemoveItem(ctx, idly.ID))
	require.NoError(t, svc.RemoveItem(ctx, "missing"))

	menu := svc.ListMenu(ctx, MenuFilter{})
	assert.Len(t, menu, len(DefaultSeed)-1)
	_, err := svc.GetItem(ctx, idly.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetAvailability_UnknownItem(t *testing.T) {
	svc := seededService(t, nil)
	_, err := svc.SetAvailability(context.Background(), "missing", true)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetImage(t *testing.T) {
	ctx := context.Background()
	svc := seededService(t, nil)
	vada := itemByName(t, svc, "Vada")

	_, err := svc.SetAvailability(ctx, vada.ID, false)
	require.NoError(t, err)

	updated, err := svc.SetImage(ctx, vada.ID, " data:image/jpeg;base64,AAAA ")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", updated.ImageRef)
	assert.Equal(t, vada.Name, updated.Name)
	assertMoney(t, vada.Price.StringFixed(2), updated.Price)
	assert.False(t, updated.IsAvailable)

	stored, err := svc.GetItem(ctx, vada.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	_, err = svc.SetImage(ctx, "missing", "x.jpg")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.SetImage(ctx, vada.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidItem)
}
