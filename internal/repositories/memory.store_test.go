package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(id, cleanerID string, price int64) models.Service {
	return models.Service{
		ID:        id,
		CleanerID: cleanerID,
		Name:      "Service " + id,
		Price:     decimal.NewFromInt(price),
		PriceUnit: models.PriceUnitFlatRate,
	}
}

func TestMemoryStore_CreateGetList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.Service](models.ServiceCollection)

	for _, id := range []string{"svc-3", "svc-1", "svc-2"} {
		_, err := store.Create(ctx, newTestService(id, "cleaner-1", 5000))
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Service svc-1", got.Name)
	assert.True(t, decimal.NewFromInt(5000).Equal(got.Price))

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "svc-3", items[0].ID)
	assert.Equal(t, "svc-1", items[1].ID)
	assert.Equal(t, "svc-2", items[2].ID)

	exists, err := store.Exists(ctx, "svc-2")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_CreateErrors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.Service](models.ServiceCollection)

	_, err := store.Create(ctx, newTestService("", "cleaner-1", 100))
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = store.Create(ctx, newTestService("svc-1", "cleaner-1", 100))
	require.NoError(t, err)

	_, err = store.Create(ctx, newTestService("svc-1", "cleaner-2", 200))
	assert.ErrorIs(t, err, types.ErrConflict)

	got, err := store.Get(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "cleaner-1", got.CleanerID)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore[models.Booking](models.BookingCollection)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestMemoryStore_Mutate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.Booking](models.BookingCollection)

	_, err := store.Create(ctx, models.Booking{ID: "booking-1", Status: models.BookingStatusPending})
	require.NoError(t, err)

	t.Run("Applies change", func(t *testing.T) {
		updated, err := store.Mutate(ctx, "booking-1", func(b *models.Booking) error {
			b.Status = models.BookingStatusConfirmed
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

		got, err := store.Get(ctx, "booking-1")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	})

	t.Run("Error aborts the write", func(t *testing.T) {
		guard := errors.New("guard failed")
		_, err := store.Mutate(ctx, "booking-1", func(b *models.Booking) error {
			b.Status = models.BookingStatusCancelled
			return guard
		})
		assert.Equal(t, guard, err)

		got, err := store.Get(ctx, "booking-1")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, got.Status)
	})

	t.Run("Id cannot change", func(t *testing.T) {
		_, err := store.Mutate(ctx, "booking-1", func(b *models.Booking) error {
			b.ID = "booking-2"
			return nil
		})
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("Missing record", func(t *testing.T) {
		_, err := store.Mutate(ctx, "missing", func(b *models.Booking) error { return nil })
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestMemoryStore_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.User](models.UserCollection)

	_, err := store.Create(ctx, models.User{
		ID:             "cleaner-1",
		Role:           models.RoleCleaner,
		CleanerProfile: &models.CleanerProfile{Specialties: []string{"Laundry"}},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "cleaner-1")
	require.NoError(t, err)
	got.Specialties[0] = "Changed"
	got.Rating = 5

	again, err := store.Get(ctx, "cleaner-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Laundry"}, again.Specialties)
	assert.Equal(t, float64(0), again.Rating)
}

func TestMemoryStore_ConcurrentMutate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.User](models.UserCollection)

	_, err := store.Create(ctx, models.User{
		ID:             "cleaner-1",
		Role:           models.RoleCleaner,
		CleanerProfile: &models.CleanerProfile{},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Mutate(ctx, "cleaner-1", func(u *models.User) error {
				u.ReviewsCount++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "cleaner-1")
	require.NoError(t, err)
	assert.Equal(t, 50, got.ReviewsCount)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.Service](models.ServiceCollection)

	for _, id := range []string{"svc-1", "svc-2", "svc-3"} {
		_, err := store.Create(ctx, newTestService(id, "cleaner-1", 100))
		require.NoError(t, err)
	}

	require.NoError(t, store.Delete(ctx, "svc-2"))
	assert.ErrorIs(t, store.Delete(ctx, "svc-2"), types.ErrNotFound)

	items, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "svc-1", items[0].ID)
	assert.Equal(t, "svc-3", items[1].ID)
}

func TestMemoryStore_EnsureSeed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[models.Service](models.ServiceCollection)

	calls := 0
	seed := func() ([]models.Service, error) {
		calls++
		return []models.Service{
			newTestService("svc-1", "cleaner-1", 5000),
			newTestService("svc-2", "cleaner-1", 7500),
		}, nil
	}

	inserted, err := store.EnsureSeed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = store.EnsureSeed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 1, calls, "seed is only built for an empty collection")

	items, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestMemoryStore_EnsureSeedError(t *testing.T) {
	store := NewMemoryStore[models.Service](models.ServiceCollection)

	_, err := store.EnsureSeed(context.Background(), func() ([]models.Service, error) {
		return nil, errors.New("no seed")
	})
	assert.Error(t, err)
}
