package repositories

import (
	"context"
	"testing"

	"cleanconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededUserRepository(t *testing.T) UserRepository {
	repo := newUserRepository(NewMemoryStore[models.User](models.UserCollection))

	users := []models.User{
		{ID: "admin-1", Name: "Admin", Email: "admin@cleanconnect.ng", Role: models.RoleAdmin},
		{ID: "client-1", Name: "Tunde", Email: "tunde@example.com", Role: models.RoleClient},
		{
			ID:             "cleaner-1",
			Name:           "Aisha",
			Email:          "aisha@example.com",
			Role:           models.RoleCleaner,
			CleanerProfile: &models.CleanerProfile{State: "Lagos", City: "Lekki"},
		},
		{ID: "client-2", Name: "Ngozi", Email: "ngozi@example.com", Role: models.RoleClient},
	}
	for _, user := range users {
		_, err := repo.Create(context.Background(), user)
		require.NoError(t, err)
	}
	return repo
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := seededUserRepository(t)
	ctx := context.Background()

	user, found, err := repo.FindByEmail(ctx, "aisha@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "cleaner-1", user.ID)

	_, found, err = repo.FindByEmail(ctx, "AISHA@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepository_FirstByRole(t *testing.T) {
	repo := seededUserRepository(t)
	ctx := context.Background()

	user, found, err := repo.FirstByRole(ctx, models.RoleClient)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "client-1", user.ID)

	empty := newUserRepository(NewMemoryStore[models.User](models.UserCollection))
	_, found, err = empty.FirstByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepository_ListCleaners(t *testing.T) {
	repo := seededUserRepository(t)

	cleaners, err := repo.ListCleaners(context.Background())
	require.NoError(t, err)
	require.Len(t, cleaners, 1)
	assert.Equal(t, "Aisha", cleaners[0].Name)
}

func TestRepository_FilteredLists(t *testing.T) {
	ctx := context.Background()
	bookings := &bookingRepository{Store: NewMemoryStore[models.Booking](models.BookingCollection)}
	payments := &paymentRepository{Store: NewMemoryStore[models.Payment](models.PaymentCollection)}

	for _, b := range []models.Booking{
		{ID: "b1", ClientID: "client-1", CleanerID: "cleaner-1"},
		{ID: "b2", ClientID: "client-2", CleanerID: "cleaner-1"},
		{ID: "b3", ClientID: "client-1", CleanerID: "cleaner-2"},
	} {
		_, err := bookings.Create(ctx, b)
		require.NoError(t, err)
	}

	byClient, err := bookings.ListByClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	byCleaner, err := bookings.ListByCleaner(ctx, "cleaner-1")
	require.NoError(t, err)
	assert.Len(t, byCleaner, 2)

	for _, p := range []models.Payment{
		{ID: "p1", CleanerID: "cleaner-1", Type: models.PaymentTypePremium, Status: models.PaymentStatusApproved},
		{ID: "p2", CleanerID: "cleaner-1", Type: models.PaymentTypeFeatured, Status: models.PaymentStatusPending},
	} {
		_, err := payments.Create(ctx, p)
		require.NoError(t, err)
	}

	pending, err := payments.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "p2", pending[0].ID)

	_, found, err := payments.FindPending(ctx, "cleaner-1", models.PaymentTypePremium)
	require.NoError(t, err)
	assert.False(t, found)

	payment, found, err := payments.FindPending(ctx, "cleaner-1", models.PaymentTypeFeatured)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "p2", payment.ID)
}
