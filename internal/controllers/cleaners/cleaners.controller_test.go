package cleanersController

import (
	"context"
	"testing"
	"time"

	"cleanconnect/config"
	"cleanconnect/internal/database"
	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/seed"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (context.Context, repositories.Repository, CleanersControllerInterface) {
	t.Helper()

	ctx := context.Background()
	repos := repositories.New(database.DB{})
	service := services.New(database.DB{}, config.Config{AuthMode: config.AuthModeStatic}, repos)
	service.Clock = func() time.Time { return now }

	hash := func(p string) (string, error) { return p, nil }
	require.NoError(t, repos.EnsureSeed(ctx, seed.Data(hash, now)))

	return ctx, repos, New(repos, service)
}

func ids(listings []CleanerListing) []string {
	out := make([]string, 0, len(listings))
	for _, listing := range listings {
		out = append(out, listing.ID)
	}
	return out
}

func TestList(t *testing.T) {
	ctx, _, controller := setup(t)

	tests := []struct {
		name  string
		query ListQuery
		want  []string
	}{
		{name: "all cleaners featured first", want: []string{"cleaner-1", "cleaner-2", "cleaner-3"}},
		{name: "state and city", query: ListQuery{State: "Lagos", City: "Lekki"}, want: []string{"cleaner-1"}},
		{name: "city elsewhere", query: ListQuery{State: "Lagos", City: "Abuja"}, want: []string{}},
		{name: "city only", query: ListQuery{City: "Abuja"}, want: []string{"cleaner-2"}},
		{name: "name query is case-insensitive", query: ListQuery{Query: "sparkle"}, want: []string{"cleaner-3"}},
		{name: "query matches state", query: ListQuery{Query: "rivers"}, want: []string{"cleaner-3"}},
		{
			name:  "every specialty required",
			query: ListQuery{Specialties: []string{"Deep Cleaning", "Office Cleaning"}},
			want:  []string{"cleaner-3"},
		},
		{name: "limit", query: ListQuery{Limit: 2}, want: []string{"cleaner-1", "cleaner-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings, err := controller.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(listings))
		})
	}
}

func TestList_FeaturedFirstAndStartingPrice(t *testing.T) {
	ctx, repos, controller := setup(t)

	until := now.Add(48 * time.Hour)
	_, err := repos.User.Mutate(ctx, "cleaner-3", func(user *models.User) error {
		user.FeaturedUntil = &until
		return nil
	})
	require.NoError(t, err)
	_, err = repos.User.Mutate(ctx, "cleaner-1", func(user *models.User) error {
		expired := now.Add(-time.Hour)
		user.FeaturedUntil = &expired
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, repos.Service.Delete(ctx, "service-3"))

	listings, err := controller.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{"cleaner-3", "cleaner-1", "cleaner-2"}, ids(listings))

	assert.True(t, listings[0].StartingPrice.Equal(seed.Services()[3].Price))
	assert.True(t, listings[1].StartingPrice.Equal(seed.Services()[0].Price))
	assert.True(t, listings[2].StartingPrice.Equal(DefaultStartingPrice))

	for _, listing := range listings {
		assert.Empty(t, listing.PasswordHash)
	}
}

func TestGet(t *testing.T) {
	ctx, _, controller := setup(t)

	detail, err := controller.Get(ctx, "cleaner-1")
	require.NoError(t, err)
	assert.Equal(t, "Aisha Bello", detail.Name)
	assert.Empty(t, detail.PasswordHash)
	assert.Len(t, detail.Services, 2)
	assert.Len(t, detail.Reviews, 1)

	_, err = controller.Get(ctx, "client-1")
	require.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, "Cleaner not found", types.Message(err))

	_, err = controller.Get(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
