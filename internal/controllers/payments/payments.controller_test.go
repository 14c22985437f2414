package paymentsController

import (
	"context"
	"testing"
	"time"

	"cleanconnect/config"
	"cleanconnect/internal/database"
	"cleanconnect/internal/events"
	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/seed"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx        context.Context
	repos      repositories.Repository
	bus        *events.EventBus
	controller PaymentsControllerInterface
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	repos := repositories.New(database.DB{})
	service := services.New(database.DB{}, config.Config{AuthMode: config.AuthModeStatic}, repos)
	service.Clock = func() time.Time { return now }

	hash := func(p string) (string, error) { return p, nil }
	require.NoError(t, repos.EnsureSeed(ctx, seed.Data(hash, now)))

	bus := events.New(nil)
	t.Cleanup(func() { _ = bus.Close() })

	return fixture{ctx: ctx, repos: repos, bus: bus, controller: New(repos, service, bus)}
}

func (f fixture) user(t *testing.T, id string) *models.User {
	t.Helper()
	user, err := f.repos.User.Get(f.ctx, id)
	require.NoError(t, err)
	return &user
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestNotify(t *testing.T) {
	f := setup(t)
	cleaner := f.user(t, "cleaner-3")

	updated, err := f.controller.Notify(f.ctx, cleaner, NotifyRequest{Type: models.PaymentTypeFeatured, Amount: amount(5000)})
	require.NoError(t, err)
	require.NotNil(t, updated.FeaturedPaymentStatus)
	assert.Equal(t, models.PaymentStatusPending, *updated.FeaturedPaymentStatus)
	assert.Empty(t, updated.PasswordHash)

	pending, found, err := f.repos.Payment.FindPending(f.ctx, "cleaner-3", models.PaymentTypeFeatured)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Sparkle Crew Ltd", pending.CleanerName)
	assert.Equal(t, now, pending.CreatedAt)

	t.Run("duplicate pending notification", func(t *testing.T) {
		_, err := f.controller.Notify(f.ctx, cleaner, NotifyRequest{Type: models.PaymentTypeFeatured, Amount: amount(5000)})
		assert.ErrorIs(t, err, types.ErrConflict)
	})

	t.Run("missing details", func(t *testing.T) {
		_, err := f.controller.Notify(f.ctx, cleaner, NotifyRequest{Type: models.PaymentTypePremium})
		require.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "Missing payment details.", types.Message(err))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := f.controller.Notify(f.ctx, cleaner, NotifyRequest{Type: "gold", Amount: amount(1)})
		assert.ErrorIs(t, err, types.ErrValidation)
	})

	t.Run("client cannot notify", func(t *testing.T) {
		_, err := f.controller.Notify(f.ctx, f.user(t, "client-1"), NotifyRequest{Type: models.PaymentTypePremium, Amount: amount(1)})
		assert.ErrorIs(t, err, types.ErrForbidden)
	})
}

func TestListPending(t *testing.T) {
	f := setup(t)

	payments, err := f.controller.ListPending(f.ctx, f.user(t, "admin-1"))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "payment-1", payments[0].ID)

	_, err = f.controller.ListPending(f.ctx, f.user(t, "client-1"))
	assert.ErrorIs(t, err, types.ErrForbidden)
}

func TestDecide_PremiumApproval(t *testing.T) {
	f := setup(t)
	admin := f.user(t, "admin-1")

	received := make(chan events.Event, 1)
	require.NoError(t, f.bus.Subscribe(events.NOTIFICATION_CHANNEL, func(event events.Event) error {
		received <- event
		return nil
	}))

	payment, err := f.controller.Decide(f.ctx, admin, "payment-1", DecisionRequest{Status: models.PaymentStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusApproved, payment.Status)
	require.NotNil(t, payment.ProcessedAt)
	assert.Equal(t, now, *payment.ProcessedAt)

	cleaner := f.user(t, "cleaner-2")
	assert.True(t, cleaner.IsPremium)
	require.NotNil(t, cleaner.SubscriptionExpiresAt)
	assert.Equal(t, now.Add(30*24*time.Hour), *cleaner.SubscriptionExpiresAt)
	assert.Equal(t, models.PaymentStatusApproved, *cleaner.PremiumPaymentStatus)

	select {
	case event := <-received:
		assert.Equal(t, events.PAYMENT_DECISION, event.Type)
		assert.Equal(t, []string{"cleaner-2"}, event.UserIDs)
	case <-time.After(time.Second):
		t.Fatal("no notification published")
	}

	t.Run("second decision is rejected", func(t *testing.T) {
		_, err := f.controller.Decide(f.ctx, admin, "payment-1", DecisionRequest{Status: models.PaymentStatusDeclined})
		require.ErrorIs(t, err, types.ErrConflict)
		assert.Equal(t, "Payment has already been processed.", types.Message(err))
	})
}

func TestDecide_Featured(t *testing.T) {
	f := setup(t)
	admin := f.user(t, "admin-1")

	_, err := f.controller.Notify(f.ctx, f.user(t, "cleaner-3"), NotifyRequest{Type: models.PaymentTypeFeatured, Amount: amount(5000)})
	require.NoError(t, err)
	pending, _, err := f.repos.Payment.FindPending(f.ctx, "cleaner-3", models.PaymentTypeFeatured)
	require.NoError(t, err)

	_, err = f.controller.Decide(f.ctx, admin, pending.ID, DecisionRequest{Status: models.PaymentStatusApproved})
	require.NoError(t, err)

	cleaner := f.user(t, "cleaner-3")
	require.NotNil(t, cleaner.FeaturedUntil)
	assert.Equal(t, now.Add(7*24*time.Hour), *cleaner.FeaturedUntil)
	assert.False(t, cleaner.IsPremium)
}

func TestDecide_Declined(t *testing.T) {
	f := setup(t)

	_, err := f.controller.Decide(f.ctx, f.user(t, "admin-1"), "payment-1", DecisionRequest{Status: models.PaymentStatusDeclined})
	require.NoError(t, err)

	cleaner := f.user(t, "cleaner-2")
	assert.False(t, cleaner.IsPremium)
	assert.Nil(t, cleaner.SubscriptionExpiresAt)
	assert.Equal(t, models.PaymentStatusDeclined, *cleaner.PremiumPaymentStatus)
}

func TestDecide_Errors(t *testing.T) {
	f := setup(t)
	admin := f.user(t, "admin-1")

	tests := []struct {
		name    string
		caller  *models.User
		id      string
		status  models.PaymentStatus
		wantErr error
		wantMsg string
	}{
		{name: "missing status", caller: admin, id: "payment-1", wantErr: types.ErrValidation, wantMsg: "Status is required."},
		{name: "bad status", caller: admin, id: "payment-1", status: "pending", wantErr: types.ErrValidation},
		{name: "unknown payment", caller: admin, id: "nope", status: models.PaymentStatusApproved, wantErr: types.ErrNotFound, wantMsg: "Payment not found."},
		{name: "not admin", caller: f.user(t, "cleaner-2"), id: "payment-1", status: models.PaymentStatusApproved, wantErr: types.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.controller.Decide(f.ctx, tt.caller, tt.id, DecisionRequest{Status: tt.status})
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, types.Message(err))
			}
		})
	}
}
