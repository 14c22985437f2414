package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	appContext "cleanconnect/internal/context"
	"cleanconnect/internal/database"
	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	valkeymock "github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var entityColumns = []string{"collection", "entity_id", "body", "version", "created_at", "updated_at"}

func setupPostgresStore(t *testing.T) (Store[models.Booking], sqlmock.Sqlmock) {
	gormDB, mock := setupGormDB(t)
	return NewPostgresStore[models.Booking](database.DB{SQL: gormDB}, models.BookingCollection), mock
}

func setupCachedPostgresStore(
	t *testing.T,
) (Store[models.Booking], *gorm.DB, sqlmock.Sqlmock, *valkeymock.Client) {
	gormDB, mock := setupGormDB(t)
	cache := valkeymock.NewClient(gomock.NewController(t))

	db := database.DB{SQL: gormDB, Cache: database.Cache{Entity: cache}}
	return NewPostgresStore[models.Booking](db, models.BookingCollection), gormDB, mock, cache
}

func setupGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func bookingRow(rows *sqlmock.Rows, id string, status models.BookingStatus) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	body := `{"id":"` + id + `","clientId":"client-1","cleanerId":"cleaner-1","serviceId":"service-1",` +
		`"bookingDate":"2025-03-10","status":"` + string(status) + `","address":"1 Admiralty Way",` +
		`"totalCost":5000,"createdAt":"2025-03-01T12:00:00Z","updatedAt":"2025-03-01T12:00:00Z"}`
	return rows.AddRow(models.BookingCollection, id, []byte(body), 1, now, now)
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))

	booking, err := store.Get(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, "booking-1", booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "5000", booking.TotalCost.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnRows(sqlmock.NewRows(entityColumns))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	store, mock := setupPostgresStore(t)

	rows := sqlmock.NewRows(entityColumns)
	bookingRow(rows, "booking-2", models.BookingStatusPending)
	bookingRow(rows, "booking-1", models.BookingStatusApproved)

	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 ORDER BY created_at ASC, entity_id ASC`).
		WithArgs(models.BookingCollection).
		WillReturnRows(rows)

	bookings, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "booking-2", bookings[0].ID)
	assert.Equal(t, models.BookingStatusApproved, bookings[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateConflict(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`INSERT INTO "entities" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.Create(context.Background(), models.Booking{ID: "booking-1"})
	assert.ErrorIs(t, err, types.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateRequiresID(t *testing.T) {
	store, mock := setupPostgresStore(t)

	_, err := store.Create(context.Background(), models.Booking{})
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MutateLocksAndUpdates(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 AND entity_id = \$2 .*FOR UPDATE`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))
	mock.ExpectExec(`UPDATE "entities" SET .*"version"=version \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := store.Mutate(context.Background(), "booking-1", func(b *models.Booking) error {
		b.Status = models.BookingStatusConfirmed
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MutateGuardRollsBack(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "entities" .*FOR UPDATE`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusApproved))
	mock.ExpectRollback()

	guard := errors.New("booking is closed")
	_, err := store.Mutate(context.Background(), "booking-1", func(b *models.Booking) error {
		return guard
	})
	assert.Equal(t, guard, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MutateNotFound(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "entities" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(entityColumns))
	mock.ExpectRollback()

	_, err := store.Mutate(context.Background(), "missing", func(b *models.Booking) error { return nil })
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteMissing(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`DELETE FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSeedSkipsPopulatedCollection(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "entities" WHERE collection = \$1`).
		WithArgs(models.BookingCollection).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	called := false
	inserted, err := store.EnsureSeed(context.Background(), func() ([]models.Booking, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSeedInsertsBatch(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "entities" WHERE collection = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "entities" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	inserted, err := store.EnsureSeed(context.Background(), func() ([]models.Booking, error) {
		return []models.Booking{{ID: "booking-1"}, {ID: "booking-2"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

const bookingCacheKey = "entity:bookings:booking-1"

func TestPostgresStore_GetReadsThroughCache(t *testing.T) {
	store, _, mock, cache := setupCachedPostgresStore(t)

	cache.EXPECT().
		Do(gomock.Any(), valkeymock.Match("GET", bookingCacheKey)).
		Return(valkeymock.Result(valkeymock.ValkeyNil()))
	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))
	cache.EXPECT().
		Do(gomock.Any(), valkeymock.MatchFn(func(cmd []string) bool {
			return len(cmd) == 5 && cmd[0] == "SET" && cmd[1] == bookingCacheKey &&
				cmd[3] == "EX" && cmd[4] == "3600"
		}, "SET booking-1 EX 3600")).
		Return(valkeymock.Result(valkeymock.ValkeyString("OK")))

	booking, err := store.Get(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetServesCachedRecord(t *testing.T) {
	store, _, mock, cache := setupCachedPostgresStore(t)

	cached := `{"id":"booking-1","clientId":"client-1","cleanerId":"cleaner-1","status":"confirmed","totalCost":5000}`
	cache.EXPECT().
		Do(gomock.Any(), valkeymock.Match("GET", bookingCacheKey)).
		Return(valkeymock.Result(valkeymock.ValkeyString(cached)))

	booking, err := store.Get(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet(), "cache hits skip the database")
}

func TestPostgresStore_GetInTransactionBypassesCache(t *testing.T) {
	store, gormDB, mock, _ := setupCachedPostgresStore(t)

	mock.ExpectBegin()
	tx := gormDB.Begin()
	require.NoError(t, tx.Error)

	mock.ExpectQuery(`SELECT \* FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))

	_, err := store.Get(appContext.WithTransaction(context.Background(), tx), "booking-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MutateClearsCache(t *testing.T) {
	store, _, mock, cache := setupCachedPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "entities" .*FOR UPDATE`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))
	mock.ExpectExec(`UPDATE "entities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	cache.EXPECT().
		Do(gomock.Any(), valkeymock.Match("DEL", bookingCacheKey)).
		Return(valkeymock.Result(valkeymock.ValkeyInt64(1)))

	_, err := store.Mutate(context.Background(), "booking-1", func(b *models.Booking) error {
		b.Status = models.BookingStatusConfirmed
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MutateInTransactionClearsCacheAgainAfterCommit(t *testing.T) {
	store, gormDB, mock, cache := setupCachedPostgresStore(t)

	mock.ExpectBegin()
	tx := gormDB.Begin()
	require.NoError(t, tx.Error)

	mock.ExpectQuery(`SELECT \* FROM "entities" .*FOR UPDATE`).
		WillReturnRows(bookingRow(sqlmock.NewRows(entityColumns), "booking-1", models.BookingStatusPending))
	mock.ExpectExec(`UPDATE "entities" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deletes := 0
	cache.EXPECT().
		Do(gomock.Any(), valkeymock.Match("DEL", bookingCacheKey)).
		Do(func(context.Context, valkey.Completed) { deletes++ }).
		Return(valkeymock.Result(valkeymock.ValkeyInt64(1))).
		Times(2)

	ctx, afterCommit := appContext.WithAfterCommit(context.Background())
	ctx = appContext.WithTransaction(ctx, tx)

	_, err := store.Mutate(ctx, "booking-1", func(b *models.Booking) error {
		b.Status = models.BookingStatusConfirmed
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deletes)

	afterCommit()
	assert.Equal(t, 2, deletes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteClearsCache(t *testing.T) {
	store, _, mock, cache := setupCachedPostgresStore(t)

	mock.ExpectExec(`DELETE FROM "entities" WHERE collection = \$1 AND entity_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	cache.EXPECT().
		Do(gomock.Any(), valkeymock.Match("DEL", bookingCacheKey)).
		Return(valkeymock.Result(valkeymock.ValkeyInt64(1)))

	require.NoError(t, store.Delete(context.Background(), "booking-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
