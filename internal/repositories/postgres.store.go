package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cleanconnect/internal/constants"
	appContext "cleanconnect/internal/context"
	"cleanconnect/internal/database"
	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityWhere = "collection = ? AND entity_id = ?"

// postgresStore keeps every collection in the shared entities table, one
// jsonb row per record. Reads outside a transaction go through the entity cache.
type postgresStore[T models.Entity] struct {
	db         database.DB
	collection string
	log        logger.Logger
	now        func() time.Time
}

func NewPostgresStore[T models.Entity](db database.DB, collection string) Store[T] {
	return &postgresStore[T]{
		db:         db,
		collection: collection,
		log:        logger.New("postgresStore:" + collection),
		now:        time.Now,
	}
}

func (s *postgresStore[T]) Collection() string {
	return s.collection
}

func (s *postgresStore[T]) conn(ctx context.Context) *gorm.DB {
	return appContext.DBFromContext(ctx, s.db.SQL)
}

func (s *postgresStore[T]) List(ctx context.Context) ([]T, error) {
	log := s.log.Function("List")

	var records []models.EntityRecord
	if err := s.conn(ctx).
		Where("collection = ?", s.collection).
		Order("created_at ASC, entity_id ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to list records", err)
	}

	items := make([]T, 0, len(records))
	for _, record := range records {
		item, err := decodeRecord[T](record)
		if err != nil {
			return nil, log.Err("failed to decode record", err, "id", record.EntityID)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *postgresStore[T]) Get(ctx context.Context, id string) (T, error) {
	log := s.log.Function("Get")

	var item T
	_, inTx := appContext.GetTransaction(ctx)
	if !inTx {
		if found := s.getCache(ctx, id, &item); found {
			return item, nil
		}
	}

	var record models.EntityRecord
	err := s.conn(ctx).Where(entityWhere, s.collection, id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, log.ErrorWithType(types.ErrNotFound, "record not found", "id", id)
	}
	if err != nil {
		return item, log.Err("failed to get record", err, "id", id)
	}

	item, err = decodeRecord[T](record)
	if err != nil {
		return item, log.Err("failed to decode record", err, "id", id)
	}

	if !inTx {
		s.setCache(ctx, item)
	}
	return item, nil
}

func (s *postgresStore[T]) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.conn(ctx).
		Model(&models.EntityRecord{}).
		Where(entityWhere, s.collection, id).
		Count(&count).Error; err != nil {
		return false, s.log.Function("Exists").Err("failed to count record", err, "id", id)
	}
	return count > 0, nil
}

func (s *postgresStore[T]) Create(ctx context.Context, item T) (T, error) {
	log := s.log.Function("Create")

	id := item.GetID()
	if id == "" {
		return item, log.ErrorWithType(types.ErrValidation, "record id is required")
	}

	record, err := s.newRecord(item, s.now())
	if err != nil {
		return item, log.Err("failed to encode record", err, "id", id)
	}

	result := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if result.Error != nil {
		return item, log.Err("failed to create record", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return item, log.ErrorWithType(types.ErrConflict, "record already exists", "id", id)
	}

	return item, nil
}

// Mutate locks the row for the read-modify-write so concurrent writers of
// the same record are serialized.
func (s *postgresStore[T]) Mutate(ctx context.Context, id string, fn MutateFunc[T]) (T, error) {
	log := s.log.Function("Mutate")

	var updated T
	mutate := func(tx *gorm.DB) error {
		var record models.EntityRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(entityWhere, s.collection, id).
			Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(types.ErrNotFound, "record not found", "id", id)
		}
		if err != nil {
			return log.Err("failed to lock record", err, "id", id)
		}

		item, err := decodeRecord[T](record)
		if err != nil {
			return log.Err("failed to decode record", err, "id", id)
		}

		if err := fn(&item); err != nil {
			return err
		}

		if item.GetID() != id {
			return log.ErrorWithType(types.ErrValidation, "record id cannot change", "id", id)
		}

		body, err := json.Marshal(item)
		if err != nil {
			return log.Err("failed to encode record", err, "id", id)
		}

		if err := tx.Model(&models.EntityRecord{}).
			Where(entityWhere, s.collection, id).
			Updates(map[string]any{
				"body":       datatypes.JSON(body),
				"version":    gorm.Expr("version + 1"),
				"updated_at": s.now(),
			}).Error; err != nil {
			return log.Err("failed to update record", err, "id", id)
		}

		updated = item
		return nil
	}

	var err error
	if tx, ok := appContext.GetTransaction(ctx); ok {
		err = mutate(tx)
	} else {
		err = s.db.SQLWithContext(ctx).Transaction(mutate)
	}
	if err != nil {
		return updated, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

func (s *postgresStore[T]) Delete(ctx context.Context, id string) error {
	log := s.log.Function("Delete")

	result := s.conn(ctx).Where(entityWhere, s.collection, id).Delete(&models.EntityRecord{})
	if result.Error != nil {
		return log.Err("failed to delete record", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.ErrorWithType(types.ErrNotFound, "record not found", "id", id)
	}

	s.invalidate(ctx, id)
	return nil
}

// EnsureSeed inserts the seed records when the collection is empty. Conflicting
// ids are skipped, so concurrent seeding converges on one copy.
func (s *postgresStore[T]) EnsureSeed(ctx context.Context, seed SeedFunc[T]) (int, error) {
	log := s.log.Function("EnsureSeed")

	var count int64
	if err := s.conn(ctx).
		Model(&models.EntityRecord{}).
		Where("collection = ?", s.collection).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count collection", err)
	}
	if count > 0 {
		return 0, nil
	}

	items, err := seed()
	if err != nil {
		return 0, log.Err("failed to build seed records", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	// Spread creation times so List keeps the seed order.
	base := s.now()
	records := make([]models.EntityRecord, 0, len(items))
	for i, item := range items {
		record, err := s.newRecord(item, base.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return 0, log.Err("failed to encode seed record", err, "id", item.GetID())
		}
		records = append(records, record)
	}

	result := s.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
	if result.Error != nil {
		return 0, log.Err("failed to insert seed records", result.Error)
	}

	log.Info("Seeded collection", "count", result.RowsAffected)
	return int(result.RowsAffected), nil
}

func (s *postgresStore[T]) newRecord(item T, createdAt time.Time) (models.EntityRecord, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return models.EntityRecord{}, err
	}

	return models.EntityRecord{
		Collection: s.collection,
		EntityID:   item.GetID(),
		Body:       datatypes.JSON(body),
		Version:    1,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil
}

func decodeRecord[T models.Entity](record models.EntityRecord) (T, error) {
	var item T
	err := json.Unmarshal(record.Body, &item)
	return item, err
}

func (s *postgresStore[T]) cacheBuilder(id string) *database.CacheBuilder {
	return database.NewCacheBuilder(s.db.Cache.Entity, id).
		WithHash(constants.EntityCachePrefix + ":" + s.collection)
}

func (s *postgresStore[T]) getCache(ctx context.Context, id string, item *T) bool {
	if !s.db.HasCache() {
		return false
	}

	found, err := s.cacheBuilder(id).WithContext(ctx).Get(item)
	if err != nil {
		s.log.Function("getCache").Warn("failed to read record from cache", "id", id, "error", err)
		return false
	}
	return found
}

func (s *postgresStore[T]) setCache(ctx context.Context, item T) {
	if !s.db.HasCache() {
		return
	}

	if err := s.cacheBuilder(item.GetID()).
		WithStruct(item).
		WithTTL(constants.EntityCacheExpiry).
		WithContext(ctx).
		Set(); err != nil {
		s.log.Function("setCache").Warn("failed to cache record", "id", item.GetID(), "error", err)
	}
}

// invalidate clears the cached record now and, inside a transaction, again
// after commit so a read racing the commit cannot leave the old row cached.
func (s *postgresStore[T]) invalidate(ctx context.Context, id string) {
	s.deleteCache(ctx, id)
	if _, inTx := appContext.GetTransaction(ctx); inTx {
		appContext.AfterCommit(ctx, func() { s.deleteCache(ctx, id) })
	}
}

func (s *postgresStore[T]) deleteCache(ctx context.Context, id string) {
	if !s.db.HasCache() {
		return
	}

	if err := s.cacheBuilder(id).WithContext(ctx).Delete(); err != nil {
		s.log.Function("deleteCache").Warn("failed to clear cached record", "id", id, "error", err)
	}
}
