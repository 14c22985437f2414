package services

import (
	"context"
	"fmt"

	appContext "cleanconnect/internal/context"
	"cleanconnect/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// TransactionService runs multi-record writes as one unit of work.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a database transaction, committing on success and
// rolling back on error or panic. A panic whose rollback also fails is re-raised.
func (ts *TransactionService) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) (err error) {
	log := ts.log.Function("Execute")

	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			panicErr := log.ErrMsg("panic during transaction: " + fmt.Sprintf("%v", r))

			if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
				log.Er("CRITICAL: failed to rollback after panic", rollbackErr, "panic", r)
				panic(fmt.Sprintf(
					"transaction rollback failed: %v (original panic: %v)",
					rollbackErr,
					r,
				))
			}

			err = panicErr
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			log.Er("CRITICAL: failed to rollback after function error", rollbackErr, "originalError", err)
			return log.Error("transaction rollback failed", "rollbackError", rollbackErr, "originalError", err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return log.Err("failed to commit transaction", err)
	}

	return nil
}

// Atomically runs fn with a transaction carried in its context so every store
// call inside joins it. Hooks queued with AfterCommit run only once the
// transaction commits. Without a SQL database fn runs directly.
func (ts *TransactionService) Atomically(ctx context.Context, fn func(context.Context) error) error {
	if ts.db.SQL == nil {
		return fn(ctx)
	}

	if _, ok := appContext.GetTransaction(ctx); ok {
		return fn(ctx)
	}

	ctx, afterCommit := appContext.WithAfterCommit(ctx)
	if err := ts.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return fn(appContext.WithTransaction(ctx, tx))
	}); err != nil {
		return err
	}

	afterCommit()
	return nil
}
