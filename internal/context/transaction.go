package context

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type contextKey string

const (
	TRANSACTION_KEY  contextKey = "transaction"
	AFTER_COMMIT_KEY contextKey = "afterCommit"
)

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

// GetTransaction retrieves a transaction from the context
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(TRANSACTION_KEY).(*gorm.DB)
	return tx, ok && tx != nil
}

// WithTransaction adds a transaction to the context
func WithTransaction(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TRANSACTION_KEY, tx)
}

// DBFromContext returns the transaction carried by ctx, or fallback bound to ctx.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := GetTransaction(ctx); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// WithAfterCommit attaches a hook list to ctx. The returned func runs the
// registered hooks in order and must only be called once the transaction commits.
func WithAfterCommit(ctx context.Context) (context.Context, func()) {
	hooks := &commitHooks{}
	run := func() {
		hooks.mu.Lock()
		fns := hooks.fns
		hooks.fns = nil
		hooks.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
	return context.WithValue(ctx, AFTER_COMMIT_KEY, hooks), run
}

// AfterCommit queues fn to run after the surrounding transaction commits.
// It reports false when ctx carries no hook list.
func AfterCommit(ctx context.Context, fn func()) bool {
	hooks, ok := ctx.Value(AFTER_COMMIT_KEY).(*commitHooks)
	if !ok || hooks == nil {
		return false
	}

	hooks.mu.Lock()
	hooks.fns = append(hooks.fns, fn)
	hooks.mu.Unlock()
	return true
}
