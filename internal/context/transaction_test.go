package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTransactionRoundTrip(t *testing.T) {
	_, ok := GetTransaction(context.Background())
	assert.False(t, ok)

	tx := &gorm.DB{}
	ctx := WithTransaction(context.Background(), tx)

	got, ok := GetTransaction(ctx)
	assert.True(t, ok)
	assert.Same(t, tx, got)
	assert.Same(t, tx, DBFromContext(ctx, &gorm.DB{}))
}

func TestGetTransaction_NilTransaction(t *testing.T) {
	ctx := WithTransaction(context.Background(), nil)
	_, ok := GetTransaction(ctx)
	assert.False(t, ok)
}

func TestAfterCommit(t *testing.T) {
	assert.False(t, AfterCommit(context.Background(), func() {}))

	ctx, run := WithAfterCommit(context.Background())

	var order []string
	assert.True(t, AfterCommit(ctx, func() { order = append(order, "first") }))
	assert.True(t, AfterCommit(ctx, func() { order = append(order, "second") }))
	assert.Empty(t, order)

	run()
	assert.Equal(t, []string{"first", "second"}, order)

	run()
	assert.Len(t, order, 2)
}
