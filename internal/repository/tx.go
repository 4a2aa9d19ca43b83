package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// withTx runs fn inside a transaction, carrying the *gorm.DB in the context
// so nested WithTx calls join the outer transaction instead of opening a new
// one. Every check-then-write path in the services goes through this.
func withTx(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// conn returns the transaction bound to ctx, or the base connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
