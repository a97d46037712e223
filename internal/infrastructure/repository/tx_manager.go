package repository

import (
	"context"
	"errors"

	domainRepo "github.com/sangkips/stockroom-api/internal/domain/repository"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"gorm.io/gorm"
)

type txKey struct{}

// TxManager runs callbacks inside a gorm transaction stored in the context
type TxManager struct {
	db *gorm.DB
}

var _ domainRepo.TxManager = (*TxManager)(nil)

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction executes fn within a transaction. If ctx already carries
// one, fn joins it and the outer call decides commit or rollback.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db when there is none
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// translateError maps constraint violations to conflict errors. It relies on
// gorm.Config.TranslateError being enabled.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflictError("A record with the same unique value already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.NewConflictError("Record is referenced by other data or points to a missing record")
	}
	return err
}
