package repository

import "context"

// TxManager runs a unit of work inside a database transaction.
// Repositories called with the ctx passed to fn join that transaction.
// Nested calls reuse the outer transaction.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
