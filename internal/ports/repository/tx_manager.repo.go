// internal/ports/repository/tx_manager.repo.go
package repository

import "context"

// TransactionManager abstracts the database transaction. Required for
// atomicity across tables (event status + audit trail).
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
