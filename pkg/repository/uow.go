package repository

import "context"

// UnitOfWork brackets transactional work and hands out repositories bound to
// the same store session, so every operation inside Do commits or rolls back
// as one unit.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. fn receives a
	// UnitOfWork whose repositories share the transaction session; if fn
	// returns an error the transaction is rolled back and nothing is
	// visible to readers.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current
	// session.
	AccountRepository() (AccountRepository, error)

	// TransactionRepository returns the transaction log repository bound to
	// the current session.
	TransactionRepository() (TransactionRepository, error)
}
