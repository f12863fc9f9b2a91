// Package fixtures provides an in-memory implementation of the ledger store
// contracts for tests. It honors the same semantics as the persistent store:
// atomic balance deltas, an append-only sequenced log, rollback on a failed
// unit of work, and cascade deletion of an account's records.
package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/corebank/ledger/pkg/repository"
	"github.com/google/uuid"
)

// MemoryStore holds all shared state behind a single mutex. The unit of work
// takes the mutex for the whole transaction, so readers and writers see
// committed state only.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]account.Account
	log      []account.Transaction
	seq      int64
}

// NewMemoryUoW returns a unit of work over a fresh in-memory store.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{store: &MemoryStore{accounts: make(map[uuid.UUID]account.Account)}}
}

// MemoryUoW implements repository.UnitOfWork over a MemoryStore.
type MemoryUoW struct {
	store *MemoryStore
	inTx  bool
}

type storeSnapshot struct {
	accounts map[uuid.UUID]account.Account
	logLen   int
	seq      int64
}

func (s *MemoryStore) snapshot() storeSnapshot {
	accounts := make(map[uuid.UUID]account.Account, len(s.accounts))
	for id, a := range s.accounts {
		accounts[id] = a
	}
	return storeSnapshot{accounts: accounts, logLen: len(s.log), seq: s.seq}
}

func (s *MemoryStore) restore(snap storeSnapshot) {
	s.accounts = snap.accounts
	s.log = s.log[:snap.logLen]
	s.seq = snap.seq
}

// Do runs fn under the store mutex. If fn fails, all mutations made inside
// the transaction are rolled back. Nested Do calls join the outer
// transaction.
func (u *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.snapshot()
	if err := fn(&MemoryUoW{store: u.store, inTx: true}); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

// AccountRepository implements repository.UnitOfWork.
func (u *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return &memAccounts{store: u.store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memTransactions{store: u.store}, nil
}

type memAccounts struct {
	store *MemoryStore
}

func (r *memAccounts) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := a
	return &cp, nil
}

func (r *memAccounts) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	for _, a := range r.store.accounts {
		if a.Number == number {
			cp := a
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *memAccounts) Create(_ context.Context, a *account.Account) error {
	for _, existing := range r.store.accounts {
		if existing.Number == a.Number {
			return account.ErrDuplicateAccountNumber
		}
	}
	r.store.accounts[a.ID] = *a
	return nil
}

func (r *memAccounts) ApplyBalanceDelta(
	_ context.Context,
	id uuid.UUID,
	delta money.Money,
) (money.Money, error) {
	a, ok := r.store.accounts[id]
	if !ok {
		return money.Money{}, account.ErrAccountNotFound
	}
	newBalance, err := a.Balance.Add(delta)
	if err != nil {
		return money.Money{}, err
	}
	if newBalance.IsNegative() {
		return money.Money{}, account.ErrInsufficientFunds
	}
	a.Balance = newBalance
	a.UpdatedAt = time.Now().UTC()
	r.store.accounts[id] = a
	return newBalance, nil
}

func (r *memAccounts) Save(_ context.Context, a *account.Account) error {
	stored, ok := r.store.accounts[a.ID]
	if !ok {
		return account.ErrAccountNotFound
	}
	// Balance changes go through ApplyBalanceDelta only.
	stored.PinHash = a.PinHash
	stored.UpdatedAt = time.Now().UTC()
	r.store.accounts[a.ID] = stored
	return nil
}

func (r *memAccounts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.accounts[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(r.store.accounts, id)
	kept := r.store.log[:0]
	for _, tx := range r.store.log {
		if tx.AccountID != id {
			kept = append(kept, tx)
		}
	}
	r.store.log = kept
	return nil
}

type memTransactions struct {
	store *MemoryStore
}

func (r *memTransactions) Append(_ context.Context, tx *account.Transaction) error {
	r.store.seq++
	tx.Sequence = r.store.seq
	tx.CreatedAt = time.Now().UTC()
	r.store.log = append(r.store.log, *tx)
	return nil
}

func (r *memTransactions) Get(_ context.Context, id uuid.UUID) (*account.Transaction, error) {
	for _, tx := range r.store.log {
		if tx.ID == id {
			cp := tx
			return &cp, nil
		}
	}
	return nil, account.ErrTransactionNotFound
}

func (r *memTransactions) List(
	_ context.Context,
	accountID uuid.UUID,
	filter repository.ListFilter,
) ([]*account.Transaction, error) {
	result := make([]*account.Transaction, 0)
	for _, tx := range r.store.log {
		if tx.AccountID != accountID {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.Start != nil && tx.CreatedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && tx.CreatedAt.After(*filter.End) {
			continue
		}
		cp := tx
		result = append(result, &cp)
	}
	return result, nil
}
