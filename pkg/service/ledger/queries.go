package ledger

import (
	"context"

	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/corebank/ledger/pkg/repository"
	"github.com/google/uuid"
)

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, accountID)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// GetBalance retrieves the current balance of the account.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (money.Money, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return money.Money{}, err
	}
	return a.Balance, nil
}

// History returns the account's transaction records matching the filter, in
// insertion order. Filters are optional and combine with AND semantics; no
// matches yields an empty slice. History never mutates state and takes no
// account lock, but it still reads through the unit of work so it cannot
// observe a half-applied transfer.
func (s *Service) History(
	ctx context.Context,
	accountID uuid.UUID,
	filter repository.ListFilter,
) (records []*account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, txs, err := storeRepos(uow)
		if err != nil {
			return err
		}
		// The account must exist; an absent account is an error, an empty
		// log is not.
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}
		records, err = txs.List(ctx, accountID, filter)
		return err
	})
	if err != nil {
		records = nil
		s.logger.Error("History failed", "accountID", accountID, "error", err)
		return
	}
	if records == nil {
		records = []*account.Transaction{}
	}
	return
}
