package repository

import (
	"errors"

	"github.com/corebank/ledger/pkg/domain/account"
	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors so database concerns
// stay inside the infrastructure layer.
func mapGormError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return account.ErrAccountNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return account.ErrDuplicateAccountNumber
	}
	return err
}
