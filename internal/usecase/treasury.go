package usecase

import (
	"context"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// TreasuryUseCase exposes the platform ledger to the operator.
type TreasuryUseCase struct {
	treasury repository.TreasuryRepository
	settings repository.SettingsRepository
}

// NewTreasuryUseCase constructs TreasuryUseCase.
func NewTreasuryUseCase(treasury repository.TreasuryRepository, settings repository.SettingsRepository) *TreasuryUseCase {
	return &TreasuryUseCase{treasury: treasury, settings: settings}
}

func (u *TreasuryUseCase) requireOperator(ctx context.Context, callerID int64) error {
	operatorID, err := u.settings.OperatorID(ctx)
	if err != nil {
		return err
	}
	if callerID != operatorID {
		return domainErrors.ErrNotAuthorized
	}
	return nil
}

// Get returns the treasury ledger. Operator only.
func (u *TreasuryUseCase) Get(ctx context.Context, callerID int64) (*model.Treasury, error) {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return nil, err
	}
	return u.treasury.Get(ctx)
}

// Withdraw moves funds out of the treasury. Operator only.
func (u *TreasuryUseCase) Withdraw(ctx context.Context, callerID int64, amount int64) error {
	if err := u.requireOperator(ctx, callerID); err != nil {
		return err
	}
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.treasury.Withdraw(ctx, amount)
}
