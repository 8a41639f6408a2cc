package usecase

import (
	"context"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// BalanceUseCase manages user funds outside of escrow.
type BalanceUseCase struct {
	balances repository.BalanceRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(balances repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balances: balances}
}

// Get returns the user's spendable balance.
func (u *BalanceUseCase) Get(ctx context.Context, userID int64) (*model.Balance, error) {
	return u.balances.Get(ctx, userID)
}

// Deposit adds funds to the user's balance.
func (u *BalanceUseCase) Deposit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.balances.Deposit(ctx, userID, amount)
}

// Withdraw moves funds out of the user's balance.
func (u *BalanceUseCase) Withdraw(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.balances.Withdraw(ctx, userID, amount)
}
