package repository

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// BalanceRepository manages spendable user funds. Escrow debits and
// refund credits issued by the order engine ride the order transaction
// instead of going through this interface.
type BalanceRepository interface {
	Get(ctx context.Context, userID int64) (*model.Balance, error)
	HasSufficient(ctx context.Context, userID int64, amount int64) (bool, error)
	Deposit(ctx context.Context, userID int64, amount int64) error
	Withdraw(ctx context.Context, userID int64, amount int64) error
}
