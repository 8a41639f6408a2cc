package repository

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// TreasuryRepository exposes the platform-owned ledger. Credits arrive
// through order completion transactions; only withdrawals go through here.
type TreasuryRepository interface {
	Get(ctx context.Context) (*model.Treasury, error)
	Withdraw(ctx context.Context, amount int64) error
}
