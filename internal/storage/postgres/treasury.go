package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

func (r *treasuryRepository) Get(ctx context.Context) (*model.Treasury, error) {
	var t model.Treasury
	err := r.storage.pool.QueryRow(ctx,
		`SELECT balance, total_received, total_withdrawn FROM treasury WHERE id=1`).
		Scan(&t.Balance, &t.TotalReceived, &t.TotalWithdrawn)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *treasuryRepository) Withdraw(ctx context.Context, amount int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var balance int64
		if err := tx.QueryRow(ctx,
			`SELECT balance FROM treasury WHERE id=1 FOR UPDATE`).Scan(&balance); err != nil {
			return err
		}
		if balance < amount {
			return domainErrors.ErrInsufficientBalance
		}
		_, err := tx.Exec(ctx,
			`UPDATE treasury SET balance = balance - $1, total_withdrawn = total_withdrawn + $1 WHERE id=1`,
			amount)
		return err
	})
}
