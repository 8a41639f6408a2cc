package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

func (r *balanceRepository) Get(ctx context.Context, userID int64) (*model.Balance, error) {
	balance := &model.Balance{UserID: userID}
	err := r.storage.pool.QueryRow(ctx,
		`SELECT current FROM balances WHERE user_id=$1`, userID).Scan(&balance.Current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return balance, nil
		}
		return nil, err
	}
	return balance, nil
}

func (r *balanceRepository) HasSufficient(ctx context.Context, userID int64, amount int64) (bool, error) {
	balance, err := r.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance.Current >= amount, nil
}

func (r *balanceRepository) Deposit(ctx context.Context, userID int64, amount int64) error {
	const query = `INSERT INTO balances (user_id, current) VALUES ($1, $2)
                   ON CONFLICT (user_id) DO UPDATE SET current = balances.current + EXCLUDED.current`
	_, err := r.storage.pool.Exec(ctx, query, userID, amount)
	return err
}

func (r *balanceRepository) Withdraw(ctx context.Context, userID int64, amount int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var current int64
		err := tx.QueryRow(ctx,
			`SELECT current FROM balances WHERE user_id=$1 FOR UPDATE`, userID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInsufficientBalance
			}
			return err
		}
		if current < amount {
			return domainErrors.ErrInsufficientBalance
		}
		_, err = tx.Exec(ctx,
			`UPDATE balances SET current = current - $2 WHERE user_id=$1`, userID, amount)
		return err
	})
}
