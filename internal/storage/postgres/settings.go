package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
)

const settingOperatorID = "operator_id"

func (r *settingsRepository) OperatorID(ctx context.Context) (int64, error) {
	value, err := r.Get(ctx, settingOperatorID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return 0, domainErrors.ErrNotInitialized
		}
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *settingsRepository) SetOperatorID(ctx context.Context, id int64) error {
	const query = `INSERT INTO engine_settings (key, value) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, settingOperatorID, strconv.FormatInt(id, 10))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyInitialized
	}
	return nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.storage.pool.QueryRow(ctx,
		`SELECT value FROM engine_settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO engine_settings (key, value) VALUES ($1, $2)
                   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.storage.pool.Exec(ctx, query, key, value)
	return err
}
