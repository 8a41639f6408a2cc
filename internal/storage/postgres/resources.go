package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/pkg/ids"
)

const resourceColumns = `id, name, description, active, uptime, reliability, cost, created_at`

const resourceSequence = "resources"

func scanResource(row pgx.Row) (*model.Resource, error) {
	var res model.Resource
	err := row.Scan(&res.ID, &res.Name, &res.Description, &res.Active,
		&res.Uptime, &res.Reliability, &res.Cost, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) Create(ctx context.Context, res model.Resource) (*model.Resource, error) {
	var created *model.Resource
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		counter, err := r.storage.nextSequenceTx(ctx, tx, resourceSequence)
		if err != nil {
			return err
		}
		res.ID = ids.Encode(counter, time.Now(), ids.NextSequence())

		const query = `INSERT INTO resources (id, name, description, active, uptime, reliability, cost)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)
                       RETURNING created_at`
		if err := tx.QueryRow(ctx, query, res.ID, res.Name, res.Description, res.Active,
			res.Uptime, res.Reliability, res.Cost).Scan(&res.CreatedAt); err != nil {
			return err
		}
		created = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *resourceRepository) Update(ctx context.Context, res model.Resource) error {
	const query = `UPDATE resources SET name=$2, description=$3, uptime=$4, reliability=$5, cost=$6 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, res.ID, res.Name, res.Description, res.Uptime, res.Reliability, res.Cost)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *resourceRepository) Remove(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM resources WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *resourceRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE resources SET active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *resourceRepository) Get(ctx context.Context, id string) (*model.Resource, error) {
	const query = `SELECT ` + resourceColumns + ` FROM resources WHERE id=$1`
	return scanResource(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *resourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	const query = `SELECT ` + resourceColumns + ` FROM resources ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *resourceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *resourceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var active bool
	err := r.storage.pool.QueryRow(ctx, `SELECT active FROM resources WHERE id=$1`, id).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return active, nil
}
