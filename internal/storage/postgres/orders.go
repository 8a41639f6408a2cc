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

const orderColumns = `id, buyer_id, resource_id, service_type, duration_units, unit_price,
                      total_amount, escrowed_amount, status, external_reference,
                      deployment_target, service_params, created_at`

const orderSequence = "orders"

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.ResourceID, &o.ServiceType, &o.DurationUnits,
		&o.UnitPrice, &o.TotalAmount, &o.EscrowedAmount, &o.Status, &o.ExternalReference,
		&o.DeploymentTarget, &o.ServiceParams, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// CreateEscrowed runs the whole escrow-funding sequence as one
// transaction: resource check, balance debit under row lock, sequence
// increment, order insert, and escrow counter update. A failure at any
// step rolls everything back.
func (r *orderRepository) CreateEscrowed(ctx context.Context, buyerID int64, spec model.OrderSpec, totalAmount int64) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var active bool
		err := tx.QueryRow(ctx, `SELECT active FROM resources WHERE id=$1`, spec.ResourceID).Scan(&active)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInvalidResource
			}
			return err
		}
		if !active {
			return domainErrors.ErrInvalidResource
		}

		var current int64
		err = tx.QueryRow(ctx, `SELECT current FROM balances WHERE user_id=$1 FOR UPDATE`, buyerID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				current = 0
			} else {
				return err
			}
		}
		if current < totalAmount {
			return domainErrors.ErrInsufficientBalance
		}

		if _, err := tx.Exec(ctx, `UPDATE balances SET current = current - $2 WHERE user_id=$1`, buyerID, totalAmount); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE users SET total_spent = total_spent + $2 WHERE id=$1`, buyerID, totalAmount); err != nil {
			return err
		}

		counter, err := r.storage.nextSequenceTx(ctx, tx, orderSequence)
		if err != nil {
			return err
		}

		now := time.Now()
		o := model.Order{
			ID:               ids.Encode(counter, now, ids.NextSequence()),
			BuyerID:          buyerID,
			ResourceID:       spec.ResourceID,
			ServiceType:      spec.ServiceType,
			DurationUnits:    spec.DurationUnits,
			UnitPrice:        spec.UnitPrice,
			TotalAmount:      totalAmount,
			EscrowedAmount:   totalAmount,
			Status:           model.OrderStatusPending,
			DeploymentTarget: spec.DeploymentTarget,
			ServiceParams:    spec.ServiceParams,
		}

		const insertOrder = `INSERT INTO orders
                (id, buyer_id, resource_id, service_type, duration_units, unit_price,
                 total_amount, escrowed_amount, status, deployment_target, service_params)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
             RETURNING created_at`
		if err := tx.QueryRow(ctx, insertOrder,
			o.ID, o.BuyerID, o.ResourceID, o.ServiceType, o.DurationUnits, o.UnitPrice,
			o.TotalAmount, o.EscrowedAmount, o.Status, o.DeploymentTarget, o.ServiceParams,
		).Scan(&o.CreatedAt); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE escrow_state SET total_escrowed = total_escrowed + $1 WHERE id=1`, totalAmount); err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id=$1 ORDER BY id`
	return r.list(ctx, query, buyerID)
}

func (r *orderRepository) ListByResource(ctx context.Context, resourceID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE resource_id=$1 ORDER BY id`
	return r.list(ctx, query, resourceID)
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT value FROM sequences WHERE name=$1`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, orderSequence).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) TotalEscrowed(ctx context.Context) (int64, error) {
	const query = `SELECT total_escrowed FROM escrow_state WHERE id=1`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *orderRepository) SetStatus(ctx context.Context, id string, status model.OrderStatus, externalReference *string) error {
	const query = `UPDATE orders
                   SET status=$2, external_reference=COALESCE($3, external_reference)
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status, externalReference)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

// Complete releases the escrowed amount to the treasury. The order row,
// the escrow counter, and the treasury ledger change in lock-step.
func (r *orderRepository) Complete(ctx context.Context, id string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		o, err := scanOrder(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return err
		}
		if o.Status != model.OrderStatusDeployed {
			return domainErrors.ErrInvalidStatus
		}

		released := o.EscrowedAmount
		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2, escrowed_amount=0 WHERE id=$1`, id, model.OrderStatusCompleted); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE escrow_state SET total_escrowed = total_escrowed - $1 WHERE id=1`, released); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE treasury SET balance = balance + $1, total_received = total_received + $1 WHERE id=1`, released); err != nil {
			return err
		}

		o.Status = model.OrderStatusCompleted
		o.EscrowedAmount = 0
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Refund credits the escrowed amount back to the buyer. An order that
// never left Pending becomes Cancelled, any other becomes Failed.
func (r *orderRepository) Refund(ctx context.Context, id string) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		o, err := scanOrder(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return err
		}
		if o.Status == model.OrderStatusCompleted {
			return domainErrors.ErrInvalidStatus
		}

		if o.EscrowedAmount > 0 {
			const creditBalance = `INSERT INTO balances (user_id, current)
                                   VALUES ($1, $2)
                                   ON CONFLICT (user_id) DO UPDATE SET current = balances.current + EXCLUDED.current`
			if _, err := tx.Exec(ctx, creditBalance, o.BuyerID, o.EscrowedAmount); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE escrow_state SET total_escrowed = total_escrowed - $1 WHERE id=1`, o.EscrowedAmount); err != nil {
				return err
			}
		}

		next := model.OrderStatusFailed
		if o.Status == model.OrderStatusPending {
			next = model.OrderStatusCancelled
		}
		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$2, escrowed_amount=0 WHERE id=$1`, id, next); err != nil {
			return err
		}

		o.Status = next
		o.EscrowedAmount = 0
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) SelectForDeployment(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status IN ('PENDING', 'ACTIVE')
                   ORDER BY id
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
