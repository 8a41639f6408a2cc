package repository

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// OrderRepository describes persistence for orders and their escrow state.
// The compound operations are atomic: the order row, the per-order escrow
// amount, the global escrow counter, and the paired ledger movement commit
// or roll back as one transaction.
type OrderRepository interface {
	// CreateEscrowed verifies the resource and the buyer balance inside
	// the transaction, debits the buyer, and persists the order in
	// Pending status with the full amount escrowed.
	CreateEscrowed(ctx context.Context, buyerID int64, spec model.OrderSpec, totalAmount int64) (*model.Order, error)

	Get(ctx context.Context, id string) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListByResource(ctx context.Context, resourceID string) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalEscrowed(ctx context.Context) (int64, error)

	// SetStatus overwrites the order status without edge validation and,
	// when externalReference is non-nil, records deployment evidence.
	SetStatus(ctx context.Context, id string, status model.OrderStatus, externalReference *string) error

	// Complete releases escrow to the treasury for an order in Deployed
	// status.
	Complete(ctx context.Context, id string) (*model.Order, error)

	// Refund returns escrowed funds to the buyer for any order not yet
	// Completed, moving it to Cancelled or Failed.
	Refund(ctx context.Context, id string) (*model.Order, error)

	// SelectForDeployment returns orders still driven by the deployment
	// agent, oldest first.
	SelectForDeployment(ctx context.Context, limit int) ([]model.Order, error)
}
