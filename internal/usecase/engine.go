package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/domain/repository"
)

// OrderEngine owns the order lifecycle: it authorizes callers, validates
// input, gates creation on the resource registry and the balance ledger,
// and drives escrow through the atomic operations of OrderRepository.
type OrderEngine struct {
	orders   repository.OrderRepository
	registry repository.ResourceRepository
	balances repository.BalanceRepository
	settings repository.SettingsRepository
}

// NewOrderEngine constructs OrderEngine.
func NewOrderEngine(
	orders repository.OrderRepository,
	registry repository.ResourceRepository,
	balances repository.BalanceRepository,
	settings repository.SettingsRepository,
) *OrderEngine {
	return &OrderEngine{orders: orders, registry: registry, balances: balances, settings: settings}
}

// Initialize records the caller as the engine operator. Succeeds once.
func (e *OrderEngine) Initialize(ctx context.Context, callerID int64) error {
	return e.settings.SetOperatorID(ctx, callerID)
}

// requireOperator fails with ErrNotAuthorized unless the caller is the
// configured operator, or ErrNotInitialized when none is configured yet.
func (e *OrderEngine) requireOperator(ctx context.Context, callerID int64) error {
	operatorID, err := e.settings.OperatorID(ctx)
	if err != nil {
		return err
	}
	if callerID != operatorID {
		return domainErrors.ErrNotAuthorized
	}
	return nil
}

// IsOperator reports whether the caller is the configured operator.
func (e *OrderEngine) IsOperator(ctx context.Context, callerID int64) (bool, error) {
	err := e.requireOperator(ctx, callerID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domainErrors.ErrNotAuthorized):
		return false, nil
	default:
		return false, err
	}
}

// SetRegistryAddress records the resource registry endpoint. Operator only.
func (e *OrderEngine) SetRegistryAddress(ctx context.Context, callerID int64, address string) error {
	return e.setCollaborator(ctx, callerID, repository.SettingRegistryAddress, address)
}

// SetLedgerAddress records the balance ledger endpoint. Operator only.
func (e *OrderEngine) SetLedgerAddress(ctx context.Context, callerID int64, address string) error {
	return e.setCollaborator(ctx, callerID, repository.SettingLedgerAddress, address)
}

// SetTreasuryAddress records the treasury endpoint. Operator only.
func (e *OrderEngine) SetTreasuryAddress(ctx context.Context, callerID int64, address string) error {
	return e.setCollaborator(ctx, callerID, repository.SettingTreasuryAddress, address)
}

func (e *OrderEngine) setCollaborator(ctx context.Context, callerID int64, key, address string) error {
	if err := e.requireOperator(ctx, callerID); err != nil {
		return err
	}
	if address == "" {
		return domainErrors.ErrInvalidInput
	}
	return e.settings.Set(ctx, key, address)
}

// requireConfigured fails with ErrNotConfigured unless all collaborator
// settings are present.
func (e *OrderEngine) requireConfigured(ctx context.Context) error {
	keys := []string{
		repository.SettingRegistryAddress,
		repository.SettingLedgerAddress,
		repository.SettingTreasuryAddress,
	}
	for _, key := range keys {
		if _, err := e.settings.Get(ctx, key); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrNotConfigured
			}
			return err
		}
	}
	return nil
}

// CreateOrder validates and funds a new order. The registry check, the
// balance debit, the order write, the escrow counter update, and the
// sequence increment commit as one transaction; a failure at any step
// leaves no partial state behind.
func (e *OrderEngine) CreateOrder(ctx context.Context, buyerID int64, spec model.OrderSpec) (*model.Order, error) {
	if spec.DurationUnits <= 0 || spec.UnitPrice <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if err := e.requireConfigured(ctx); err != nil {
		return nil, err
	}

	exists, err := e.registry.Exists(ctx, spec.ResourceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainErrors.ErrInvalidResource
	}

	totalAmount := spec.DurationUnits * spec.UnitPrice
	if totalAmount/spec.UnitPrice != spec.DurationUnits {
		return nil, domainErrors.ErrInvalidAmount
	}

	sufficient, err := e.balances.HasSufficient(ctx, buyerID, totalAmount)
	if err != nil {
		return nil, err
	}
	if !sufficient {
		return nil, domainErrors.ErrInsufficientBalance
	}

	// The repository re-checks resource and balance under lock; the
	// gates above only let the common failure cases fail fast.
	return e.orders.CreateEscrowed(ctx, buyerID, spec, totalAmount)
}

// UpdateStatus overwrites the order status on behalf of the operator.
// Any known status is accepted without edge validation: external
// deployment systems are trusted to report arbitrary intermediate
// states. completeOrder and refundOrder remain the only validated exits.
func (e *OrderEngine) UpdateStatus(ctx context.Context, callerID int64, orderID string, status model.OrderStatus, externalReference *string) error {
	if err := e.requireOperator(ctx, callerID); err != nil {
		return err
	}
	if !model.KnownStatus(status) {
		return domainErrors.ErrInvalidStatus
	}
	return e.orders.SetStatus(ctx, orderID, status, externalReference)
}

// RecordDeploymentStatus applies a status reported by the deployment
// pipeline. Reserved for trusted internal callers; the HTTP surface
// goes through UpdateStatus with an operator check instead.
func (e *OrderEngine) RecordDeploymentStatus(ctx context.Context, orderID string, status model.OrderStatus, externalReference *string) error {
	if !model.KnownStatus(status) {
		return domainErrors.ErrInvalidStatus
	}
	return e.orders.SetStatus(ctx, orderID, status, externalReference)
}

// AbortDeployment refunds an order whose deployment failed. Reserved
// for trusted internal callers.
func (e *OrderEngine) AbortDeployment(ctx context.Context, orderID string) (*model.Order, error) {
	return e.orders.Refund(ctx, orderID)
}

// CompleteOrder releases escrow to the treasury. Operator only; the
// order must be in Deployed status.
func (e *OrderEngine) CompleteOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	if err := e.requireOperator(ctx, callerID); err != nil {
		return nil, err
	}
	return e.orders.Complete(ctx, orderID)
}

// RefundOrder returns escrowed funds to the buyer. Operator only; any
// order not yet Completed may be refunded. The resulting status is
// Cancelled when the order never left Pending and Failed otherwise.
func (e *OrderEngine) RefundOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	if err := e.requireOperator(ctx, callerID); err != nil {
		return nil, err
	}
	return e.orders.Refund(ctx, orderID)
}

// CancelOrder lets the buyer abandon an order that has not started.
// The engine performs the privileged refund on the caller's behalf.
func (e *OrderEngine) CancelOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	order, err := e.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != callerID {
		return nil, domainErrors.ErrNotAuthorized
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrInvalidStatus
	}
	return e.orders.Refund(ctx, orderID)
}

// GetOrder returns order details.
func (e *OrderEngine) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return e.orders.Get(ctx, orderID)
}

// OrdersByBuyer returns the buyer's orders, creation order preserved.
func (e *OrderEngine) OrdersByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return e.orders.ListByBuyer(ctx, buyerID)
}

// ListOrderIDsByBuyer returns identifiers of every order the buyer ever
// created, terminal states included.
func (e *OrderEngine) ListOrderIDsByBuyer(ctx context.Context, buyerID int64) ([]string, error) {
	orders, err := e.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return orderIDs(orders), nil
}

// ListOrderIDsByResource returns identifiers of every order ever placed
// against the resource.
func (e *OrderEngine) ListOrderIDsByResource(ctx context.Context, resourceID string) ([]string, error) {
	orders, err := e.orders.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return orderIDs(orders), nil
}

// OrderCount returns the number of orders ever created.
func (e *OrderEngine) OrderCount(ctx context.Context) (int64, error) {
	return e.orders.Count(ctx)
}

// TotalEscrowed returns the global escrow counter.
func (e *OrderEngine) TotalEscrowed(ctx context.Context) (int64, error) {
	return e.orders.TotalEscrowed(ctx)
}

// OrdersForDeployment returns orders the deployment worker should poll.
func (e *OrderEngine) OrdersForDeployment(ctx context.Context, limit int) ([]model.Order, error) {
	return e.orders.SelectForDeployment(ctx, limit)
}

func orderIDs(orders []model.Order) []string {
	result := make([]string, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID)
	}
	return result
}
