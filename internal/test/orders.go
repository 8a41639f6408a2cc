package test

import (
	"context"
	"time"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/pkg/ids"
)

// OrderRepositoryStub emulates the escrow store in-memory, including the
// lock-step updates of order escrow, the global counter, and the paired
// ledger movements. Tests can assert the consistency invariants against it.
type OrderRepositoryStub struct {
	OrdersBy  map[string]*model.Order
	Created   []string
	Counter   uint64
	Escrowed  int64
	Resources *ResourceRepositoryStub
	Balances  *BalanceRepositoryStub
	Treasury  *TreasuryRepositoryStub
	Err       error
}

// NewOrderRepositoryStub wires the stub to collaborator stubs so escrow
// movements hit the same state the rest of the test observes.
func NewOrderRepositoryStub(resources *ResourceRepositoryStub, balances *BalanceRepositoryStub, treasury *TreasuryRepositoryStub) *OrderRepositoryStub {
	return &OrderRepositoryStub{
		OrdersBy:  make(map[string]*model.Order),
		Resources: resources,
		Balances:  balances,
		Treasury:  treasury,
	}
}

func (s *OrderRepositoryStub) CreateEscrowed(ctx context.Context, buyerID int64, spec model.OrderSpec, totalAmount int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	exists, err := s.Resources.Exists(ctx, spec.ResourceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainErrors.ErrInvalidResource
	}
	if s.Balances.Balances[buyerID] < totalAmount {
		return nil, domainErrors.ErrInsufficientBalance
	}

	s.Balances.Balances[buyerID] -= totalAmount
	s.Counter++
	order := &model.Order{
		ID:               ids.New(s.Counter),
		BuyerID:          buyerID,
		ResourceID:       spec.ResourceID,
		ServiceType:      spec.ServiceType,
		DurationUnits:    spec.DurationUnits,
		UnitPrice:        spec.UnitPrice,
		TotalAmount:      totalAmount,
		EscrowedAmount:   totalAmount,
		Status:           model.OrderStatusPending,
		CreatedAt:        time.Now(),
		DeploymentTarget: spec.DeploymentTarget,
		ServiceParams:    spec.ServiceParams,
	}
	s.OrdersBy[order.ID] = order
	s.Created = append(s.Created, order.ID)
	s.Escrowed += totalAmount
	return order, nil
}

func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.OrdersBy[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrOrderNotFound
}

func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, id := range s.Created {
		if order := s.OrdersBy[id]; order.BuyerID == buyerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListByResource(ctx context.Context, resourceID string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, id := range s.Created {
		if order := s.OrdersBy[id]; order.ResourceID == resourceID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) Count(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(s.Counter), nil
}

func (s *OrderRepositoryStub) TotalEscrowed(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Escrowed, nil
}

func (s *OrderRepositoryStub) SetStatus(ctx context.Context, id string, status model.OrderStatus, externalReference *string) error {
	if s.Err != nil {
		return s.Err
	}
	order, ok := s.OrdersBy[id]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	order.Status = status
	if externalReference != nil {
		order.ExternalReference = externalReference
	}
	return nil
}

func (s *OrderRepositoryStub) Complete(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.OrdersBy[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	if order.Status != model.OrderStatusDeployed {
		return nil, domainErrors.ErrInvalidStatus
	}
	released := order.EscrowedAmount
	order.Status = model.OrderStatusCompleted
	order.EscrowedAmount = 0
	s.Escrowed -= released
	if s.Treasury != nil {
		s.Treasury.Credit(released)
	}
	copied := *order
	return &copied, nil
}

func (s *OrderRepositoryStub) Refund(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.OrdersBy[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	if order.Status == model.OrderStatusCompleted {
		return nil, domainErrors.ErrInvalidStatus
	}
	if order.EscrowedAmount > 0 {
		s.Balances.Balances[order.BuyerID] += order.EscrowedAmount
		s.Escrowed -= order.EscrowedAmount
		order.EscrowedAmount = 0
	}
	if order.Status == model.OrderStatusPending {
		order.Status = model.OrderStatusCancelled
	} else {
		order.Status = model.OrderStatusFailed
	}
	copied := *order
	return &copied, nil
}

func (s *OrderRepositoryStub) SelectForDeployment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, id := range s.Created {
		order := s.OrdersBy[id]
		if order.Status == model.OrderStatusPending || order.Status == model.OrderStatusActive {
			result = append(result, *order)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}
