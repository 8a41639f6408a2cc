package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, int64, model.OrderSpec) (*model.Order, error)
	OrderFn  func(context.Context, string) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	CancelFn func(context.Context, int64, string) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, buyerID int64, spec model.OrderSpec) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, buyerID, spec)
	}
	return &model.Order{
		ID:             "order-1",
		BuyerID:        buyerID,
		ResourceID:     spec.ResourceID,
		ServiceType:    spec.ServiceType,
		DurationUnits:  spec.DurationUnits,
		UnitPrice:      spec.UnitPrice,
		TotalAmount:    spec.DurationUnits * spec.UnitPrice,
		EscrowedAmount: spec.DurationUnits * spec.UnitPrice,
		Status:         model.OrderStatusPending,
	}, nil
}

// Order returns the configured order for an identifier.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given buyer.
func (s OrderFacadeStub) Orders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, buyerID)
	}
	return []model.Order{{ID: "order-1", BuyerID: buyerID}}, nil
}

// CancelOrder executes configured cancellation handler.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, callerID, orderID)
	}
	return &model.Order{ID: orderID, BuyerID: callerID, Status: model.OrderStatusCancelled}, nil
}

// BalanceFacadeStub simulates balance operations.
type BalanceFacadeStub struct {
	BalanceFn  func(context.Context, int64) (*model.Balance, error)
	DepositFn  func(context.Context, int64, int64) error
	WithdrawFn func(context.Context, int64, int64) error
}

// Balance returns stored summary or default data.
func (s BalanceFacadeStub) Balance(ctx context.Context, userID int64) (*model.Balance, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.Balance{UserID: userID, Current: 100}, nil
}

// Deposit executes configured deposit handler.
func (s BalanceFacadeStub) Deposit(ctx context.Context, userID int64, amount int64) error {
	if s.DepositFn != nil {
		return s.DepositFn(ctx, userID, amount)
	}
	return nil
}

// Withdraw executes configured withdrawal handler.
func (s BalanceFacadeStub) Withdraw(ctx context.Context, userID int64, amount int64) error {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, userID, amount)
	}
	return nil
}

// ResourceFacadeStub simulates registry reads and review operations.
type ResourceFacadeStub struct {
	ResourceFn  func(context.Context, string) (*model.Resource, error)
	ResourcesFn func(context.Context) ([]model.Resource, error)
	RateFn      func(context.Context, int64, string, int, string) (*model.Review, error)
	ReviewsFn   func(context.Context, string) ([]model.Review, error)
	RatingFn    func(context.Context, string) (*model.RatingStats, error)
}

// Resource returns the configured resource.
func (s ResourceFacadeStub) Resource(ctx context.Context, id string) (*model.Resource, error) {
	if s.ResourceFn != nil {
		return s.ResourceFn(ctx, id)
	}
	return &model.Resource{ID: id, Name: "node", Active: true}, nil
}

// Resources returns the configured registry listing.
func (s ResourceFacadeStub) Resources(ctx context.Context) ([]model.Resource, error) {
	if s.ResourcesFn != nil {
		return s.ResourcesFn(ctx)
	}
	return []model.Resource{{ID: "res-1", Name: "node", Active: true}}, nil
}

// RateResource records or delegates a review submission.
func (s ResourceFacadeStub) RateResource(ctx context.Context, userID int64, resourceID string, rating int, review string) (*model.Review, error) {
	if s.RateFn != nil {
		return s.RateFn(ctx, userID, resourceID, rating, review)
	}
	return &model.Review{ID: 1, ResourceID: resourceID, UserID: userID, Rating: rating, Review: review}, nil
}

// ResourceReviews returns preconfigured reviews.
func (s ResourceFacadeStub) ResourceReviews(ctx context.Context, resourceID string) ([]model.Review, error) {
	if s.ReviewsFn != nil {
		return s.ReviewsFn(ctx, resourceID)
	}
	return []model.Review{{ID: 1, ResourceID: resourceID, Rating: 5, CreatedAt: time.Unix(0, 0)}}, nil
}

// ResourceRating returns preconfigured rating statistics.
func (s ResourceFacadeStub) ResourceRating(ctx context.Context, resourceID string) (*model.RatingStats, error) {
	if s.RatingFn != nil {
		return s.RatingFn(ctx, resourceID)
	}
	avg := 5
	return &model.RatingStats{Average: &avg, Count: 1, Min: 5, Max: 5}, nil
}

// AdminFacadeStub simulates operator-only operations.
type AdminFacadeStub struct {
	InitializeFn         func(context.Context, int64) error
	SetRegistryFn        func(context.Context, int64, string) error
	SetLedgerFn          func(context.Context, int64, string) error
	SetTreasuryFn        func(context.Context, int64, string) error
	UpdateStatusFn       func(context.Context, int64, string, model.OrderStatus, *string) error
	CompleteFn           func(context.Context, int64, string) (*model.Order, error)
	RefundFn             func(context.Context, int64, string) (*model.Order, error)
	OrderCountFn         func(context.Context) (int64, error)
	TotalEscrowedFn      func(context.Context) (int64, error)
	OrderIDsByResourceFn func(context.Context, string) ([]string, error)
	AddResourceFn        func(context.Context, int64, model.Resource) (*model.Resource, error)
	UpdateResourceFn     func(context.Context, int64, model.Resource) error
	RemoveResourceFn     func(context.Context, int64, string) error
	SetActiveFn          func(context.Context, int64, string, bool) error
	ResourceCountFn      func(context.Context) (int64, error)
	TreasuryFn           func(context.Context, int64) (*model.Treasury, error)
	TreasuryWithdrawFn   func(context.Context, int64, int64) error
	PurgeReviewsFn       func(context.Context, int64, string) error
}

// Initialize delegates to the configured function.
func (s AdminFacadeStub) Initialize(ctx context.Context, callerID int64) error {
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, callerID)
	}
	return nil
}

// SetRegistryAddress delegates to the configured function.
func (s AdminFacadeStub) SetRegistryAddress(ctx context.Context, callerID int64, address string) error {
	if s.SetRegistryFn != nil {
		return s.SetRegistryFn(ctx, callerID, address)
	}
	return nil
}

// SetLedgerAddress delegates to the configured function.
func (s AdminFacadeStub) SetLedgerAddress(ctx context.Context, callerID int64, address string) error {
	if s.SetLedgerFn != nil {
		return s.SetLedgerFn(ctx, callerID, address)
	}
	return nil
}

// SetTreasuryAddress delegates to the configured function.
func (s AdminFacadeStub) SetTreasuryAddress(ctx context.Context, callerID int64, address string) error {
	if s.SetTreasuryFn != nil {
		return s.SetTreasuryFn(ctx, callerID, address)
	}
	return nil
}

// UpdateOrderStatus delegates to the configured function.
func (s AdminFacadeStub) UpdateOrderStatus(ctx context.Context, callerID int64, orderID string, status model.OrderStatus, externalReference *string) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, callerID, orderID, status, externalReference)
	}
	return nil
}

// CompleteOrder delegates to the configured function.
func (s AdminFacadeStub) CompleteOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, callerID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCompleted}, nil
}

// RefundOrder delegates to the configured function.
func (s AdminFacadeStub) RefundOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, callerID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// OrderCount returns the configured order total.
func (s AdminFacadeStub) OrderCount(ctx context.Context) (int64, error) {
	if s.OrderCountFn != nil {
		return s.OrderCountFn(ctx)
	}
	return 1, nil
}

// TotalEscrowed returns the configured escrow total.
func (s AdminFacadeStub) TotalEscrowed(ctx context.Context) (int64, error) {
	if s.TotalEscrowedFn != nil {
		return s.TotalEscrowedFn(ctx)
	}
	return 0, nil
}

// OrderIDsByResource returns the configured identifiers.
func (s AdminFacadeStub) OrderIDsByResource(ctx context.Context, resourceID string) ([]string, error) {
	if s.OrderIDsByResourceFn != nil {
		return s.OrderIDsByResourceFn(ctx, resourceID)
	}
	return []string{"order-1"}, nil
}

// AddResource delegates to the configured function.
func (s AdminFacadeStub) AddResource(ctx context.Context, callerID int64, res model.Resource) (*model.Resource, error) {
	if s.AddResourceFn != nil {
		return s.AddResourceFn(ctx, callerID, res)
	}
	res.ID = "res-1"
	return &res, nil
}

// UpdateResource delegates to the configured function.
func (s AdminFacadeStub) UpdateResource(ctx context.Context, callerID int64, res model.Resource) error {
	if s.UpdateResourceFn != nil {
		return s.UpdateResourceFn(ctx, callerID, res)
	}
	return nil
}

// RemoveResource delegates to the configured function.
func (s AdminFacadeStub) RemoveResource(ctx context.Context, callerID int64, id string) error {
	if s.RemoveResourceFn != nil {
		return s.RemoveResourceFn(ctx, callerID, id)
	}
	return nil
}

// SetResourceActive delegates to the configured function.
func (s AdminFacadeStub) SetResourceActive(ctx context.Context, callerID int64, id string, active bool) error {
	if s.SetActiveFn != nil {
		return s.SetActiveFn(ctx, callerID, id, active)
	}
	return nil
}

// ResourceCount returns the configured registry size.
func (s AdminFacadeStub) ResourceCount(ctx context.Context) (int64, error) {
	if s.ResourceCountFn != nil {
		return s.ResourceCountFn(ctx)
	}
	return 1, nil
}

// Treasury returns the configured treasury snapshot.
func (s AdminFacadeStub) Treasury(ctx context.Context, callerID int64) (*model.Treasury, error) {
	if s.TreasuryFn != nil {
		return s.TreasuryFn(ctx, callerID)
	}
	return &model.Treasury{Balance: 50, TotalReceived: 70, TotalWithdrawn: 20}, nil
}

// TreasuryWithdraw delegates to the configured function.
func (s AdminFacadeStub) TreasuryWithdraw(ctx context.Context, callerID int64, amount int64) error {
	if s.TreasuryWithdrawFn != nil {
		return s.TreasuryWithdrawFn(ctx, callerID, amount)
	}
	return nil
}

// PurgeReviews delegates to the configured function.
func (s AdminFacadeStub) PurgeReviews(ctx context.Context, callerID int64, resourceID string) error {
	if s.PurgeReviewsFn != nil {
		return s.PurgeReviewsFn(ctx, callerID, resourceID)
	}
	return nil
}

// MarketFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	BalanceFacadeStub
	ResourceFacadeStub
	AdminFacadeStub
}

// StatusRecordCall stores information about RecordDeploymentStatus invocations.
type StatusRecordCall struct {
	OrderID   string
	Status    model.OrderStatus
	Reference *string
}

// WorkerFacadeStub mimics worker interactions with the market facade.
type WorkerFacadeStub struct {
	Orders          [][]model.Order
	OrdersFn        func(context.Context, int) ([]model.Order, error)
	CheckFn         func(context.Context, string) (*model.Deployment, error)
	RecordFn        func(context.Context, string, model.OrderStatus, *string) error
	AbortFn         func(context.Context, string) (*model.Order, error)
	Updates         []StatusRecordCall
	Aborted         []string
	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForDeployment returns batches from configured queue.
func (s *WorkerFacadeStub) OrdersForDeployment(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckDeployment returns configured deployment data.
func (s *WorkerFacadeStub) CheckDeployment(ctx context.Context, orderID string) (*model.Deployment, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, orderID)
	}
	ref := "deploy-ref"
	return &model.Deployment{OrderID: orderID, State: model.DeploymentStateRunning, ExternalReference: &ref}, nil
}

// RecordDeploymentStatus records update requests.
func (s *WorkerFacadeStub) RecordDeploymentStatus(ctx context.Context, orderID string, status model.OrderStatus, externalReference *string) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, orderID, status, externalReference)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates = append(s.Updates, StatusRecordCall{OrderID: orderID, Status: status, Reference: externalReference})
	return nil
}

// AbortDeployment records abort requests.
func (s *WorkerFacadeStub) AbortDeployment(ctx context.Context, orderID string) (*model.Order, error) {
	if s.AbortFn != nil {
		return s.AbortFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Aborted = append(s.Aborted, orderID)
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

// DeploymentProviderStub fetches deployment information for tests.
type DeploymentProviderStub struct {
	FetchFn    func(context.Context, string) (*model.Deployment, error)
	Deployment *model.Deployment
	Err        error
}

// Fetch returns configured response or a default running deployment.
func (s DeploymentProviderStub) Fetch(ctx context.Context, orderID string) (*model.Deployment, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, orderID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Deployment != nil {
		return s.Deployment, nil
	}
	return &model.Deployment{OrderID: orderID, State: model.DeploymentStateRunning}, nil
}
