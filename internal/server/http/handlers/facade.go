package handlers

import (
	"context"

	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates buyer-side order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, buyerID int64, spec model.OrderSpec) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	Orders(ctx context.Context, buyerID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error)
}

// BalanceFacade provides balance related operations.
type BalanceFacade interface {
	Balance(ctx context.Context, userID int64) (*model.Balance, error)
	Deposit(ctx context.Context, userID int64, amount int64) error
	Withdraw(ctx context.Context, userID int64, amount int64) error
}

// ResourceFacade provides registry reads and review operations.
type ResourceFacade interface {
	Resource(ctx context.Context, id string) (*model.Resource, error)
	Resources(ctx context.Context) ([]model.Resource, error)
	RateResource(ctx context.Context, userID int64, resourceID string, rating int, review string) (*model.Review, error)
	ResourceReviews(ctx context.Context, resourceID string) ([]model.Review, error)
	ResourceRating(ctx context.Context, resourceID string) (*model.RatingStats, error)
}

// AdminFacade groups operator-only operations. Authorization is
// enforced by the engine, not the transport.
type AdminFacade interface {
	Initialize(ctx context.Context, callerID int64) error
	SetRegistryAddress(ctx context.Context, callerID int64, address string) error
	SetLedgerAddress(ctx context.Context, callerID int64, address string) error
	SetTreasuryAddress(ctx context.Context, callerID int64, address string) error
	UpdateOrderStatus(ctx context.Context, callerID int64, orderID string, status model.OrderStatus, externalReference *string) error
	CompleteOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error)
	RefundOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error)
	OrderCount(ctx context.Context) (int64, error)
	TotalEscrowed(ctx context.Context) (int64, error)
	OrderIDsByResource(ctx context.Context, resourceID string) ([]string, error)
	AddResource(ctx context.Context, callerID int64, res model.Resource) (*model.Resource, error)
	UpdateResource(ctx context.Context, callerID int64, res model.Resource) error
	RemoveResource(ctx context.Context, callerID int64, id string) error
	SetResourceActive(ctx context.Context, callerID int64, id string, active bool) error
	ResourceCount(ctx context.Context) (int64, error)
	Treasury(ctx context.Context, callerID int64) (*model.Treasury, error)
	TreasuryWithdraw(ctx context.Context, callerID int64, amount int64) error
	PurgeReviews(ctx context.Context, callerID int64, resourceID string) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	OrderFacade
	BalanceFacade
	ResourceFacade
	AdminFacade
}
