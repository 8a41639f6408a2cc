package app

import (
	"context"
	"errors"

	domainErrors "github.com/nodefoundry/depinmarket/internal/domain/errors"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	"github.com/nodefoundry/depinmarket/internal/usecase"
)

// DeploymentProvider reports deployment progress for funded orders.
type DeploymentProvider interface {
	Fetch(ctx context.Context, orderID string) (*model.Deployment, error)
}

// MarketFacade aggregates application use cases behind a single surface
// consumed by HTTP handlers and the deployment worker.
type MarketFacade struct {
	auth        *usecase.AuthUseCase
	engine      *usecase.OrderEngine
	registry    *usecase.RegistryUseCase
	balance     *usecase.BalanceUseCase
	treasury    *usecase.TreasuryUseCase
	reviews     *usecase.ReviewUseCase
	deployments DeploymentProvider
}

func NewMarketFacade(
	auth *usecase.AuthUseCase,
	engine *usecase.OrderEngine,
	registry *usecase.RegistryUseCase,
	balance *usecase.BalanceUseCase,
	treasury *usecase.TreasuryUseCase,
	reviews *usecase.ReviewUseCase,
	deployments DeploymentProvider,
) *MarketFacade {
	return &MarketFacade{
		auth:        auth,
		engine:      engine,
		registry:    registry,
		balance:     balance,
		treasury:    treasury,
		reviews:     reviews,
		deployments: deployments,
	}
}

func (f *MarketFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *MarketFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) Initialize(ctx context.Context, callerID int64) error {
	return f.engine.Initialize(ctx, callerID)
}

func (f *MarketFacade) IsOperator(ctx context.Context, callerID int64) (bool, error) {
	return f.engine.IsOperator(ctx, callerID)
}

func (f *MarketFacade) SetRegistryAddress(ctx context.Context, callerID int64, address string) error {
	return f.engine.SetRegistryAddress(ctx, callerID, address)
}

func (f *MarketFacade) SetLedgerAddress(ctx context.Context, callerID int64, address string) error {
	return f.engine.SetLedgerAddress(ctx, callerID, address)
}

func (f *MarketFacade) SetTreasuryAddress(ctx context.Context, callerID int64, address string) error {
	return f.engine.SetTreasuryAddress(ctx, callerID, address)
}

func (f *MarketFacade) CreateOrder(ctx context.Context, buyerID int64, spec model.OrderSpec) (*model.Order, error) {
	return f.engine.CreateOrder(ctx, buyerID, spec)
}

func (f *MarketFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.engine.GetOrder(ctx, orderID)
}

func (f *MarketFacade) Orders(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return f.engine.OrdersByBuyer(ctx, buyerID)
}

func (f *MarketFacade) OrderIDsByBuyer(ctx context.Context, buyerID int64) ([]string, error) {
	return f.engine.ListOrderIDsByBuyer(ctx, buyerID)
}

func (f *MarketFacade) OrderIDsByResource(ctx context.Context, resourceID string) ([]string, error) {
	return f.engine.ListOrderIDsByResource(ctx, resourceID)
}

func (f *MarketFacade) OrderCount(ctx context.Context) (int64, error) {
	return f.engine.OrderCount(ctx)
}

func (f *MarketFacade) TotalEscrowed(ctx context.Context) (int64, error) {
	return f.engine.TotalEscrowed(ctx)
}

func (f *MarketFacade) CancelOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	return f.engine.CancelOrder(ctx, callerID, orderID)
}

func (f *MarketFacade) CompleteOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	return f.engine.CompleteOrder(ctx, callerID, orderID)
}

func (f *MarketFacade) RefundOrder(ctx context.Context, callerID int64, orderID string) (*model.Order, error) {
	return f.engine.RefundOrder(ctx, callerID, orderID)
}

func (f *MarketFacade) UpdateOrderStatus(ctx context.Context, callerID int64, orderID string, status model.OrderStatus, externalReference *string) error {
	return f.engine.UpdateStatus(ctx, callerID, orderID, status, externalReference)
}

// OrdersForDeployment feeds the deployment worker with non-terminal orders.
func (f *MarketFacade) OrdersForDeployment(ctx context.Context, limit int) ([]model.Order, error) {
	return f.engine.OrdersForDeployment(ctx, limit)
}

func (f *MarketFacade) CheckDeployment(ctx context.Context, orderID string) (*model.Deployment, error) {
	return f.deployments.Fetch(ctx, orderID)
}

func (f *MarketFacade) RecordDeploymentStatus(ctx context.Context, orderID string, status model.OrderStatus, externalReference *string) error {
	return f.engine.RecordDeploymentStatus(ctx, orderID, status, externalReference)
}

func (f *MarketFacade) AbortDeployment(ctx context.Context, orderID string) (*model.Order, error) {
	return f.engine.AbortDeployment(ctx, orderID)
}

func (f *MarketFacade) Balance(ctx context.Context, userID int64) (*model.Balance, error) {
	balance, err := f.balance.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.Balance{UserID: userID}, nil
		}
		return nil, err
	}
	return balance, nil
}

func (f *MarketFacade) Deposit(ctx context.Context, userID int64, amount int64) error {
	return f.balance.Deposit(ctx, userID, amount)
}

func (f *MarketFacade) Withdraw(ctx context.Context, userID int64, amount int64) error {
	return f.balance.Withdraw(ctx, userID, amount)
}

func (f *MarketFacade) AddResource(ctx context.Context, callerID int64, res model.Resource) (*model.Resource, error) {
	return f.registry.Add(ctx, callerID, res)
}

func (f *MarketFacade) UpdateResource(ctx context.Context, callerID int64, res model.Resource) error {
	return f.registry.Update(ctx, callerID, res)
}

func (f *MarketFacade) RemoveResource(ctx context.Context, callerID int64, id string) error {
	return f.registry.Remove(ctx, callerID, id)
}

func (f *MarketFacade) SetResourceActive(ctx context.Context, callerID int64, id string, active bool) error {
	return f.registry.SetActive(ctx, callerID, id, active)
}

func (f *MarketFacade) Resource(ctx context.Context, id string) (*model.Resource, error) {
	return f.registry.Get(ctx, id)
}

func (f *MarketFacade) Resources(ctx context.Context) ([]model.Resource, error) {
	return f.registry.List(ctx)
}

func (f *MarketFacade) ResourceCount(ctx context.Context) (int64, error) {
	return f.registry.Count(ctx)
}

func (f *MarketFacade) Treasury(ctx context.Context, callerID int64) (*model.Treasury, error) {
	return f.treasury.Get(ctx, callerID)
}

func (f *MarketFacade) TreasuryWithdraw(ctx context.Context, callerID int64, amount int64) error {
	return f.treasury.Withdraw(ctx, callerID, amount)
}

func (f *MarketFacade) RateResource(ctx context.Context, userID int64, resourceID string, rating int, review string) (*model.Review, error) {
	return f.reviews.RateAndReview(ctx, userID, resourceID, rating, review)
}

func (f *MarketFacade) ResourceReviews(ctx context.Context, resourceID string) ([]model.Review, error) {
	return f.reviews.ListByResource(ctx, resourceID)
}

func (f *MarketFacade) ResourceRating(ctx context.Context, resourceID string) (*model.RatingStats, error) {
	return f.reviews.Stats(ctx, resourceID)
}

func (f *MarketFacade) PurgeReviews(ctx context.Context, callerID int64, resourceID string) error {
	return f.reviews.Purge(ctx, callerID, resourceID)
}
