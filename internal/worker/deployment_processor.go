package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nodefoundry/depinmarket/internal/adapter/deployagent"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
)

// MarketFacade exposes the subset of application functionality required by the worker.
type MarketFacade interface {
	OrdersForDeployment(ctx context.Context, limit int) ([]model.Order, error)
	CheckDeployment(ctx context.Context, orderID string) (*model.Deployment, error)
	RecordDeploymentStatus(ctx context.Context, orderID string, status model.OrderStatus, externalReference *string) error
	AbortDeployment(ctx context.Context, orderID string) (*model.Order, error)
}

// DeploymentProcessor polls the deploy agent and advances order statuses concurrently.
type DeploymentProcessor struct {
	facade       MarketFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDeploymentProcessor constructs deployment processor worker pool.
func NewDeploymentProcessor(facade MarketFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *DeploymentProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &DeploymentProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *DeploymentProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *DeploymentProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *DeploymentProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *DeploymentProcessor) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersForDeployment(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for deployment failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *DeploymentProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *DeploymentProcessor) handleOrder(ctx context.Context, order model.Order) {
	deployment, err := p.facade.CheckDeployment(ctx, order.ID)
	if err != nil {
		switch e := err.(type) {
		case deployagent.TooManyRequestsError:
			p.logger.Warn("deploy agent rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, deployagent.ErrOrderNotRegistered) {
				time.Sleep(p.pollInterval)
				return
			}
			p.logger.Error("deployment fetch failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	if deployment.State == model.DeploymentStateFailed {
		if _, err := p.facade.AbortDeployment(ctx, order.ID); err != nil {
			p.logger.Error("abort deployment failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	var status model.OrderStatus
	switch deployment.State {
	case model.DeploymentStateQueued, model.DeploymentStateStarting:
		status = model.OrderStatusActive
	case model.DeploymentStateRunning:
		status = model.OrderStatusDeployed
	default:
		status = model.OrderStatusActive
	}

	if status == order.Status {
		return
	}

	if err := p.facade.RecordDeploymentStatus(ctx, order.ID, status, deployment.ExternalReference); err != nil {
		p.logger.Error("record deployment status failed", slog.String("order", order.ID), slog.String("error", err.Error()))
	}
}
