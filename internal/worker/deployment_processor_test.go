package worker

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nodefoundry/depinmarket/internal/adapter/deployagent"
	"github.com/nodefoundry/depinmarket/internal/domain/model"
	testhelpers "github.com/nodefoundry/depinmarket/internal/test"
)

func TestNewDeploymentProcessorDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	proc := NewDeploymentProcessor(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, logger)
	if proc.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", proc.batchSize)
	}
	if proc.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", proc.workers)
	}
}

func TestDeploymentProcessorAdvancesOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: "order-1", Status: model.OrderStatusActive}}},
	}
	proc := NewDeploymentProcessor(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Updates) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for order processing")
		case <-time.After(10 * time.Millisecond):
		}
	}

	proc.Stop()
	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) == 0 {
		t.Fatalf("expected order status update")
	}
	update := facade.Updates[0]
	if update.Status != model.OrderStatusDeployed {
		t.Fatalf("expected deployed status, got %v", update.Status)
	}
	if update.Reference == nil || *update.Reference != "deploy-ref" {
		t.Fatalf("expected external reference to be recorded, got %v", update.Reference)
	}
}

func TestDeploymentProcessorSkipsUnchangedStatus(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	checked := make(chan struct{}, 1)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: "order-1", Status: model.OrderStatusActive}}},
		CheckFn: func(ctx context.Context, orderID string) (*model.Deployment, error) {
			select {
			case checked <- struct{}{}:
			default:
			}
			return &model.Deployment{OrderID: orderID, State: model.DeploymentStateQueued}, nil
		},
	}
	proc := NewDeploymentProcessor(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	select {
	case <-checked:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for deployment check")
	}
	time.Sleep(20 * time.Millisecond)
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) != 0 {
		t.Fatalf("expected no status updates for unchanged status, got %d", len(facade.Updates))
	}
}

func TestDeploymentProcessorAbortsFailedDeployments(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: "order-1", Status: model.OrderStatusActive}}},
		CheckFn: func(ctx context.Context, orderID string) (*model.Deployment, error) {
			return &model.Deployment{OrderID: orderID, State: model.DeploymentStateFailed}, nil
		},
	}
	proc := NewDeploymentProcessor(facade, 10*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		aborted := len(facade.Aborted) > 0
		facade.Unlock()
		if aborted {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for abort")
		case <-time.After(10 * time.Millisecond):
		}
	}
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if facade.Aborted[0] != "order-1" {
		t.Fatalf("expected order-1 aborted, got %q", facade.Aborted[0])
	}
	if len(facade.Updates) != 0 {
		t.Fatalf("expected no status updates for failed deployment")
	}
}

func TestDeploymentProcessorHandlesRateLimiting(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{
			{{ID: "order-1", Status: model.OrderStatusActive}},
			{{ID: "order-1", Status: model.OrderStatusActive}},
		},
		CheckFn: func(ctx context.Context, orderID string) (*model.Deployment, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, deployagent.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
			}
			return &model.Deployment{OrderID: orderID, State: model.DeploymentStateRunning}, nil
		},
	}

	proc := NewDeploymentProcessor(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		if len(facade.Updates) > 0 {
			facade.Unlock()
			break
		}
		facade.Unlock()
		select {
		case <-deadline:
			t.Fatal("timeout waiting for retry")
		case <-time.After(10 * time.Millisecond):
		}
	}
	proc.Stop()
}

func TestDeploymentProcessorSkipsUnregisteredOrders(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	checked := make(chan struct{}, 1)
	facade := &testhelpers.WorkerFacadeStub{
		Orders: [][]model.Order{{{ID: "order-1", Status: model.OrderStatusPending}}},
		CheckFn: func(ctx context.Context, orderID string) (*model.Deployment, error) {
			select {
			case checked <- struct{}{}:
			default:
			}
			return nil, deployagent.ErrOrderNotRegistered
		},
	}
	proc := NewDeploymentProcessor(facade, 5*time.Millisecond, 1, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	select {
	case <-checked:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for deployment check")
	}
	proc.Stop()

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Updates) != 0 || len(facade.Aborted) != 0 {
		t.Fatalf("expected no action for unregistered order")
	}
}
