package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/nodefoundry/depinmarket/internal/adapter/deployagent"
	"github.com/nodefoundry/depinmarket/internal/config"
	"github.com/nodefoundry/depinmarket/internal/server/http/handlers"
	"github.com/nodefoundry/depinmarket/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMarketFacade,
		newDeploymentProvider,
		newHandlersFacade,
		newHTTPServer,
		newDeploymentProcessor,
	),
	fx.Invoke(registerLifecycle),
)

func newDeploymentProvider(client deployagent.Client) DeploymentProvider {
	return client
}

func newHandlersFacade(facade *MarketFacade) handlers.MarketFacade {
	return facade
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *MarketFacade
	Config *config.Config
	Logger *slog.Logger
}

func newDeploymentProcessor(p workerParams) *worker.DeploymentProcessor {
	return worker.NewDeploymentProcessor(
		p.Facade,
		p.Config.OrderPollInterval,
		p.Config.MaxOrdersBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.DeploymentProcessor
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting depinmarket", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("depinmarket stopped")
			return nil
		},
	})
}
