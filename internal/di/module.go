package di

import (
	"github.com/nodefoundry/depinmarket/internal/adapter/deployagent"
	"github.com/nodefoundry/depinmarket/internal/app"
	"github.com/nodefoundry/depinmarket/internal/config"
	"github.com/nodefoundry/depinmarket/internal/logger"
	"github.com/nodefoundry/depinmarket/internal/pkg/auth"
	"github.com/nodefoundry/depinmarket/internal/server/http/router"
	"github.com/nodefoundry/depinmarket/internal/storage/postgres"
	"github.com/nodefoundry/depinmarket/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		deployagent.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
