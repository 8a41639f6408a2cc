package deployagent

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/nodefoundry/depinmarket/internal/config"
)

// Module exposes deploy agent client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.DeployAgentAddress, p.Logger)
}
