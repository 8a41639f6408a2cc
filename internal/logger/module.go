package logger

import "go.uber.org/fx"

// Module provides the shared structured logger.
var Module = fx.Provide(New)
