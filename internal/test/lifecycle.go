package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects fx hooks so tests can run them by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records a hook without scheduling it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called when a shutdown is requested.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown performs a non-blocking notification.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
