package logger

import (
	"log/slog"
	"os"
)

// New builds the process-wide slog.Logger: JSON records on stdout at
// info level, tagged with the service name.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "depinmarket"))
}
