// Package logger builds *slog.Logger instances for the tracker and its tools.
//
// New applies functional options on top of production-safe defaults (JSON to
// stdout at INFO) and returns a ready logger:
//
//	log := logger.New(
//		logger.WithDevelopment("avreplay"),
//		logger.WithAttr(slog.String("player", "web")),
//	)
//	logger.SetAsDefault(log)
//
// attr.go holds constructors for the attribute keys used across the module
// (session_id, event, position, interval, ...) so records stay consistent.
// Error returns an empty attribute for a nil error, which slog drops:
//
//	log.Info("batch delivered", logger.Error(err))
package logger
