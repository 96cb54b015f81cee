// Package logger provides the process-wide zap logger for authgate.
//
// Usage:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Component("gateway"), logger.Op("Signup"))
//	log.Info("otp challenge issued", logger.TxnID(ch.TransactionID))
//
// Middlewares inject a request-scoped logger into the context; From(ctx)
// falls back to the singleton when none is present.
package logger
