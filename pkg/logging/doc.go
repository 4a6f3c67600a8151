// Package logging provides structured logging for the gauth CLI with
// unified log handling and level filtering.
//
// The package is a thin layer over Go's standard slog package. Every
// entry carries a subsystem identifier so log output can be filtered by
// the component that produced it.
//
// # Usage
//
//	// Initialize with Info level logging to stderr
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Login", "waiting for sign-in redirect")
//	logging.Debug("Transport", "sending %s request", op)
//	logging.Error("Login", err, "token exchange failed")
//
// SDK components that accept a *slog.Logger are wired to the same
// handler via Logger().
package logging
