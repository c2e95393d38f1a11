// Package logging provides structured logging with per-module log level configuration.
//
// The package uses Go's slog with automatic output routing: logs go to the
// systemd journal when journald is available, to stdout when a terminal, pipe,
// or file is connected, and to both when both are available.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"injection": "debug",
//		},
//	})
//
// Then get a logger for your module:
//
//	logger := logging.GetLogger("injection").With("camera_uid", uid)
//	logger.Info("Stream started", "pid", pid)
//
// When running under systemd, logs can be filtered by structured fields:
//
//	journalctl -t takatrelay MODULE=injection
//	journalctl -t takatrelay CAMERA_UID=abc123
package logging
