// Package process provides subprocess lifecycle management for relay streams.
//
// Three entry points cover the lifecycle:
//
//   - Start spawns a command detached in its own process group and returns the
//     PID immediately. Ownership of the subprocess transfers to whoever holds
//     the PID; the caller may exit without affecting it.
//   - Stop delivers SIGTERM to a PID obtained from an earlier Start and reports
//     an explicit Outcome (Terminated, AlreadyStopped, NotFound,
//     PermissionDenied) so callers can distinguish the branches instead of
//     treating every non-zero result alike.
//   - Runner supervises a subprocess in the foreground: graceful shutdown with
//     SIGINT and configurable timeout, force kill with SIGKILL on timeout, and
//     output streaming with pluggable log parsing.
package process
