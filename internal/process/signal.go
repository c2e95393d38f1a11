package process

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/redd82/takatrelay/internal/logging"
)

// Outcome is the result of a Stop attempt. All outcomes are advisory; the
// subprocess being gone already is just as acceptable as having stopped it.
type Outcome int

const (
	// OutcomeTerminated means the signal was delivered to a live process.
	OutcomeTerminated Outcome = iota
	// OutcomeAlreadyStopped means the process exited between probe and signal.
	OutcomeAlreadyStopped
	// OutcomeNotFound means no process with that PID exists.
	OutcomeNotFound
	// OutcomePermissionDenied means the PID exists but belongs to another user.
	OutcomePermissionDenied
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeTerminated:
		return "terminated"
	case OutcomeAlreadyStopped:
		return "already_stopped"
	case OutcomeNotFound:
		return "not_found"
	case OutcomePermissionDenied:
		return "permission_denied"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Stop sends SIGTERM to the process identified by pid and reports what
// happened. It never waits for the process to exit.
func Stop(pid int, logger logging.Logger) (Outcome, error) {
	if pid <= 0 {
		return OutcomeNotFound, fmt.Errorf("invalid pid %d", pid)
	}

	// Signal 0 probes for existence without delivering anything
	if err := syscall.Kill(pid, 0); err != nil {
		switch {
		case errors.Is(err, syscall.ESRCH):
			logger.Info("Process not found", "pid", pid)
			return OutcomeNotFound, nil
		case errors.Is(err, syscall.EPERM):
			logger.Warn("Process owned by another user", "pid", pid)
			return OutcomePermissionDenied, nil
		default:
			return OutcomeNotFound, fmt.Errorf("failed to probe pid %d: %w", pid, err)
		}
	}

	err := syscall.Kill(pid, syscall.SIGTERM)
	switch {
	case err == nil:
		logger.Info("Sent SIGTERM to process", "pid", pid)
		return OutcomeTerminated, nil
	case errors.Is(err, syscall.ESRCH):
		// Exited between the probe and the signal
		logger.Info("Process already stopped", "pid", pid)
		return OutcomeAlreadyStopped, nil
	case errors.Is(err, syscall.EPERM):
		logger.Warn("Permission denied signaling process", "pid", pid)
		return OutcomePermissionDenied, nil
	default:
		return OutcomeNotFound, fmt.Errorf("failed to signal pid %d: %w", pid, err)
	}
}
