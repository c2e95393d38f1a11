package process

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/redd82/takatrelay/internal/logging"
)

// Start spawns the command detached and returns its PID without waiting.
//
// The subprocess is placed in its own process group so it survives the caller's
// exit, and the handle is released immediately: the returned PID is the only
// way to reach the subprocess afterwards, which is exactly the ownership
// transfer the launch/terminate pairing relies on. Output is discarded; a
// detached relay process has no one to stream to.
func Start(command string, logger logging.Logger) (int, error) {
	args, err := parseCommand(command)
	if err != nil {
		return 0, fmt.Errorf("failed to parse command: %w", err)
	}
	if len(args) == 0 {
		return 0, fmt.Errorf("empty command")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start process: %w", err)
	}

	pid := cmd.Process.Pid
	logger.Info("Process started detached", "pid", pid, "command", command)

	if err := cmd.Process.Release(); err != nil {
		// The process is already running; a release failure only leaks the handle.
		logger.Warn("Failed to release process handle", "pid", pid, "error", err)
	}

	return pid, nil
}
