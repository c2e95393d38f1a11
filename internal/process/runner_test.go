package process

import (
	"testing"
	"time"
)

// newTestRunner creates a Runner with short timeouts for testing.
func newTestRunner(command string) *Runner {
	r := NewRunner("test", command, testLogger())
	r.gracefulTimeout = 100 * time.Millisecond
	r.killTimeout = 100 * time.Millisecond
	return r
}

// runAsync runs the runner's Run method in a goroutine and returns exit code channel.
func runAsync(r *Runner) <-chan int {
	done := make(chan int, 1)
	go func() {
		done <- r.Run()
	}()
	return done
}

// waitForExitCode waits for exit code with timeout, fails test on timeout.
func waitForExitCode(t *testing.T, done <-chan int, timeout time.Duration) int {
	t.Helper()
	select {
	case exitCode := <-done:
		return exitCode
	case <-time.After(timeout):
		t.Fatal("timeout waiting for process to exit")
		return -1
	}
}

func TestRunnerGracefulShutdown(t *testing.T) {
	// Process that handles SIGINT
	r := newTestRunner(`sh -c "trap 'exit 0' INT TERM; while :; do sleep 0.1; done"`)
	r.gracefulTimeout = 500 * time.Millisecond

	done := runAsync(r)
	time.Sleep(100 * time.Millisecond)
	r.Shutdown()

	if exitCode := waitForExitCode(t, done, 1*time.Second); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestRunnerForceKillOnTimeout(t *testing.T) {
	// Process that ignores SIGINT
	r := newTestRunner(`sh -c "trap '' INT; sleep 10"`)
	r.gracefulTimeout = 50 * time.Millisecond
	r.killTimeout = 50 * time.Millisecond

	done := runAsync(r)
	time.Sleep(50 * time.Millisecond)
	r.Shutdown()

	// Process was killed, expect 137 (128 + 9 for SIGKILL)
	if exitCode := waitForExitCode(t, done, 500*time.Millisecond); exitCode != 137 {
		t.Errorf("expected exit code 137, got %d", exitCode)
	}
}

func TestRunnerProcessAlreadyExited(t *testing.T) {
	r := newTestRunner("true")

	done := runAsync(r)
	if exitCode := waitForExitCode(t, done, 500*time.Millisecond); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}

	// Shutdown after process has already exited - should not panic
	r.Shutdown()
}

func TestRunnerNonZeroExit(t *testing.T) {
	r := newTestRunner(`sh -c "exit 3"`)

	done := runAsync(r)
	if exitCode := waitForExitCode(t, done, 500*time.Millisecond); exitCode != 3 {
		t.Errorf("expected exit code 3, got %d", exitCode)
	}
}

func TestRunnerInvalidCommand(t *testing.T) {
	r := newTestRunner(`echo "unterminated`)
	if exitCode := r.Run(); exitCode != 1 {
		t.Errorf("expected exit code 1 for unparsable command, got %d", exitCode)
	}
}
