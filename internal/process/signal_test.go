package process

import (
	"os/exec"
	"testing"
	"time"
)

func TestStopTerminatesRunningProcess(t *testing.T) {
	cmd := exec.Command("sleep", "10")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start test process: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	outcome, err := Stop(cmd.Process.Pid, testLogger())
	if err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if outcome != OutcomeTerminated {
		t.Errorf("Stop() outcome = %v, want %v", outcome, OutcomeTerminated)
	}

	select {
	case <-done:
		// SIGTERM took effect
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		t.Error("process did not exit after SIGTERM")
	}
}

func TestStopNonexistentPID(t *testing.T) {
	// Far above any realistic pid_max
	outcome, err := Stop(999999999, testLogger())
	if err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if outcome != OutcomeNotFound {
		t.Errorf("Stop() outcome = %v, want %v", outcome, OutcomeNotFound)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	cmd := exec.Command("sleep", "10")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start test process: %v", err)
	}
	pid := cmd.Process.Pid
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if _, err := Stop(pid, testLogger()); err != nil {
		t.Fatalf("first Stop() error: %v", err)
	}
	<-done // reaped, pid is gone

	outcome, err := Stop(pid, testLogger())
	if err != nil {
		t.Fatalf("second Stop() error: %v", err)
	}
	if outcome != OutcomeNotFound && outcome != OutcomeAlreadyStopped {
		t.Errorf("second Stop() outcome = %v, want not_found or already_stopped", outcome)
	}
}

func TestStopRejectsInvalidPID(t *testing.T) {
	for _, pid := range []int{0, -1, -12345} {
		if _, err := Stop(pid, testLogger()); err == nil {
			t.Errorf("Stop(%d) expected error, got nil", pid)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeTerminated, "terminated"},
		{OutcomeAlreadyStopped, "already_stopped"},
		{OutcomeNotFound, "not_found"},
		{OutcomePermissionDenied, "permission_denied"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(tt.outcome), got, tt.want)
		}
	}
}
