package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/redd82/takatrelay/internal/logging"
)

// LogParser parses a log line and returns the log level and message.
// Used to extract structured log info from subprocess output.
type LogParser func(line string) (level, msg string)

// Runner supervises a single subprocess in the foreground.
type Runner struct {
	id              string
	command         string
	cmd             *exec.Cmd
	logger          logging.Logger
	processLogger   logging.Logger // logger for process output (nil = use logger)
	logParser       LogParser      // parses process output for log level (nil = no parsing)
	ctx             context.Context
	cancel          context.CancelFunc
	gracefulTimeout time.Duration // timeout for graceful shutdown before force kill
	killTimeout     time.Duration // timeout after Kill() before giving up
}

// NewRunner creates a runner for the given command.
func NewRunner(id, command string, logger logging.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		id:              id,
		command:         command,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		gracefulTimeout: 5 * time.Second,
		killTimeout:     5 * time.Second,
	}
}

// SetLogParser sets a custom logger and log parser for process output.
// The logger is used for process output (e.g., module="ffmpeg").
// The parser extracts log level from process-specific output formats.
func (r *Runner) SetLogParser(logger logging.Logger, parser LogParser) {
	r.processLogger = logger
	r.logParser = parser
}

// Shutdown triggers a graceful shutdown of the runner.
func (r *Runner) Shutdown() {
	r.cancel()
}

// runningProcess holds channels for monitoring a running subprocess.
type runningProcess struct {
	processDone <-chan error
	outputDone  chan struct{} // receives twice, once per output stream
}

// startProcess parses the command, starts the subprocess, and returns channels for monitoring.
func (r *Runner) startProcess(command string) (*runningProcess, error) {
	args, err := parseCommand(command)
	if err != nil {
		r.logger.Error("Failed to parse command", "error", err)
		return nil, err
	}

	if len(args) == 0 {
		r.logger.Error("Empty command")
		return nil, fmt.Errorf("empty command")
	}

	r.cmd = exec.Command(args[0], args[1:]...)
	r.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := r.cmd.StdoutPipe()
	if err != nil {
		r.logger.Error("Failed to create stdout pipe", "error", err)
		return nil, err
	}

	stderr, err := r.cmd.StderrPipe()
	if err != nil {
		r.logger.Error("Failed to create stderr pipe", "error", err)
		return nil, err
	}

	if err := r.cmd.Start(); err != nil {
		r.logger.Error("Failed to start process", "error", err, "command", command)
		return nil, err
	}

	r.logger.Info("Process started", "id", r.id, "pid", r.cmd.Process.Pid, "command", command)

	// Stream output in separate goroutines
	outputDone := make(chan struct{}, 2)
	go func() {
		r.streamOutput(stdout, "stdout")
		outputDone <- struct{}{}
	}()
	go func() {
		r.streamOutput(stderr, "stderr")
		outputDone <- struct{}{}
	}()

	// Wait for process in goroutine
	processDone := make(chan error, 1)
	go func() {
		processDone <- r.cmd.Wait()
	}()

	return &runningProcess{processDone: processDone, outputDone: outputDone}, nil
}

// waitOutputDone waits for both output streams to complete.
func (r *Runner) waitOutputDone(outputDone <-chan struct{}) {
	<-outputDone
	<-outputDone
}

// exitCodeFromError extracts exit code from process error.
// Returns 0 for nil error, the exit code for ExitError, or 1 for other errors.
func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// Run starts the subprocess and blocks until it exits or receives a signal.
// Returns the exit code of the subprocess.
func (r *Runner) Run() int {
	rp, err := r.startProcess(r.command)
	if err != nil {
		return 1
	}
	defer r.waitOutputDone(rp.outputDone)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-r.ctx.Done():
		r.logger.Info("Context cancelled, shutting down process")
		r.sendStopSignal()
		return r.waitForExit(rp.processDone, r.gracefulTimeout)
	case sig := <-sigChan:
		r.logger.Info("Received shutdown signal", "signal", sig.String())
		r.sendStopSignal()
		return r.waitForExit(rp.processDone, r.gracefulTimeout)
	case processErr := <-rp.processDone:
		exitCode := exitCodeFromError(processErr)
		if processErr != nil && exitCode == 1 {
			r.logger.Error("Process exited with error", "error", processErr)
		}
		r.logger.Info("Process exited", "exit_code", exitCode)
		return exitCode
	}
}

// sendStopSignal sends SIGINT to the subprocess without waiting.
func (r *Runner) sendStopSignal() {
	if r.cmd == nil || r.cmd.Process == nil {
		return
	}
	r.logger.Info("Sending SIGINT to process", "pid", r.cmd.Process.Pid)
	if err := r.cmd.Process.Signal(syscall.SIGINT); err != nil {
		r.logger.Warn("Failed to send SIGINT", "error", err)
	}
}

// waitForExit waits for the process to exit with a timeout, force-killing if needed.
func (r *Runner) waitForExit(processDone <-chan error, timeout time.Duration) int {
	select {
	case err := <-processDone:
		return exitCodeFromError(err)
	case <-time.After(timeout):
		r.logger.Warn("Graceful shutdown timeout, forcing kill", "timeout", timeout)
		if r.cmd.Process != nil {
			if err := r.cmd.Process.Kill(); err != nil {
				// "os: process already finished" is OK - process exited between timeout and kill
				if !errors.Is(err, os.ErrProcessDone) {
					r.logger.Error("Failed to kill process", "error", err)
				}
			}
		}
		// Wait for process to exit with a secondary timeout to prevent hanging
		select {
		case <-processDone:
			// Process exited
		case <-time.After(r.killTimeout):
			r.logger.Error("Process did not exit after kill signal")
		}
		return 137
	}
}

// streamOutput streams output from the subprocess.
// Uses the configured processLogger (or falls back to the runner logger) and
// the configured LogParser to extract log levels from process output.
func (r *Runner) streamOutput(reader io.Reader, source string) {
	scanner := bufio.NewScanner(reader)

	logger := r.processLogger
	if logger == nil {
		logger = r.logger
	}

	for scanner.Scan() {
		line := scanner.Text()

		// Use configured parser or default to info level
		level, msg := "info", line
		if r.logParser != nil {
			level, msg = r.logParser(line)
		}

		switch level {
		case "fatal", "error":
			logger.Error(msg)
		case "warning":
			logger.Warn(msg)
		case "debug", "trace":
			logger.Debug(msg)
		default:
			logger.Info(msg)
		}
	}

	if err := scanner.Err(); err != nil {
		r.logger.Warn("Error reading output", "source", source, "error", err)
	}
}
