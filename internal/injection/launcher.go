package injection

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redd82/takatrelay/internal/ffmpeg"
	"github.com/redd82/takatrelay/internal/link"
	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/notify"
	"github.com/redd82/takatrelay/internal/process"
)

// callbackReadyPath is the endpoint the ready notification is posted to.
const callbackReadyPath = "RunOnReady"

// loopbackHost is where the subprocess writes its copy; the relay server is
// assumed co-located.
const loopbackHost = "127.0.0.1"

// LaunchResult reports a completed launch. CallbackStatus 0 means the
// notification could not be delivered; the subprocess is running regardless.
type LaunchResult struct {
	PID              int
	Command          string
	OutputURL        string
	VirtualCameraURL string
	RelayBaseURL     string
	CallbackURL      string
	CallbackStatus   int
}

// Launcher validates a job, starts the relay copy subprocess, and posts the
// ready notification.
type Launcher struct {
	notifier *notify.Client
	spawn    func(command string, logger logging.Logger) (int, error)
	logger   logging.Logger
}

// NewLauncher creates a launcher that spawns real subprocesses.
func NewLauncher(notifier *notify.Client, logger logging.Logger) *Launcher {
	return &Launcher{
		notifier: notifier,
		spawn:    process.Start,
		logger:   logger,
	}
}

// Launch runs validate -> construct URLs -> spawn -> notify.
//
// Validation failures return before any side effect. A spawn failure is fatal
// since there is no PID to report. A notification failure degrades the result
// (CallbackStatus 0) but does not roll back the already-started subprocess.
func (l *Launcher) Launch(ctx context.Context, job Job) (*LaunchResult, error) {
	if job.TimeoutMicros <= 0 {
		return nil, NewError(ErrCodeValidation, fmt.Sprintf("timeout must be positive, got %d", job.TimeoutMicros), nil)
	}
	if job.InputURL == "" {
		return nil, NewError(ErrCodeValidation, "input URL is required", nil)
	}

	relayBase, err := link.New(job.RelayProtocol, job.RelayHost, job.RelayPort, "")
	if err != nil {
		return nil, NewError(ErrCodeValidation, "invalid relay address", err)
	}
	outputLink, err := link.New(job.OutputProtocol, loopbackHost, job.RelayPort, job.RelayPath)
	if err != nil {
		return nil, NewError(ErrCodeValidation, "invalid output address", err)
	}
	// Same protocol/port/path, but addressed for remote viewers
	virtualLink, err := link.New(job.OutputProtocol, job.RelayHost, job.RelayPort, job.RelayPath)
	if err != nil {
		return nil, NewError(ErrCodeValidation, "invalid virtual camera address", err)
	}
	callbackLink, err := link.New(job.CallbackProtocol, job.CallbackHost, job.CallbackPort, callbackReadyPath)
	if err != nil {
		return nil, NewError(ErrCodeValidation, "invalid callback address", err)
	}

	command := ffmpeg.BuildRelayCommand(&ffmpeg.Params{
		TimeoutMicros:  job.TimeoutMicros,
		InputURL:       job.InputURL,
		UID:            job.CameraUID,
		OTP:            job.OTP,
		LinkedDevice:   job.LinkedDevice,
		OutputProtocol: job.OutputProtocol,
		OutputURL:      outputLink.String(),
	})

	pid, err := l.spawn(command, l.logger)
	if err != nil {
		return nil, NewError(ErrCodeProcess, "failed to start relay subprocess", err)
	}

	result := &LaunchResult{
		PID:              pid,
		Command:          command,
		OutputURL:        outputLink.String(),
		VirtualCameraURL: virtualLink.String(),
		RelayBaseURL:     relayBase.String(),
		CallbackURL:      callbackLink.String(),
	}

	payload := notify.ReadyPayload{
		UID:             job.CameraUID,
		OTP:             job.OTP,
		CopiedStreamURL: result.VirtualCameraURL,
		FFmpegPID:       strconv.Itoa(pid),
	}

	status, err := l.notifier.Post(ctx, result.CallbackURL, payload, bearerToken(job.JWTUser, job.JWTToken))
	if err != nil {
		// Advisory telemetry: the subprocess stays up, the caller sees status 0
		l.logger.Warn("Ready notification failed", "url", result.CallbackURL, "error", err)
	}
	result.CallbackStatus = status

	return result, nil
}
