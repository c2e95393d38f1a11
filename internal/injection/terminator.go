package injection

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/notify"
	"github.com/redd82/takatrelay/internal/process"
)

// Request describes a termination: which subprocess to signal and where to
// announce the camera going away.
type Request struct {
	CameraUID   string
	OTP         string
	PID         int
	CallbackURL string
	JWTUser     string
	JWTToken    string
}

// Result reports what happened to the subprocess and to the notification.
type Result struct {
	Outcome          process.Outcome
	VirtualCameraURL string
	CallbackStatus   int
}

// Terminator signals the relay subprocess and posts the not-ready
// notification. The notification is always attempted, even when the process
// was already gone, so the receiving side converges on the same state.
type Terminator struct {
	notifier *notify.Client
	stop     func(pid int, logger logging.Logger) (process.Outcome, error)
	logger   logging.Logger
}

func NewTerminator(notifier *notify.Client, logger logging.Logger) *Terminator {
	return &Terminator{
		notifier: notifier,
		stop:     process.Stop,
		logger:   logger,
	}
}

// Terminate signals req.PID and posts the not-ready payload to
// req.CallbackURL. Only an invalid PID is an error; signal and notification
// failures are recorded in the result.
func (t *Terminator) Terminate(ctx context.Context, req Request) (*Result, error) {
	if req.PID <= 0 {
		return nil, NewError(ErrCodeValidation, fmt.Sprintf("PID must be a positive integer, got %d", req.PID), nil)
	}

	outcome, err := t.stop(req.PID, t.logger)
	if err != nil {
		t.logger.Warn("Signal delivery problem", "pid", req.PID, "outcome", outcome.String(), "error", err)
	}

	result := &Result{
		Outcome:          outcome,
		VirtualCameraURL: fmt.Sprintf("rtsp://127.0.0.1/%s", req.CameraUID),
	}

	payload := notify.NotReadyPayload{
		UID:              req.CameraUID,
		OTP:              req.OTP,
		PID:              strconv.Itoa(req.PID),
		VirtualCameraURL: result.VirtualCameraURL,
	}

	status, err := t.notifier.Post(ctx, req.CallbackURL, payload, bearerToken(req.JWTUser, req.JWTToken))
	if err != nil {
		t.logger.Warn("Not-ready notification failed", "url", req.CallbackURL, "error", err)
	}
	result.CallbackStatus = status

	return result, nil
}
