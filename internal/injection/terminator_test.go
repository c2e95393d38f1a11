package injection

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/redd82/takatrelay/internal/logging"
	"github.com/redd82/takatrelay/internal/notify"
	"github.com/redd82/takatrelay/internal/process"
)

func TestTerminateHappyPath(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string
	srv, _, _ := callbackServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	terminator := NewTerminator(notify.NewClient(testLogger()), testLogger())
	var signaled int
	terminator.stop = func(pid int, _ logging.Logger) (process.Outcome, error) {
		signaled = pid
		return process.OutcomeTerminated, nil
	}

	req := Request{
		CameraUID:   "abcdef0123456789abcdef0123456789",
		OTP:         "s3cretOtpValue",
		PID:         4321,
		CallbackURL: srv.URL + "/RunOnNotReady",
		JWTUser:     "node-7",
		JWTToken:    "tok-abc",
	}
	result, err := terminator.Terminate(context.Background(), req)
	if err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}

	if signaled != 4321 {
		t.Errorf("signaled PID = %d, want 4321", signaled)
	}
	if result.Outcome != process.OutcomeTerminated {
		t.Errorf("Outcome = %v, want Terminated", result.Outcome)
	}
	if result.VirtualCameraURL != "rtsp://127.0.0.1/abcdef0123456789abcdef0123456789" {
		t.Errorf("VirtualCameraURL = %q", result.VirtualCameraURL)
	}
	if result.CallbackStatus != http.StatusOK {
		t.Errorf("CallbackStatus = %d, want 200", result.CallbackStatus)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	want := map[string]string{
		"uid":                req.CameraUID,
		"otp":                req.OTP,
		"pid":                "4321",
		"virtual_camera_url": result.VirtualCameraURL,
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Errorf("payload[%q] = %q, want %q", k, gotBody[k], v)
		}
	}
}

func TestTerminateInvalidPID(t *testing.T) {
	notified := false
	srv, _, _ := callbackServer(t, func(http.ResponseWriter, *http.Request) {
		notified = true
	})

	terminator := NewTerminator(notify.NewClient(testLogger()), testLogger())
	terminator.stop = func(int, logging.Logger) (process.Outcome, error) {
		t.Fatal("stop called for invalid PID")
		return process.OutcomeNotFound, nil
	}

	for _, pid := range []int{0, -1, -4321} {
		_, err := terminator.Terminate(context.Background(), Request{
			CameraUID:   "uid",
			PID:         pid,
			CallbackURL: srv.URL,
		})
		if err == nil {
			t.Fatalf("PID %d accepted", pid)
		}
		if !IsValidation(err) {
			t.Errorf("PID %d: error %v, want validation", pid, err)
		}
	}
	if notified {
		t.Error("notification sent for invalid PID")
	}
}

// A process that is already gone still produces the not-ready notification so
// the receiver converges.
func TestTerminateNotFoundStillNotifies(t *testing.T) {
	notified := false
	srv, _, _ := callbackServer(t, func(w http.ResponseWriter, _ *http.Request) {
		notified = true
		w.WriteHeader(http.StatusOK)
	})

	terminator := NewTerminator(notify.NewClient(testLogger()), testLogger())
	terminator.stop = func(int, logging.Logger) (process.Outcome, error) {
		return process.OutcomeNotFound, nil
	}

	result, err := terminator.Terminate(context.Background(), Request{
		CameraUID:   "uid",
		PID:         12345,
		CallbackURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}
	if result.Outcome != process.OutcomeNotFound {
		t.Errorf("Outcome = %v, want NotFound", result.Outcome)
	}
	if !notified {
		t.Error("not-ready notification skipped for missing process")
	}
}

func TestTerminateCallbackFailureDegrades(t *testing.T) {
	srv, _, _ := callbackServer(t, func(http.ResponseWriter, *http.Request) {})
	url := srv.URL
	srv.Close()

	terminator := NewTerminator(notify.NewClient(testLogger()), testLogger())
	terminator.stop = func(int, logging.Logger) (process.Outcome, error) {
		return process.OutcomeTerminated, nil
	}

	result, err := terminator.Terminate(context.Background(), Request{
		CameraUID:   "uid",
		PID:         1,
		CallbackURL: url,
	})
	if err != nil {
		t.Fatalf("Terminate failed on unreachable callback: %v", err)
	}
	if result.CallbackStatus != 0 {
		t.Errorf("CallbackStatus = %d, want 0 for transport failure", result.CallbackStatus)
	}
}
