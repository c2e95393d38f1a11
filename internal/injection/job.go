// Package injection implements the two stream lifecycle operations: launching
// a relay copy subprocess with a ready notification, and terminating one with
// a not-ready notification. The operations are independent; the caller is
// responsible for pairing them through the subprocess PID.
package injection

// Job carries everything needed to launch one stream copy. It is built from
// caller-supplied arguments and lives for a single Launch call.
type Job struct {
	// TimeoutMicros is the subprocess socket read timeout in microseconds.
	TimeoutMicros int64
	// InputURL is the camera source stream.
	InputURL string
	// OutputProtocol is the protocol the copy is written in.
	OutputProtocol string
	// RelayPath is the path component of the relay ingest URL.
	RelayPath string

	CameraUID string
	OTP       string
	// LinkedDevice identifies the device the camera is paired to; stamped
	// into the stream metadata when set.
	LinkedDevice string

	// Relay server location. Port 0 omits the port segment.
	RelayProtocol string
	RelayHost     string
	RelayPort     int

	// Callback endpoint location.
	CallbackProtocol string
	CallbackHost     string
	CallbackPort     int

	// Optional bearer credentials. The Authorization header is attached only
	// when both are non-empty.
	JWTUser  string
	JWTToken string
}

// bearerToken returns the token to attach, or "" for unauthenticated calls.
func bearerToken(user, token string) string {
	if user != "" && token != "" {
		return token
	}
	return ""
}
