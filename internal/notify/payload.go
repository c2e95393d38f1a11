package notify

// ReadyPayload announces that a stream copy is live. All values are strings on
// the wire, including the PID.
type ReadyPayload struct {
	UID             string `json:"uid"`
	OTP             string `json:"otp"`
	CopiedStreamURL string `json:"copied_stream_url"`
	FFmpegPID       string `json:"ffmpeg_pid"`
}

// NotReadyPayload announces that a stream copy has been stopped.
//
// The field names differ from ReadyPayload (pid vs ffmpeg_pid,
// virtual_camera_url vs copied_stream_url) even though they carry the same
// semantic values. The receiving endpoint depends on these exact keys, so the
// asymmetry is kept.
type NotReadyPayload struct {
	UID              string `json:"uid"`
	OTP              string `json:"otp"`
	PID              string `json:"pid"`
	VirtualCameraURL string `json:"virtual_camera_url"`
}
