// Package ffmpeg generates the relay copy commands handed to subprocesses.
package ffmpeg

import (
	"fmt"
	"strings"
)

// Params describes a stream copy from a camera source into the relay server.
// The stream is never re-encoded; codecs are copied as-is.
type Params struct {
	// TimeoutMicros is the socket read timeout in microseconds (ffmpeg -timeout).
	TimeoutMicros int64
	// InputURL is the camera source.
	InputURL string

	// Metadata stamped onto the copied stream.
	UID          string
	OTP          string
	LinkedDevice string

	// OutputProtocol selects the output muxer; OutputURL is the relay ingest URL.
	OutputProtocol string
	OutputURL      string
}

// BuildRelayCommand builds the ffmpeg invocation that copies the input stream
// to the relay ingest URL. Input is read at native frame rate and looped so a
// finite source (an mp4 test clip) behaves like a live feed.
func BuildRelayCommand(p *Params) string {
	var cmd strings.Builder

	cmd.WriteString("ffmpeg -hide_banner -loglevel level+info")

	if p.TimeoutMicros > 0 {
		fmt.Fprintf(&cmd, " -timeout %d", p.TimeoutMicros)
	}

	cmd.WriteString(" -re -stream_loop -1")
	fmt.Fprintf(&cmd, " -i \"%s\"", p.InputURL)
	cmd.WriteString(" -c copy")

	if p.UID != "" {
		fmt.Fprintf(&cmd, " -metadata uid=\"%s\"", p.UID)
	}
	if p.LinkedDevice != "" {
		fmt.Fprintf(&cmd, " -metadata linked_device=\"%s\"", p.LinkedDevice)
	}
	if p.OTP != "" {
		fmt.Fprintf(&cmd, " -metadata otp=\"%s\"", p.OTP)
	}

	if p.OutputProtocol == "rtsp" {
		cmd.WriteString(" -rtsp_transport tcp")
	}
	fmt.Fprintf(&cmd, " -f %s %s", MuxerFor(p.OutputProtocol), p.OutputURL)

	return cmd.String()
}

// MuxerFor maps an output protocol to the ffmpeg muxer that carries it.
// SRT, UDP, TCP, and plain HTTP outputs are wrapped in mpegts.
func MuxerFor(protocol string) string {
	switch protocol {
	case "rtsp":
		return "rtsp"
	case "rtmp":
		return "flv"
	default:
		return "mpegts"
	}
}
