package ffmpeg

import "testing"

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "plain level prefix",
			line:      "[error] Connection refused",
			wantLevel: "error",
			wantMsg:   "Connection refused",
		},
		{
			name:      "warning prefix",
			line:      "[warning] deprecated pixel format",
			wantLevel: "warning",
			wantMsg:   "deprecated pixel format",
		},
		{
			name:      "component then level keeps component",
			line:      "[rtsp @ 0x55d3f0] [error] method SETUP failed",
			wantLevel: "error",
			wantMsg:   "[rtsp @ 0x55d3f0] method SETUP failed",
		},
		{
			name:      "no prefix defaults to info",
			line:      "frame=  100 fps= 25",
			wantLevel: "info",
			wantMsg:   "frame=  100 fps= 25",
		},
		{
			name:      "bracket without level defaults to info",
			line:      "[mp4 @ 0x1234] moov atom not found",
			wantLevel: "info",
			wantMsg:   "[mp4 @ 0x1234] moov atom not found",
		},
		{
			name:      "empty line",
			line:      "",
			wantLevel: "info",
			wantMsg:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, msg := ParseLogLevel(tt.line)
			if level != tt.wantLevel || msg != tt.wantMsg {
				t.Errorf("ParseLogLevel(%q) = (%q, %q), want (%q, %q)",
					tt.line, level, msg, tt.wantLevel, tt.wantMsg)
			}
		})
	}
}
