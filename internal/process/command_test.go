package process

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{
			name:    "simple command",
			command: "ffmpeg -i input.mp4 output.mp4",
			want:    []string{"ffmpeg", "-i", "input.mp4", "output.mp4"},
		},
		{
			name:    "double quoted argument",
			command: `ffmpeg -i "http://cam.local/live stream" -c copy`,
			want:    []string{"ffmpeg", "-i", "http://cam.local/live stream", "-c", "copy"},
		},
		{
			name:    "single quoted argument",
			command: `sh -c 'sleep 1'`,
			want:    []string{"sh", "-c", "sleep 1"},
		},
		{
			name:    "metadata with embedded quotes",
			command: `ffmpeg -metadata uid="CAM123" -f rtsp rtsp://127.0.0.1/cam`,
			want:    []string{"ffmpeg", "-metadata", "uid=CAM123", "-f", "rtsp", "rtsp://127.0.0.1/cam"},
		},
		{
			name:    "escaped space",
			command: `cat file\ name`,
			want:    []string{"cat", "file name"},
		},
		{
			name:    "extra whitespace",
			command: "  echo   hello  ",
			want:    []string{"echo", "hello"},
		},
		{
			name:    "unclosed quote",
			command: `echo "unterminated`,
			wantErr: true,
		},
		{
			name:    "empty command",
			command: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.command)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommand() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCommand() = %v, want %v", got, tt.want)
			}
		})
	}
}
