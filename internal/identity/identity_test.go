package identity

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestNewUIDFormat(t *testing.T) {
	uid := NewUID()
	if !hexPattern.MatchString(uid) {
		t.Errorf("UID %q is not 32 hex characters", uid)
	}
}

func TestNewUIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		uid := NewUID()
		if seen[uid] {
			t.Fatalf("duplicate UID %q", uid)
		}
		seen[uid] = true
	}
}

func TestNewOTPLengths(t *testing.T) {
	cases := []struct {
		request int
		want    int
	}{
		{8, 8},
		{16, 16},
		{32, 32},
		{4, MinOTPLength},
		{100, MaxOTPLength},
	}
	for _, tc := range cases {
		otp, err := NewOTP(tc.request)
		if err != nil {
			t.Fatalf("NewOTP(%d) failed: %v", tc.request, err)
		}
		if len(otp) != tc.want {
			t.Errorf("NewOTP(%d) length = %d, want %d", tc.request, len(otp), tc.want)
		}
		if !ValidOTP(otp) {
			t.Errorf("NewOTP(%d) = %q fails validation", tc.request, otp)
		}
	}
}

func TestNewOTPRandomLength(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := NewOTP(0)
		if err != nil {
			t.Fatalf("NewOTP(0) failed: %v", err)
		}
		if len(otp) < MinOTPLength || len(otp) > MaxOTPLength {
			t.Errorf("NewOTP(0) length %d out of range", len(otp))
		}
	}
}

func TestValidOTP(t *testing.T) {
	cases := []struct {
		otp   string
		valid bool
	}{
		{"abcd1234", true},
		{"A_b-C_d-1234", true},
		{"short", false},
		{"", false},
		{"has space 123", false},
		{"has+plus1234", false},
		{"waaaaaaaaaaaaaaaaaaaaaaaaaaaytoolong", false},
	}
	for _, tc := range cases {
		if got := ValidOTP(tc.otp); got != tc.valid {
			t.Errorf("ValidOTP(%q) = %v, want %v", tc.otp, got, tc.valid)
		}
	}
}
