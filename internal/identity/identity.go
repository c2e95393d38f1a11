// Package identity generates camera UIDs and one-time passwords.
package identity

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// MinOTPLength and MaxOTPLength bound the accepted OTP size.
	MinOTPLength = 8
	MaxOTPLength = 32
)

// NewUID returns a fresh camera UID: 32 lowercase hex characters.
func NewUID() string {
	u := uuid.New()
	return fmt.Sprintf("%x", [16]byte(u))
}

// NewOTP returns a URL-safe one-time password of the given length. Lengths
// outside [MinOTPLength, MaxOTPLength] are clamped; length <= 0 picks a
// random length in that range.
func NewOTP(length int) (string, error) {
	if length <= 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(MaxOTPLength-MinOTPLength+1))
		if err != nil {
			return "", fmt.Errorf("failed to pick OTP length: %w", err)
		}
		length = MinOTPLength + int(n.Int64())
	}
	if length < MinOTPLength {
		length = MinOTPLength
	}
	if length > MaxOTPLength {
		length = MaxOTPLength
	}

	// base64 expands 3 bytes to 4 chars; over-provision and trim
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}

// ValidOTP reports whether s is a URL-safe string of acceptable length.
func ValidOTP(s string) bool {
	if len(s) < MinOTPLength || len(s) > MaxOTPLength {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
