package domain

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"
)

// Id length bounds.
const (
	MinIDLength = 1
	MaxIDLength = 64
)

// ValidateID checks that id is non-empty, within length bounds, and alphanumeric.
func ValidateID(id string) error {
	if len(id) < MinIDLength {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidID, id, MaxIDLength)
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return fmt.Errorf("%w: %q contains non-alphanumeric character", ErrInvalidID, id)
	}
	return nil
}

// crockfordBase32 is a sortable base32 alphabet (digits before letters).
const crockfordBase32 = "0123456789abcdefghjkmnpqrstvwxyz"

var crockfordEncoding = base32.NewEncoding(crockfordBase32).WithPadding(base32.NoPadding)

const (
	timestampBytes = 6 // millisecond precision, big-endian
	suffixBytes    = 5
)

// GenerateID creates a lexicographically sortable ticket id: a
// base32-encoded millisecond timestamp followed by a random suffix.
// Natural sort order approximates creation order.
func GenerateID() string {
	ms := time.Now().UnixMilli()

	buf := make([]byte, timestampBytes+suffixBytes)
	for i := timestampBytes - 1; i >= 0; i-- {
		buf[i] = byte(ms & 0xFF)
		ms >>= 8
	}
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf[timestampBytes:])

	return crockfordEncoding.EncodeToString(buf)
}
