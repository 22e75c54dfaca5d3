package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING REF ====================

// GenerateBookingRef creates the opaque booking reference handed to customers
// and embedded in payment-provider metadata.
// Format: SPA-YYYYMMDD-HHMMSS-RANDOM. The random part is 6 bytes of
// crypto/rand, large enough that refs are never reused in practice; the
// bookings table still carries a unique index as the hard guarantee.
func GenerateBookingRef() string {
	now := time.Now()

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// nanosecond clock rather than returning an error nobody can act on.
		return fmt.Sprintf("SPA-%s-%s-%d", now.Format("20060102"), now.Format("150405"), now.UnixNano()%1000000)
	}

	return fmt.Sprintf("SPA-%s-%s-%s", now.Format("20060102"), now.Format("150405"), hex.EncodeToString(buf))
}

// ==================== PARSE HELPERS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
