package lib

import (
	"fmt"
	"time"
)

const MaxUniqueCode = 999

// GenerateOrderCode generates a single-order code in the format PREFIX-XXXXXX,
// where XXXXXX is drawn from A-Z and 0-9.
func GenerateOrderCode(prefix string) (string, error) {
	suffix, err := RandomString(alphanumeric, 6)
	if err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}
	return fmt.Sprintf("%s-%s", prefix, suffix), nil
}

// GenerateBookingCode generates a cart code in the format PREFIX-YYYYMMDD-NNNN.
func GenerateBookingCode(prefix string, now time.Time) (string, error) {
	n, err := RandomInt(0, 9999)
	if err != nil {
		return "", fmt.Errorf("failed to generate booking code: %w", err)
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, now.Format("20060102"), n), nil
}

// GenerateUniqueCode returns the transfer surcharge in [1, upper], upper capped at 999.
func GenerateUniqueCode(upper int) (int, error) {
	if upper < 1 || upper > MaxUniqueCode {
		upper = MaxUniqueCode
	}
	return RandomInt(1, upper)
}
