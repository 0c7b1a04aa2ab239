package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== OTP ====================

// GenerateOTP creates a numeric OTP of specified length.
// Codes must be unpredictable, so digits come from crypto/rand.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}
