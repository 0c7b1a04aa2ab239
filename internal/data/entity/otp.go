package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTPChallenge is immutable once created. A user may accumulate several
// challenges; the one with the latest CreatedAt is authoritative.
type OTPChallenge struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (o *OTPChallenge) Expired(at time.Time) bool {
	return at.After(o.ExpiresAt)
}
