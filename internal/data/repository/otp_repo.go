package repository

import (
	"context"
	"fmt"

	"ecom-store/internal/data/entity"
	"ecom-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTPChallenge) error
	FindLatestByCode(ctx context.Context, userID uuid.UUID, code string) (*entity.OTPChallenge, error)
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Create(ctx context.Context, otp *entity.OTPChallenge) error {
	query := `
		INSERT INTO otp_challenges (id, user_id, email, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Email,
		otp.Code,
		otp.ExpiresAt,
		otp.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create OTP challenge",
			zap.Error(err),
			zap.String("email", otp.Email),
		)
		return fmt.Errorf("create OTP challenge for %s: %w", otp.Email, err)
	}

	return nil
}

// FindLatestByCode returns the newest challenge matching (user, code).
// Expiry is deliberately not filtered here: the caller distinguishes an
// expired code from an unknown one.
func (r *otpRepository) FindLatestByCode(ctx context.Context, userID uuid.UUID, code string) (*entity.OTPChallenge, error) {
	query := `
		SELECT id, user_id, email, code, expires_at, created_at
		FROM otp_challenges
		WHERE user_id = $1 AND code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp entity.OTPChallenge
	err := r.db.QueryRow(ctx, query, userID, code).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Email,
		&otp.Code,
		&otp.ExpiresAt,
		&otp.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP challenge",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find OTP challenge for user %s: %w", userID.String(), err)
	}

	return &otp, nil
}
