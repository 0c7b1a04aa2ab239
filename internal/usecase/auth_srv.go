package usecase

import (
	"context"
	"fmt"
	"time"

	"ecom-store/internal/data/entity"
	"ecom-store/internal/data/repository"
	"ecom-store/internal/dto/request"
	"ecom-store/internal/dto/response"
	"ecom-store/pkg/mailer"
	"ecom-store/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo       *repository.Repository // grouping userRepo, sessionRepo & otpRepo
	dispatcher mailer.Dispatcher
	config     *utils.Config
	log        *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	dispatcher mailer.Dispatcher,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:       repo,
		dispatcher: dispatcher,
		config:     config,
		log:        log.With(zap.String("service", "auth")),
	}
}

// Register creates an inactive account and issues an OTP challenge for it.
// The account stays inactive until VerifyOTP succeeds. Submitting again for
// an email that is registered but not yet verified restarts the flow with a
// fresh challenge.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check whether the email is taken. A unique index on users.email
	// backs this up when two submissions race.
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil && existing.IsActive {
		return nil, fmt.Errorf("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	now := time.Now()
	var user *entity.User

	if existing != nil {
		// 4a. Unverified account, treat as a restarted registration
		user = existing
		user.PasswordHash = hashedPassword
		user.FullName = req.FullName
		user.Phone = req.Phone
		user.UpdatedAt = now

		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to refresh pending user", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to create account")
		}
	} else {
		// 4b. Fresh registration, account starts inactive
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Email:        req.Email,
			PasswordHash: hashedPassword,
			FullName:     req.FullName,
			Phone:        req.Phone,
			Role:         entity.RoleCustomer,
			IsActive:     false,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to create account")
		}
	}

	// 5. Create the OTP challenge
	otpCode := utils.GenerateOTP(s.config.OTP.Length)
	expiresAt := now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	challenge := &entity.OTPChallenge{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Email:     user.Email,
		Code:      otpCode,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.OTP.Create(ctx, challenge); err != nil {
		s.log.Error("Failed to save OTP challenge", zap.Error(err), zap.String("email", user.Email))
		return nil, fmt.Errorf("failed to generate OTP")
	}

	// 6. Dispatch the code by email. Fire-and-forget: the dispatcher never
	// blocks and never reports delivery failures back here.
	s.dispatcher.SendOTP(user.Email, otpCode)

	s.log.Info("User registered, awaiting OTP verification",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Time("otp_expires_at", expiresAt),
	)

	return &response.RegisterResponse{
		Email:        user.Email,
		OTPExpiresAt: expiresAt,
	}, nil
}

// VerifyOTP activates the account matching (email, code). The newest
// challenge for the pair is authoritative; an expired one is reported
// separately from an unknown one.
func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Resolve the pending registration. Already-active accounts take the
	// same path as unknown ones: activation is one-shot.
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for verification", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to verify OTP")
	}
	if user == nil || user.IsActive {
		return fmt.Errorf("registration not found")
	}

	// 3. Match the submitted code against the newest challenge
	challenge, err := s.repo.OTP.FindLatestByCode(ctx, user.ID, req.OTP)
	if err != nil {
		s.log.Error("Failed to find OTP challenge", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("failed to verify OTP")
	}
	if challenge == nil {
		return fmt.Errorf("invalid OTP")
	}

	// 4. Expiry is judged here, not in SQL, so this failure is
	// distinguishable from an unknown code
	if challenge.Expired(time.Now()) {
		return fmt.Errorf("OTP is expired")
	}

	// 5. Activate the account
	user.IsActive = true
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to activate user", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to verify OTP")
	}

	s.log.Info("User verified and activated",
		zap.String("email", req.Email),
		zap.String("user_id", user.ID.String()))

	return nil
}

// Login authenticates and opens a session. Unknown email, wrong password and
// a not-yet-verified account all fail with the same message so the response
// leaks nothing about which accounts exist.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress string) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid email or password")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid email or password")
	}

	// 4. Unverified accounts cannot log in, even with the right password
	if !user.IsActive {
		s.log.Warn("Login before OTP verification", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("invalid email or password")
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.convertAuthResponse(user, session), nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return fmt.Errorf("invalid token format")
	}

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out")
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, userAgent, ipAddress string) (*entity.Session, error) {
	ttl := time.Duration(s.config.Session.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) convertAuthResponse(user *entity.User, session *entity.Session) *response.AuthResponse {
	resp := &response.AuthResponse{
		UserID:   user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
