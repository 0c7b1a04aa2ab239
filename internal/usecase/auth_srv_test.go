package usecase

import (
	"context"
	"testing"
	"time"

	"ecom-store/internal/data/repository"
	"ecom-store/internal/dto/request"
	"ecom-store/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	svc        AuthService
	users      *memUserRepo
	otps       *memOTPRepo
	sessions   *memSessionRepo
	dispatcher *recordingDispatcher
}

func newAuthFixture() *authFixture {
	users := newMemUserRepo()
	otps := newMemOTPRepo()
	sessions := newMemSessionRepo()
	dispatcher := &recordingDispatcher{}

	repo := &repository.Repository{
		User:    users,
		OTP:     otps,
		Session: sessions,
		Product: newMemProductRepo(),
		Order:   newMemOrderRepo(),
	}

	config := &utils.Config{
		OTP:     utils.OTPConfig{ExpiryMinutes: 3, Length: 6},
		Session: utils.SessionConfig{TTLHours: 24},
	}

	return &authFixture{
		svc:        NewAuthService(repo, dispatcher, config, zap.NewNop()),
		users:      users,
		otps:       otps,
		sessions:   sessions,
		dispatcher: dispatcher,
	}
}

func registerReq(email, password string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		FullName:        "Test User",
	}
}

func TestRegister_CreatesInactiveUserAndOneChallenge(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	before := time.Now()
	resp, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "a@x.com", resp.Email)

	// Expiry window is three minutes from submission
	assert.WithinDuration(t, before.Add(3*time.Minute), resp.OTPExpiresAt, 2*time.Second)

	user, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsActive, "user must start inactive")
	assert.NotEqual(t, "P@ssw0rd1", user.PasswordHash, "password must be stored hashed")
	assert.True(t, utils.CheckPasswordHash("P@ssw0rd1", user.PasswordHash))

	// Exactly one challenge, dispatched exactly once with its code
	require.Len(t, f.otps.challenges, 1)
	challenge := f.otps.challenges[0]
	assert.Equal(t, user.ID, challenge.UserID)
	assert.Len(t, challenge.Code, 6)

	sends := f.dispatcher.Sent()
	require.Len(t, sends, 1)
	assert.Equal(t, "a@x.com", sends[0].Email)
	assert.Equal(t, challenge.Code, sends[0].Code)
}

func TestRegister_ActiveEmailRejected(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)

	// Activate via the real verify path
	code := f.otps.challenges[0].Code
	require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: code}))

	_, err = f.svc.Register(ctx, registerReq("a@x.com", "Different1"))
	require.Error(t, err)
	assert.EqualError(t, err, "email already registered")
}

func TestRegister_PendingEmailRestartsFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, registerReq("a@x.com", "NewPass99"))
	require.NoError(t, err)

	// Still a single user row, but a second challenge and a second dispatch
	count, err := f.users.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, f.otps.challenges, 2)
	assert.Len(t, f.dispatcher.Sent(), 2)

	// The refreshed password is the one that counts
	user, _ := f.users.FindByEmail(ctx, "a@x.com")
	assert.True(t, utils.CheckPasswordHash("NewPass99", user.PasswordHash))
	assert.False(t, user.IsActive)
}

func TestVerifyOTP_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{Email: "ghost@x.com", OTP: "123456"})
	require.Error(t, err)
	assert.EqualError(t, err, "registration not found")
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)

	err = f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: "000000"})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid OTP")

	user, _ := f.users.FindByEmail(ctx, "a@x.com")
	assert.False(t, user.IsActive)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)

	// Push the challenge past its expiry (the +181s case)
	challenge := f.otps.challenges[0]
	challenge.ExpiresAt = time.Now().Add(-time.Second)

	err = f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: challenge.Code})
	require.Error(t, err)
	assert.EqualError(t, err, "OTP is expired")

	user, _ := f.users.FindByEmail(ctx, "a@x.com")
	assert.False(t, user.IsActive, "expired code must not activate the account")
}

func TestVerifyOTP_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	code := f.otps.challenges[0].Code

	require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: code}))

	user, _ := f.users.FindByEmail(ctx, "a@x.com")
	assert.True(t, user.IsActive)

	// Activation is one-shot: verifying again behaves like a missing flow
	err = f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: code})
	require.Error(t, err)
	assert.EqualError(t, err, "registration not found")
}

func TestVerifyOTP_LatestChallengeWins(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	// Two submissions produce two challenges; the newest decides
	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	firstCode := f.otps.challenges[0].Code

	_, err = f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	require.Len(t, f.otps.challenges, 2)
	f.otps.challenges[1].CreatedAt = f.otps.challenges[0].CreatedAt.Add(time.Second)
	secondCode := f.otps.challenges[1].Code

	if firstCode != secondCode {
		// The stale code still matches its own (old, still-valid) challenge.
		// Only codes matching no challenge at all are "invalid".
		require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: secondCode}))
		return
	}

	// Same code on both rows: expire the old one and check the newer wins
	f.otps.challenges[0].ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: secondCode}))
}

func TestLogin_NeverSucceedsWhileInactive(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &request.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"}, "", "")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid email or password")
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)

	_, unknownErr := f.svc.Login(ctx, &request.LoginRequest{Email: "ghost@x.com", Password: "whatever1"}, "", "")
	_, wrongPassErr := f.svc.Login(ctx, &request.LoginRequest{Email: "a@x.com", Password: "wrongpass"}, "", "")
	_, inactiveErr := f.svc.Login(ctx, &request.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"}, "", "")

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)
	require.Error(t, inactiveErr)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	assert.Equal(t, wrongPassErr.Error(), inactiveErr.Error())
}

func TestLoginAndLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("a@x.com", "P@ssw0rd1"))
	require.NoError(t, err)
	code := f.otps.challenges[0].Code
	require.NoError(t, f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Email: "a@x.com", OTP: code}))

	resp, err := f.svc.Login(ctx, &request.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"}, "test-agent", "127.0.0.1:1234")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.Email)

	session, err := f.sessions.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.NotNil(t, session.UserAgent)
	assert.Equal(t, "test-agent", *session.UserAgent)

	require.NoError(t, f.svc.Logout(ctx, resp.Token))

	session, err = f.sessions.FindValidSession(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session, "session must be revoked after logout")
}

func TestLogout_RejectsMalformedToken(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.Logout(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid token format")
}

func TestRegister_ValidationFailures(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  *request.RegisterRequest
	}{
		{"bad email", &request.RegisterRequest{Email: "nope", Password: "secret1", ConfirmPassword: "secret1", FullName: "A B"}},
		{"short password", &request.RegisterRequest{Email: "a@x.com", Password: "ab", ConfirmPassword: "ab", FullName: "A B"}},
		{"mismatched confirmation", &request.RegisterRequest{Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret2", FullName: "A B"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Register(ctx, tc.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}

	count, _ := f.users.CountAll(ctx)
	assert.Zero(t, count, "invalid submissions must not create users")
	assert.Empty(t, f.dispatcher.Sent())
}
