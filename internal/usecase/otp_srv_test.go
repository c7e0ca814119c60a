package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/data/repository"
	"cinefellas/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIssueOTP(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.OTP.IssueOTP(context.Background(), "  User@X.com ", entity.OTPPurposeRegistration)
	require.NoError(t, err)

	otp := env.storedOTP(t, "user@x.com")
	require.NotNil(t, otp)
	assert.Equal(t, "user@x.com", otp.Email)
	assert.Equal(t, entity.OTPPurposeRegistration, otp.Purpose)
	assert.GreaterOrEqual(t, otp.Code, utils.OTPMin)
	assert.LessOrEqual(t, otp.Code, utils.OTPMax)
	assert.True(t, otp.CreatedAt.Equal(testStart))
	assert.True(t, otp.ExpiresAt.Equal(testStart.Add(10*time.Minute)))

	sent := env.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "user@x.com", sent[0].to)
	assert.Equal(t, "Your OTP for CINEFELLAS Registration", sent[0].subject)
	assert.Contains(t, sent[0].body, strconv.Itoa(otp.Code))
	assert.Contains(t, sent[0].body, "10 minutes")
}

func TestIssueOTP_PasswordResetSubject(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.svc.OTP.IssueOTP(context.Background(), "user@x.com", entity.OTPPurposePasswordReset))

	sent := env.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Password Reset OTP for CINEFELLAS", sent[0].subject)
	assert.Equal(t, entity.OTPPurposePasswordReset, env.storedOTP(t, "user@x.com").Purpose)
}

func TestIssueOTP_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"", "   ", "no-at-sign.com"} {
		err := env.svc.OTP.IssueOTP(context.Background(), email, entity.OTPPurposeRegistration)
		assert.ErrorIs(t, err, ErrEmailInvalid, "email %q", email)
	}
	assert.Empty(t, env.mail.Sent())
}

func TestIssueOTP_InvalidPurpose(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.OTP.IssueOTP(context.Background(), "user@x.com", entity.OTPPurpose("login"))
	require.ErrorIs(t, err, ErrInvalidPurpose)
	assert.Nil(t, env.storedOTP(t, "user@x.com"))
}

func TestIssueOTP_DispatchFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	env.mail.err = errors.New("smtp: connection refused")

	err := env.svc.OTP.IssueOTP(context.Background(), "user@x.com", entity.OTPPurposeRegistration)
	require.ErrorIs(t, err, ErrDispatchFailed)
	assert.Nil(t, env.storedOTP(t, "user@x.com"), "undelivered code must not stay redeemable")
}

func TestIssueOTP_RollbackKeepsNewerCode(t *testing.T) {
	env := newTestEnv(t)
	env.mail.err = errors.New("smtp: timeout")

	// a concurrent issue lands while this dispatch is in flight
	env.mail.onSend = func() {
		env.clock.Set(testStart.Add(time.Second))
		env.seedOTP(t, "user@x.com", 5555, entity.OTPPurposeRegistration)
	}

	err := env.svc.OTP.IssueOTP(context.Background(), "user@x.com", entity.OTPPurposeRegistration)
	require.ErrorIs(t, err, ErrDispatchFailed)

	otp := env.storedOTP(t, "user@x.com")
	require.NotNil(t, otp)
	assert.Equal(t, 5555, otp.Code)
}

func TestIssueOTP_SecondIssueSupersedesFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.OTP.IssueOTP(ctx, "user@x.com", entity.OTPPurposeRegistration))
	first := env.storedOTP(t, "user@x.com")

	var second *entity.OTP
	for i := 0; i < 10; i++ {
		require.NoError(t, env.svc.OTP.IssueOTP(ctx, "user@x.com", entity.OTPPurposeRegistration))
		second = env.storedOTP(t, "user@x.com")
		if second.Code != first.Code {
			break
		}
	}
	require.NotEqual(t, first.Code, second.Code)

	_, err := env.svc.Auth.Register(ctx, registerRequest("user@x.com", strconv.Itoa(first.Code)))
	require.ErrorIs(t, err, ErrOTPMismatch)

	_, err = env.svc.Auth.Register(ctx, registerRequest("user@x.com", strconv.Itoa(second.Code)))
	require.NoError(t, err)
}

func TestIssueOTP_RedisLedgerRetention(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := newTestEnvWith(t, testConfig(), repository.NewRedisOTPRepository(client, zap.NewNop()))
	ctx := context.Background()

	require.NoError(t, env.svc.OTP.IssueOTP(ctx, "user@x.com", entity.OTPPurposeRegistration))
	assert.Equal(t, 10*time.Minute+otpRetentionGrace, mr.TTL("otp:user@x.com"))
	code := strconv.Itoa(env.storedOTP(t, "user@x.com").Code)

	// past expiry but inside the grace period the code reads as expired
	env.clock.Set(testStart.Add(10*time.Minute + time.Second))
	_, err := env.svc.Auth.Register(ctx, registerRequest("user@x.com", code))
	require.ErrorIs(t, err, ErrOTPExpired)

	// once the slot is dropped it reads as missing
	mr.FastForward(10*time.Minute + otpRetentionGrace + time.Second)
	_, err = env.svc.Auth.Register(ctx, registerRequest("user@x.com", code))
	require.ErrorIs(t, err, ErrOTPMissing)
}

func TestCheckOTP(t *testing.T) {
	rec := &entity.OTP{
		Email:     "user@x.com",
		Code:      4321,
		Purpose:   entity.OTPPurposeRegistration,
		CreatedAt: testStart,
		ExpiresAt: testStart.Add(10 * time.Minute),
	}

	tests := []struct {
		name      string
		rec       *entity.OTP
		submitted string
		purpose   entity.OTPPurpose
		at        time.Time
		want      error
	}{
		{"accepted", rec, "4321", entity.OTPPurposeRegistration, testStart, nil},
		{"accepted with whitespace", rec, " 4321 ", entity.OTPPurposeRegistration, testStart, nil},
		{"accepted at expiry", rec, "4321", entity.OTPPurposeRegistration, rec.ExpiresAt, nil},
		{"missing", nil, "4321", entity.OTPPurposeRegistration, testStart, ErrOTPMissing},
		{"mismatch", rec, "1234", entity.OTPPurposeRegistration, testStart, ErrOTPMismatch},
		{"unparsable", rec, "43a1", entity.OTPPurposeRegistration, testStart, ErrOTPMismatch},
		{"empty", rec, "", entity.OTPPurposeRegistration, testStart, ErrOTPMismatch},
		{"wrong purpose", rec, "4321", entity.OTPPurposePasswordReset, testStart, ErrOTPWrongPurpose},
		{"expired", rec, "4321", entity.OTPPurposeRegistration, rec.ExpiresAt.Add(time.Nanosecond), ErrOTPExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOTP(tt.rec, tt.submitted, tt.purpose, tt.at)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRedemptionResult(t *testing.T) {
	assert.Equal(t, "ok", redemptionResult(nil))
	assert.Equal(t, "missing", redemptionResult(ErrOTPMissing))
	assert.Equal(t, "mismatch", redemptionResult(ErrOTPMismatch))
	assert.Equal(t, "wrong_purpose", redemptionResult(ErrOTPWrongPurpose))
	assert.Equal(t, "expired", redemptionResult(ErrOTPExpired))
	assert.Equal(t, "error", redemptionResult(errors.New("boom")))
}
