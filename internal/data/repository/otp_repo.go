package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinefellas/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OTPRepository is the single-slot-per-email ledger of outstanding codes.
// Records are returned even when past ExpiresAt; callers decide liveness.
type OTPRepository interface {
	// Put overwrites any record for otp.Email and keeps it for ttl.
	Put(ctx context.Context, otp *entity.OTP, ttl time.Duration) error
	// PutIfAbsent stores otp only when the slot is empty and reports whether
	// it did.
	PutIfAbsent(ctx context.Context, otp *entity.OTP, ttl time.Duration) (bool, error)
	// Get returns nil when no record exists.
	Get(ctx context.Context, email string) (*entity.OTP, error)
	// Delete is idempotent.
	Delete(ctx context.Context, email string) error
	// DeleteIfMatch removes the slot only while it still holds otp and
	// reports whether it did.
	DeleteIfMatch(ctx context.Context, otp *entity.OTP) (bool, error)
	Ping(ctx context.Context) error
}

const otpKeyPrefix = "otp:"

// compare-and-delete on the serialized record
var deleteIfMatchScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisOTPRepository struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisOTPRepository(client *redis.Client, log *zap.Logger) OTPRepository {
	return &redisOTPRepository{
		client: client,
		log:    log.With(zap.String("repository", "otp"), zap.String("driver", "redis")),
	}
}

func otpKey(email string) string {
	return otpKeyPrefix + email
}

// encodeOTP is deterministic so that a record read back and re-encoded
// matches the stored bytes.
func encodeOTP(otp *entity.OTP) (string, error) {
	rec := *otp
	rec.CreatedAt = rec.CreatedAt.UTC().Round(0)
	rec.ExpiresAt = rec.ExpiresAt.UTC().Round(0)
	b, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *redisOTPRepository) Put(ctx context.Context, otp *entity.OTP, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("put OTP for %s: non-positive ttl %s", otp.Email, ttl)
	}

	value, err := encodeOTP(otp)
	if err != nil {
		return fmt.Errorf("encode OTP for %s: %w", otp.Email, err)
	}

	if err := r.client.Set(ctx, otpKey(otp.Email), value, ttl).Err(); err != nil {
		r.log.Error("Failed to store OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
		)
		return fmt.Errorf("put OTP for %s: %w", otp.Email, err)
	}

	return nil
}

func (r *redisOTPRepository) PutIfAbsent(ctx context.Context, otp *entity.OTP, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, fmt.Errorf("put OTP for %s: non-positive ttl %s", otp.Email, ttl)
	}

	value, err := encodeOTP(otp)
	if err != nil {
		return false, fmt.Errorf("encode OTP for %s: %w", otp.Email, err)
	}

	stored, err := r.client.SetNX(ctx, otpKey(otp.Email), value, ttl).Result()
	if err != nil {
		r.log.Error("Failed to store OTP",
			zap.Error(err),
			zap.String("email", otp.Email),
			zap.String("purpose", string(otp.Purpose)),
		)
		return false, fmt.Errorf("put OTP for %s: %w", otp.Email, err)
	}
	return stored, nil
}

func (r *redisOTPRepository) Get(ctx context.Context, email string) (*entity.OTP, error) {
	value, err := r.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read OTP", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("get OTP for %s: %w", email, err)
	}

	var otp entity.OTP
	if err := json.Unmarshal([]byte(value), &otp); err != nil {
		r.log.Error("Corrupt OTP record", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("decode OTP for %s: %w", email, err)
	}

	return &otp, nil
}

func (r *redisOTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpKey(email)).Err(); err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("delete OTP for %s: %w", email, err)
	}
	return nil
}

func (r *redisOTPRepository) DeleteIfMatch(ctx context.Context, otp *entity.OTP) (bool, error) {
	value, err := encodeOTP(otp)
	if err != nil {
		return false, fmt.Errorf("encode OTP for %s: %w", otp.Email, err)
	}

	n, err := deleteIfMatchScript.Run(ctx, r.client, []string{otpKey(otp.Email)}, value).Int()
	if err != nil {
		r.log.Error("Failed to claim OTP", zap.Error(err), zap.String("email", otp.Email))
		return false, fmt.Errorf("claim OTP for %s: %w", otp.Email, err)
	}

	return n == 1, nil
}

func (r *redisOTPRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
