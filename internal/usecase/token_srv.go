package usecase

import (
	"fmt"
	"time"

	"cinefellas/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Claims is the session token payload.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(userID uuid.UUID) (token string, expiresAt time.Time, err error)
	Verify(token string) (uuid.UUID, error)
}

type tokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewTokenService(config *utils.Config, log *zap.Logger) TokenService {
	return &tokenService{
		secret: []byte(config.JWT.Secret),
		expiry: config.TokenExpiry(),
		now:    time.Now,
		log:    log.With(zap.String("service", "token")),
	}
}

func (s *tokenService) Issue(userID uuid.UUID) (string, time.Time, error) {
	if len(s.secret) == 0 {
		s.log.Error("JWT secret is not configured")
		return "", time.Time{}, ErrServerMisconfigured
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiry)

	claims := Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *tokenService) Verify(tokenString string) (uuid.UUID, error) {
	if len(s.secret) == 0 {
		s.log.Error("JWT secret is not configured")
		return uuid.Nil, ErrServerMisconfigured
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := utils.ParseUUID(claims.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad user_id claim", ErrInvalidToken)
	}

	return id, nil
}
