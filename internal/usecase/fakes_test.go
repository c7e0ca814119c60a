package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cinefellas/internal/data/entity"
	"cinefellas/internal/data/repository"
	"cinefellas/pkg/metrics"
	"cinefellas/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeUserRepo enforces case-insensitive email uniqueness like the real index.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	createErr error
	updateErr error
	pingErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	return nil
}

func (f *fakeUserRepo) Ping(context.Context) error { return f.pingErr }

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	err    error
	onSend func()
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.onSend != nil {
		m.onSend()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

var testStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	users   *fakeUserRepo
	ledger  repository.OTPRepository
	mail    *fakeMailer
	clock   *fakeClock
	config  *utils.Config
	metrics *metrics.Metrics
	svc     *Service
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		OTP: utils.OTPConfig{ExpiryMinutes: 10, LedgerDriver: "memory"},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, testConfig(), repository.NewMemoryOTPRepository(zap.NewNop()))
}

func newTestEnvWith(t *testing.T, config *utils.Config, ledger repository.OTPRepository) *testEnv {
	t.Helper()

	env := &testEnv{
		users:  newFakeUserRepo(),
		ledger: ledger,
		mail:   &fakeMailer{},
		clock:  &fakeClock{now: testStart},
		config: config,
	}

	repo := &repository.Repository{User: env.users, OTP: env.ledger}
	env.metrics = metrics.New()
	env.svc = NewService(repo, env.mail, config, env.metrics, zap.NewNop())

	// every service reads the same fake clock
	env.svc.OTP.(*otpService).now = env.clock.Now
	auth := env.svc.Auth.(*authService)
	auth.now = env.clock.Now
	auth.tokens.(*tokenService).now = env.clock.Now
	env.svc.Password.(*passwordService).now = env.clock.Now
	env.svc.User.(*userService).tokens.(*tokenService).now = env.clock.Now

	return env
}

// seedOTP stores a code issued at the current fake time.
func (e *testEnv) seedOTP(t *testing.T, email string, code int, purpose entity.OTPPurpose) *entity.OTP {
	t.Helper()

	now := e.clock.Now()
	otp := &entity.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(e.config.OTPExpiry()),
	}
	require.NoError(t, e.ledger.Put(context.Background(), otp, e.config.OTPExpiry()+otpRetentionGrace))
	return otp
}

// seedUser stores an account with the given plaintext password.
func (e *testEnv) seedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: testStart, UpdatedAt: testStart},
		Username:     "alice",
		Email:        email,
		PasswordHash: hash,
		Language:     "English",
		Preferences:  []string{"Action", "Comedy"},
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) storedOTP(t *testing.T, email string) *entity.OTP {
	t.Helper()
	otp, err := e.ledger.Get(context.Background(), email)
	require.NoError(t, err)
	return otp
}
