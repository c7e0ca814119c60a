package repository

import (
	"context"
	"sync"
	"time"

	"cinefellas/internal/data/entity"

	"go.uber.org/zap"
)

type memoryOTPEntry struct {
	otp     entity.OTP
	purgeAt time.Time
}

// MemoryOTPRepository keeps the ledger in process memory. It is only correct
// when a single instance of the service is running.
type MemoryOTPRepository struct {
	mu      sync.Mutex
	entries map[string]memoryOTPEntry
	now     func() time.Time
	log     *zap.Logger
}

func NewMemoryOTPRepository(log *zap.Logger) *MemoryOTPRepository {
	return &MemoryOTPRepository{
		entries: make(map[string]memoryOTPEntry),
		now:     time.Now,
		log:     log.With(zap.String("repository", "otp"), zap.String("driver", "memory")),
	}
}

func (r *MemoryOTPRepository) Put(_ context.Context, otp *entity.OTP, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[otp.Email] = memoryOTPEntry{otp: *otp, purgeAt: r.now().Add(ttl)}
	return nil
}

func (r *MemoryOTPRepository) PutIfAbsent(_ context.Context, otp *entity.OTP, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if entry, ok := r.entries[otp.Email]; ok && !now.After(entry.purgeAt) {
		return false, nil
	}
	r.entries[otp.Email] = memoryOTPEntry{otp: *otp, purgeAt: now.Add(ttl)}
	return true, nil
}

func (r *MemoryOTPRepository) Get(_ context.Context, email string) (*entity.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[email]
	if !ok {
		return nil, nil
	}
	if r.now().After(entry.purgeAt) {
		delete(r.entries, email)
		return nil, nil
	}

	otp := entry.otp
	return &otp, nil
}

func (r *MemoryOTPRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, email)
	return nil
}

func (r *MemoryOTPRepository) DeleteIfMatch(_ context.Context, otp *entity.OTP) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[otp.Email]
	if !ok || !entry.otp.Same(otp) {
		return false, nil
	}
	delete(r.entries, otp.Email)
	return true, nil
}

func (r *MemoryOTPRepository) Ping(context.Context) error {
	return nil
}

// Sweep drops every slot past its retention and returns how many were removed.
func (r *MemoryOTPRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for email, entry := range r.entries {
		if now.After(entry.purgeAt) {
			delete(r.entries, email)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *MemoryOTPRepository) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug("Swept expired OTPs", zap.Int("removed", n))
			}
		}
	}
}
