package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-vault-api/internal/application/ports"
	domain "file-vault-api/internal/domain/user"
)

const (
	// sized for bursts of file mutations between flushes
	dirtyBufferSize = 1024
	backoffBase     = 100 * time.Millisecond
	// caps the exponential wait at backoffBase << 6 = 6.4s no matter
	// how large the configured attempt budget is
	maxBackoffShift = 6
)

func recomputeBackoff(attempt int) time.Duration {
	shift := attempt - 1
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return backoffBase << shift
}

// Accountant owns the storage_used aggregate. Mutation paths only mark
// a user dirty; the worker folds marks for the same user within one
// flush window into a single recompute. A recompute scans the current
// file set rather than applying a delta, so concurrent recomputes for
// one user are safe to race.
type Accountant struct {
	userRepository domain.Repository
	log            *zap.Logger
	mCounter       *prometheus.CounterVec

	in          chan domain.ID
	flushEvery  time.Duration
	maxAttempts int
}

func NewAccountant(
	userRepository domain.Repository,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	flushEvery time.Duration,
	maxAttempts int,
) ports.StorageAccountant {
	return &Accountant{
		userRepository: userRepository,
		log:            logger,
		mCounter:       mCounter,
		in:             make(chan domain.ID, dirtyBufferSize),
		flushEvery:     flushEvery,
		maxAttempts:    maxAttempts,
	}
}

func (a *Accountant) Enqueue(id domain.ID) {
	a.in <- id
}

func (a *Accountant) Worker(ctx context.Context) {
	a.log.Info("starting accountant worker")

	defer func() {
		a.log.Info("accountant worker gracefully stopped")
	}()

	ticker := time.NewTicker(a.flushEvery)
	defer ticker.Stop()

	dirty := make(map[domain.ID]struct{})
	for {
		select {
		case id := <-a.in:
			dirty[id] = struct{}{}
		case <-ticker.C:
			a.flush(ctx, dirty)
		case <-ctx.Done():
			a.drain(dirty)
			// settled mutations must not be lost on shutdown
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			a.flush(flushCtx, dirty)
			cancel()
			return
		}
	}
}

// drain empties whatever Enqueue managed to buffer before shutdown.
func (a *Accountant) drain(dirty map[domain.ID]struct{}) {
	for {
		select {
		case id := <-a.in:
			dirty[id] = struct{}{}
		default:
			return
		}
	}
}

// flush recomputes every dirty user. Users whose recompute keeps
// failing stay in the dirty set for the next flush; a stale aggregate
// is retried, never dropped.
func (a *Accountant) flush(ctx context.Context, dirty map[domain.ID]struct{}) {
	for id := range dirty {
		if err := a.Recompute(ctx, id); err != nil {
			a.log.Error("storage recompute failed, will retry next flush",
				zap.Uint64("user_id", uint64(id)),
				zap.Error(err))
			continue
		}
		delete(dirty, id)
	}
}

func (a *Accountant) Recompute(ctx context.Context, id domain.ID) error {
	var err error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		var used uint64
		used, err = a.userRepository.RecomputeStorageUsed(ctx, id)
		if err == nil {
			a.mCounter.WithLabelValues("storage_recomputes_total").Inc()
			a.log.Debug("storage recomputed",
				zap.Uint64("user_id", uint64(id)),
				zap.Uint64("storage_used", used))
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(recomputeBackoff(attempt)):
		}
	}

	return err
}

func (a *Accountant) StorageUsage(ctx context.Context, userUUID domain.UUID) (*domain.Usage, error) {
	id, err := a.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return a.userRepository.FetchStorageUsage(ctx, id)
}
