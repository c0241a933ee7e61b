package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-vault-api/internal/application/ports"
	"file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/share"
	"file-vault-api/internal/domain/task"
	"file-vault-api/internal/infrastructure/mq"
)

// Sweeper applies due expirations. Multiple replicas may sweep
// concurrently: the conditional claim on the task row is the only
// exactly-once gate, so every step after it must be idempotent.
type Sweeper struct {
	registry        ports.TaskRegistry
	accountant      ports.StorageAccountant
	fileRepository  file.Repository
	shareRepository share.Repository
	taskRepository  task.Repository
	mq              ports.RabbitMQ
	log             *zap.Logger
	mCounter        *prometheus.CounterVec

	interval   time.Duration
	batchLimit int
	retention  time.Duration

	nowFn func() time.Time
}

func NewSweeper(
	registry ports.TaskRegistry,
	accountant ports.StorageAccountant,
	fileRepository file.Repository,
	shareRepository share.Repository,
	taskRepository task.Repository,
	rbMQ ports.RabbitMQ,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	interval time.Duration,
	batchLimit int,
	retention time.Duration,
) *Sweeper {
	return &Sweeper{
		registry:        registry,
		accountant:      accountant,
		fileRepository:  fileRepository,
		shareRepository: shareRepository,
		taskRepository:  taskRepository,
		mq:              rbMQ,
		log:             logger,
		mCounter:        mCounter,
		interval:        interval,
		batchLimit:      batchLimit,
		retention:       retention,
		nowFn:           time.Now,
	}
}

func (s *Sweeper) Worker(ctx context.Context) {
	s.log.Info("starting sweeper worker", zap.Duration("interval", s.interval))

	defer func() {
		s.log.Info("sweeper worker gracefully stopped")
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			applied, err := s.Sweep(ctx)
			if err != nil {
				// transient store failure: the aborted cycle is
				// retried wholesale on the next tick
				s.log.Error("sweep cycle failed", zap.Error(err))
				continue
			}
			if applied > 0 {
				s.log.Info("sweep cycle complete", zap.Int("applied", applied))
			}
			s.purge(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one cycle: fetch due tasks, claim each, apply the effect.
// A claim that loses its race is skipped silently; an effect error
// after a won claim is logged and the task stays processed, since
// re-deriving state beats double-applying side effects on retry.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.nowFn()

	tasks, err := s.registry.DueTasks(ctx, now, s.batchLimit)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, t := range tasks {
		select {
		case <-ctx.Done():
			// unclaimed tasks are untouched; resume from scratch next cycle
			return applied, ctx.Err()
		default:
		}

		claimed, err := s.taskRepository.Claim(ctx, t.ID)
		if err != nil {
			return applied, err
		}
		if !claimed {
			// lost to another sweeper or a concurrent cancel
			s.mCounter.WithLabelValues("tasks_claim_lost_total").Inc()
			continue
		}

		if err = s.apply(ctx, t); err != nil {
			s.mCounter.WithLabelValues("tasks_apply_failed_total").Inc()
			s.log.Error("expiration effect failed after claim",
				zap.Uint64("task_id", uint64(t.ID)),
				zap.String("kind", string(t.Kind)),
				zap.String("target", t.TargetUUID.String()),
				zap.Error(err))
			continue
		}

		s.mCounter.WithLabelValues("tasks_processed_total").Inc()
		applied++
	}

	return applied, nil
}

func (s *Sweeper) apply(ctx context.Context, t *task.Task) error {
	switch t.Kind {
	case task.KindFile:
		return s.expireFile(ctx, t.TargetUUID)
	case task.KindShare:
		return s.expireShare(ctx, t.TargetUUID)
	default:
		s.log.Warn("unknown task kind, skipping", zap.String("kind", string(t.Kind)))
		return nil
	}
}

func (s *Sweeper) expireFile(ctx context.Context, fileUUID uuid.UUID) error {
	f, err := s.fileRepository.SoftDelete(ctx, fileUUID)
	if err != nil {
		return err
	}
	if f == nil {
		// target vanished or was already deleted: treat as cancelled
		return nil
	}

	s.accountant.Enqueue(f.UserID)

	// signal the blob janitor; the bytes themselves are not ours to delete
	s.emit(ctx, mq.Event{
		Id:         uuid.New(),
		TS:         s.nowFn(),
		Route:      mq.RouteFileExpired,
		TargetID:   f.UUID.String(),
		OwnerID:    strconv.FormatUint(uint64(f.UserID), 10),
		Bucket:     f.Bucket,
		StorageKey: f.StorageKey,
	})

	s.mCounter.WithLabelValues("files_expired_total").Inc()

	return nil
}

func (s *Sweeper) expireShare(ctx context.Context, shareUUID uuid.UUID) error {
	sh, err := s.shareRepository.Deactivate(ctx, shareUUID)
	if err != nil {
		return err
	}
	if sh == nil {
		return nil
	}

	s.emit(ctx, mq.Event{
		Id:       uuid.New(),
		TS:       s.nowFn(),
		Route:    mq.RouteShareExpired,
		TargetID: sh.UUID.String(),
	})

	s.mCounter.WithLabelValues("shares_expired_total").Inc()

	return nil
}

// emit hands an event to the publisher without ever blocking past
// shutdown: when the context is gone the publisher may already have
// stopped draining, so the event is dropped and logged instead. The
// janitor reconciles deleted files on its own schedule either way.
func (s *Sweeper) emit(ctx context.Context, e mq.Event) {
	select {
	case s.mq.GetInputChan() <- e:
	case <-ctx.Done():
		s.log.Warn("dropping expiration event on shutdown",
			zap.String("route", e.Route),
			zap.String("target", e.TargetID))
	}
}

// purge trims processed-task history past the retention window.
// Housekeeping only; correctness never depends on it.
func (s *Sweeper) purge(ctx context.Context) {
	if s.retention <= 0 {
		return
	}

	purged, err := s.taskRepository.PurgeProcessedBefore(ctx, s.nowFn().Add(-s.retention))
	if err != nil {
		s.log.Warn("processed task purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		s.log.Info("purged processed tasks", zap.Int64("count", purged))
	}
}
