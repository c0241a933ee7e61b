package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-vault-api/internal/application/ports"
	domain "file-vault-api/internal/domain/task"
)

// Registry maintains the set of pending expiration tasks. The partial
// unique index on (kind, target_uuid) for unprocessed rows is the sole
// coordination primitive; everything here is built around losing races
// against it gracefully.
type Registry struct {
	taskRepository domain.Repository
	log            *zap.Logger
}

func NewRegistry(taskRepository domain.Repository, logger *zap.Logger) ports.TaskRegistry {
	return &Registry{
		taskRepository: taskRepository,
		log:            logger,
	}
}

// Schedule registers a pending expiration for (kind, target), or moves
// the existing one to the new due time. Safe to call repeatedly and
// concurrently; whichever caller commits last owns the due time.
func (r *Registry) Schedule(ctx context.Context, kind domain.Kind, targetUUID uuid.UUID, dueAt time.Time) error {
	t, err := r.taskRepository.UpdateDueTime(ctx, kind, targetUUID, dueAt)
	if err != nil {
		return err
	}
	if t != nil {
		return nil
	}

	_, err = r.taskRepository.InsertTask(ctx, kind, targetUUID, dueAt)
	if errors.Is(err, domain.ErrDuplicateTask) {
		// benign race: a concurrent Schedule inserted first, so
		// retarget its row instead
		_, err = r.taskRepository.UpdateDueTime(ctx, kind, targetUUID, dueAt)
	}

	return err
}

// Cancel removes the pending task, if any. A no-op when the sweeper
// already claimed it: whichever commits first wins.
func (r *Registry) Cancel(ctx context.Context, kind domain.Kind, targetUUID uuid.UUID) error {
	return r.taskRepository.DeleteUnprocessed(ctx, kind, targetUUID)
}

// DueTasks returns up to limit unprocessed tasks due as of asOf,
// oldest-due first.
func (r *Registry) DueTasks(ctx context.Context, asOf time.Time, limit int) (domain.Tasks, error) {
	return r.taskRepository.FetchDue(ctx, asOf, limit)
}
