package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/task"
)

type TaskRegistry interface {
	Schedule(ctx context.Context, kind task.Kind, targetUUID uuid.UUID, dueAt time.Time) error
	Cancel(ctx context.Context, kind task.Kind, targetUUID uuid.UUID) error
	DueTasks(ctx context.Context, asOf time.Time, limit int) (task.Tasks, error)
}
