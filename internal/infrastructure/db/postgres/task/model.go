package task

import (
	"time"

	"github.com/google/uuid"
)

type (
	Task struct {
		ID         uint64
		Kind       string
		TargetUUID uuid.UUID

		DueAt       time.Time
		IsProcessed bool

		CreatedAt   time.Time
		ProcessedAt *time.Time
	}
	Tasks []*Task
)
