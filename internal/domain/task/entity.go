package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindFile  Kind = "file"
	KindShare Kind = "share"
)

type (
	ID   uint64
	Task struct {
		ID         ID
		Kind       Kind
		TargetUUID uuid.UUID

		DueAt       time.Time
		IsProcessed bool

		CreatedAt   time.Time
		ProcessedAt *time.Time
	}
	Tasks []*Task
)

// ErrDuplicateTask maps the store-level uniqueness constraint on
// (kind, target, unprocessed): at most one pending task per target.
var ErrDuplicateTask = errors.New("unprocessed expiration task already exists for target")
