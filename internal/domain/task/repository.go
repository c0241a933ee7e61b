package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// InsertTask returns ErrDuplicateTask when an unprocessed task for
	// (kind, target) already exists.
	InsertTask(ctx context.Context, kind Kind, targetUUID uuid.UUID, dueAt time.Time) (*Task, error)
	// UpdateDueTime reschedules the unprocessed task in place;
	// returns nil, nil when none exists.
	UpdateDueTime(ctx context.Context, kind Kind, targetUUID uuid.UUID, dueAt time.Time) (*Task, error)
	// DeleteUnprocessed cancels the pending task; no-op when absent.
	DeleteUnprocessed(ctx context.Context, kind Kind, targetUUID uuid.UUID) error
	// FetchDue returns unprocessed tasks with due_at <= asOf, oldest-due
	// first, ties broken by id, capped at limit.
	FetchDue(ctx context.Context, asOf time.Time, limit int) (Tasks, error)
	// Claim flips is_processed false -> true; false means the claim
	// lost a race with another sweeper or a cancel.
	Claim(ctx context.Context, id ID) (bool, error)
	PurgeProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
