package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-vault-api/internal/domain/task"
	"file-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanRow(row pgx.Row) (*domain.Task, error) {
	t := new(Task)
	err := row.Scan(
		&t.ID,
		&t.Kind,
		&t.TargetUUID,

		&t.DueAt,
		&t.IsProcessed,

		&t.CreatedAt,
		&t.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(t), nil
}

func (r *Repository) InsertTask(ctx context.Context, kind domain.Kind, targetUUID uuid.UUID, dueAt time.Time) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, InsertTask, string(kind), targetUUID.String(), dueAt)

	t, err := r.scanRow(row)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrDuplicateTask
		}
		return nil, err
	}
	if t == nil {
		return nil, errors.New("insert task returned no row")
	}

	return t, nil
}

func (r *Repository) UpdateDueTime(ctx context.Context, kind domain.Kind, targetUUID uuid.UUID, dueAt time.Time) (*domain.Task, error) {
	return r.scanRow(r.db.QueryRow(ctx, UpdateTaskDueTime, string(kind), targetUUID.String(), dueAt))
}

func (r *Repository) DeleteUnprocessed(ctx context.Context, kind domain.Kind, targetUUID uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteUnprocessedTask, string(kind), targetUUID.String())
	return err
}

func (r *Repository) FetchDue(ctx context.Context, asOf time.Time, limit int) (domain.Tasks, error) {
	rows, err := r.db.Query(ctx, SelectDueTasks, asOf, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts Tasks
	for rows.Next() {
		t := new(Task)

		if err = rows.Scan(
			&t.ID,
			&t.Kind,
			&t.TargetUUID,

			&t.DueAt,
			&t.IsProcessed,

			&t.CreatedAt,
			&t.ProcessedAt,
		); err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ts), nil
}

// Claim is the exactly-once gate: only the caller whose UPDATE hits a
// still-unprocessed row wins the task.
func (r *Repository) Claim(ctx context.Context, id domain.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, ClaimTask, uint64(id))
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (r *Repository) PurgeProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, PurgeProcessedTasks, cutoff)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
