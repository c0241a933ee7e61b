package task

// Schema note: expiration_tasks carries a partial unique index
//   CREATE UNIQUE INDEX ON expiration_tasks (kind, target_uuid) WHERE NOT is_processed;
// which enforces "at most one unprocessed task per target" at the store level.
const (
	InsertTask = `
		INSERT INTO expiration_tasks (kind, target_uuid, due_at)
		VALUES ($1, $2, $3)
		RETURNING
		  id, kind, target_uuid, due_at, is_processed, created_at, processed_at
	`
	UpdateTaskDueTime = `
		UPDATE expiration_tasks
		SET due_at = $3
		WHERE kind = $1 AND target_uuid = $2 AND NOT is_processed
		RETURNING
		  id, kind, target_uuid, due_at, is_processed, created_at, processed_at
	`
	DeleteUnprocessedTask = `
		DELETE FROM expiration_tasks
		WHERE kind = $1 AND target_uuid = $2 AND NOT is_processed
	`
	SelectDueTasks = `
		SELECT id, kind, target_uuid, due_at, is_processed, created_at, processed_at
		FROM expiration_tasks
		WHERE NOT is_processed AND due_at <= $1
		ORDER BY due_at, id
		LIMIT $2
	`
	ClaimTask = `
		UPDATE expiration_tasks
		SET is_processed = true,
		    processed_at = now()
		WHERE id = $1 AND NOT is_processed
	`
	PurgeProcessedTasks = `
		DELETE FROM expiration_tasks
		WHERE is_processed AND processed_at < $1
	`
)
