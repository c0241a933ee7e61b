package user

const (
	SelectUserByID = `
		SELECT id, uuid, email, name, storage_used, storage_limit, created_at, updated_at, deleted_at
		FROM users
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	SelectIdByUUID = `SELECT id FROM users WHERE uuid = $1::uuid`

	SelectStorageUsage = `
		SELECT storage_used, storage_limit
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`
	// The aggregate is recomputed from the authoritative file rows, never
	// adjusted by a delta, so concurrent recomputes are safe to race.
	RecomputeStorageUsed = `
		UPDATE users
		SET storage_used = (
		      SELECT COALESCE(SUM(size_bytes), 0)
		      FROM files
		      WHERE user_id = $1 AND NOT is_deleted
		    ),
		    updated_at = now()
		WHERE id = $1
		RETURNING storage_used
	`
)
