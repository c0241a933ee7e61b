package share

const (
	SelectShareByUUID = `
		SELECT id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
		FROM shares
		WHERE uuid = $1
	`
	SelectShareByToken = `
		SELECT id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
		FROM shares
		WHERE token = $1
	`
	InsertShare = `
		INSERT INTO shares (file_uuid, user_id, token, password_hash, expires_at, download_limit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING
		  id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
	`
	UpdateShareExpiresAt = `
		UPDATE shares
		SET expires_at = $1,
		    updated_at = now()
		WHERE uuid = $2 AND is_active
		RETURNING
		  id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
	`
	IncrementShareDownload = `
		UPDATE shares
		SET download_count = download_count + 1,
		    updated_at = now()
		WHERE uuid = $1
		  AND is_active
		  AND (download_limit IS NULL OR download_count < download_limit)
		RETURNING
		  id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
	`
	DeactivateShareByUUID = `
		UPDATE shares
		SET is_active = false,
		    updated_at = now()
		WHERE uuid = $1 AND is_active
		RETURNING
		  id, uuid, file_uuid, user_id, token, password_hash, expires_at, download_count, download_limit, is_active, created_at, updated_at
	`
)
