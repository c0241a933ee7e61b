package file

const (
	SelectFileByUUID = `
		SELECT id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
		FROM files
		WHERE uuid = $1
	`
	SelectUserFiles = `
		SELECT id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
		FROM files
		WHERE user_id = $1 AND NOT is_deleted
		LIMIT 50 OFFSET ( ($2 - 1) * 50 )
	`
	InsertFile = `
		INSERT INTO files (user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING
		  id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
	`
	UpdateFileByUUID = `
		UPDATE files
		SET folder_uuid = $1,
		    file_name = $2,
		    mime_type = $3,
		    size_bytes = $4,
		    expires_at = $5,
		    updated_at = now()
		WHERE uuid = $6 AND NOT is_deleted
		RETURNING
		  id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
	`
	UpdateFileExpiresAt = `
		UPDATE files
		SET expires_at = $1,
		    updated_at = now()
		WHERE uuid = $2 AND NOT is_deleted
		RETURNING
		  id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
	`
	SoftDeleteFileByUUID = `
		UPDATE files
		SET is_deleted = true,
		    updated_at = now()
		WHERE uuid = $1 AND NOT is_deleted
		RETURNING
		  id, uuid, user_id, folder_uuid, bucket, storage_key, file_name, mime_type, size_bytes, download_url, is_deleted, expires_at, created_at, updated_at
	`
)
