package file

import (
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/user"
)

type (
	File struct {
		UUID       uuid.UUID
		UserID     user.ID
		FolderUUID *uuid.UUID

		Bucket      string
		StorageKey  string
		FileName    string
		MimeType    string
		SizeBytes   uint64
		DownloadURL string

		IsDeleted bool
		ExpiresAt *time.Time

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Files []*File
)
