package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID         uint64
		UUID       uuid.UUID
		UserID     uint64
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
