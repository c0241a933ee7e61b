package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	Share struct {
		ID       uint64
		UUID     uuid.UUID
		FileUUID uuid.UUID
		UserID   uint64

		Token        string
		PasswordHash *string

		ExpiresAt     *time.Time
		DownloadCount uint32
		DownloadLimit *uint32
		IsActive      bool

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Shares []*Share
)
