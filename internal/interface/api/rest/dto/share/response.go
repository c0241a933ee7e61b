package share

import (
	"time"

	"github.com/google/uuid"
)

type Response struct {
	UUID          uuid.UUID  `json:"uuid"`
	FileUUID      uuid.UUID  `json:"file_uuid"`
	Token         string     `json:"token"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DownloadCount uint32     `json:"download_count"`
	DownloadLimit *uint32    `json:"download_limit,omitempty"`
	IsActive      bool       `json:"is_active"`
}
