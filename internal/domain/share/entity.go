package share

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/user"
)

type (
	Share struct {
		UUID     uuid.UUID
		FileUUID uuid.UUID
		UserID   user.ID

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

var (
	ErrNotFound             = errors.New("share not found")
	ErrInactive             = errors.New("share is not active")
	ErrExpired              = errors.New("share has expired")
	ErrInvalidPassword      = errors.New("invalid share password")
	ErrDownloadLimitReached = errors.New("share download limit reached")
)

// LimitReached reports whether the download counter has hit the
// configured limit. Shares without a limit never reach it.
func (s *Share) LimitReached() bool {
	return s.DownloadLimit != nil && s.DownloadCount >= *s.DownloadLimit
}
