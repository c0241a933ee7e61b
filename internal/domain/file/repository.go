package file

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/user"
)

type Repository interface {
	FetchByUUID(ctx context.Context, uuid uuid.UUID) (*File, error)
	FetchUserFiles(ctx context.Context, userID user.ID, page int) (Files, error)
	CreateFile(ctx context.Context, userID user.ID, req *File) (*File, error)
	UpdateFile(ctx context.Context, req *File) (*File, error)
	// SetExpiresAt replaces the expiration instant; nil clears it.
	SetExpiresAt(ctx context.Context, uuid uuid.UUID, expiresAt *time.Time) (*File, error)
	// SoftDelete is idempotent: returns nil, nil when the file is
	// already deleted or gone.
	SoftDelete(ctx context.Context, uuid uuid.UUID) (*File, error)
}
