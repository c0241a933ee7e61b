package share

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/user"
)

type Repository interface {
	FetchByUUID(ctx context.Context, uuid uuid.UUID) (*Share, error)
	FetchByToken(ctx context.Context, token string) (*Share, error)
	CreateShare(ctx context.Context, userID user.ID, req *Share) (*Share, error)
	SetExpiresAt(ctx context.Context, uuid uuid.UUID, expiresAt *time.Time) (*Share, error)
	// IncrementDownload bumps the counter only while the share is active
	// and below its limit; returns nil, nil when the guard rejects it.
	IncrementDownload(ctx context.Context, uuid uuid.UUID) (*Share, error)
	// Deactivate is idempotent: returns nil, nil when the share is
	// already inactive or gone.
	Deactivate(ctx context.Context, uuid uuid.UUID) (*Share, error)
}
