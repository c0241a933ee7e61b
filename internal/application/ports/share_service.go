package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/share"
	"file-vault-api/internal/domain/user"
)

type ShareService interface {
	CreateShare(ctx context.Context, userUUID user.UUID, req *share.Share, password string) (*share.Share, error)
	SetShareExpiry(ctx context.Context, shareUUID uuid.UUID, expiresAt *time.Time) error
	DeactivateShare(ctx context.Context, shareUUID uuid.UUID) error
	RedeemDownload(ctx context.Context, token, password string) (*share.Share, error)
}
