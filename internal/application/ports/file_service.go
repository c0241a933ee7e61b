package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/user"
)

type FileService interface {
	FindUserFiles(ctx context.Context, userUUID user.UUID, page int) (file.Files, error)
	CreateFile(ctx context.Context, userUUID user.UUID, req *file.File) (*file.File, error)
	UpdateFile(ctx context.Context, req *file.File) (*file.File, error)
	SetFileExpiry(ctx context.Context, fileUUID uuid.UUID, expiresAt *time.Time) error
	SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) error
}
