package ports

import (
	"context"

	"file-vault-api/internal/domain/user"
)

type StorageAccountant interface {
	// Enqueue marks the user's aggregate dirty; the worker coalesces
	// marks within the flush window into a single recompute.
	Enqueue(id user.ID)
	Recompute(ctx context.Context, id user.ID) error
	Worker(ctx context.Context)
	StorageUsage(ctx context.Context, userUUID user.UUID) (*user.Usage, error)
}
