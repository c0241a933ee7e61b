package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchInternalID(ctx context.Context, uuid UUID) (ID, error)
	FetchStorageUsage(ctx context.Context, id ID) (*Usage, error)
	// RecomputeStorageUsed persists sum(size) over the user's non-deleted
	// files as storage_used and returns the new value.
	RecomputeStorageUsed(ctx context.Context, id ID) (uint64, error)
}
