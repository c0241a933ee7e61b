package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "file-vault-api/internal/domain/user"
	"file-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.Name,

		&u.StorageUsed,
		&u.StorageLimit,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchInternalID(ctx context.Context, uuid domain.UUID) (domain.ID, error) {
	var id uint64
	if err := r.db.QueryRow(ctx, SelectIdByUUID, uuid.String()).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user not found by uuid %s: %w", uuid.String(), err)
		}
		return 0, err
	}

	return domain.ID(id), nil
}

func (r *Repository) FetchStorageUsage(ctx context.Context, id domain.ID) (*domain.Usage, error) {
	usage := new(domain.Usage)
	err := r.db.QueryRow(ctx, SelectStorageUsage, uint64(id)).Scan(
		&usage.Used,
		&usage.Limit,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return usage, nil
}

func (r *Repository) RecomputeStorageUsed(ctx context.Context, id domain.ID) (uint64, error) {
	var used uint64
	if err := r.db.QueryRow(ctx, RecomputeStorageUsed, uint64(id)).Scan(&used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// user row gone; nothing left to account for
			return 0, nil
		}
		return 0, err
	}

	return used, nil
}
