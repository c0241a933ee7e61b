package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-vault-api/internal/domain/share"
	"file-vault-api/internal/domain/user"
	"file-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanRow(row pgx.Row) (*domain.Share, error) {
	s := new(Share)
	err := row.Scan(
		&s.ID,
		&s.UUID,
		&s.FileUUID,
		&s.UserID,

		&s.Token,
		&s.PasswordHash,

		&s.ExpiresAt,
		&s.DownloadCount,
		&s.DownloadLimit,
		&s.IsActive,

		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), nil
}

func (r *Repository) FetchByUUID(ctx context.Context, id uuid.UUID) (*domain.Share, error) {
	return r.scanRow(r.db.QueryRow(ctx, SelectShareByUUID, id.String()))
}

func (r *Repository) FetchByToken(ctx context.Context, token string) (*domain.Share, error) {
	return r.scanRow(r.db.QueryRow(ctx, SelectShareByToken, token))
}

func (r *Repository) CreateShare(ctx context.Context, userID user.ID, req *domain.Share) (*domain.Share, error) {
	row := r.db.QueryRow(
		ctx,
		InsertShare,
		req.FileUUID, userID, req.Token, req.PasswordHash, req.ExpiresAt, req.DownloadLimit,
	)

	s, err := r.scanRow(row)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("insert share returned no row")
	}

	return s, nil
}

func (r *Repository) SetExpiresAt(ctx context.Context, id uuid.UUID, expiresAt *time.Time) (*domain.Share, error) {
	return r.scanRow(r.db.QueryRow(ctx, UpdateShareExpiresAt, expiresAt, id.String()))
}

func (r *Repository) IncrementDownload(ctx context.Context, id uuid.UUID) (*domain.Share, error) {
	return r.scanRow(r.db.QueryRow(ctx, IncrementShareDownload, id.String()))
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Share, error) {
	return r.scanRow(r.db.QueryRow(ctx, DeactivateShareByUUID, id.String()))
}
