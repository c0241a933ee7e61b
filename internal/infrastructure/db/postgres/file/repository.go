package file

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/user"
	"file-vault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) scanRow(row pgx.Row) (*domain.File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,
		&f.UserID,
		&f.FolderUUID,

		&f.Bucket,
		&f.StorageKey,
		&f.FileName,
		&f.MimeType,
		&f.SizeBytes,
		&f.DownloadURL,

		&f.IsDeleted,
		&f.ExpiresAt,

		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchByUUID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.scanRow(r.db.QueryRow(ctx, SelectFileByUUID, id.String()))
}

func (r *Repository) FetchUserFiles(ctx context.Context, userID user.ID, page int) (domain.Files, error) {
	rows, err := r.db.Query(ctx, SelectUserFiles, userID, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.UserID,
			&f.FolderUUID,

			&f.Bucket,
			&f.StorageKey,
			&f.FileName,
			&f.MimeType,
			&f.SizeBytes,
			&f.DownloadURL,

			&f.IsDeleted,
			&f.ExpiresAt,

			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) CreateFile(ctx context.Context, userID user.ID, req *domain.File) (*domain.File, error) {
	row := r.db.QueryRow(
		ctx,
		InsertFile,
		userID, req.FolderUUID, req.Bucket, req.StorageKey, req.FileName, req.MimeType, req.SizeBytes, req.DownloadURL, req.ExpiresAt,
	)

	f, err := r.scanRow(row)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("insert file returned no row")
	}

	return f, nil
}

func (r *Repository) UpdateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	row := r.db.QueryRow(ctx, UpdateFileByUUID,
		req.FolderUUID, req.FileName, req.MimeType, req.SizeBytes, req.ExpiresAt, req.UUID,
	)

	return r.scanRow(row)
}

func (r *Repository) SetExpiresAt(ctx context.Context, id uuid.UUID, expiresAt *time.Time) (*domain.File, error) {
	return r.scanRow(r.db.QueryRow(ctx, UpdateFileExpiresAt, expiresAt, id.String()))
}

func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	return r.scanRow(r.db.QueryRow(ctx, SoftDeleteFileByUUID, id.String()))
}
