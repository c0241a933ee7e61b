package file

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-vault-api/internal/domain/user"
)

var fileColumns = []string{
	"id", "uuid", "user_id", "folder_uuid", "bucket", "storage_key",
	"file_name", "mime_type", "size_bytes", "download_url", "is_deleted",
	"expires_at", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestSoftDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	fileUUID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(SoftDeleteFileByUUID).
		WithArgs(fileUUID.String()).
		WillReturnRows(pgxmock.NewRows(fileColumns).
			AddRow(uint64(1), fileUUID, uint64(4), (*uuid.UUID)(nil), "vault",
				"files/2026/08/31/x/y/a.txt", "a.txt", "text/plain", uint64(2048),
				"https://cdn.test/a.txt", true, (*time.Time)(nil), now, now))

	out, err := repo.SoftDelete(context.Background(), fileUUID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.IsDeleted)
	assert.Equal(t, user.ID(4), out.UserID)
	assert.Equal(t, uint64(2048), out.SizeBytes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_AlreadyDeleted(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	fileUUID := uuid.New()
	mock.ExpectQuery(SoftDeleteFileByUUID).
		WithArgs(fileUUID.String()).
		WillReturnError(pgx.ErrNoRows)

	out, err := repo.SoftDelete(context.Background(), fileUUID)
	require.NoError(t, err)
	assert.Nil(t, out)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetExpiresAt_ClearsExpiry(t *testing.T) {
	mock := newMock(t)
	repo := NewRepository(mock)

	fileUUID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(UpdateFileExpiresAt).
		WithArgs((*time.Time)(nil), fileUUID.String()).
		WillReturnRows(pgxmock.NewRows(fileColumns).
			AddRow(uint64(1), fileUUID, uint64(4), (*uuid.UUID)(nil), "vault",
				"files/2026/08/31/x/y/a.txt", "a.txt", "text/plain", uint64(2048),
				"https://cdn.test/a.txt", false, (*time.Time)(nil), now, now))

	out, err := repo.SetExpiresAt(context.Background(), fileUUID, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Nil(t, out.ExpiresAt)

	require.NoError(t, mock.ExpectationsWereMet())
}
