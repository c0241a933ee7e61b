package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/task"
	"file-vault-api/internal/domain/user"
)

type FakeS3 struct{}

func (FakeS3) GetPublicURL(key string) string { return "https://cdn.test/" + key }
func (FakeS3) GetBucket() string              { return "vault" }

// creatingFileRepo adds working write paths on top of the in-memory
// store.
type creatingFileRepo struct {
	memFileRepo
}

func (c *creatingFileRepo) CreateFile(ctx context.Context, userID user.ID, req *file.File) (*file.File, error) {
	cp := *req
	cp.UUID = uuid.New()
	cp.UserID = userID
	cp.CreatedAt = time.Now()
	c.put(&cp)
	return &cp, nil
}

func (c *creatingFileRepo) UpdateFile(ctx context.Context, req *file.File) (*file.File, error) {
	if c.get(req.UUID) == nil {
		return nil, nil
	}
	cp := *req
	c.put(&cp)
	return &cp, nil
}

func (c *creatingFileRepo) SetExpiresAt(ctx context.Context, id uuid.UUID, expiresAt *time.Time) (*file.File, error) {
	f := c.get(id)
	if f == nil || f.IsDeleted {
		return nil, nil
	}
	f.ExpiresAt = expiresAt
	c.put(f)
	return f, nil
}

type fileEnv struct {
	files      *creatingFileRepo
	tasks      *memTaskRepo
	accountant *FakeAccountant
	svc        *FileService
}

func newFileEnv() *fileEnv {
	env := &fileEnv{
		files:      &creatingFileRepo{memFileRepo: *newMemFileRepo()},
		tasks:      newMemTaskRepo(),
		accountant: &FakeAccountant{},
	}
	users := &FakeUserRepository{
		FetchInternalIDFunc: func(ctx context.Context, uuid user.UUID) (user.ID, error) {
			return 4, nil
		},
	}
	env.svc = NewFileService(
		FakeS3{},
		env.files,
		users,
		NewRegistry(env.tasks, zap.NewNop()),
		env.accountant,
		newTestCounter(),
	).(*FileService)
	return env
}

func TestFileService_CreateFile(t *testing.T) {
	env := newFileEnv()

	expires := time.Now().Add(time.Hour)
	out, err := env.svc.CreateFile(context.Background(), user.UUID{}, &file.File{
		FileName:  "Résumé Final.PDF",
		MimeType:  "application/pdf",
		SizeBytes: 2048,
		ExpiresAt: &expires,
	})
	require.NoError(t, err)

	assert.Equal(t, "resume-final.pdf", out.FileName)
	assert.Equal(t, "vault", out.Bucket)
	assert.True(t, strings.HasPrefix(out.StorageKey, "files/"))
	assert.True(t, strings.HasSuffix(out.StorageKey, "/resume-final.pdf"))
	assert.Equal(t, "https://cdn.test/"+out.StorageKey, out.DownloadURL)
	assert.Equal(t, user.ID(4), out.UserID)

	// expiry set at creation schedules the task and marks the owner
	require.Len(t, env.tasks.unprocessed(task.KindFile, out.UUID), 1)
	assert.Equal(t, []user.ID{4}, env.accountant.Enqueued())
}

func TestFileService_CreateFile_NoExpiry(t *testing.T) {
	env := newFileEnv()

	out, err := env.svc.CreateFile(context.Background(), user.UUID{}, &file.File{FileName: "notes.txt"})
	require.NoError(t, err)
	assert.Empty(t, env.tasks.unprocessed(task.KindFile, out.UUID))
	assert.Equal(t, []user.ID{4}, env.accountant.Enqueued())
}

func TestFileService_SetFileExpiry(t *testing.T) {
	env := newFileEnv()

	out, err := env.svc.CreateFile(context.Background(), user.UUID{}, &file.File{FileName: "a.txt"})
	require.NoError(t, err)

	due := time.Now().Add(time.Hour)
	require.NoError(t, env.svc.SetFileExpiry(context.Background(), out.UUID, &due))
	pending := env.tasks.unprocessed(task.KindFile, out.UUID)
	require.Len(t, pending, 1)
	assert.Equal(t, due, pending[0].DueAt)

	// moving the expiry rewrites the same task in place
	later := due.Add(time.Hour)
	require.NoError(t, env.svc.SetFileExpiry(context.Background(), out.UUID, &later))
	pending = env.tasks.unprocessed(task.KindFile, out.UUID)
	require.Len(t, pending, 1)
	assert.Equal(t, later, pending[0].DueAt)

	// clearing it cancels the task
	require.NoError(t, env.svc.SetFileExpiry(context.Background(), out.UUID, nil))
	assert.Empty(t, env.tasks.unprocessed(task.KindFile, out.UUID))

	// unknown target is a no-op
	require.NoError(t, env.svc.SetFileExpiry(context.Background(), uuid.New(), &due))
}

func TestFileService_UpdateFile_SyncsExpiryAndAccounting(t *testing.T) {
	env := newFileEnv()

	expires := time.Now().Add(time.Hour)
	out, err := env.svc.CreateFile(context.Background(), user.UUID{}, &file.File{
		FileName:  "a.txt",
		SizeBytes: 100,
		ExpiresAt: &expires,
	})
	require.NoError(t, err)

	out.SizeBytes = 200
	out.ExpiresAt = nil
	updated, err := env.svc.UpdateFile(context.Background(), out)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Empty(t, env.tasks.unprocessed(task.KindFile, out.UUID))
	assert.Equal(t, []user.ID{4, 4}, env.accountant.Enqueued())
}

func TestFileService_SoftDeleteFile(t *testing.T) {
	env := newFileEnv()

	expires := time.Now().Add(time.Hour)
	out, err := env.svc.CreateFile(context.Background(), user.UUID{}, &file.File{
		FileName:  "a.txt",
		SizeBytes: 100,
		ExpiresAt: &expires,
	})
	require.NoError(t, err)
	require.Len(t, env.tasks.unprocessed(task.KindFile, out.UUID), 1)

	require.NoError(t, env.svc.SoftDeleteFile(context.Background(), out.UUID))
	assert.True(t, env.files.get(out.UUID).IsDeleted)
	assert.Empty(t, env.tasks.unprocessed(task.KindFile, out.UUID))
	assert.Equal(t, []user.ID{4, 4}, env.accountant.Enqueued())

	// deleting again neither re-cancels nor re-marks
	require.NoError(t, env.svc.SoftDeleteFile(context.Background(), out.UUID))
	assert.Len(t, env.accountant.Enqueued(), 2)
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"Résumé Final.PDF", "resume-final.pdf"},
		{"  spaced   name .txt ", "spaced-name.txt"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\Report 2024.docx`, "report-2024.docx"},
		{"..", "file"},
		{"", "file"},
		{"***", "file"},
		{".env", "file.env"},
		{"under_score-dash.tar", "under-score-dash.tar"},
		{strings.Repeat("a", 150) + ".txt", strings.Repeat("a", 96) + ".txt"},
		// extension alone wider than the cap: the base is peeled away
		// entirely, never sliced negative
		{"a." + strings.Repeat("x", 150), "." + strings.Repeat("x", 150)},
		{strings.Repeat("b", 50) + "." + strings.Repeat("x", 99), "." + strings.Repeat("x", 99)},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFileName(tc.in), "input %q", tc.in)
	}
}
