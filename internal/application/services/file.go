package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"file-vault-api/internal/application/ports"
	domain "file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/task"
	"file-vault-api/internal/domain/user"
)

const maxFileNameLen = 100

// FileService is the mutation entry point for files. Every mutation
// keeps the expiration task and the owner's storage aggregate in step:
// expiry set -> task scheduled, expiry cleared or file deleted -> task
// cancelled, and the accountant is marked dirty either way.
type FileService struct {
	s3             ports.S3Client
	fileRepository domain.Repository
	userRepository user.Repository
	registry       ports.TaskRegistry
	accountant     ports.StorageAccountant
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	s3 ports.S3Client,
	fileRepository domain.Repository,
	userRepository user.Repository,
	registry ports.TaskRegistry,
	accountant ports.StorageAccountant,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		s3:             s3,
		fileRepository: fileRepository,
		userRepository: userRepository,
		registry:       registry,
		accountant:     accountant,
		mCounter:       mCounter,
	}
}

func (fs *FileService) FindUserFiles(ctx context.Context, userUUID user.UUID, page int) (domain.Files, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return fs.fileRepository.FetchUserFiles(ctx, id, page)
}

func (fs *FileService) CreateFile(ctx context.Context, userUUID user.UUID, req *domain.File) (*domain.File, error) {
	id, err := fs.userRepository.FetchInternalID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	req.FileName = sanitizeFileName(req.FileName)
	req.Bucket = fs.s3.GetBucket()
	req.StorageKey = fs.storageKey(req.FileName, userUUID)
	req.DownloadURL = fs.s3.GetPublicURL(req.StorageKey)

	out, err := fs.fileRepository.CreateFile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if out.ExpiresAt != nil {
		if err = fs.registry.Schedule(ctx, task.KindFile, out.UUID, *out.ExpiresAt); err != nil {
			return nil, err
		}
	}
	fs.accountant.Enqueue(out.UserID)

	fs.mCounter.WithLabelValues("files_created_total").Inc()

	return out, nil
}

func (fs *FileService) UpdateFile(ctx context.Context, req *domain.File) (*domain.File, error) {
	req.FileName = sanitizeFileName(req.FileName)

	out, err := fs.fileRepository.UpdateFile(ctx, req)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}

	if err = fs.syncExpiry(ctx, out); err != nil {
		return nil, err
	}
	fs.accountant.Enqueue(out.UserID)

	fs.mCounter.WithLabelValues("files_updated_total").Inc()

	return out, nil
}

func (fs *FileService) SetFileExpiry(ctx context.Context, fileUUID uuid.UUID, expiresAt *time.Time) error {
	out, err := fs.fileRepository.SetExpiresAt(ctx, fileUUID, expiresAt)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	return fs.syncExpiry(ctx, out)
}

func (fs *FileService) SoftDeleteFile(ctx context.Context, fileUUID uuid.UUID) error {
	out, err := fs.fileRepository.SoftDelete(ctx, fileUUID)
	if err != nil {
		return err
	}
	if out == nil {
		// already deleted or never existed
		return nil
	}

	if err = fs.registry.Cancel(ctx, task.KindFile, out.UUID); err != nil {
		return err
	}
	fs.accountant.Enqueue(out.UserID)

	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) syncExpiry(ctx context.Context, f *domain.File) error {
	if f.ExpiresAt == nil {
		return fs.registry.Cancel(ctx, task.KindFile, f.UUID)
	}
	return fs.registry.Schedule(ctx, task.KindFile, f.UUID, *f.ExpiresAt)
}

// storageKey: "files/YYYY/MM/DD/<ts-nanosec>/<useruuid>/<filename>"
func (fs *FileService) storageKey(fileName string, userUUID user.UUID) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"files/%04d/%02d/%02d/%s/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		now.Format("20060102T150405.000000000Z"),
		strings.ToLower(strings.ReplaceAll(userUUID.String(), "-", "")),
		fileName,
	)
}

// sanitizeFileName reduces a client-supplied name to a safe ASCII slug,
// keeping the extension.
func sanitizeFileName(original string) string {
	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)
	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9' || r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	for utf8.RuneCountInString(base)+len(ext) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
