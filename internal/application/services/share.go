package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"file-vault-api/internal/application/ports"
	domain "file-vault-api/internal/domain/share"
	"file-vault-api/internal/domain/task"
	"file-vault-api/internal/domain/user"
)

// ShareService manages share links and their redemption. The download
// counter is guarded in SQL, never read-modify-written here, so the
// count <= limit invariant holds under concurrent redemptions.
type ShareService struct {
	shareRepository domain.Repository
	registry        ports.TaskRegistry
	mCounter        *prometheus.CounterVec

	nowFn func() time.Time
}

func NewShareService(
	shareRepository domain.Repository,
	registry ports.TaskRegistry,
	mCounter *prometheus.CounterVec,
) ports.ShareService {
	return &ShareService{
		shareRepository: shareRepository,
		registry:        registry,
		mCounter:        mCounter,
		nowFn:           time.Now,
	}
}

func (ss *ShareService) CreateShare(ctx context.Context, userUUID user.UUID, req *domain.Share, password string) (*domain.Share, error) {
	req.Token = newShareToken()
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		req.PasswordHash = &h
	}

	out, err := ss.shareRepository.CreateShare(ctx, req.UserID, req)
	if err != nil {
		return nil, err
	}

	if out.ExpiresAt != nil {
		if err = ss.registry.Schedule(ctx, task.KindShare, out.UUID, *out.ExpiresAt); err != nil {
			return nil, err
		}
	}

	ss.mCounter.WithLabelValues("shares_created_total").Inc()

	return out, nil
}

func (ss *ShareService) SetShareExpiry(ctx context.Context, shareUUID uuid.UUID, expiresAt *time.Time) error {
	out, err := ss.shareRepository.SetExpiresAt(ctx, shareUUID, expiresAt)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if out.ExpiresAt == nil {
		return ss.registry.Cancel(ctx, task.KindShare, out.UUID)
	}
	return ss.registry.Schedule(ctx, task.KindShare, out.UUID, *out.ExpiresAt)
}

func (ss *ShareService) DeactivateShare(ctx context.Context, shareUUID uuid.UUID) error {
	out, err := ss.shareRepository.Deactivate(ctx, shareUUID)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	return ss.registry.Cancel(ctx, task.KindShare, out.UUID)
}

// RedeemDownload records one download against the share identified by
// token. The increment is conditional in the store; a rejected
// increment on a limited share deactivates it, so a share can never
// sit at its limit but still active.
func (ss *ShareService) RedeemDownload(ctx context.Context, token, password string) (*domain.Share, error) {
	sh, err := ss.shareRepository.FetchByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, domain.ErrNotFound
	}

	if !sh.IsActive {
		return nil, domain.ErrInactive
	}
	if sh.PasswordHash != nil {
		if bcrypt.CompareHashAndPassword([]byte(*sh.PasswordHash), []byte(password)) != nil {
			return nil, domain.ErrInvalidPassword
		}
	}
	if sh.ExpiresAt != nil && !ss.nowFn().Before(*sh.ExpiresAt) {
		return nil, domain.ErrExpired
	}

	out, err := ss.shareRepository.IncrementDownload(ctx, sh.UUID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		// guard rejected the increment: limit already reached or a
		// concurrent deactivation won
		if sh.LimitReached() {
			if _, err = ss.shareRepository.Deactivate(ctx, sh.UUID); err != nil {
				return nil, err
			}
			return nil, domain.ErrDownloadLimitReached
		}
		return nil, domain.ErrInactive
	}

	if out.LimitReached() {
		// this download consumed the last slot
		if _, err = ss.shareRepository.Deactivate(ctx, sh.UUID); err != nil {
			return nil, err
		}
		out.IsActive = false
	}

	ss.mCounter.WithLabelValues("downloads_redeemed_total").Inc()

	return out, nil
}

func newShareToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
