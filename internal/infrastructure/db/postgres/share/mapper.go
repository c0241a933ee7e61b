package share

import (
	domain "file-vault-api/internal/domain/share"
	"file-vault-api/internal/domain/user"
)

func fromDBModel(model *Share) *domain.Share {
	var s = &domain.Share{
		UUID:     model.UUID,
		FileUUID: model.FileUUID,
		UserID:   user.ID(model.UserID),

		Token:        model.Token,
		PasswordHash: model.PasswordHash,

		ExpiresAt:     model.ExpiresAt,
		DownloadCount: model.DownloadCount,
		DownloadLimit: model.DownloadLimit,
		IsActive:      model.IsActive,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return s
}
