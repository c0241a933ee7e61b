package share

import (
	domain "file-vault-api/internal/domain/share"
)

func ToResponse(sDomain domain.Share) Response {
	var s = Response{
		UUID:          sDomain.UUID,
		FileUUID:      sDomain.FileUUID,
		Token:         sDomain.Token,
		ExpiresAt:     sDomain.ExpiresAt,
		DownloadCount: sDomain.DownloadCount,
		DownloadLimit: sDomain.DownloadLimit,
		IsActive:      sDomain.IsActive,
	}

	return s
}
