package file

import (
	domain "file-vault-api/internal/domain/file"
	"file-vault-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID:       model.UUID,
		UserID:     user.ID(model.UserID),
		FolderUUID: model.FolderUUID,

		Bucket:      model.Bucket,
		StorageKey:  model.StorageKey,
		FileName:    model.FileName,
		MimeType:    model.MimeType,
		SizeBytes:   model.SizeBytes,
		DownloadURL: model.DownloadURL,

		IsDeleted: model.IsDeleted,
		ExpiresAt: model.ExpiresAt,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
