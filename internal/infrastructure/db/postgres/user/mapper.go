package user

import (
	domain "file-vault-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:  model.UUID,
		Email: model.Email,
		Name:  model.Name,

		StorageUsed:  model.StorageUsed,
		StorageLimit: model.StorageLimit,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,

		DeletedAt: model.DeletedAt,
	}

	return u
}
