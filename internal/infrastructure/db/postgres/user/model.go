package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   = uint64
	User struct {
		ID   uint64
		UUID uuid.UUID

		Email string
		Name  string

		StorageUsed  uint64
		StorageLimit uint64

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User
)
