package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   uint64
	UUID = uuid.UUID
	User struct {
		UUID  UUID
		Email string
		Name  string

		// StorageUsed is a derived aggregate owned by the accountant;
		// nothing else writes it.
		StorageUsed  uint64
		StorageLimit uint64

		CreatedAt time.Time
		UpdatedAt time.Time

		DeletedAt *time.Time
	}
	Users []*User

	Usage struct {
		Used  uint64
		Limit uint64
	}
)
