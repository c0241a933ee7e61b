package validator

import (
	"github.com/google/uuid"
)

const tokenLen = 64

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func IsShareToken(s string) bool {
	if len(s) != tokenLen {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'f' {
			continue
		}
		return false
	}
	return true
}
