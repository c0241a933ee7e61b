package usage

import (
	"file-vault-api/internal/domain/user"
)

func ToResponse(u user.Usage) Response {
	var available uint64
	if u.Limit > u.Used {
		available = u.Limit - u.Used
	}

	return Response{
		Used:      u.Used,
		Limit:     u.Limit,
		Available: available,
	}
}
