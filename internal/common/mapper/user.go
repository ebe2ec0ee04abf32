package mapper

import (
	"github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/common/dto"
	userdomain "github.com/SteveHouse2006/Aunty-Pantry-SDET101-PROJECT/internal/user/domain"
)

func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:    string(user.ID),
		Email: user.Email,
		Name:  user.Name,
	}
}
