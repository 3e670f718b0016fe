package identity

import "github.com/tutorlane/TL-BookingService/internal/domain"

// User модель пользователя, возвращаемая identity-сервисом
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // student | tutor | admin
}

// ToDomain конвертирует модель ответа в доменную модель
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  domain.Role(u.Role),
	}
}
