package domain

// Role роль пользователя, выдаваемая identity-сервисом.
// Сервис доверяет роли без повторной проверки учетных данных
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleAdmin   Role = "admin"
)

// User участник платформы (данные identity-сервиса)
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}
