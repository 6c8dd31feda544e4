// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, роль и контрольный вопрос
// для восстановления пароля. Структура используется в бизнес-логике
// и в реестрах, хранящих состояние в памяти процесса.
package models

import "time"

// Роли пользователей системы.
const (
	// RoleUser — обычный пользователь, видит и редактирует только свои рецепты.
	RoleUser = "user"
	// RoleAdmin — администратор, имеет доступ ко всем рецептам и пользователям.
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID              string    `json:"uid"`     // Уникальный идентификатор пользователя
	Username         string    `json:"username"` // Имя пользователя (уникальное без учёта регистра)
	PasswordHash     string    `json:"-"`        // Хэш пароля пользователя
	Role             string    `json:"role"`     // Роль пользователя, admin или user
	Country          string    `json:"country"`  // Страна пользователя
	Email            string    `json:"email"`    // Электронная почта
	SecurityQuestion string    `json:"security_question"` // Контрольный вопрос для смены пароля
	SecurityAnswer   string    `json:"-"`                 // Ответ на контрольный вопрос
	CreatedAt        time.Time `json:"created_at"`        // Дата создания аккаунта (UTC)
}

// IsAdmin сообщает, является ли пользователь администратором.
// Поведение не зависит от конкретного типа: роль хранится обычным полем.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Clone возвращает отсоединённую копию пользователя с тем же UID и датой
// создания. Изменения копии не затрагивают оригинал.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
