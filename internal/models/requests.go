package models

// DummyUserUpdate используется для приёма изменений профиля из JSON-запроса.
// Пустые поля оставляют соответствующий атрибут без изменений.
type DummyUserUpdate struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=50"` // Новое имя пользователя
	Country  string `json:"country,omitempty" validate:"omitempty,max=100"`       // Новая страна
}
