// Package registry содержит реестры доменных объектов, хранящие состояние
// в памяти процесса. Данные не персистентны: при каждом запуске реестры
// заполняются заново идемпотентным сидированием.
//
// Users — реестр учётных записей. Владеет списком пользователей и единственной
// активной сессией. Все изменяющие операции возвращают признак успеха, а не
// ошибку: неуспех (пустой ввод, дубликат, не найдено, неверный пароль) —
// ожидаемое условие, не исключительное.
package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wavezodium/cookmaster/internal/lib/password"
	"github.com/wavezodium/cookmaster/internal/models"
)

// Users — реестр учётных записей с единственной активной сессией.
// Коллекция защищена RWMutex: поверх реестра работает многоклиентский
// HTTP-сервер.
type Users struct {
	mu      sync.RWMutex
	users   []*models.User
	current *models.User
}

// NewUsers создаёт пустой реестр пользователей.
func NewUsers() *Users {
	return &Users{}
}

// find возвращает живую ссылку на пользователя. Вызывающий обязан держать mu.
func (r *Users) find(username string) *models.User {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u
		}
	}
	return nil
}

// Register создаёт нового пользователя. Возвращает false без изменений,
// если имя или пароль пусты либо имя уже занято (без учёта регистра
// и пробелов по краям). Пустая роль трактуется как RoleUser.
func (r *Users) Register(username, rawPassword, role, country, email, securityQuestion, securityAnswer string) bool {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(rawPassword) == "" {
		return false
	}
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return false
	}
	if role == "" {
		role = models.RoleUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(username) != nil {
		return false
	}
	r.users = append(r.users, &models.User{
		UID:              uuid.NewString(),
		Username:         strings.TrimSpace(username),
		PasswordHash:     hash,
		Role:             role,
		Country:          country,
		Email:            email,
		SecurityQuestion: securityQuestion,
		SecurityAnswer:   securityAnswer,
		CreatedAt:        time.Now().UTC(),
	})
	return true
}

// RegisterUser сохраняет заранее собранный объект пользователя,
// например, подготовленный формой регистрации. Проверка уникальности
// имени та же, что и в Register. Отсутствующие UID и дата создания
// заполняются здесь.
func (r *Users) RegisterUser(u *models.User) bool {
	if u == nil || strings.TrimSpace(u.Username) == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(u.Username) != nil {
		return false
	}
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Username = strings.TrimSpace(u.Username)
	// реестр хранит собственную копию, переданный объект остаётся у вызывающего
	r.users = append(r.users, u.Clone())
	return true
}

// Find возвращает отсоединённую копию пользователя по имени без учёта
// регистра. Возвращает nil, если имя пустое или пользователь не найден.
func (r *Users) Find(username string) *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(username).Clone()
}

// Exists сообщает, зарегистрировано ли имя пользователя.
func (r *Users) Exists(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(username) != nil
}

// All возвращает снимок всех учётных записей.
func (r *Users) All() []*models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	return out
}

// Delete удаляет пользователя по имени. Если удалённый пользователь был
// в активной сессии, сессия сбрасывается. Возвращает false, если
// пользователь не найден.
func (r *Users) Delete(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(username)
	if u == nil {
		return false
	}
	for i, candidate := range r.users {
		if candidate == u {
			r.users = append(r.users[:i], r.users[i+1:]...)
			break
		}
	}
	if r.current != nil && r.current.UID == u.UID {
		r.current = nil
	}
	return true
}

// SignIn проверяет учётные данные и при успехе делает пользователя
// активной сессией. Пустой ввод, неизвестное имя и неверный пароль
// неразличимы для вызывающего: во всех случаях возвращается false.
func (r *Users) SignIn(username, rawPassword string) bool {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(rawPassword) == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(username)
	if u == nil {
		return false
	}
	if err := password.CompareHash(u.PasswordHash, rawPassword); err != nil {
		return false
	}
	r.current = u
	return true
}

// SignOut сбрасывает активную сессию. Безусловная операция.
func (r *Users) SignOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = nil
}

// Current возвращает копию пользователя активной сессии или nil.
func (r *Users) Current() *models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.Clone()
}

// IsSignedIn сообщает, есть ли активная сессия.
func (r *Users) IsSignedIn() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current != nil
}

// IsAdmin возвращает true, только если сессия активна и её роль — admin.
func (r *Users) IsAdmin() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.IsAdmin()
}

// Copy возвращает отсоединённую копию пользователя с сохранением UID,
// даты создания и роли. Используется, чтобы форма редактирования могла
// готовить изменения, не трогая живой объект до подтверждения.
func (r *Users) Copy(u *models.User) *models.User {
	return u.Clone()
}

// ChangePassword меняет пароль пользователя активной сессии.
// Возвращает false, если сессии нет, новый пароль пуст или старый
// пароль не подошёл.
func (r *Users) ChangePassword(oldPassword, newPassword string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return false
	}
	return changePassword(r.current, oldPassword, newPassword)
}

// ChangePasswordFor меняет пароль указанного пользователя после проверки
// старого пароля. Используется HTTP-слоем, где действующий пользователь
// известен из токена, а не из сессии реестра.
func (r *Users) ChangePasswordFor(username, oldPassword, newPassword string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(username)
	if u == nil {
		return false
	}
	return changePassword(u, oldPassword, newPassword)
}

func changePassword(u *models.User, oldPassword, newPassword string) bool {
	if strings.TrimSpace(newPassword) == "" {
		return false
	}
	if err := password.CompareHash(u.PasswordHash, oldPassword); err != nil {
		return false
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return false
	}
	u.PasswordHash = hash
	return true
}

// ResetPassword устанавливает новый пароль по ответу на контрольный вопрос.
// Ответ сравнивается без учёта регистра и пробелов по краям.
func (r *Users) ResetPassword(username, securityAnswer, newPassword string) bool {
	if strings.TrimSpace(newPassword) == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(username)
	if u == nil {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(u.SecurityAnswer), strings.TrimSpace(securityAnswer)) {
		return false
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return false
	}
	u.PasswordHash = hash
	return true
}

// UpdateDetails обновляет имя и страну пользователя. Пустые аргументы
// оставляют соответствующее поле без изменений. Переименование проходит
// ту же проверку уникальности, что и регистрация.
func (r *Users) UpdateDetails(username, newUsername, country string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(username)
	if u == nil {
		return false
	}
	newUsername = strings.TrimSpace(newUsername)
	if newUsername != "" && !strings.EqualFold(u.Username, newUsername) {
		if r.find(newUsername) != nil {
			return false
		}
		u.Username = newUsername
	}
	if strings.TrimSpace(country) != "" {
		u.Country = country
	}
	return true
}

// SeedDefaults идемпотентно создаёт три стандартные учётные записи.
// Повторный вызов не создаёт дубликатов.
func (r *Users) SeedDefaults() {
	if !r.Exists("admin") {
		r.Register("admin", "password", models.RoleAdmin, "Sweden",
			"admin@cookmaster.wavezodium.dev", "What is your favorite color?", "Purple")
	}
	if !r.Exists("user") {
		r.Register("user", "password", models.RoleUser, "Sweden",
			"user@cookmaster.wavezodium.dev", "What is your pet's name?", "Zitha")
	}
	if !r.Exists("user2") {
		r.Register("user2", "password", models.RoleUser, "Sweden",
			"user2@cookmaster.wavezodium.dev", "What is your favorite food?", "Carbonara")
	}
}
