// Package services содержит бизнес-логику для управления учётными записями:
// просмотр, редактирование профиля и удаление. Правила доступа ("сам или
// администратор") применяются здесь, а не в реестре.
package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/wavezodium/cookmaster/internal/models"
)

// Ошибки уровня сервиса управления пользователями.
var (
	// ErrNotFound — пользователь с таким именем не зарегистрирован.
	ErrNotFound = errors.New("user not found")
	// ErrForbidden — операция недоступна для роли вызывающего.
	ErrForbidden = errors.New("forbidden")
	// ErrUsernameTaken — новое имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrHasRecipes — у аккаунта остались рецепты, удаление заблокировано.
	ErrHasRecipes = errors.New("account still owns recipes")
)

// UserDirectory описывает контракт реестра пользователей.
type UserDirectory interface {
	Find(username string) *models.User
	All() []*models.User
	Delete(username string) bool
	UpdateDetails(username, newUsername, country string) bool
}

// RecipeCounter возвращает рецепты владельца; используется для блокировки
// удаления аккаунта с живыми рецептами.
type RecipeCounter interface {
	ByOwner(ownerUID string) []*models.Recipe
}

// UserService реализует операции управления учётными записями.
type UserService struct {
	users   UserDirectory
	recipes RecipeCounter
	log     *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserDirectory, recipes RecipeCounter, log *slog.Logger) *UserService {
	return &UserService{
		users:   users,
		recipes: recipes,
		log:     log,
	}
}

// canAccess — производное правило доступа: сам пользователь или администратор.
func canAccess(callerUsername, callerRole, username string) bool {
	return callerRole == models.RoleAdmin || strings.EqualFold(callerUsername, username)
}

// Get возвращает профиль пользователя. Обычный пользователь видит только
// свой профиль, администратор — любой.
func (s *UserService) Get(callerUsername, callerRole, username string) (*models.User, error) {
	if !canAccess(callerUsername, callerRole, username) {
		return nil, ErrForbidden
	}
	u := s.users.Find(username)
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// List возвращает снимок всех учётных записей. Только для администратора.
func (s *UserService) List(callerRole string) ([]*models.User, error) {
	if callerRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.users.All(), nil
}

// Update меняет имя и страну пользователя. Пользователь редактирует только
// себя, администратор — кого угодно.
func (s *UserService) Update(callerUsername, callerRole, username string, req models.DummyUserUpdate) (*models.User, error) {
	if !canAccess(callerUsername, callerRole, username) {
		return nil, ErrForbidden
	}
	u := s.users.Find(username)
	if u == nil {
		return nil, ErrNotFound
	}
	if !s.users.UpdateDetails(username, req.Username, req.Country) {
		return nil, ErrUsernameTaken
	}
	name := username
	if strings.TrimSpace(req.Username) != "" {
		name = req.Username
	}
	s.log.Info("updated user details", slog.String("username", name))
	return s.users.Find(name), nil
}

// Delete удаляет учётную запись. Только для администратора.
// Удаление блокируется, пока у аккаунта есть рецепты: каскадного
// удаления рецептов нет.
func (s *UserService) Delete(callerRole, username string) error {
	if callerRole != models.RoleAdmin {
		return ErrForbidden
	}
	u := s.users.Find(username)
	if u == nil {
		return ErrNotFound
	}
	if len(s.recipes.ByOwner(u.UID)) > 0 {
		return ErrHasRecipes
	}
	if !s.users.Delete(username) {
		return ErrNotFound
	}
	s.log.Info("deleted user", slog.String("username", u.Username))
	return nil
}
