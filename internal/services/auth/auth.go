// Package services содержит логику бизнес-уровня для работы с учётными
// записями и аутентификацией поверх реестра пользователей.
package services

import (
	"errors"

	"github.com/wavezodium/cookmaster/internal/lib/jwt"
	"github.com/wavezodium/cookmaster/internal/models"
)

// Ошибки уровня сервиса. Реестр сигнализирует неуспех булевым значением;
// здесь оно оборачивается в ошибку, чтобы HTTP-слой мог выбрать статус ответа.
var (
	// ErrUserExists — имя пользователя уже занято.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неверное имя, пароль или ответ на контрольный вопрос.
	// Неизвестное имя и неверный пароль намеренно неразличимы.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserDirectory описывает контракт реестра пользователей, нужный сервису.
type UserDirectory interface {
	// Register создаёт пользователя, false при пустом вводе или дубликате имени.
	Register(username, password, role, country, email, securityQuestion, securityAnswer string) bool
	// Find возвращает пользователя по имени без учёта регистра или nil.
	Find(username string) *models.User
	// SignIn проверяет учётные данные и открывает сессию.
	SignIn(username, password string) bool
	// SignOut сбрасывает активную сессию.
	SignOut()
	// ChangePasswordFor меняет пароль пользователя после проверки старого.
	ChangePasswordFor(username, oldPassword, newPassword string) bool
	// ResetPassword меняет пароль по ответу на контрольный вопрос.
	ResetPassword(username, securityAnswer, newPassword string) bool
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserDirectory
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserDirectory, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с дефолтной ролью "user".
// Пароль хэшируется внутри реестра.
func (s *AuthService) Register(username, rawPassword, country, email, securityQuestion, securityAnswer string) error {
	if !s.users.Register(username, rawPassword, models.RoleUser, country, email, securityQuestion, securityAnswer) {
		return ErrUserExists
	}
	return nil
}

// Login проверяет пароль пользователя, открывает сессию в реестре
// и генерирует JWT с именем, ролью и UID пользователя.
func (s *AuthService) Login(username, rawPassword string) (token, role string, err error) {
	if !s.users.SignIn(username, rawPassword) {
		return "", "", ErrInvalidCredentials
	}
	user := s.users.Find(username)
	if user == nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// Logout сбрасывает активную сессию реестра.
func (s *AuthService) Logout() {
	s.users.SignOut()
}

// ValidateToken проверяет JWT и возвращает пользователя из его claims.
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UID:      claims.UserUID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// ChangePassword меняет пароль указанного пользователя после проверки старого.
func (s *AuthService) ChangePassword(username, oldPassword, newPassword string) error {
	if !s.users.ChangePasswordFor(username, oldPassword, newPassword) {
		return ErrInvalidCredentials
	}
	return nil
}

// ResetPassword устанавливает новый пароль по ответу на контрольный вопрос.
func (s *AuthService) ResetPassword(username, securityAnswer, newPassword string) error {
	if !s.users.ResetPassword(username, securityAnswer, newPassword) {
		return ErrInvalidCredentials
	}
	return nil
}
