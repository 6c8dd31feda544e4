// Package services содержит бизнес-логику для управления рецептами:
// создание, чтение, редактирование, удаление, копирование и фильтрация.
// Здесь же применяется производное правило доступа "владелец или
// администратор".
package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wavezodium/cookmaster/internal/models"
)

// Ошибки уровня сервиса рецептов.
var (
	// ErrNotFound — рецепт или владелец не найдены.
	ErrNotFound = errors.New("recipe not found")
	// ErrForbidden — вызывающий не владелец и не администратор.
	ErrForbidden = errors.New("forbidden")
	// ErrBadCategory — строка категории не соответствует ни одной известной.
	ErrBadCategory = errors.New("unknown recipe category")
	// ErrOwnerNotFound — указанный владелец не зарегистрирован.
	ErrOwnerNotFound = errors.New("owner not found")
)

// RecipeStore описывает контракт реестра рецептов.
type RecipeStore interface {
	// Add добавляет рецепт в главную коллекцию.
	Add(recipe *models.Recipe)
	// Remove удаляет рецепт по UID, false если не найден.
	Remove(uid string) bool
	// Get возвращает копию рецепта по UID или nil.
	Get(uid string) *models.Recipe
	// Update сохраняет изменения и обновляет дату изменения.
	Update(recipe *models.Recipe) bool
	// All возвращает снимок всей коллекции.
	All() []*models.Recipe
	// ByOwner возвращает рецепты владельца.
	ByOwner(ownerUID string) []*models.Recipe
}

// UserResolver находит пользователей по имени; нужен для назначения владельца.
type UserResolver interface {
	Find(username string) *models.User
}

// RecipeService реализует бизнес-логику работы с рецептами.
type RecipeService struct {
	store RecipeStore
	users UserResolver
	log   *slog.Logger
}

// NewRecipeService создает новый экземпляр RecipeService.
func NewRecipeService(store RecipeStore, users UserResolver, log *slog.Logger) *RecipeService {
	return &RecipeService{
		store: store,
		users: users,
		log:   log,
	}
}

// canAccess — производное правило доступа к рецепту:
// администратор или владелец по совпадению идентификаторов.
func canAccess(callerUID, callerRole string, recipe *models.Recipe) bool {
	return callerRole == models.RoleAdmin || recipe.OwnerUID == callerUID
}

// Create создает новый рецепт. Владельцем по умолчанию становится
// действующий пользователь; администратор может указать другого владельца
// в поле Owner запроса.
func (s *RecipeService) Create(callerUsername, callerRole string, req models.DummyRecipe) (*models.Recipe, error) {
	category, ok := models.ParseCategory(req.Category)
	if !ok || category == models.CategoryUnset {
		return nil, ErrBadCategory
	}

	owner := s.users.Find(callerUsername)
	if owner == nil {
		return nil, ErrOwnerNotFound
	}
	if req.Owner != "" && callerRole == models.RoleAdmin {
		owner = s.users.Find(req.Owner)
		if owner == nil {
			return nil, ErrOwnerNotFound
		}
	}

	recipe := &models.Recipe{
		Title:         strings.TrimSpace(req.Title),
		Ingredients:   append([]string(nil), req.Ingredients...),
		Instructions:  req.Instructions,
		Category:      category,
		OwnerUID:      owner.UID,
		OwnerUsername: owner.Username,
	}
	s.store.Add(recipe)

	s.log.Info("created new recipe",
		slog.String("uid", recipe.UID), slog.String("owner", owner.Username))
	return recipe.Clone(), nil
}

// Read возвращает рецепт по UID с проверкой доступа "владелец или администратор".
func (s *RecipeService) Read(callerUID, callerRole, uid string) (*models.Recipe, error) {
	recipe := s.store.Get(uid)
	if recipe == nil {
		return nil, ErrNotFound
	}
	if !canAccess(callerUID, callerRole, recipe) {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// Update редактирует рецепт на месте и обновляет дату изменения.
// Администратор может переназначить владельца через поле Owner запроса.
func (s *RecipeService) Update(callerUID, callerRole, uid string, req models.DummyRecipe) (*models.Recipe, error) {
	recipe := s.store.Get(uid)
	if recipe == nil {
		return nil, ErrNotFound
	}
	if !canAccess(callerUID, callerRole, recipe) {
		return nil, ErrForbidden
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok || category == models.CategoryUnset {
		return nil, ErrBadCategory
	}

	recipe.Title = strings.TrimSpace(req.Title)
	recipe.Ingredients = append([]string(nil), req.Ingredients...)
	recipe.Instructions = req.Instructions
	recipe.Category = category

	if req.Owner != "" && callerRole == models.RoleAdmin {
		owner := s.users.Find(req.Owner)
		if owner == nil {
			return nil, ErrOwnerNotFound
		}
		recipe.OwnerUID = owner.UID
		recipe.OwnerUsername = owner.Username
	}

	if !s.store.Update(recipe) {
		return nil, ErrNotFound
	}
	s.log.Info("updated recipe", slog.String("uid", uid))
	return recipe, nil
}

// Remove удаляет рецепт с проверкой доступа.
func (s *RecipeService) Remove(callerUID, callerRole, uid string) error {
	recipe := s.store.Get(uid)
	if recipe == nil {
		return ErrNotFound
	}
	if !canAccess(callerUID, callerRole, recipe) {
		return ErrForbidden
	}
	if !s.store.Remove(uid) {
		return ErrNotFound
	}
	s.log.Info("removed recipe", slog.String("uid", uid))
	return nil
}

// Duplicate создаёт копию рецепта с новым идентификатором и свежими датами,
// сохраняя содержимое. Доступ тот же, что и на чтение.
func (s *RecipeService) Duplicate(callerUID, callerRole, uid string) (*models.Recipe, error) {
	recipe := s.store.Get(uid)
	if recipe == nil {
		return nil, ErrNotFound
	}
	if !canAccess(callerUID, callerRole, recipe) {
		return nil, ErrForbidden
	}

	dup := recipe.Clone()
	dup.UID = ""
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}
	s.store.Add(dup)

	s.log.Info("duplicated recipe",
		slog.String("source_uid", uid), slog.String("uid", dup.UID))
	return dup.Clone(), nil
}

// List возвращает список рецептов в зависимости от роли:
// администратор видит все рецепты, пользователь — только свои.
func (s *RecipeService) List(callerUID, callerRole string) []*models.Recipe {
	if callerRole == models.RoleAdmin {
		return s.store.All()
	}
	return s.store.ByOwner(callerUID)
}

// Filter применяет параметры фильтра к списку, видимому вызывающему.
// Текстовый поиск идёт по подстроке без учёта регистра по названию,
// имени категории и имени владельца; фильтр по категории — точное
// совпадение; фильтр по дате — совпадение календарного дня создания
// в локальном времени. Условия объединяются по И.
func (s *RecipeService) Filter(callerUID, callerRole string, filter models.RecipeFilter) []*models.Recipe {
	source := s.List(callerUID, callerRole)
	if filter.Empty() {
		return source
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]*models.Recipe, 0, len(source))
	for _, recipe := range source {
		if query != "" && !matchesQuery(recipe, query) {
			continue
		}
		if filter.Category != models.CategoryUnset && recipe.Category != filter.Category {
			continue
		}
		if filter.CreatedOn != nil && !sameLocalDay(recipe.CreatedAt, *filter.CreatedOn) {
			continue
		}
		out = append(out, recipe)
	}
	return out
}

func matchesQuery(recipe *models.Recipe, query string) bool {
	return strings.Contains(strings.ToLower(recipe.Title), query) ||
		strings.Contains(strings.ToLower(string(recipe.Category)), query) ||
		strings.Contains(strings.ToLower(recipe.OwnerUsername), query)
}

func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
