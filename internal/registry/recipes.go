// Recipes — реестр рецептов. Владеет единственной главной коллекцией;
// пользователи ссылаются на рецепты только по идентификатору владельца.
// Удаление аккаунта не удаляет его рецепты.
package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wavezodium/cookmaster/internal/models"
)

// Recipes — реестр рецептов, хранящий состояние в памяти процесса.
type Recipes struct {
	mu      sync.RWMutex
	recipes []*models.Recipe
}

// NewRecipes создаёт пустой реестр рецептов.
func NewRecipes() *Recipes {
	return &Recipes{}
}

// Add добавляет рецепт в коллекцию. nil игнорируется. Уникальность
// названия не проверяется. Отсутствующие UID и даты заполняются здесь
// и записываются в переданный указатель; сам реестр хранит собственную
// копию, поэтому переданный объект остаётся у вызывающего и его можно
// читать без блокировки.
func (r *Recipes) Add(recipe *models.Recipe) {
	if recipe == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if recipe.UID == "" {
		recipe.UID = uuid.NewString()
	}
	now := time.Now().UTC()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	if recipe.UpdatedAt.IsZero() {
		recipe.UpdatedAt = recipe.CreatedAt
	}
	r.recipes = append(r.recipes, recipe.Clone())
}

// Remove удаляет рецепт по идентификатору. Возвращает false, если
// рецепта нет в коллекции.
func (r *Recipes) Remove(uid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, recipe := range r.recipes {
		if recipe.UID == uid {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			return true
		}
	}
	return false
}

// Get возвращает отсоединённую копию рецепта по идентификатору или nil.
func (r *Recipes) Get(uid string) *models.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, recipe := range r.recipes {
		if recipe.UID == uid {
			return recipe.Clone()
		}
	}
	return nil
}

// Update сохраняет изменённые поля рецепта по его UID и обновляет
// дату последнего изменения. UID, дата создания и факт существования
// рецепта остаются за реестром. Возвращает false, если рецепт не найден.
func (r *Recipes) Update(updated *models.Recipe) bool {
	if updated == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, recipe := range r.recipes {
		if recipe.UID == updated.UID {
			recipe.Title = updated.Title
			recipe.Ingredients = append([]string(nil), updated.Ingredients...)
			recipe.Instructions = updated.Instructions
			recipe.Category = updated.Category
			recipe.OwnerUID = updated.OwnerUID
			recipe.OwnerUsername = updated.OwnerUsername
			recipe.UpdatedAt = time.Now().UTC()
			updated.UpdatedAt = recipe.UpdatedAt
			return true
		}
	}
	return false
}

// All возвращает снимок всей коллекции рецептов.
func (r *Recipes) All() []*models.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, recipe.Clone())
	}
	return out
}

// ByOwner возвращает все рецепты, принадлежащие владельцу с указанным
// идентификатором. Пустой идентификатор даёт пустой результат.
func (r *Recipes) ByOwner(ownerUID string) []*models.Recipe {
	if ownerUID == "" {
		return []*models.Recipe{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Recipe, 0)
	for _, recipe := range r.recipes {
		if recipe.OwnerUID == ownerUID {
			out = append(out, recipe.Clone())
		}
	}
	return out
}

// ExistsByTitle сообщает, есть ли рецепт с таким названием без учёта
// регистра и пробелов по краям.
func (r *Recipes) ExistsByTitle(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, recipe := range r.recipes {
		if strings.EqualFold(recipe.Title, title) {
			return true
		}
	}
	return false
}

// SeedDefaults идемпотентно добавляет стандартное меню из восьми рецептов,
// распределённых между тремя стандартными учётными записями. Каждый рецепт
// защищён проверкой ExistsByTitle, поэтому повторное сидирование ничего
// не меняет.
func (r *Recipes) SeedDefaults(users *Users) {
	seed := func(owner *models.User, title string, ingredients []string, instructions string, category models.Category) {
		if owner == nil || r.ExistsByTitle(title) {
			return
		}
		r.Add(&models.Recipe{
			Title:         title,
			Ingredients:   ingredients,
			Instructions:  instructions,
			Category:      category,
			OwnerUID:      owner.UID,
			OwnerUsername: owner.Username,
		})
	}

	user := users.Find("user")
	if user == nil {
		return
	}
	seed(user, "Pancakes",
		[]string{"Flour", "Eggs", "Milk"},
		"Mix and fry", models.CategoryBreakfast)
	seed(user, "Pasta Carbonara",
		[]string{"Pasta", "Eggs", "Parmesan cheese"},
		"Cook pasta and mix with eggs and cheese", models.CategoryMainCourse)
	seed(user, "Spaghetti Bolognese",
		[]string{"Spaghetti", "Ground beef", "Tomato sauce"},
		"Cook spaghetti and prepare sauce", models.CategoryMainCourse)
	seed(user, "Chicken Curry",
		[]string{"Chicken", "Curry powder", "Coconut milk"},
		"Cook chicken and simmer in curry sauce", models.CategoryMainCourse)

	user2 := users.Find("user2")
	seed(user2, "Caesar Salad",
		[]string{"Lettuce", "Croutons", "Caesar dressing"},
		"Toss ingredients together", models.CategorySalad)
	seed(user2, "Tomato Soup",
		[]string{"Tomatoes", "Onion", "Garlic", "Vegetable broth"},
		"Cook and blend ingredients", models.CategorySoup)
	seed(user2, "Grilled Cheese Sandwich",
		[]string{"Bread", "Cheese", "Butter"},
		"Assemble and grill the sandwich", models.CategorySnack)

	admin := users.Find("admin")
	seed(admin, "Chocolate Cake",
		[]string{"Flour", "Cocoa powder", "Sugar", "Eggs", "Butter"},
		"Mix ingredients and bake", models.CategoryDessert)
}
