// Package models содержит доменные структуры рецепта и его категории,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"strings"
	"time"
)

// Category — категория рецепта. Пустая строка означает, что категория
// ещё не выбрана; такое значение допустимо только на этапе заполнения формы.
type Category string

// Поддерживаемые категории рецептов.
const (
	CategoryUnset      Category = ""
	CategoryAppetizer  Category = "Appetizer"
	CategoryBeverage   Category = "Beverage"
	CategoryBreakfast  Category = "Breakfast"
	CategoryDessert    Category = "Dessert"
	CategoryLunch      Category = "Lunch"
	CategoryMainCourse Category = "MainCourse"
	CategorySalad      Category = "Salad"
	CategorySideDish   Category = "SideDish"
	CategorySnack      Category = "Snack"
	CategorySoup       Category = "Soup"
	CategoryOther      Category = "Other"
)

// Categories возвращает все допустимые категории в фиксированном порядке.
func Categories() []Category {
	return []Category{
		CategoryAppetizer,
		CategoryBeverage,
		CategoryBreakfast,
		CategoryDessert,
		CategoryLunch,
		CategoryMainCourse,
		CategorySalad,
		CategorySideDish,
		CategorySnack,
		CategorySoup,
		CategoryOther,
	}
}

// ParseCategory разбирает категорию из строки без учёта регистра и пробелов.
// Возвращает false, если строка не соответствует ни одной категории.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return CategoryUnset, false
}

// Recipe представляет собой основную модель рецепта, используемую
// в бизнес-логике и реестре. У рецепта ровно один владелец; владелец
// хранится по идентификатору, каскадного удаления вместе с аккаунтом нет.
type Recipe struct {
	UID           string    `json:"uid"`            // Уникальный идентификатор рецепта
	Title         string    `json:"title"`          // Название рецепта
	Ingredients   []string  `json:"ingredients"`    // Упорядоченный список ингредиентов
	Instructions  string    `json:"instructions"`   // Текст приготовления
	Category      Category  `json:"category"`       // Категория рецепта
	OwnerUID      string    `json:"owner_uid"`      // Идентификатор владельца
	OwnerUsername string    `json:"owner_username"` // Имя владельца на момент сохранения
	CreatedAt     time.Time `json:"created_at"`     // Дата создания (UTC), неизменяемая
	UpdatedAt     time.Time `json:"updated_at"`     // Дата последнего изменения (UTC)
}

// Clone возвращает отсоединённую копию рецепта вместе с копией списка
// ингредиентов.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	return &c
}

// DummyRecipe используется для приёма данных рецепта из JSON-запроса,
// прежде чем конвертировать их в Recipe. Категория приходит строкой,
// чтобы её можно было валидировать отдельно.
type DummyRecipe struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`     // Название рецепта
	Ingredients  []string `json:"ingredients" validate:"required,min=1"`       // Список ингредиентов (минимум один)
	Instructions string   `json:"instructions" validate:"required"`            // Текст приготовления
	Category     string   `json:"category" validate:"required"`                // Категория (строкой)
	Owner        string   `json:"owner,omitempty" validate:"omitempty,min=3"`  // Новый владелец (только для администратора)
}

// RecipeFilter представляет параметры фильтрации списка рецептов.
// Все заданные условия объединяются по логическому И.
type RecipeFilter struct {
	Query     string     // Подстрока для поиска по названию, категории или имени владельца
	Category  Category   // Точная категория (CategoryUnset — фильтра нет)
	CreatedOn *time.Time // Календарный день создания в локальном времени (nil — фильтра нет)
}

// Empty сообщает, задано ли хотя бы одно условие фильтра.
func (f RecipeFilter) Empty() bool {
	return f.Query == "" && f.Category == CategoryUnset && f.CreatedOn == nil
}
