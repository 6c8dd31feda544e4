package services_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavezodium/cookmaster/internal/models"
	"github.com/wavezodium/cookmaster/internal/registry"
	services "github.com/wavezodium/cookmaster/internal/services/recipe"
)

type fixture struct {
	users   *registry.Users
	recipes *registry.Recipes
	svc     *services.RecipeService
	chef    *models.User
	sous    *models.User
	admin   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := registry.NewUsers()
	require.True(t, users.Register("chef", "hunter2", models.RoleUser, "Sweden", "", "", ""))
	require.True(t, users.Register("sous", "hunter2", models.RoleUser, "Sweden", "", "", ""))
	require.True(t, users.Register("boss", "hunter2", models.RoleAdmin, "Sweden", "", "", ""))

	recipes := registry.NewRecipes()
	svc := services.NewRecipeService(recipes, users, logger)

	return &fixture{
		users:   users,
		recipes: recipes,
		svc:     svc,
		chef:    users.Find("chef"),
		sous:    users.Find("sous"),
		admin:   users.Find("boss"),
	}
}

func dummy(title, category string) models.DummyRecipe {
	return models.DummyRecipe{
		Title:        title,
		Ingredients:  []string{"Flour", "Eggs"},
		Instructions: "Mix and bake",
		Category:     category,
	}
}

func TestRecipeService_Create(t *testing.T) {
	f := newFixture(t)

	recipe, err := f.svc.Create("chef", models.RoleUser, dummy("  Cake  ", "dessert"))
	require.NoError(t, err)
	assert.Equal(t, "Cake", recipe.Title)
	assert.Equal(t, models.CategoryDessert, recipe.Category)
	assert.Equal(t, f.chef.UID, recipe.OwnerUID)
	assert.Equal(t, "chef", recipe.OwnerUsername)
	assert.NotEmpty(t, recipe.UID)
	assert.False(t, recipe.CreatedAt.IsZero())
}

func TestRecipeService_Create_BadCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "NotACategory"))
	assert.ErrorIs(t, err, services.ErrBadCategory)
	assert.Empty(t, f.recipes.All())
}

func TestRecipeService_Create_AdminAssignsOwner(t *testing.T) {
	f := newFixture(t)

	req := dummy("Cake", "Dessert")
	req.Owner = "sous"
	recipe, err := f.svc.Create("boss", models.RoleAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, f.sous.UID, recipe.OwnerUID)

	// обычный пользователь не может назначить владельца
	recipe, err = f.svc.Create("chef", models.RoleUser, req)
	require.NoError(t, err)
	assert.Equal(t, f.chef.UID, recipe.OwnerUID)

	req.Owner = "nobody"
	_, err = f.svc.Create("boss", models.RoleAdmin, req)
	assert.ErrorIs(t, err, services.ErrOwnerNotFound)
}

func TestRecipeService_Read_OwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "Dessert"))
	require.NoError(t, err)

	got, err := f.svc.Read(f.chef.UID, models.RoleUser, created.UID)
	require.NoError(t, err)
	assert.Equal(t, created.UID, got.UID)

	_, err = f.svc.Read(f.sous.UID, models.RoleUser, created.UID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.svc.Read(f.admin.UID, models.RoleAdmin, created.UID)
	assert.NoError(t, err)

	_, err = f.svc.Read(f.chef.UID, models.RoleUser, "missing-uid")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRecipeService_Update(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "Dessert"))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := f.svc.Update(f.chef.UID, models.RoleUser, created.UID, dummy("Chocolate Cake", "Dessert"))
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Cake", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = f.svc.Update(f.sous.UID, models.RoleUser, created.UID, dummy("Stolen", "Dessert"))
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestRecipeService_Update_AdminReassignsOwner(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "Dessert"))
	require.NoError(t, err)

	req := dummy("Cake", "Dessert")
	req.Owner = "sous"
	updated, err := f.svc.Update(f.admin.UID, models.RoleAdmin, created.UID, req)
	require.NoError(t, err)
	assert.Equal(t, f.sous.UID, updated.OwnerUID)
	assert.Equal(t, "sous", updated.OwnerUsername)

	// переназначение не доступно обычному пользователю
	req.Owner = "chef"
	_, err = f.svc.Update(f.chef.UID, models.RoleUser, created.UID, req)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestRecipeService_Remove(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "Dessert"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Remove(f.sous.UID, models.RoleUser, created.UID), services.ErrForbidden)
	assert.NoError(t, f.svc.Remove(f.chef.UID, models.RoleUser, created.UID))
	assert.ErrorIs(t, f.svc.Remove(f.chef.UID, models.RoleUser, created.UID), services.ErrNotFound)
}

func TestRecipeService_Duplicate(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create("chef", models.RoleUser, dummy("Cake", "Dessert"))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	dup, err := f.svc.Duplicate(f.chef.UID, models.RoleUser, created.UID)
	require.NoError(t, err)
	assert.NotEqual(t, created.UID, dup.UID)
	assert.Equal(t, created.Title, dup.Title)
	assert.Equal(t, created.Ingredients, dup.Ingredients)
	assert.Equal(t, created.Instructions, dup.Instructions)
	assert.Equal(t, created.Category, dup.Category)
	assert.Equal(t, created.OwnerUID, dup.OwnerUID)
	assert.True(t, dup.CreatedAt.After(created.CreatedAt))
	assert.Len(t, f.recipes.All(), 2)

	// изменение копии не затрагивает оригинал
	_, err = f.svc.Update(f.chef.UID, models.RoleUser, dup.UID, dummy("Copied Cake", "Dessert"))
	require.NoError(t, err)
	original, err := f.svc.Read(f.chef.UID, models.RoleUser, created.UID)
	require.NoError(t, err)
	assert.Equal(t, "Cake", original.Title)
}

func TestRecipeService_List_ByRole(t *testing.T) {
	f := newFixture(t)
	for _, title := range []string{"Cake", "Pie", "Soup"} {
		_, err := f.svc.Create("chef", models.RoleUser, dummy(title, "Dessert"))
		require.NoError(t, err)
	}
	_, err := f.svc.Create("sous", models.RoleUser, dummy("Salad", "Salad"))
	require.NoError(t, err)

	assert.Len(t, f.svc.List(f.chef.UID, models.RoleUser), 3)
	assert.Len(t, f.svc.List(f.sous.UID, models.RoleUser), 1)
	assert.Len(t, f.svc.List(f.admin.UID, models.RoleAdmin), 4)
}

func TestRecipeService_Filter(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create("chef", models.RoleUser, dummy("Pancakes", "Breakfast"))
	require.NoError(t, err)
	_, err = f.svc.Create("chef", models.RoleUser, dummy("Chocolate Cake", "Dessert"))
	require.NoError(t, err)
	_, err = f.svc.Create("sous", models.RoleUser, dummy("Tomato Soup", "Soup"))
	require.NoError(t, err)

	today := time.Now()

	tests := []struct {
		name       string
		callerUID  string
		callerRole string
		filter     models.RecipeFilter
		wantTitles []string
	}{
		{
			name:       "пустой фильтр возвращает всё видимое",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{},
			wantTitles: []string{"Pancakes", "Chocolate Cake", "Tomato Soup"},
		},
		{
			name:       "поиск по подстроке названия",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{Query: "cake"},
			wantTitles: []string{"Pancakes", "Chocolate Cake"},
		},
		{
			name:       "поиск по имени категории",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{Query: "soup"},
			wantTitles: []string{"Tomato Soup"},
		},
		{
			name:       "поиск по имени владельца",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{Query: "sous"},
			wantTitles: []string{"Tomato Soup"},
		},
		{
			name:       "точная категория",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{Category: models.CategoryDessert},
			wantTitles: []string{"Chocolate Cake"},
		},
		{
			name:       "условия объединяются по И",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{Query: "cake", Category: models.CategoryBreakfast},
			wantTitles: []string{"Pancakes"},
		},
		{
			name:       "фильтр по календарному дню создания",
			callerUID:  f.admin.UID,
			callerRole: models.RoleAdmin,
			filter:     models.RecipeFilter{CreatedOn: &today},
			wantTitles: []string{"Pancakes", "Chocolate Cake", "Tomato Soup"},
		},
		{
			name:       "пользователь фильтрует только свои рецепты",
			callerUID:  f.chef.UID,
			callerRole: models.RoleUser,
			filter:     models.RecipeFilter{Query: "soup"},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.svc.Filter(tt.callerUID, tt.callerRole, tt.filter)
			titles := make([]string, 0, len(got))
			for _, recipe := range got {
				titles = append(titles, recipe.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

// Создание и редактирование идут конкурентно: созданный рецепт сразу
// виден редактору через List, и его правка не должна гоняться с чтением
// результата создания. Запускается под детектором гонок.
func TestRecipeService_ConcurrentCreateAndUpdate(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			recipe, err := f.svc.Create("chef", models.RoleUser, dummy(fmt.Sprintf("Recipe %d", i), "Dessert"))
			assert.NoError(t, err)
			assert.NotEmpty(t, recipe.UID)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			for _, recipe := range f.svc.List(f.admin.UID, models.RoleAdmin) {
				_, _ = f.svc.Update(f.admin.UID, models.RoleAdmin, recipe.UID, dummy(recipe.Title, "Dessert"))
			}
		}
	}()

	wg.Wait()
	assert.Len(t, f.recipes.All(), 100)
}

func TestRecipeService_Filter_PastDateMatchesNothing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create("chef", models.RoleUser, dummy("Pancakes", "Breakfast"))
	require.NoError(t, err)

	yesterday := time.Now().AddDate(0, 0, -1)
	got := f.svc.Filter(f.chef.UID, models.RoleUser, models.RecipeFilter{CreatedOn: &yesterday})
	assert.Empty(t, got)
}
