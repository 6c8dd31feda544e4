package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavezodium/cookmaster/internal/models"
)

func testRecipe(title, ownerUID string) *models.Recipe {
	return &models.Recipe{
		Title:        title,
		Ingredients:  []string{"Flour", "Eggs"},
		Instructions: "Mix and bake",
		Category:     models.CategoryDessert,
		OwnerUID:     ownerUID,
	}
}

func TestRecipes_Add(t *testing.T) {
	r := NewRecipes()

	r.Add(nil)
	assert.Empty(t, r.All())

	recipe := testRecipe("Cake", "owner-1")
	r.Add(recipe)

	assert.NotEmpty(t, recipe.UID)
	assert.False(t, recipe.CreatedAt.IsZero())
	assert.Equal(t, recipe.CreatedAt, recipe.UpdatedAt)
	assert.Len(t, r.All(), 1)

	// переданный объект остаётся у вызывающего: его изменения
	// не затрагивают коллекцию реестра
	recipe.Title = "Mutated"
	assert.Equal(t, "Cake", r.Get(recipe.UID).Title)

	// уникальность названия не проверяется
	r.Add(testRecipe("Cake", "owner-1"))
	assert.Len(t, r.All(), 2)
}

func TestRecipes_All_ReturnsSnapshot(t *testing.T) {
	r := NewRecipes()
	r.Add(testRecipe("Cake", "owner-1"))

	snapshot := r.All()
	require.Len(t, snapshot, 1)
	snapshot[0].Title = "Mutated"
	snapshot[0].Ingredients[0] = "Mutated"

	fresh := r.All()
	require.Len(t, fresh, 1)
	assert.Equal(t, "Cake", fresh[0].Title)
	assert.Equal(t, "Flour", fresh[0].Ingredients[0])
}

func TestRecipes_ByOwner(t *testing.T) {
	r := NewRecipes()
	r.Add(testRecipe("Cake", "x"))
	r.Add(testRecipe("Pie", "x"))
	r.Add(testRecipe("Soup", "x"))
	r.Add(testRecipe("Salad", "y"))

	assert.Len(t, r.ByOwner("x"), 3)
	assert.Len(t, r.ByOwner("y"), 1)
	assert.Empty(t, r.ByOwner("z"))
	assert.Empty(t, r.ByOwner(""))
	assert.Len(t, r.All(), 4)

	// ByOwner — чистая функция текущего состояния
	for _, recipe := range r.ByOwner("x") {
		assert.Equal(t, "x", recipe.OwnerUID)
	}
	assert.Len(t, r.ByOwner("x"), 3)
}

func TestRecipes_Remove(t *testing.T) {
	r := NewRecipes()
	recipe := testRecipe("Cake", "owner-1")
	r.Add(recipe)

	assert.False(t, r.Remove("missing-uid"))
	assert.True(t, r.Remove(recipe.UID))
	assert.False(t, r.Remove(recipe.UID))
	assert.Empty(t, r.All())
}

func TestRecipes_Get(t *testing.T) {
	r := NewRecipes()
	recipe := testRecipe("Cake", "owner-1")
	r.Add(recipe)

	assert.Nil(t, r.Get("missing-uid"))

	got := r.Get(recipe.UID)
	require.NotNil(t, got)
	assert.Equal(t, recipe.Title, got.Title)

	got.Title = "Mutated"
	assert.Equal(t, "Cake", r.Get(recipe.UID).Title)
}

func TestRecipes_Update_BumpsUpdatedAt(t *testing.T) {
	r := NewRecipes()
	recipe := testRecipe("Cake", "owner-1")
	r.Add(recipe)
	created := recipe.CreatedAt

	time.Sleep(10 * time.Millisecond)

	edited := recipe.Clone()
	edited.Title = "Chocolate Cake"
	edited.Ingredients = []string{"Flour", "Cocoa powder"}
	require.True(t, r.Update(edited))

	stored := r.Get(recipe.UID)
	require.NotNil(t, stored)
	assert.Equal(t, "Chocolate Cake", stored.Title)
	assert.Equal(t, []string{"Flour", "Cocoa powder"}, stored.Ingredients)
	assert.Equal(t, created, stored.CreatedAt, "дата создания неизменяема")
	assert.True(t, stored.UpdatedAt.After(created))

	assert.False(t, r.Update(testRecipe("Ghost", "owner-1")))
	assert.False(t, r.Update(nil))
}

func TestRecipes_ExistsByTitle(t *testing.T) {
	r := NewRecipes()
	r.Add(testRecipe("Pasta Carbonara", "owner-1"))

	assert.True(t, r.ExistsByTitle("Pasta Carbonara"))
	assert.True(t, r.ExistsByTitle("PASTA CARBONARA"))
	assert.True(t, r.ExistsByTitle("  pasta carbonara  "))
	assert.False(t, r.ExistsByTitle("Pasta"))
	assert.False(t, r.ExistsByTitle(""))
	assert.False(t, r.ExistsByTitle("   "))
}

func TestRecipes_SeedDefaults_Idempotent(t *testing.T) {
	users := NewUsers()
	users.SeedDefaults()

	r := NewRecipes()
	r.SeedDefaults(users)
	require.Len(t, r.All(), 8)

	user := users.Find("user")
	user2 := users.Find("user2")
	admin := users.Find("admin")
	assert.Len(t, r.ByOwner(user.UID), 4)
	assert.Len(t, r.ByOwner(user2.UID), 3)
	assert.Len(t, r.ByOwner(admin.UID), 1)

	r.SeedDefaults(users)
	assert.Len(t, r.All(), 8)

	assert.True(t, r.ExistsByTitle("Pancakes"))
	assert.True(t, r.ExistsByTitle("Chocolate Cake"))
}

func TestRecipes_SeedDefaults_WithoutSeededUsers(t *testing.T) {
	users := NewUsers()

	r := NewRecipes()
	r.SeedDefaults(users)
	assert.Empty(t, r.All())
}
