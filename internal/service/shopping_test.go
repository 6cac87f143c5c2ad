package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/testdb"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type shoppingFixture struct {
	plans    *MealPlanService
	shopping *ShoppingListService
	user     uuid.UUID
	plan     *model.MealPlan
}

// newShoppingFixture creates a plan holding Chicken Soup and Vegetarian Pasta.
func newShoppingFixture(t *testing.T) *shoppingFixture {
	t.Helper()
	db := testdb.SQLite(t)
	recipes := newLoadedService(t, nil)
	f := &shoppingFixture{
		plans:    NewMealPlanService(db, recipes, zerolog.Nop()),
		shopping: NewShoppingListService(db, recipes, zerolog.Nop()),
		user:     uuid.New(),
	}

	ctx := context.Background()
	var err error
	f.plan, err = f.plans.Create(ctx, f.user, week("2024-01-01", "2024-01-07"))
	require.NoError(t, err)
	for _, req := range []types.AddMealRequest{
		{RecipeID: recipeID(1), DayOfWeek: "monday", MealType: "dinner"},
		{RecipeID: recipeID(2), DayOfWeek: "tuesday", MealType: "dinner"},
	} {
		_, err := f.plans.AddMeal(ctx, f.user, f.plan.ID, &req)
		require.NoError(t, err)
	}
	return f
}

func itemsByName(list *model.ShoppingList) map[string]model.ShoppingListItem {
	out := make(map[string]model.ShoppingListItem, len(list.Items))
	for _, item := range list.Items {
		out[item.IngredientName] = item
	}
	return out
}

func TestGenerateCountsIngredientOncePerMeal(t *testing.T) {
	ix, err := engine.Build([]model.Recipe{
		{ID: 7, Name: "Garlic Bread", Description: "Toasted", Ingredients: []string{"Garlic", "baguette", "garlic ", "butter"}},
	}, engine.DefaultOptions())
	require.NoError(t, err)
	recipes := NewRecommendationService(nil, zerolog.Nop())
	recipes.SetIndex(ix)

	db := testdb.SQLite(t)
	plans := NewMealPlanService(db, recipes, zerolog.Nop())
	shopping := NewShoppingListService(db, recipes, zerolog.Nop())
	user := uuid.New()
	ctx := context.Background()

	plan, err := plans.Create(ctx, user, week("2024-02-05", "2024-02-11"))
	require.NoError(t, err)
	for _, day := range []string{"monday", "friday"} {
		_, err := plans.AddMeal(ctx, user, plan.ID, &types.AddMealRequest{RecipeID: recipeID(7), DayOfWeek: day, MealType: "lunch"})
		require.NoError(t, err)
	}

	list, err := shopping.Generate(ctx, user, plan.ID)
	require.NoError(t, err)
	items := itemsByName(list)
	require.Len(t, items, 3)
	assert.Equal(t, 2.0, items["garlic"].Quantity)
	assert.Equal(t, 2.0, items["baguette"].Quantity)
}

func TestCategorize(t *testing.T) {
	tests := map[string]string{
		"Chicken breast":  "meat",
		"ground beef":     "meat",
		"salmon fillet":   "seafood",
		"sour cream":      "dairy",
		"cheddar cheese":  "dairy",
		"eggs":            "dairy",
		"eggplant":        "vegetables",
		"red bell pepper": "vegetables",
		"black pepper":    "herbs_spices",
		"soy sauce":       "pantry",
		"tomato sauce":    "pantry",
		"tomatoes":        "vegetables",
		"lemon juice":     "fruits",
		"brown rice":      "grains",
		"olive oil":       "pantry",
		"penne":           "other",
	}
	for ingredient, want := range tests {
		assert.Equal(t, want, Categorize(ingredient), ingredient)
	}
}

func TestGenerateShoppingList(t *testing.T) {
	f := newShoppingFixture(t)
	ctx := context.Background()

	list, err := f.shopping.Generate(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	assert.Equal(t, f.plan.ID, list.PlanID)

	names := make([]string, len(list.Items))
	for i, item := range list.Items {
		names[i] = item.IngredientName
	}
	assert.Equal(t, []string{"chicken", "carrot", "onion", "penne", "tomato"}, names)

	items := itemsByName(list)
	assert.Equal(t, 2.0, items["onion"].Quantity)
	assert.Equal(t, 1.0, items["chicken"].Quantity)
	assert.Equal(t, UnitItem, items["onion"].Unit)
	assert.Equal(t, "meat", items["chicken"].Category)
	assert.Equal(t, "vegetables", items["tomato"].Category)
	assert.Equal(t, "other", items["penne"].Category)
	assert.False(t, items["onion"].IsChecked)
}

func TestGenerateShoppingListReplacesPrevious(t *testing.T) {
	f := newShoppingFixture(t)
	ctx := context.Background()

	first, err := f.shopping.Generate(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	second, err := f.shopping.Generate(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = f.shopping.Get(ctx, f.user, first.ID)
	assert.ErrorIs(t, err, ErrShoppingListNotFound)

	lists, err := f.shopping.List(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, second.ID, lists[0].ID)
	assert.Len(t, lists[0].Items, len(second.Items))

	byPlan, err := f.shopping.GetByPlan(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, byPlan.ID)
}

func TestGenerateShoppingListErrors(t *testing.T) {
	f := newShoppingFixture(t)
	ctx := context.Background()

	_, err := f.shopping.Generate(ctx, uuid.New(), f.plan.ID)
	assert.ErrorIs(t, err, ErrMealPlanNotFound)

	empty, err := f.plans.Create(ctx, f.user, week("2024-02-05", "2024-02-11"))
	require.NoError(t, err)
	_, err = f.shopping.Generate(ctx, f.user, empty.ID)
	assert.ErrorIs(t, err, ErrMealPlanEmpty)

	_, err = f.shopping.GetByPlan(ctx, f.user, empty.ID)
	assert.ErrorIs(t, err, ErrShoppingListNotFound)
}

func TestShoppingListSetChecked(t *testing.T) {
	f := newShoppingFixture(t)
	ctx := context.Background()
	list, err := f.shopping.Generate(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	itemID := itemsByName(list)["onion"].ID

	item, err := f.shopping.SetChecked(ctx, f.user, list.ID, itemID, true)
	require.NoError(t, err)
	assert.True(t, item.IsChecked)

	got, err := f.shopping.Get(ctx, f.user, list.ID)
	require.NoError(t, err)
	assert.True(t, itemsByName(got)["onion"].IsChecked)

	_, err = f.shopping.SetChecked(ctx, f.user, list.ID, itemID, false)
	require.NoError(t, err)
	got, err = f.shopping.Get(ctx, f.user, list.ID)
	require.NoError(t, err)
	assert.False(t, itemsByName(got)["onion"].IsChecked)

	_, err = f.shopping.SetChecked(ctx, f.user, list.ID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrShoppingItemNotFound)
	_, err = f.shopping.SetChecked(ctx, uuid.New(), list.ID, itemID, true)
	assert.ErrorIs(t, err, ErrShoppingListNotFound)
}

func TestShoppingListDelete(t *testing.T) {
	f := newShoppingFixture(t)
	ctx := context.Background()
	list, err := f.shopping.Generate(ctx, f.user, f.plan.ID)
	require.NoError(t, err)
	itemID := itemsByName(list)["penne"].ID

	require.NoError(t, f.shopping.DeleteItem(ctx, f.user, list.ID, itemID))
	assert.ErrorIs(t, f.shopping.DeleteItem(ctx, f.user, list.ID, itemID), ErrShoppingItemNotFound)

	got, err := f.shopping.Get(ctx, f.user, list.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, len(list.Items)-1)
	assert.NotContains(t, itemsByName(got), "penne")

	assert.ErrorIs(t, f.shopping.Delete(ctx, uuid.New(), list.ID), ErrShoppingListNotFound)
	require.NoError(t, f.shopping.Delete(ctx, f.user, list.ID))
	_, err = f.shopping.Get(ctx, f.user, list.ID)
	assert.ErrorIs(t, err, ErrShoppingListNotFound)
}
