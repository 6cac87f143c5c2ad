package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// UnitItem is the unit recorded for counted ingredients.
const UnitItem = "item"

// categoryKeywords is matched in order against the lowercased ingredient
// name; the first keyword contained in the name wins.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"sour cream", "dairy"},
	{"soy sauce", "pantry"},
	{"tomato sauce", "pantry"},
	{"eggplant", "vegetables"},
	{"black pepper", "herbs_spices"},
	{"bell pepper", "vegetables"},

	{"chicken", "meat"}, {"beef", "meat"}, {"pork", "meat"}, {"lamb", "meat"},
	{"turkey", "meat"}, {"bacon", "meat"}, {"sausage", "meat"}, {"ham", "meat"},
	{"steak", "meat"}, {"ground", "meat"},

	{"salmon", "seafood"}, {"shrimp", "seafood"}, {"fish", "seafood"},
	{"tuna", "seafood"}, {"crab", "seafood"}, {"lobster", "seafood"},

	{"milk", "dairy"}, {"cheese", "dairy"}, {"butter", "dairy"}, {"cream", "dairy"},
	{"yogurt", "dairy"}, {"egg", "dairy"},

	{"lettuce", "vegetables"}, {"tomato", "vegetables"}, {"onion", "vegetables"},
	{"garlic", "vegetables"}, {"carrot", "vegetables"}, {"celery", "vegetables"},
	{"broccoli", "vegetables"}, {"spinach", "vegetables"}, {"mushroom", "vegetables"},
	{"potato", "vegetables"}, {"corn", "vegetables"}, {"zucchini", "vegetables"},
	{"cucumber", "vegetables"}, {"cabbage", "vegetables"}, {"bean", "vegetables"},
	{"pea", "vegetables"}, {"asparagus", "vegetables"}, {"cauliflower", "vegetables"},

	{"apple", "fruits"}, {"banana", "fruits"}, {"lemon", "fruits"}, {"lime", "fruits"},
	{"orange", "fruits"}, {"berry", "fruits"}, {"avocado", "fruits"}, {"mango", "fruits"},

	{"rice", "grains"}, {"pasta", "grains"}, {"bread", "grains"}, {"flour", "grains"},
	{"noodle", "grains"}, {"oat", "grains"}, {"tortilla", "grains"},
	{"cereal", "grains"}, {"quinoa", "grains"}, {"couscous", "grains"},

	{"salt", "herbs_spices"}, {"pepper", "herbs_spices"}, {"basil", "herbs_spices"},
	{"oregano", "herbs_spices"}, {"thyme", "herbs_spices"}, {"rosemary", "herbs_spices"},
	{"cumin", "herbs_spices"}, {"paprika", "herbs_spices"}, {"cinnamon", "herbs_spices"},
	{"parsley", "herbs_spices"}, {"cilantro", "herbs_spices"}, {"dill", "herbs_spices"},
	{"ginger", "herbs_spices"}, {"nutmeg", "herbs_spices"}, {"chili", "herbs_spices"},

	{"oil", "pantry"}, {"vinegar", "pantry"}, {"sauce", "pantry"}, {"sugar", "pantry"},
	{"honey", "pantry"}, {"syrup", "pantry"}, {"broth", "pantry"}, {"stock", "pantry"},
	{"ketchup", "pantry"}, {"mustard", "pantry"}, {"mayonnaise", "pantry"},
	{"can", "pantry"},
}

// Categorize assigns a store section to an ingredient name.
func Categorize(ingredient string) string {
	name := strings.ToLower(ingredient)
	for _, k := range categoryKeywords {
		if strings.Contains(name, k.keyword) {
			return k.category
		}
	}
	return "other"
}

// ShoppingListService handles shopping list operations
type ShoppingListService struct {
	db      *gorm.DB
	recipes RecipeLookup
	log     zerolog.Logger
}

var _ IShoppingListService = (*ShoppingListService)(nil)

// NewShoppingListService creates a new ShoppingListService instance
func NewShoppingListService(db *gorm.DB, recipes RecipeLookup, log zerolog.Logger) *ShoppingListService {
	return &ShoppingListService{
		db:      db,
		recipes: recipes,
		log:     log.With().Str("component", "shopping_lists").Logger(),
	}
}

// Generate builds a shopping list from every meal in the plan, replacing the
// plan's previous list. Each distinct ingredient is counted once per meal
// that uses it.
func (s *ShoppingListService) Generate(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	if len(plan.Items) == 0 {
		return nil, ErrMealPlanEmpty
	}

	var order []string
	items := make(map[string]*model.ShoppingListItem)
	for _, meal := range plan.Items {
		recipe, err := s.recipes.GetRecipe(ctx, meal.RecipeID)
		if err != nil {
			if errors.Is(err, ErrRecipeNotFound) {
				s.log.Warn().Int64("recipe_id", meal.RecipeID).Msg("skipping meal with unknown recipe")
				continue
			}
			return nil, err
		}
		inMeal := make(map[string]struct{}, len(recipe.Ingredients))
		for _, ingredient := range recipe.Ingredients {
			name := strings.ToLower(strings.TrimSpace(ingredient))
			if name == "" {
				continue
			}
			if _, dup := inMeal[name]; dup {
				continue
			}
			inMeal[name] = struct{}{}
			if item, ok := items[name]; ok {
				item.Quantity++
				continue
			}
			items[name] = &model.ShoppingListItem{
				IngredientName: name,
				Quantity:       1,
				Unit:           UnitItem,
				Category:       Categorize(name),
			}
			order = append(order, name)
		}
	}

	list := model.ShoppingList{UserID: userID, PlanID: planID, Items: make([]model.ShoppingListItem, 0, len(order))}
	for _, name := range order {
		list.Items = append(list.Items, *items[name])
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteShoppingLists(tx, "plan_id = ? AND user_id = ?", planID, userID); err != nil {
			return err
		}
		return tx.Create(&list).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("list_id", list.ID.String()).
		Str("plan_id", planID.String()).
		Int("items", len(list.Items)).
		Msg("generated shopping list")
	return &list, nil
}

// List returns the user's shopping lists, newest first.
func (s *ShoppingListService) List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingList, error) {
	lists := []model.ShoppingList{}
	err := s.db.WithContext(ctx).
		Preload("Items", orderShoppingItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Get returns one of the user's shopping lists.
func (s *ShoppingListService) Get(ctx context.Context, userID, listID uuid.UUID) (*model.ShoppingList, error) {
	return s.first(ctx, "id = ? AND user_id = ?", listID, userID)
}

// GetByPlan returns the shopping list generated for a plan.
func (s *ShoppingListService) GetByPlan(ctx context.Context, userID, planID uuid.UUID) (*model.ShoppingList, error) {
	return s.first(ctx, "plan_id = ? AND user_id = ?", planID, userID)
}

// SetChecked marks an item as bought or not.
func (s *ShoppingListService) SetChecked(ctx context.Context, userID, listID, itemID uuid.UUID, checked bool) (*model.ShoppingListItem, error) {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return nil, err
	}

	var item model.ShoppingListItem
	err := s.db.WithContext(ctx).Where("id = ? AND list_id = ?", itemID, listID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingItemNotFound
		}
		return nil, err
	}
	// Update, not Save, so false is written despite the column default.
	if err := s.db.WithContext(ctx).Model(&item).Update("is_checked", checked).Error; err != nil {
		return nil, err
	}
	item.IsChecked = checked
	return &item, nil
}

// DeleteItem removes one item from a list.
func (s *ShoppingListService) DeleteItem(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ? AND list_id = ?", itemID, listID).Delete(&model.ShoppingListItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrShoppingItemNotFound
	}
	return nil
}

// Delete removes a shopping list and its items.
func (s *ShoppingListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteShoppingLists(tx, "id = ?", listID)
	})
}

func (s *ShoppingListService) first(ctx context.Context, query string, args ...interface{}) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items", orderShoppingItems).
		Where(query, args...).
		Order("created_at DESC").
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (s *ShoppingListService) owned(ctx context.Context, userID, listID uuid.UUID) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}
	return &list, nil
}

// deleteShoppingLists removes the matching lists and their items inside tx.
func deleteShoppingLists(tx *gorm.DB, query string, args ...interface{}) error {
	var ids []uuid.UUID
	if err := tx.Model(&model.ShoppingList{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("list_id IN ?", ids).Delete(&model.ShoppingListItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.ShoppingList{}).Error
}

func orderShoppingItems(db *gorm.DB) *gorm.DB {
	return db.Order("category ASC").Order("ingredient_name ASC")
}
