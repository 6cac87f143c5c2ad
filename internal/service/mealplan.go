package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/model"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// MealPlanService handles meal plan operations
type MealPlanService struct {
	db      *gorm.DB
	recipes RecipeLookup
	log     zerolog.Logger
}

var _ IMealPlanService = (*MealPlanService)(nil)

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB, recipes RecipeLookup, log zerolog.Logger) *MealPlanService {
	return &MealPlanService{
		db:      db,
		recipes: recipes,
		log:     log.With().Str("component", "meal_plans").Logger(),
	}
}

// Create opens a plan for the week, or returns the user's existing plan for
// the same start and end dates.
func (s *MealPlanService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateMealPlanRequest) (*model.MealPlan, error) {
	var existing model.MealPlan
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND week_start_date = ? AND week_end_date = ?", userID, req.WeekStartDate, req.WeekEndDate).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plan := model.MealPlan{
		UserID:        userID,
		WeekStartDate: req.WeekStartDate,
		WeekEndDate:   req.WeekEndDate,
		Items:         []model.MealPlanItem{},
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	s.log.Info().Str("plan_id", plan.ID.String()).Str("user_id", userID.String()).Msg("created meal plan")
	return &plan, nil
}

// List returns the user's plans, most recent week first.
func (s *MealPlanService) List(ctx context.Context, userID uuid.UUID) ([]model.MealPlan, error) {
	plans := []model.MealPlan{}
	err := s.db.WithContext(ctx).
		Preload("Items", orderItems).
		Where("user_id = ?", userID).
		Order("week_start_date DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// Get returns one of the user's plans with its meals.
func (s *MealPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*model.MealPlan, error) {
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
	return &plan, nil
}

// AddMeal places a recipe in a day and meal slot, replacing whatever the slot
// held before.
func (s *MealPlanService) AddMeal(ctx context.Context, userID, planID uuid.UUID, req *types.AddMealRequest) (*model.MealPlanItem, error) {
	day := strings.ToLower(strings.TrimSpace(req.DayOfWeek))
	if !contains(model.DaysOfWeek, day) {
		return nil, ErrInvalidDay
	}
	mealType := strings.ToLower(strings.TrimSpace(req.MealType))
	if !contains(model.MealTypes, mealType) {
		return nil, ErrInvalidMealType
	}
	if _, err := s.owned(ctx, userID, planID); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.GetRecipe(ctx, *req.RecipeID)
	if err != nil {
		return nil, err
	}

	var item model.MealPlanItem
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("plan_id = ? AND day_of_week = ? AND meal_type = ?", planID, day, mealType).
			First(&item).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item.PlanID = planID
		item.RecipeID = recipe.ID
		item.RecipeName = recipe.Name
		item.DayOfWeek = day
		item.MealType = mealType
		item.Date = req.Date
		item.CookingTime = recipe.CookingTime
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		return tx.Model(&model.MealPlan{ID: planID}).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveMeal deletes one meal from a plan.
func (s *MealPlanService) RemoveMeal(ctx context.Context, userID, planID, itemID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, planID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND plan_id = ?", itemID, planID).
		Delete(&model.MealPlanItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMealPlanItemNotFound
	}
	return nil
}

// Delete removes a plan with its meals and any shopping lists built from it.
func (s *MealPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, planID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteShoppingLists(tx, "plan_id = ?", planID); err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&model.MealPlanItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MealPlan{}, "id = ?", planID).Error
	})
}

func (s *MealPlanService) owned(ctx context.Context, userID, planID uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
