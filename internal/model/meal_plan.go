package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Days of the week accepted for meal plan entries.
var DaysOfWeek = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// MealTypes accepted for meal plan entries.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// MealPlan is a user's plan for one week.
type MealPlan struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"plan_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	WeekStartDate string         `gorm:"size:20;not null" json:"week_start_date"`
	WeekEndDate   string         `gorm:"size:20;not null" json:"week_end_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Items         []MealPlanItem `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"meals"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealPlanItem assigns a recipe to a day and meal slot.
type MealPlanItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	PlanID      uuid.UUID `gorm:"type:uuid;not null;index" json:"plan_id"`
	RecipeID    int64     `gorm:"not null" json:"recipe_id"`
	RecipeName  string    `gorm:"size:255;not null" json:"recipe_name"`
	DayOfWeek   string    `gorm:"size:20;not null" json:"day_of_week"`
	MealType    string    `gorm:"size:20;not null" json:"meal_type"`
	Date        string    `gorm:"size:20" json:"date,omitempty"`
	CookingTime int       `json:"cooking_time"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MealPlanItem) TableName() string {
	return "meal_plan_items"
}

func (i *MealPlanItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ShoppingList is generated from a meal plan.
type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"list_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"plan_id"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []ShoppingListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"items"`
}

func (ShoppingList) TableName() string {
	return "shopping_lists"
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ShoppingListItem is one consolidated ingredient line.
type ShoppingListItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	ListID         uuid.UUID `gorm:"type:uuid;not null;index" json:"list_id"`
	IngredientName string    `gorm:"size:255;not null" json:"ingredient_name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `gorm:"size:50" json:"unit"`
	Category       string    `gorm:"size:50" json:"category"`
	IsChecked      bool      `gorm:"not null;default:false" json:"is_checked"`
}

func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
