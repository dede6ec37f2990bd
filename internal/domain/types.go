package domain

import "time"

// DateLayout is the calendar-date format used for every date field.
const DateLayout = "2006-01-02"

type InventoryCategory string

const (
	InventoryProduce InventoryCategory = "produce"
	InventoryDairy   InventoryCategory = "dairy"
	InventoryMeat    InventoryCategory = "meat"
	InventoryPantry  InventoryCategory = "pantry"
	InventoryOther   InventoryCategory = "other"
)

// InventoryCategories lists inventory categories in display order.
var InventoryCategories = []InventoryCategory{
	InventoryProduce, InventoryDairy, InventoryMeat, InventoryPantry, InventoryOther,
}

type ShoppingCategory string

const (
	ShoppingProduce   ShoppingCategory = "produce"
	ShoppingDairy     ShoppingCategory = "dairy"
	ShoppingMeat      ShoppingCategory = "meat"
	ShoppingPantry    ShoppingCategory = "pantry"
	ShoppingFrozen    ShoppingCategory = "frozen"
	ShoppingBakery    ShoppingCategory = "bakery"
	ShoppingBeverages ShoppingCategory = "beverages"
	ShoppingOther     ShoppingCategory = "other"
)

// ShoppingCategories lists shopping categories in display order.
var ShoppingCategories = []ShoppingCategory{
	ShoppingProduce, ShoppingDairy, ShoppingMeat, ShoppingPantry,
	ShoppingFrozen, ShoppingBakery, ShoppingBeverages, ShoppingOther,
}

// ToShoppingCategory maps a category name onto the shopping category of the
// same name. Unknown names map to ShoppingOther.
func ToShoppingCategory(c string) ShoppingCategory {
	for _, sc := range ShoppingCategories {
		if string(sc) == c {
			return sc
		}
	}
	return ShoppingOther
}

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

type StorageLocation string

const (
	Fridge  StorageLocation = "fridge"
	Freezer StorageLocation = "freezer"
)

type InventoryItem struct {
	ID                string            `json:"id"`
	Name              string            `json:"name" validate:"required"`
	Quantity          float64           `json:"quantity" validate:"gte=0"`
	Unit              string            `json:"unit"`
	Category          InventoryCategory `json:"category" validate:"omitempty,oneof=produce dairy meat pantry other"`
	ExpirationDate    string            `json:"expirationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsPantryStaple    bool              `json:"isPantryStaple,omitempty"`
	IsRunningLow      bool              `json:"isRunningLow,omitempty"`
	LowStockThreshold float64           `json:"lowStockThreshold,omitempty" validate:"gte=0"`
	Notes             string            `json:"notes,omitempty"`
}

type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

type MacroNutrients struct {
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
	Fiber    float64 `json:"fiber,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

type RecipeNote struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

type Recipe struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name" validate:"required"`
	Servings           int             `json:"servings" validate:"gte=1"`
	Ingredients        []Ingredient    `json:"ingredients" validate:"required,min=1,dive"`
	Instructions       string          `json:"instructions"`
	Macros             *MacroNutrients `json:"macros,omitempty"`
	PrepTime           string          `json:"prepTime,omitempty"`
	CookTime           string          `json:"cookTime,omitempty"`
	TotalTime          string          `json:"totalTime,omitempty"`
	Tags               []string        `json:"tags,omitempty"`
	Difficulty         string          `json:"difficulty,omitempty" validate:"omitempty,oneof=Easy Medium Hard"`
	Rating             int             `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Notes              []RecipeNote    `json:"notes,omitempty"`
	IsFavorite         bool            `json:"isFavorite,omitempty"`
	TimesMade          int             `json:"timesMade"`
	DateLastMade       *time.Time      `json:"dateLastMade,omitempty"`
	IsSampleRecipe     bool            `json:"isSampleRecipe,omitempty"`
	SourceURL          string          `json:"sourceUrl,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	ReheatInstructions string          `json:"reheatInstructions,omitempty"`
}

type MealPlan struct {
	ID       string   `json:"id"`
	Date     string   `json:"date" validate:"required,datetime=2006-01-02"`
	MealType MealType `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	Name     string   `json:"name" validate:"required"`
	RecipeID string   `json:"recipeId,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type FreezerMeal struct {
	ID                 string `json:"id"`
	Name               string `json:"name" validate:"required"`
	PrepDate           string `json:"prepDate" validate:"required,datetime=2006-01-02"`
	Servings           int    `json:"servings" validate:"gte=0"`
	RecipeID           string `json:"recipeId,omitempty"`
	Notes              string `json:"notes,omitempty"`
	UseByDate          string `json:"useByDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReheatInstructions string `json:"reheatInstructions,omitempty"`
}

type Leftover struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	Quantity        float64         `json:"quantity,omitempty" validate:"gte=0"`
	Unit            string          `json:"unit,omitempty"`
	DateStored      string          `json:"dateStored" validate:"required,datetime=2006-01-02"`
	UseByDate       string          `json:"useByDate" validate:"required,datetime=2006-01-02"`
	StorageLocation StorageLocation `json:"storageLocation" validate:"required,oneof=fridge freezer"`
	RecipeID        string          `json:"recipeId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type ShoppingItem struct {
	ID                string           `json:"id"`
	Name              string           `json:"name" validate:"required"`
	Quantity          float64          `json:"quantity" validate:"gte=0"`
	Unit              string           `json:"unit"`
	Category          ShoppingCategory `json:"category" validate:"omitempty,oneof=produce dairy meat pantry frozen bakery beverages other"`
	Checked           bool             `json:"checked"`
	GeneratedFromMeal bool             `json:"generatedFromMeal,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

type ShoppingListConfig struct {
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	AutoUpdate bool   `json:"autoUpdate"`
}

// HasRange reports whether both ends of the date range are set.
func (c ShoppingListConfig) HasRange() bool {
	return c.StartDate != "" && c.EndDate != ""
}

// Snapshot is a value copy of every collection owned by the kitchen store.
type Snapshot struct {
	Inventory      []InventoryItem    `json:"inventory"`
	Recipes        []Recipe           `json:"recipes"`
	Meals          []MealPlan         `json:"meals"`
	FreezerMeals   []FreezerMeal      `json:"freezerMeals"`
	Leftovers      []Leftover         `json:"leftovers"`
	ShoppingList   []ShoppingItem     `json:"shoppingList"`
	ShoppingConfig ShoppingListConfig `json:"shoppingConfig"`
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today returns the current calendar date as midnight UTC of the local date.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
