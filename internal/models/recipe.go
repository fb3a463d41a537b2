package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID          int64           `json:"id" db:"id"`                     // Primary key, monotonic
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`           // Owner
	Title       string          `json:"title" db:"title"`               // Recipe title
	TimeMinutes int             `json:"time_minutes" db:"time_minutes"` // Preparation time
	Price       decimal.Decimal `json:"price" db:"price"`               // NUMERIC(5,2)
	Link        string          `json:"link" db:"link"`                 // Optional external link
	Image       *string         `json:"image" db:"image"`               // Relative path under the media root
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`     // Last update timestamp
}

// String returns the recipe title.
func (r RecipeDB) String() string {
	return r.Title
}

// Recipe is a recipe together with its related tags and ingredients.
type Recipe struct {
	RecipeDB
	Tags        []AttributeDB
	Ingredients []AttributeDB
}

// TagIDs returns the ids of the recipe's tags in order.
func (r *Recipe) TagIDs() []int64 {
	return attributeIDs(r.Tags)
}

// IngredientIDs returns the ids of the recipe's ingredients in order.
func (r *Recipe) IngredientIDs() []int64 {
	return attributeIDs(r.Ingredients)
}

func attributeIDs(attrs []AttributeDB) []int64 {
	ids := make([]int64, 0, len(attrs))
	for _, a := range attrs {
		ids = append(ids, a.ID)
	}
	return ids
}

// RecipeFilter narrows a recipe list. Empty id lists apply no restriction.
type RecipeFilter struct {
	TagIDs        []int64
	IngredientIDs []int64
}

// RecipeInput carries the writable recipe fields. Nil fields are left
// untouched by partial updates.
type RecipeInput struct {
	Title          *string
	TimeMinutes    *int
	Price          *decimal.Decimal
	Link           *string
	TagIDs         []int64
	TagsSet        bool // TagIDs was supplied
	IngredientIDs  []int64
	IngredientsSet bool // IngredientIDs was supplied
}

// Recipe event operations.
const (
	RecipeCreated       = "recipe.created"
	RecipeUpdated       = "recipe.updated"
	RecipeDeleted       = "recipe.deleted"
	RecipeImageUploaded = "recipe.image_uploaded"
)

// RecipeEvent describes a change to a recipe published to the event stream.
type RecipeEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Timestamp int64  `json:"timestamp"` // Unix timestamp in seconds
	RecipeID  int64  `json:"recipe_id"` // Affected recipe
	UserID    string `json:"user_id"`   // Recipe owner
	Operation string `json:"operation"` // One of the Recipe* operation constants
}
