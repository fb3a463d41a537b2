package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AttributeRequest represents the JSON body for creating or renaming a tag or ingredient
// swagger:model AttributeRequest
type AttributeRequest struct {
	// Name
	// required: true
	// example: Vegan
	Name *string `json:"name" validate:"required,notblank,max=255"`
}

// AttributeResponse represents a tag or ingredient
// swagger:model AttributeResponse
type AttributeResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Vegan
	Name string `json:"name"`
}

// IDList is a JSON list of ids that remembers whether it was present in the payload.
// An explicit null counts as present and empty.
type IDList struct {
	IDs []int64
	Set bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *IDList) UnmarshalJSON(data []byte) error {
	l.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		l.IDs = nil
		return nil
	}
	return json.Unmarshal(data, &l.IDs)
}

// MarshalJSON implements json.Marshaler.
func (l IDList) MarshalJSON() ([]byte, error) {
	if l.IDs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.IDs)
}

// RecipeRequest represents the JSON body for creating or updating a recipe
// swagger:model RecipeRequest
type RecipeRequest struct {
	// Title
	// required: true
	// example: Tomato soup
	Title *string `json:"title" validate:"required,notblank,max=255"`

	// Preparation time in minutes
	// required: true
	// example: 10
	TimeMinutes *int `json:"time_minutes" validate:"required,gte=0"`

	// Price, number or decimal string
	// required: true
	// example: 3.50
	Price *decimal.Decimal `json:"price" validate:"required,gte=0,lt=1000" swaggertype:"string"`

	// Link to the original recipe
	// example: https://example.com/soup
	Link *string `json:"link" validate:"omitempty,max=255"`

	// Tag ids owned by the caller
	// example: [1,2]
	Tags IDList `json:"tags" validate:"-" swaggertype:"array,integer"`

	// Ingredient ids owned by the caller
	// example: [3]
	Ingredients IDList `json:"ingredients" validate:"-" swaggertype:"array,integer"`
}

// PresentFields returns the names of the validated fields supplied in the request.
func (r RecipeRequest) PresentFields() []string {
	var fields []string
	if r.Title != nil {
		fields = append(fields, "Title")
	}
	if r.TimeMinutes != nil {
		fields = append(fields, "TimeMinutes")
	}
	if r.Price != nil {
		fields = append(fields, "Price")
	}
	if r.Link != nil {
		fields = append(fields, "Link")
	}
	return fields
}

// Input converts the request into service input.
func (r RecipeRequest) Input() RecipeInput {
	return RecipeInput{
		Title:          r.Title,
		TimeMinutes:    r.TimeMinutes,
		Price:          r.Price,
		Link:           r.Link,
		TagIDs:         r.Tags.IDs,
		TagsSet:        r.Tags.Set,
		IngredientIDs:  r.Ingredients.IDs,
		IngredientsSet: r.Ingredients.Set,
	}
}

// RecipeResponse represents a recipe in list form, with related ids only
// swagger:model RecipeResponse
type RecipeResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Tomato soup
	Title string `json:"title"`

	// example: [1,2]
	Tags []int64 `json:"tags"`

	// example: [3]
	Ingredients []int64 `json:"ingredients"`

	// example: 10
	TimeMinutes int `json:"time_minutes"`

	// example: 3.50
	Price string `json:"price"`

	// example: https://example.com/soup
	Link string `json:"link"`

	// example: /media/uploads/recipe/0b7c1f4e-6a55-4e0a-9d7e-2f7c8a1d2b3c.jpg
	Image *string `json:"image"`
}

// RecipeDetailResponse represents a recipe with nested tags and ingredients
// swagger:model RecipeDetailResponse
type RecipeDetailResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Image       *string             `json:"image"`
}

// RecipeImageResponse represents a successful image upload
// swagger:model RecipeImageResponse
type RecipeImageResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: /media/uploads/recipe/0b7c1f4e-6a55-4e0a-9d7e-2f7c8a1d2b3c.jpg
	Image string `json:"image"`
}
