package models

import (
	"time"

	"github.com/google/uuid"
)

// AttributeKind describes one kind of user-owned recipe attribute (tags or
// ingredients) and the tables backing it.
type AttributeKind struct {
	Name       string // Singular name, e.g. "tag"
	Field      string // Recipe field and query parameter name, e.g. "tags"
	Table      string // Table holding the attribute rows
	JoinTable  string // Recipe relation table
	JoinColumn string // Column in JoinTable referencing Table
}

var (
	TagKind = AttributeKind{
		Name:       "tag",
		Field:      "tags",
		Table:      "tags",
		JoinTable:  "recipe_tags",
		JoinColumn: "tag_id",
	}
	IngredientKind = AttributeKind{
		Name:       "ingredient",
		Field:      "ingredients",
		Table:      "ingredients",
		JoinTable:  "recipe_ingredients",
		JoinColumn: "ingredient_id",
	}
)

// AttributeDB represents a tag or ingredient row in the database
type AttributeDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    uuid.UUID `json:"user_id" db:"user_id"`       // Owner
	Name      string    `json:"name" db:"name"`             // Free-text name
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

// String returns the attribute name.
func (a AttributeDB) String() string {
	return a.Name
}

// AttributeFilter narrows an attribute list.
type AttributeFilter struct {
	AssignedOnly bool // Only attributes attached to at least one recipe
}
