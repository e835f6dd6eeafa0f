package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeFields are the owner-editable contents of a recipe
type RecipeFields struct {
	Title        string `json:"title" validate:"notblank"`
	Ingredients  string `json:"ingredients" validate:"notblank"`
	Instructions string `json:"instructions" validate:"notblank"`
	Description  string `json:"description" validate:"notblank"`
	Image        string `json:"image" validate:"notblank"`
}

// Recipe is the catalog's aggregate root. RecommendList holds the ids of the
// users currently recommending it; it is backed by Recommendations in SQL stores.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Image        string    `gorm:"size:1024;not null" json:"image"`
	OwnerID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"owner"`

	Recommendations []Recommendation `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	RecommendList   []uuid.UUID      `gorm:"-" json:"recommendList"`
}

// NewRecipe builds an unsaved recipe owned by ownerID
func NewRecipe(ownerID uuid.UUID, fields RecipeFields) *Recipe {
	return &Recipe{
		ID:            uuid.New(),
		Title:         fields.Title,
		Ingredients:   fields.Ingredients,
		Instructions:  fields.Instructions,
		Description:   fields.Description,
		Image:         fields.Image,
		OwnerID:       ownerID,
		RecommendList: []uuid.UUID{},
	}
}

// Fields returns the editable contents of the recipe
func (r *Recipe) Fields() RecipeFields {
	return RecipeFields{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Description:  r.Description,
		Image:        r.Image,
	}
}

// IsOwnedBy reports whether userID created the recipe
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

// IsRecommendedBy reports whether userID is in the recommend list
func (r *Recipe) IsRecommendedBy(userID uuid.UUID) bool {
	for _, id := range r.RecommendList {
		if id == userID {
			return true
		}
	}
	return false
}

// Popularity is the number of users recommending the recipe
func (r *Recipe) Popularity() int {
	return len(r.RecommendList)
}
