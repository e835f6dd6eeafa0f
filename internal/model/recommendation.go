package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation marks that UserID recommends RecipeID. The composite
// primary key keeps each user at most once per recipe.
type Recommendation struct {
	RecipeID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recipe_recommendations"
}
