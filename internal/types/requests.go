package types

import (
	"github.com/pageza/recipeshare/backend/internal/model"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RecipeListResponse wraps every list view of the catalog
type RecipeListResponse struct {
	Recipes []*model.Recipe `json:"recipes"`
}

// RecipeResponse is returned by create and update
type RecipeResponse struct {
	Message string        `json:"message"`
	Recipe  *model.Recipe `json:"recipe"`
}

// RecipeActionResponse is returned by delete, recommend and unrecommend
type RecipeActionResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// RecommendedResponse reports whether the caller recommends a recipe
type RecommendedResponse struct {
	Recommended bool `json:"recommended"`
}

// CountResponse carries a single count
type CountResponse struct {
	Count int64 `json:"count"`
}

// ImageUploadResponse carries the public URL of an uploaded image
type ImageUploadResponse struct {
	URL string `json:"image"`
}
