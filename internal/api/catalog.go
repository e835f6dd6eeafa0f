package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// CatalogHandler serves the recipe catalog and recommendation endpoints
type CatalogHandler struct {
	catalog         service.ICatalogService
	recommendations service.IRecommendationService
}

func NewCatalogHandler(catalog service.ICatalogService, recommendations service.IRecommendationService) *CatalogHandler {
	return &CatalogHandler{
		catalog:         catalog,
		recommendations: recommendations,
	}
}

// RegisterRoutes mounts the catalog under router/catalog. Static paths are
// registered alongside /:id; gin prefers the static match.
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	catalog := router.Group("/catalog")
	{
		catalog.GET("", h.GetAll)
		catalog.GET("/last-three", h.GetLastThree)
		catalog.GET("/most-popular", h.GetMostPopular)
		catalog.GET("/search", h.Search)
		catalog.GET("/search/:term", h.Search)
		catalog.GET("/:id", h.GetOne)

		protected := catalog.Group("", requireAuth)
		protected.GET("/user-recipes", h.GetUserRecipes)
		protected.GET("/favorites", h.GetFavorites)
		protected.GET("/user-recom-count", h.GetUserRecommendationCount)
		protected.POST("", h.Create)
		protected.POST("/create", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
		protected.PUT("/:id/recommend", h.Recommend)
		protected.PUT("/:id/unrecommend", h.Unrecommend)
		protected.GET("/:id/recommended", h.IsRecommended)
	}
}

func (h *CatalogHandler) GetAll(c *gin.Context) {
	recipes, err := h.catalog.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

func (h *CatalogHandler) GetLastThree(c *gin.Context) {
	recipes, err := h.catalog.GetLastThree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

func (h *CatalogHandler) GetMostPopular(c *gin.Context) {
	recipes, err := h.catalog.GetMostPopular(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

// Search accepts the term as ?q= or as the last path segment
func (h *CatalogHandler) Search(c *gin.Context) {
	term := c.Param("term")
	if term == "" {
		term = c.Query("q")
	}

	recipes, err := h.catalog.Search(c.Request.Context(), term)
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

func (h *CatalogHandler) GetOne(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.catalog.GetOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var fields model.RecipeFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.catalog.Create(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.RecipeResponse{Message: "Recipe created", Recipe: recipe})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var fields model.RecipeFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.catalog.Update(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeResponse{Message: "Recipe updated", Recipe: recipe})
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeActionResponse{Message: "Recipe deleted", ID: id.String()})
}

func (h *CatalogHandler) Recommend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recommendations.Recommend(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeActionResponse{Message: "Recipe recommended", ID: id.String()})
}

func (h *CatalogHandler) Unrecommend(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recommendations.Unrecommend(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeActionResponse{Message: "Recipe unrecommended", ID: id.String()})
}

func (h *CatalogHandler) IsRecommended(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recommended, err := h.recommendations.IsRecommended(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecommendedResponse{Recommended: recommended})
}

func (h *CatalogHandler) GetUserRecipes(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	recipes, err := h.catalog.GetUserRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

func (h *CatalogHandler) GetFavorites(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	recipes, err := h.recommendations.FavoritesForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondRecipes(c, recipes)
}

func (h *CatalogHandler) GetUserRecommendationCount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	count, err := h.recommendations.CountForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CountResponse{Count: count})
}

func respondRecipes(c *gin.Context, recipes []*model.Recipe) {
	if recipes == nil {
		recipes = []*model.Recipe{}
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: recipes})
}

// recipeID parses the :id path parameter; an unparseable id cannot name a recipe
func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return uuid.Nil, false
	}
	return id, true
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return uuid.Nil, false
	}
	return userID, true
}
