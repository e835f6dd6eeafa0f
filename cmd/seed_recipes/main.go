package main

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

type seedUser struct {
	Email    string
	Username string
	Password string
}

var seedUsers = []seedUser{
	{Email: "chef@example.com", Username: "chef", Password: "password123"},
	{Email: "foodie@example.com", Username: "foodie", Password: "password123"},
}

var seedRecipes = []model.RecipeFields{
	{
		Title:        "Classic Pancakes",
		Ingredients:  "200g flour, 2 eggs, 300ml milk, 1 tbsp sugar, pinch of salt",
		Instructions: "Whisk everything into a smooth batter. Fry ladlefuls in a buttered pan until golden.",
		Description:  "Fluffy weekend pancakes.",
		Image:        "https://images.example.com/pancakes.jpg",
	},
	{
		Title:        "Tomato Basil Soup",
		Ingredients:  "1kg tomatoes, 1 onion, 2 garlic cloves, basil, 500ml stock",
		Instructions: "Soften onion and garlic, add tomatoes and stock, simmer 20 minutes, blend with basil.",
		Description:  "A bright soup for late summer tomatoes.",
		Image:        "https://images.example.com/tomato-soup.jpg",
	},
	{
		Title:        "Chickpea Curry",
		Ingredients:  "2 cans chickpeas, 1 can coconut milk, curry paste, spinach, rice",
		Instructions: "Fry the paste, add chickpeas and coconut milk, simmer, stir in spinach and serve over rice.",
		Description:  "Weeknight curry in thirty minutes.",
		Image:        "https://images.example.com/chickpea-curry.jpg",
	},
	{
		Title:        "Lemon Drizzle Cake",
		Ingredients:  "225g butter, 225g sugar, 4 eggs, 225g self-raising flour, 2 lemons",
		Instructions: "Cream butter and sugar, beat in eggs, fold in flour and zest. Bake 45 minutes, drizzle with lemon syrup.",
		Description:  "Sharp, sticky and easy.",
		Image:        "https://images.example.com/lemon-drizzle.jpg",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger := logging.New("recipeshare-seed", string(config.GetEnvironment()), cfg.LogLevel)
	validation.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer s.Close()

	if err := database.Migrate(ctx, s, logger); err != nil {
		logger.WithError(err).Fatal("failed to migrate store")
	}

	auth := service.NewAuthService(s, cfg.JWTSecret, cfg.TokenTTL, nil, logger)
	catalog := service.NewCatalogService(s, logger)
	recommendations := service.NewRecommendationService(s, logger, nil)

	users := make([]*model.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		user, err := auth.Register(ctx, u.Email, u.Password, u.Username)
		if errors.Is(err, service.ErrEmailTaken) {
			user, err = auth.Login(ctx, u.Email, u.Password)
		}
		if err != nil {
			logger.WithError(err).WithField("email", u.Email).Fatal("failed to create seed user")
		}
		users = append(users, user)
	}
	owner, fan := users[0], users[1]

	for i, fields := range seedRecipes {
		recipe, err := catalog.Create(ctx, owner.ID, fields)
		if err != nil {
			logger.WithError(err).WithField("title", fields.Title).Error("failed to save recipe")
			continue
		}
		logger.WithField("title", recipe.Title).Info("successfully created recipe")

		// The second user recommends every other recipe
		if i%2 == 0 {
			if err := recommendations.Recommend(ctx, fan.ID, recipe.ID); err != nil {
				logger.WithError(err).WithField("recipe_id", recipe.ID).Error("failed to recommend recipe")
			}
		}
	}

	logger.WithField("count", len(seedRecipes)).Info("successfully seeded recipes")
}
