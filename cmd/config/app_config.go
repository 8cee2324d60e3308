package config

import (
	"Recipebook-Backend/internal/api/handlers"
	"Recipebook-Backend/internal/api/routes"
	"Recipebook-Backend/internal/middleware"
	"Recipebook-Backend/internal/utils"
	"Recipebook-Backend/internal/utils/storage"
	"Recipebook-Backend/pkg/cart"
	"Recipebook-Backend/pkg/ingredient"
	"Recipebook-Backend/pkg/jwt"
	"Recipebook-Backend/pkg/recipe"
	"Recipebook-Backend/pkg/subscription"
	"Recipebook-Backend/pkg/tag"
	"Recipebook-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	tagRepository := tag.NewTagRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	cartRepository := cart.NewCartRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	tagService := tag.NewTagService(tagRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, tagRepository, ingredientRepository, userRepository, s3)
	cartService := cart.NewCartService(cartRepository)
	subscriptionService := subscription.NewSubscriptionService(userRepository, recipeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, subscriptionService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	tagHandler := handlers.NewTagHandler(tagService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, cartService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
		TagHandler:        tagHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
