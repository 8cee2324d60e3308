package routes

import (
	"Recipebook-Backend/internal/api/handlers"
	"Recipebook-Backend/internal/middleware"
	"Recipebook-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	TagHandler        handlers.TagHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Users()
	c.Recipes()
	c.Ingredients()
	c.Tags()
	c.GuestRoute()
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users")
	{
		users.Post("/register", c.UserHandler.Register)
		users.Post("/login", c.UserHandler.Login)
		users.Post("/forget", c.UserHandler.ForgotPassword)
		users.Post("/reset", c.UserHandler.ResetPassword)
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		users.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		users.Get("/subscriptions", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetSubscriptions)
		users.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUsers)
		users.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUserDetail)
		users.Post("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("/download_shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DownloadShoppingCart)
		recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
		recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)
		recipes.Post("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.AddToShoppingCart)
		recipes.Delete("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.RemoveFromShoppingCart)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetIngredients)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetail)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/v1/tags")
	{
		tags.Get("", c.TagHandler.GetTags)
		tags.Get("/:id", c.TagHandler.GetTagDetail)
		tags.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.TagHandler.CreateTag)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
