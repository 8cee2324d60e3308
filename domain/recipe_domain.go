package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"
	MessageSuccessAddToCart       = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart  = "recipe removed from shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
	MessageFailedAddToCart       = "failed to add recipe to shopping cart"
	MessageFailedRemoveFromCart  = "failed to remove recipe from shopping cart"

	ErrRecipeNotFound             = errors.New("recipe not found")
	ErrNotRecipeAuthor            = errors.New("only the recipe author can modify it")
	ErrDuplicateIngredientLine    = errors.New("recipe lists the same ingredient twice")
	ErrAlreadyFavorited           = errors.New("recipe is already in favorites")
	ErrNotFavorited               = errors.New("recipe is not in favorites")
	ErrAlreadyInShoppingCart      = errors.New("recipe is already in the shopping cart")
	ErrNotInShoppingCart          = errors.New("recipe is not in the shopping cart")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" form:"id" validate:"required,uuid"`
		Amount int    `json:"amount" form:"amount" validate:"required,gt=0"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" form:"name" validate:"required,max=200"`
		Text        string                    `json:"text" form:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time" form:"cooking_time" validate:"required,gt=0"`
		TagIDs      []string                  `json:"tags" form:"tags" validate:"required,min=1,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" form:"ingredients" validate:"required,min=1,dive"`
		Image       *multipart.FileHeader     `json:"-" form:"image"`
	}

	// UpdateRecipeRequest leaves tags and ingredient lines untouched when
	// the slices are nil; a non-nil slice replaces the set wholesale.
	UpdateRecipeRequest struct {
		Name        string                    `json:"name,omitempty" form:"name" validate:"omitempty,max=200"`
		Text        string                    `json:"text,omitempty" form:"text"`
		CookingTime int                       `json:"cooking_time,omitempty" form:"cooking_time" validate:"omitempty,gt=0"`
		TagIDs      []string                  `json:"tags,omitempty" form:"tags" validate:"omitempty,min=1,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients,omitempty" form:"ingredients" validate:"omitempty,min=1,dive"`
		Image       *multipart.FileHeader     `json:"-" form:"image"`
	}

	RecipeFilter struct {
		Author           string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	IngredientInRecipeResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                       `json:"id"`
		Author           UserResponse                 `json:"author"`
		Name             string                       `json:"name"`
		Text             string                       `json:"text"`
		CookingTime      int                          `json:"cooking_time"`
		ImageURL         string                       `json:"image_url,omitempty"`
		Tags             []TagResponse                `json:"tags"`
		Ingredients      []IngredientInRecipeResponse `json:"ingredients"`
		IsFavorited      bool                         `json:"is_favorited"`
		IsInShoppingCart bool                         `json:"is_in_shopping_cart"`
		CreatedAt        time.Time                    `json:"created_at"`
	}

	// RecipeShortResponse is the shortened view returned by the favorite
	// and shopping cart add operations.
	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}
)
