package handlers

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/internal/api/presenters"
	"Recipebook-Backend/pkg/cart"
	"Recipebook-Backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		cartService   cart.CartService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, cartService cart.CartService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		cartService:   cartService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := pagination(c)

	filter := domain.RecipeFilter{
		Author:           c.Query("author", ""),
		IsFavorited:      c.QueryBool("is_favorited", false),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart", false),
	}
	for _, v := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.TagSlugs = append(filter.TagSlugs, string(v))
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), filter, page, limit, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":    recipes,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeDetail(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), *req, c.Params("id"), currentUserID(c), currentRole(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), currentUserID(c), currentRole(c)); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	res, err := h.recipeService.AddFavorite(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddFavorite)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.recipeService.RemoveFavorite(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRemoveFavorite, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRemoveFavorite)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	res, err := h.recipeService.AddToShoppingCart(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedAddToCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	if err := h.recipeService.RemoveFromShoppingCart(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRemoveFromCart, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessRemoveFromCart)
}

// DownloadShoppingCart returns the aggregated shopping list as plain
// text, one line per distinct (ingredient, unit) pair.
func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	report, err := h.cartService.DownloadShoppingList(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedDownloadCart, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.SendString(report)
}
