package handlers

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/internal/api/presenters"
	"Recipebook-Backend/pkg/ingredient"

	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandler{ingredientService: ingredientService}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	namePrefix := c.Query("name", "")

	res, err := h.ingredientService.GetIngredients(c.Context(), namePrefix)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredientDetail(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredientDetail(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetIngredientDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredientDetail)
}
