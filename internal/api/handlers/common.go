package handlers

import (
	"Recipebook-Backend/domain"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated caller's id, or "" for an
// anonymous caller on routes behind OptionalAuthMiddleware.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func currentRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok {
		return role
	}
	return ""
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "6"))
	if err != nil || limit < 1 {
		limit = 6
	}

	return page, limit
}

func paginationMap(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrNotInShoppingCart),
		errors.Is(err, domain.ErrNotSubscribed):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotRecipeAuthor),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
