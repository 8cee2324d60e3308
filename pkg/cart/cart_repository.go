package cart

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CartRepository interface {
		GetCartIngredientLines(ctx context.Context, userID string) ([]domain.ShoppingListLine, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// GetCartIngredientLines returns every ingredient line of every recipe
// in the user's shopping cart, one row per line, ordered by ingredient
// name.
func (r *cartRepository) GetCartIngredientLines(ctx context.Context, userID string) ([]domain.ShoppingListLine, error) {
	var lines []domain.ShoppingListLine

	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Order("ingredients.name asc").
		Scan(&lines).Error; err != nil {
		return nil, err
	}

	return lines, nil
}
