package recipe

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error)

		AddFavorite(ctx context.Context, favorite *entities.Favorite) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		GetFavoritedRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error)

		AddShoppingCartEntry(ctx context.Context, entry *entities.ShoppingCartEntry) error
		RemoveShoppingCartEntry(ctx context.Context, userID, recipeID string) error
		GetShoppingCartRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, line := range lines {
			line.RecipeID = recipe.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// UpdateRecipe saves the recipe row and, when lines or tags are
// non-nil, replaces the whole child set. Children are never merged.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if lines != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
				return err
			}
			for _, line := range lines {
				line.RecipeID = recipe.ID
			}
			if len(lines) > 0 {
				if err := tx.Create(&lines).Error; err != nil {
					return err
				}
			}
		}
		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	buildQuery := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entities.Recipe{})
		if filter.Author != "" {
			query = query.Where("recipes.author_id = ?", filter.Author)
		}
		if len(filter.TagSlugs) > 0 {
			query = query.
				Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs)
		}
		if filter.IsFavorited {
			query = query.
				Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
				Where("favorites.user_id = ?", userID)
		}
		if filter.IsInShoppingCart {
			query = query.
				Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id").
				Where("shopping_cart_entries.user_id = ?", userID)
		}
		return query
	}

	if err := buildQuery().Distinct("recipes.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := buildQuery().
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddFavorite is a single atomic insert. A concurrent duplicate surfaces
// as gorm.ErrDuplicatedKey via the unique index, never as a second row.
func (r *recipeRepository) AddFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetFavoritedRecipeIDs answers the favorite flag for a whole page of
// recipes with one query instead of one per recipe.
func (r *recipeRepository) GetFavoritedRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) AddShoppingCartEntry(ctx context.Context, entry *entities.ShoppingCartEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *recipeRepository) RemoveShoppingCartEntry(ctx context.Context, userID, recipeID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCartEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) GetShoppingCartRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
