package recipe

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"Recipebook-Backend/internal/utils/storage"
	"Recipebook-Backend/pkg/ingredient"
	"Recipebook-Backend/pkg/tag"
	"Recipebook-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, recipeID, userID, role string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID, userID, role string) error

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		userRepository       user.UserRepository
		s3                   storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		userRepository:       userRepository,
		s3:                   s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.RecipeResponse, int64, error) {
	// Favorited/in-cart filters are meaningless for an anonymous caller.
	if userID == "" && (filter.IsFavorited || filter.IsInShoppingCart) {
		return []domain.RecipeResponse{}, 0, nil
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.toRecipeResponses(ctx, recipes, userID)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	res, err := s.toRecipeResponses(ctx, []*entities.Recipe{recipe}, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return res[0], nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	lines, err := s.buildIngredientLines(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorUUID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if req.Image != nil {
		fileName := fmt.Sprintf("%s-%s", recipe.ID, req.Image.Filename)
		objectKey, err := s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, lines, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), authorID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, recipeID, userID, role string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.RecipeResponse{}, domain.ErrNotRecipeAuthor
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Text != "" {
		recipe.Text = req.Text
	}
	if req.CookingTime > 0 {
		recipe.CookingTime = req.CookingTime
	}

	// nil means "leave untouched"; a provided set replaces wholesale
	var tags []*entities.Tag
	if req.TagIDs != nil {
		tags, err = s.resolveTags(ctx, req.TagIDs)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	var lines []*entities.RecipeIngredient
	if req.Ingredients != nil {
		lines, err = s.buildIngredientLines(ctx, req.Ingredients)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	if req.Image != nil {
		var objectKey string
		var uploadErr error
		if recipe.ImageURL != "" {
			existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			fileName := fmt.Sprintf("%s-%s", recipe.ID, req.Image.Filename)
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
		}
		if uploadErr != nil {
			return domain.RecipeResponse{}, uploadErr
		}
		recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, lines, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipeDetail(ctx, recipeID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.AuthorID.String() != userID && role != domain.RoleAdmin {
		return domain.ErrNotRecipeAuthor
	}

	if recipe.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		_ = s.s3.DeleteFile(objectKey)
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, userUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
		AddedAt:  time.Now(),
	}

	if err := s.recipeRepository.AddFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	if _, _, err := s.recipeAndUser(ctx, recipeID, userID); err != nil {
		return err
	}

	if err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFavorited
		}
		return err
	}
	return nil
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.RecipeShortResponse, error) {
	recipe, userUUID, err := s.recipeAndUser(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	entry := &entities.ShoppingCartEntry{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipe.ID,
		AddedAt:  time.Now(),
	}

	if err := s.recipeRepository.AddShoppingCartEntry(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RecipeShortResponse{}, domain.ErrAlreadyInShoppingCart
		}
		return domain.RecipeShortResponse{}, err
	}

	return toRecipeShortResponse(recipe), nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error {
	if _, _, err := s.recipeAndUser(ctx, recipeID, userID); err != nil {
		return err
	}

	if err := s.recipeRepository.RemoveShoppingCartEntry(ctx, userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotInShoppingCart
		}
		return err
	}
	return nil
}

func (s *recipeService) recipeAndUser(ctx context.Context, recipeID, userID string) (*entities.Recipe, uuid.UUID, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, uuid.Nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, domain.ErrRecipeNotFound
		}
		return nil, uuid.Nil, err
	}
	return recipe, userUUID, nil
}

func (s *recipeService) resolveTags(ctx context.Context, tagIDs []string) ([]*entities.Tag, error) {
	tags, err := s.tagRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.ErrTagNotFound
	}
	return tags, nil
}

func (s *recipeService) buildIngredientLines(ctx context.Context, reqLines []domain.RecipeIngredientRequest) ([]*entities.RecipeIngredient, error) {
	seen := make(map[string]bool, len(reqLines))
	ids := make([]string, 0, len(reqLines))
	for _, line := range reqLines {
		if seen[line.ID] {
			return nil, domain.ErrDuplicateIngredientLine
		}
		seen[line.ID] = true
		ids = append(ids, line.ID)
	}

	ingredients, err := s.ingredientRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ingredients) != len(ids) {
		return nil, domain.ErrIngredientNotFound
	}

	lines := make([]*entities.RecipeIngredient, 0, len(reqLines))
	for _, line := range reqLines {
		ingredientUUID, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		lines = append(lines, &entities.RecipeIngredient{
			ID:           uuid.New(),
			IngredientID: ingredientUUID,
			Amount:       line.Amount,
		})
	}
	return lines, nil
}

// toRecipeResponses resolves the per-recipe membership flags for the
// whole batch with a fixed number of queries, never one per recipe.
func (s *recipeService) toRecipeResponses(ctx context.Context, recipes []*entities.Recipe, userID string) ([]domain.RecipeResponse, error) {
	favorited := map[string]bool{}
	inCart := map[string]bool{}
	subscribed := map[string]bool{}

	if userID != "" && len(recipes) > 0 {
		recipeIDs := make([]string, 0, len(recipes))
		authorIDs := make([]string, 0, len(recipes))
		for _, r := range recipes {
			recipeIDs = append(recipeIDs, r.ID.String())
			authorIDs = append(authorIDs, r.AuthorID.String())
		}

		favIDs, err := s.recipeRepository.GetFavoritedRecipeIDs(ctx, userID, recipeIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range favIDs {
			favorited[id] = true
		}

		cartIDs, err := s.recipeRepository.GetShoppingCartRecipeIDs(ctx, userID, recipeIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range cartIDs {
			inCart[id] = true
		}

		subIDs, err := s.userRepository.GetSubscribedAuthorIDs(ctx, userID, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range subIDs {
			subscribed[id] = true
		}
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		author := domain.UserResponse{}
		if r.Author != nil {
			author = domain.UserResponse{
				ID:           r.Author.ID.String(),
				Email:        r.Author.Email,
				Username:     r.Author.Username,
				FirstName:    r.Author.FirstName,
				LastName:     r.Author.LastName,
				IsSubscribed: subscribed[r.AuthorID.String()],
			}
		}

		tags := make([]domain.TagResponse, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, domain.TagResponse{
				ID:    t.ID.String(),
				Name:  t.Name,
				Color: t.Color,
				Slug:  t.Slug,
			})
		}

		ingredients := make([]domain.IngredientInRecipeResponse, 0, len(r.Ingredients))
		for _, line := range r.Ingredients {
			item := domain.IngredientInRecipeResponse{
				ID:     line.IngredientID.String(),
				Amount: line.Amount,
			}
			if line.Ingredient != nil {
				item.Name = line.Ingredient.Name
				item.MeasurementUnit = line.Ingredient.MeasurementUnit
			}
			ingredients = append(ingredients, item)
		}

		res = append(res, domain.RecipeResponse{
			ID:               r.ID.String(),
			Author:           author,
			Name:             r.Name,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			ImageURL:         r.ImageURL,
			Tags:             tags,
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID.String()],
			IsInShoppingCart: inCart[r.ID.String()],
			CreatedAt:        r.CreatedAt,
		})
	}
	return res, nil
}

func toRecipeShortResponse(r *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
