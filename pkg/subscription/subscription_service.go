package subscription

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"Recipebook-Backend/pkg/recipe"
	"Recipebook-Backend/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, subscriberID, authorID string) error
		GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error)
	}

	subscriptionService struct {
		userRepository   user.UserRepository
		recipeRepository recipe.RecipeRepository
	}
)

func NewSubscriptionService(userRepository user.UserRepository, recipeRepository recipe.RecipeRepository) SubscriptionService {
	return &subscriptionService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, subscriberID, authorID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	// compared as parsed values: the path parameter may spell the same
	// uuid in a different case. Rejected before any storage mutation,
	// distinct from "already subscribed".
	if subscriberUUID == authorUUID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	author, err := s.userRepository.GetUserByID(ctx, authorUUID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	subscription := &entities.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberUUID,
		AuthorID:     author.ID,
		AddedAt:      time.Now(),
	}

	if err := s.userRepository.CreateSubscription(ctx, subscription); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.toSubscriptionResponse(ctx, author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepository.DeleteSubscription(ctx, subscriberID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotSubscribed
		}
		return err
	}
	return nil
}

func (s *subscriptionService) GetSubscriptions(ctx context.Context, subscriberID string, page, limit, recipesLimit int) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, subscriberID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		item, err := s.toSubscriptionResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, item)
	}
	return res, count, nil
}

// toSubscriptionResponse truncates the recipe list to recipesLimit
// (0 means no truncation) while RecipesCount stays the true total.
func (s *subscriptionService) toSubscriptionResponse(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	recipesCount, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	shortRecipes := make([]domain.RecipeShortResponse, 0, len(recipes))
	for _, r := range recipes {
		shortRecipes = append(shortRecipes, domain.RecipeShortResponse{
			ID:          r.ID.String(),
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		ID:           author.ID.String(),
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      shortRecipes,
		RecipesCount: recipesCount,
	}, nil
}
