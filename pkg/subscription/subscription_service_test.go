package subscription

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return m.Called(ctx, subscription).Error(0)
}

func (m *MockUserRepository) DeleteSubscription(ctx context.Context, subscriberID, authorID string) error {
	return m.Called(ctx, subscriberID, authorID).Error(0)
}

func (m *MockUserRepository) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	args := m.Called(ctx, subscriberID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetSubscribedAuthorIDs(ctx context.Context, subscriberID string, authorIDs []string) ([]string, error) {
	args := m.Called(ctx, subscriberID, authorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) GetSubscribedAuthors(ctx context.Context, subscriberID string, page, limit int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, subscriberID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return m.Called(ctx, recipe, lines, tags).Error(0)
}

func (m *MockRecipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, lines []*entities.RecipeIngredient, tags []*entities.Tag) error {
	return m.Called(ctx, recipe, lines, tags).Error(0)
}

func (m *MockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	args := m.Called(ctx, filter, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) AddFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockRecipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeRepository) GetFavoritedRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecipeRepository) AddShoppingCartEntry(ctx context.Context, entry *entities.ShoppingCartEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockRecipeRepository) RemoveShoppingCartEntry(ctx context.Context, userID, recipeID string) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockRecipeRepository) GetShoppingCartRecipeIDs(ctx context.Context, userID string, recipeIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func testAuthor() *entities.User {
	return &entities.User{
		ID:       uuid.New(),
		Email:    "author@example.com",
		Username: "author",
	}
}

func TestSubscribeToSelfRejectedBeforeStorage(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	id := uuid.New().String()
	_, err := service.Subscribe(context.Background(), id, id, 0)

	assert.ErrorIs(t, err, domain.ErrSelfSubscription)
	userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
}

func TestSubscribeToSelfRejectedForCaseVariantID(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	// same uuid, spelled differently in the path parameter
	id := uuid.New().String()
	_, err := service.Subscribe(context.Background(), id, strings.ToUpper(id), 0)

	assert.ErrorIs(t, err, domain.ErrSelfSubscription)
	userRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
}

func TestSubscribeAuthorMissing(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	authorID := uuid.New().String()
	userRepo.On("GetUserByID", mock.Anything, authorID).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Subscribe(context.Background(), uuid.New().String(), authorID, 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubscribeTwiceIsConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	author := testAuthor()
	userRepo.On("GetUserByID", mock.Anything, author.ID.String()).Return(author, nil)
	userRepo.On("CreateSubscription", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := service.Subscribe(context.Background(), uuid.New().String(), author.ID.String(), 0)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestSubscribeTruncatesRecipesKeepsTrueCount(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	author := testAuthor()
	subscriberID := uuid.New().String()

	userRepo.On("GetUserByID", mock.Anything, author.ID.String()).Return(author, nil)
	userRepo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s *entities.Subscription) bool {
		return s.SubscriberID.String() == subscriberID && s.AuthorID == author.ID
	})).Return(nil)
	recipeRepo.On("GetRecipesByAuthor", mock.Anything, author.ID.String(), 2).
		Return([]*entities.Recipe{
			{ID: uuid.New(), Name: "Soup", CookingTime: 30},
			{ID: uuid.New(), Name: "Salad", CookingTime: 10},
		}, nil)
	recipeRepo.On("CountRecipesByAuthor", mock.Anything, author.ID.String()).Return(int64(5), nil)

	res, err := service.Subscribe(context.Background(), subscriberID, author.ID.String(), 2)
	require.NoError(t, err)

	assert.True(t, res.IsSubscribed)
	assert.Len(t, res.Recipes, 2)
	assert.Equal(t, int64(5), res.RecipesCount)
}

func TestUnsubscribeNotSubscribed(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	author := testAuthor()
	subscriberID := uuid.New().String()

	userRepo.On("GetUserByID", mock.Anything, author.ID.String()).Return(author, nil)
	userRepo.On("DeleteSubscription", mock.Anything, subscriberID, author.ID.String()).Return(gorm.ErrRecordNotFound)

	err := service.Unsubscribe(context.Background(), subscriberID, author.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
}

func TestGetSubscriptionsOrderedByRepository(t *testing.T) {
	userRepo := new(MockUserRepository)
	recipeRepo := new(MockRecipeRepository)
	service := NewSubscriptionService(userRepo, recipeRepo)

	subscriberID := uuid.New().String()
	first := testAuthor()
	second := &entities.User{ID: uuid.New(), Email: "other@example.com", Username: "other"}

	userRepo.On("GetSubscribedAuthors", mock.Anything, subscriberID, 1, 6).
		Return([]*entities.User{first, second}, int64(2), nil)
	recipeRepo.On("GetRecipesByAuthor", mock.Anything, mock.Anything, 0).Return([]*entities.Recipe{}, nil)
	recipeRepo.On("CountRecipesByAuthor", mock.Anything, mock.Anything).Return(int64(0), nil)

	res, count, err := service.GetSubscriptions(context.Background(), subscriberID, 1, 6, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), count)
	require.Len(t, res, 2)
	assert.Equal(t, first.Username, res[0].Username)
	assert.Equal(t, second.Username, res[1].Username)
}
