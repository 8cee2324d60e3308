package user

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenUser(userID string, role string) string {
	return m.Called(userID, role).String(0)
}

func (m *MockJWTService) ValidateTokenUser(token string) (*gojwt.Token, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gojwt.Token), args.Error(1)
}

func (m *MockJWTService) GetUserIDByToken(token string) (string, string, error) {
	args := m.Called(token)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockJWTService) GenerateTokenResetPassword(email string, duration time.Duration) (string, error) {
	args := m.Called(email, duration)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateTokenResetPassword(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	repo.On("CheckEmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("CheckUsernameExists", mock.Anything, "newcook").Return(false, nil)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == domain.RoleUser &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")) == nil
	})).Return(nil)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "new@example.com",
		Username: "newcook",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "newcook", res.Username)
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	repo.On("CheckEmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "taken@example.com",
		Username: "whoever",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyUsed)
	repo.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	repo.On("CheckEmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("CheckUsernameExists", mock.Anything, "taken").Return(true, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "new@example.com",
		Username: "taken",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyUsed)
}

func TestRegisterInsertRaceMapsToNeutralError(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	// another registration won between the exists checks and the insert;
	// the error must not claim the email when the username index fired
	repo.On("CheckEmailExists", mock.Anything, "new@example.com").Return(false, nil)
	repo.On("CheckUsernameExists", mock.Anything, "newcook").Return(false, nil)
	repo.On("RegisterUser", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "new@example.com",
		Username: "newcook",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	hashed, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetUserByEmail", mock.Anything, "cook@example.com").
		Return(&entities.User{ID: uuid.New(), Email: "cook@example.com", Password: string(hashed)}, nil)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := new(MockJWTService)
	service := NewUserService(repo, jwtService)

	userID := uuid.New()
	hashed, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetUserByEmail", mock.Anything, "cook@example.com").
		Return(&entities.User{ID: userID, Email: "cook@example.com", Password: string(hashed), Role: domain.RoleUser}, nil)
	jwtService.On("GenerateTokenUser", userID.String(), domain.RoleUser).Return("signed-token")

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "right-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestGetUsersResolvesSubscriptionFlags(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	currentID := uuid.New().String()
	first := &entities.User{ID: uuid.New(), Username: "alpha"}
	second := &entities.User{ID: uuid.New(), Username: "beta"}

	repo.On("GetUsers", mock.Anything, 1, 6).Return([]*entities.User{first, second}, int64(2), nil)
	repo.On("GetSubscribedAuthorIDs", mock.Anything, currentID, []string{first.ID.String(), second.ID.String()}).
		Return([]string{second.ID.String()}, nil).Once()

	res, count, err := service.GetUsers(context.Background(), 1, 6, currentID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), count)
	require.Len(t, res, 2)
	assert.False(t, res[0].IsSubscribed)
	assert.True(t, res[1].IsSubscribed)
}

func TestGetUsersAnonymousSkipsSubscriptionLookup(t *testing.T) {
	repo := new(MockUserRepository)
	service := NewUserService(repo, new(MockJWTService))

	repo.On("GetUsers", mock.Anything, 1, 6).
		Return([]*entities.User{{ID: uuid.New(), Username: "alpha"}}, int64(1), nil)

	res, _, err := service.GetUsers(context.Background(), 1, 6, "")
	require.NoError(t, err)

	require.Len(t, res, 1)
	assert.False(t, res[0].IsSubscribed)
	repo.AssertNotCalled(t, "GetSubscribedAuthorIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := new(MockJWTService)
	service := NewUserService(repo, jwtService)

	jwtService.On("ValidateTokenResetPassword", "bad-token").Return("", domain.ErrTokenInvalid)

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    "bad-token",
		Password: "new-pass-123",
	})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}
