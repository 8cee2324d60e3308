package user

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/entities"
	"Recipebook-Backend/internal/utils"
	"Recipebook-Backend/internal/utils/mailing"
	"Recipebook-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page, limit int, currentUserID string) ([]domain.UserResponse, int64, error)
		GetUserDetail(ctx context.Context, id string, currentUserID string) (domain.UserResponse, error)
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	emailExists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if emailExists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyUsed
	}

	usernameExists, err := s.userRepository.CheckUsernameExists(ctx, req.Username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if usernameExists {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}

	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		// a concurrent registration can win between the exists checks and
		// the insert; either unique index may have fired
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrUserAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return toUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, false), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user, false), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, currentUserID string) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	subscribed := map[string]bool{}
	if currentUserID != "" && len(users) > 0 {
		authorIDs := make([]string, 0, len(users))
		for _, u := range users {
			authorIDs = append(authorIDs, u.ID.String())
		}
		ids, err := s.userRepository.GetSubscribedAuthorIDs(ctx, currentUserID, authorIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, id := range ids {
			subscribed[id] = true
		}
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, toUserResponse(u, subscribed[u.ID.String()]))
	}
	return res, count, nil
}

func (s *userService) GetUserDetail(ctx context.Context, id string, currentUserID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if currentUserID != "" && currentUserID != id {
		isSubscribed, err = s.userRepository.IsSubscribed(ctx, currentUserID, id)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}

	return toUserResponse(user, isSubscribed), nil
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(user.Email, 15*time.Minute)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Follow <a href=%q>this link</a> to reset your password. The link expires in 15 minutes.</p>",
		user.FirstName, resetLink,
	)
	return mailing.SendMail(user.Email, "Password reset", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	email, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func toUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		CreatedAt:    user.CreatedAt,
	}
}
