package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessGetMe          = "success get profile"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessGetUserDetail  = "success get user detail"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to get profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedGetUserDetail  = "failed to get user detail"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound        = errors.New("user not found")
	ErrEmailAlreadyUsed    = errors.New("email already used")
	ErrUsernameAlreadyUsed = errors.New("username already used")
	ErrUserAlreadyExists   = errors.New("email or username already taken")
	ErrCredentialsInvalid  = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateUserRequest struct {
		FirstName string `json:"first_name,omitempty" validate:"omitempty,max=150"`
		LastName  string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8,max=150"`
	}

	UserResponse struct {
		ID           string    `json:"id"`
		Email        string    `json:"email"`
		Username     string    `json:"username"`
		FirstName    string    `json:"first_name"`
		LastName     string    `json:"last_name"`
		IsSubscribed bool      `json:"is_subscribed"`
		CreatedAt    time.Time `json:"created_at,omitempty"`
	}
)
