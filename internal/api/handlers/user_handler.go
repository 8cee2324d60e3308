package handlers

import (
	"Recipebook-Backend/domain"
	"Recipebook-Backend/internal/api/presenters"
	"Recipebook-Backend/pkg/subscription"
	"Recipebook-Backend/pkg/user"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		UpdateUser(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		GetUserDetail(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	userHandler struct {
		userService         user.UserService
		subscriptionService subscription.SubscriptionService
		validator           *validator.Validate
	}
)

func NewUserHandler(
	userService user.UserService,
	subscriptionService subscription.SubscriptionService,
	validator *validator.Validate,
) UserHandler {
	return &userHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		validator:           validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedRegister, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetMe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *userHandler) UpdateUser(c *fiber.Ctx) error {
	req := new(domain.UpdateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUser, err)
	}

	res, err := h.userService.UpdateUser(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUpdateUser, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := pagination(c)

	users, count, err := h.userService.GetUsers(c.Context(), page, limit, currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users":      users,
		"pagination": paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) GetUserDetail(c *fiber.Ctx) error {
	res, err := h.userService.GetUserDetail(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetUserDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedForgotPassword, err)
	}

	if err := h.userService.ForgotPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedForgotPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessForgotPassword)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetPassword, err)
	}

	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedResetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}

func (h *userHandler) Subscribe(c *fiber.Ctx) error {
	recipesLimit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || recipesLimit < 0 {
		recipesLimit = 0
	}

	res, err := h.subscriptionService.Subscribe(c.Context(), currentUserID(c), c.Params("id"), recipesLimit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubscribe)
}

func (h *userHandler) Unsubscribe(c *fiber.Ctx) error {
	if err := h.subscriptionService.Unsubscribe(c.Context(), currentUserID(c), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedUnsubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent, domain.MessageSuccessUnsubscribe)
}

func (h *userHandler) GetSubscriptions(c *fiber.Ctx) error {
	page, limit := pagination(c)

	recipesLimit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || recipesLimit < 0 {
		recipesLimit = 0
	}

	subscriptions, count, err := h.subscriptionService.GetSubscriptions(c.Context(), currentUserID(c), page, limit, recipesLimit)
	if err != nil {
		return presenters.ErrorResponse(c, statusForError(err), domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"subscriptions": subscriptions,
		"pagination":    paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
