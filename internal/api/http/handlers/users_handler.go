package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gift-registry/internal/api/dto"
	"github.com/spec-kit/gift-registry/internal/service"
	apperrors "github.com/spec-kit/gift-registry/pkg/util"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accountService *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accountService}
}

// List handles GET /users?userId=. Admin only.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	users, err := h.accounts.ListUsers(c.UserContext(), actorID)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	user, err := h.accounts.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id?userId=.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt(c, "id")
	if err != nil {
		return err
	}
	actorID, err := queryInt(c, "userId")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.accounts.UpdateUser(c.UserContext(), actorID, id, service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return apperrors.NewValidationError("first name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return apperrors.NewValidationError("last name is required")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return apperrors.NewValidationError("phone number is required")
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long")
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.NewValidationError("password and confirm password do not match")
	}

	user, err := h.accounts.Register(c.UserContext(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || req.Password == "" {
		return apperrors.NewValidationError("phone number and password are required")
	}

	user, err := h.accounts.Login(c.UserContext(), req.PhoneNumber, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ForgotPassword handles POST /users/forgot-password. Always succeeds so
// callers cannot probe which phone numbers are registered.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return apperrors.NewValidationError("phone number is required")
	}
	if err := h.accounts.ForgotPassword(c.UserContext(), req.PhoneNumber); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// ResetPassword handles POST /users/reset-password.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return apperrors.NewValidationError("phone number is required")
	}
	if len(req.NewPassword) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long")
	}
	if err := h.accounts.ResetPassword(c.UserContext(), req.PhoneNumber, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
