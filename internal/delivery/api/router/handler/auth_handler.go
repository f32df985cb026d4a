// Package handler contains the HTTP handlers for the store rating API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storerate/internal/delivery/api/middleware"
	"storerate/internal/delivery/api/response"
	"storerate/internal/domain/entity"
	"storerate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AuthHandler holds dependencies for account-related handlers
type AuthHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for account registration.
// The role may only request one of the self-service roles; admin accounts
// are provisioned out of band.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Address  string `json:"address" validate:"max=400"`
	Password string `json:"password" validate:"required,user_password"`
	Role     string `json:"role" validate:"omitempty,oneof=user store_owner"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request body for rotating a password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,user_password"`
}

// UserResponse is the API projection of an account. It never carries
// credential material.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse carries the issued token together with the account.
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

func toUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Register handles account registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.accountUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &LoginResponse{
		AccessToken: out.AccessToken,
		User:        toUserResponse(out.User),
	})
}

// Profile returns the account behind the verified token
func (h *AuthHandler) Profile(c echo.Context) error {
	userID := middleware.GetUserID(c)

	user, err := h.accountUC.Profile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// ChangePassword rotates the caller's password after verifying the old one
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid change password input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.accountUC.ChangePassword(c.Request().Context(), userID, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "password updated"})
}

// HealthCheck reports service liveness
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
