package handler

import (
	"errors"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password/:token", h.ResetPassword)
	r.Get("/token-expiry/:token", h.TokenExpiry)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	s, err := h.uc.Signup(c.Context(), ucauth.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Phone:      req.Phone,
		IsEmployer: req.IsEmployer,
		AccessCode: req.AccessCode,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Created(c, "Signed up", sessionResponse(s))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	s, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return ok(c, sessionResponse(s))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.Bind().Body(&req); err != nil || req.Token == "" {
		// Fall back to a bearer header for clients that send it there.
		tok, found := middleware.BearerToken(c.Get("Authorization"))
		if !found {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		req.Token = tok
	}

	s, err := h.uc.Refresh(c.Context(), req.Token)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return ok(c, sessionResponse(s))
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Reset link sent", nil)
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req dto.PasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.uc.ResetPassword(c.Context(), c.Params("token"), req.Password); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password updated", nil)
}

func (h *AuthHandler) TokenExpiry(c fiber.Ctx) error {
	expired, err := h.uc.ResetTokenExpired(c.Context(), c.Params("token"))
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return ok(c, dto.TokenExpiryResponse{Expired: expired})
}

func sessionResponse(s usecase.Session) dto.SessionResponse {
	return dto.SessionResponse{
		User:         dto.NewUserResponse(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidAccessCode):
		return middleware.NewAppError(fiber.StatusForbidden, "Invalid access code", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, ucauth.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucauth.ErrResetLinkExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Link expired", nil, err)
	case errors.Is(err, ucauth.ErrPasswordReused):
		return middleware.NewAppError(fiber.StatusBadRequest, "Password already used", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return mapCommonUsecaseError(err)
	}
}
