package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/auth"
	"agentdesk/internal/errors"
	"agentdesk/internal/model"
	"agentdesk/internal/service"
)

// AuthHandler handles the authentication endpoints and owns the session
// cookie exchange with the browser.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest represents a sign-up request.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// SessionResponse is returned by get-session. Both fields are null for an
// anonymous visitor.
type SessionResponse struct {
	User    *model.User    `json:"user"`
	Session *model.Session `json:"session"`
}

// SignOutResponse acknowledges a sign-out.
type SignOutResponse struct {
	Success bool `json:"success"`
}

// SignUp godoc
// @Summary Register a new user and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == service.ErrUserAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to sign up",
			Code:  "SIGN_UP_FAILED",
		})
	}

	c.SetCookie(auth.NewSessionCookie(token))
	return c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
}

// SignIn godoc
// @Summary Authenticate by password and start a new session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to sign in",
			Code:  "SIGN_IN_FAILED",
		})
	}

	c.SetCookie(auth.NewSessionCookie(token))
	return c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// GetSession godoc
// @Summary Resolve the current cookie session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/get-session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	cookie, err := c.Cookie(auth.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, SessionResponse{})
	}

	user, session, err := h.authService.GetSession(c.Request().Context(), cookie.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to resolve session",
			Code:  "SESSION_LOOKUP_FAILED",
		})
	}

	// Absence is a valid response, not an error.
	return c.JSON(http.StatusOK, SessionResponse{User: user, Session: session})
}

// SignOut godoc
// @Summary Invalidate the current session
// @Tags auth
// @Produce json
// @Success 200 {object} SignOutResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if cookie, err := c.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.SignOut(c.Request().Context(), cookie.Value); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
				Error: "failed to sign out",
				Code:  "SIGN_OUT_FAILED",
			})
		}
	}

	c.SetCookie(auth.ClearSessionCookie())
	return c.JSON(http.StatusOK, SignOutResponse{Success: true})
}
