package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "agentdesk/internal/errors"
	"agentdesk/internal/service"
)

// SettingsHandler handles the KV settings and cache demo endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SetSettingRequest represents a setting write.
type SetSettingRequest struct {
	Value string `json:"value"`
}

// SettingResponse is one setting read result. Value is null when the key has
// no value.
type SettingResponse struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// ListSettings godoc
// @Summary List all settings
// @Tags settings
// @Produce json
// @Success 200 {array} service.SettingItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) ListSettings(c echo.Context) error {
	settings, err := h.settingsService.ListSettings(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, settings)
}

// GetSetting godoc
// @Summary Get one setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} SettingResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings/{key} [get]
func (h *SettingsHandler) GetSetting(c echo.Context) error {
	key := c.Param("key")
	value, err := h.settingsService.GetSetting(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return c.JSON(http.StatusOK, SettingResponse{Key: key})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, SettingResponse{Key: key, Value: &value})
}

// SetSetting godoc
// @Summary Write one setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body SetSettingRequest true "Setting value"
// @Success 200 {object} service.SettingItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings/{key} [put]
func (h *SettingsHandler) SetSetting(c echo.Context) error {
	key := c.Param("key")

	var req SetSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.settingsService.SetSetting(c.Request().Context(), key, req.Value); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, service.SettingItem{Key: key, Value: req.Value})
}

// DeleteSetting godoc
// @Summary Delete one setting
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings/{key} [delete]
func (h *SettingsHandler) DeleteSetting(c echo.Context) error {
	if err := h.settingsService.DeleteSetting(c.Request().Context(), c.Param("key")); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// GetCachedValue godoc
// @Summary Get or compute a TTL-cached value
// @Tags settings
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} service.CachedValue
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings/cached/{key} [get]
func (h *SettingsHandler) GetCachedValue(c echo.Context) error {
	value, err := h.settingsService.GetCachedValue(c.Request().Context(), c.Param("key"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, value)
}

// ClearCache godoc
// @Summary Clear a cached value
// @Tags settings
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /settings/cached/{key} [delete]
func (h *SettingsHandler) ClearCache(c echo.Context) error {
	if err := h.settingsService.ClearCache(c.Request().Context(), c.Param("key")); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"cleared": true})
}
