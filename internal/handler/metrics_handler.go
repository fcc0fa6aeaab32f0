package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/errors"
	"agentdesk/internal/gateway"
	"agentdesk/internal/service"
)

// MetricsHandler handles the dashboard metrics and gateway maintenance
// endpoints.
type MetricsHandler struct {
	metricsService service.MetricsService
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(metricsService service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// Status godoc
// @Summary Gateway health and task activity
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.StatusReport
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/status [get]
func (h *MetricsHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.StatusReport(c.Request().Context()))
}

// Cost godoc
// @Summary Spend estimates against budget
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CostReport
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/cost [get]
func (h *MetricsHandler) Cost(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metricsService.CostReport(c.Request().Context()))
}

// Models godoc
// @Summary Per-model usage and cost figures
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/models [get]
func (h *MetricsHandler) Models(c echo.Context) error {
	models := h.metricsService.ModelsReport(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"models": models})
}

// Agents godoc
// @Summary Per-agent activity figures
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/agents [get]
func (h *MetricsHandler) Agents(c echo.Context) error {
	agents := h.metricsService.AgentsReport(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"agents": agents})
}

// ListCronJobs godoc
// @Summary List gateway cron jobs
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /metrics/cron [get]
func (h *MetricsHandler) ListCronJobs(c echo.Context) error {
	jobs, err := h.metricsService.ListCronJobs(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]any{"jobs": jobs})
}

// AddCronJob godoc
// @Summary Register a gateway cron job
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "Cron job definition (passed through)"
// @Success 200 {object} object
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics/cron [post]
func (h *MetricsHandler) AddCronJob(c echo.Context) error {
	var job gateway.CronJob
	if err := c.Bind(&job); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.metricsService.AddCronJob(c.Request().Context(), job)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "CRON_ADD_FAILED",
		})
	}
	return c.JSON(http.StatusOK, created)
}

// DeleteCronJob godoc
// @Summary Delete a gateway cron job
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cron job ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics/cron/{id} [delete]
func (h *MetricsHandler) DeleteCronJob(c echo.Context) error {
	if err := h.metricsService.DeleteCronJob(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "CRON_DELETE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// TriggerHeartbeat godoc
// @Summary Ask the main agent session to run a heartbeat
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics/heartbeat [post]
func (h *MetricsHandler) TriggerHeartbeat(c echo.Context) error {
	if err := h.metricsService.TriggerHeartbeat(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "HEARTBEAT_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// RestartGateway godoc
// @Summary Ask the main agent session to restart the gateway
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics/restart [post]
// @Router /metrics/gateway-restart [post]
func (h *MetricsHandler) RestartGateway(c echo.Context) error {
	if err := h.metricsService.RestartGateway(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "RESTART_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
