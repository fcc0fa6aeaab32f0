package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/errors"
	"agentdesk/internal/service"
)

// ContactHandler handles the public contact form endpoint.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact data"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) SubmitContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing required fields",
			Code:  "MISSING_FIELDS",
		})
	}

	if err := h.contactService.SubmitContact(c.Request().Context(), req.Name, req.Email, req.Company, req.Message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to process request",
			Code:  "CONTACT_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
