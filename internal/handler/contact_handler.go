package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "folio/internal/errors"
	"folio/internal/ratelimit"
	"folio/internal/service"
)

// ContactHandler handles the contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
	limiter        *ratelimit.Limiter
}

// NewContactHandler creates a new contact handler with its injected limiter.
func NewContactHandler(contactService service.ContactService, limiter *ratelimit.Limiter) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		limiter:        limiter,
	}
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100,alphaspace"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Submit godoc
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 429 {object} Response
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	// The limit applies before validation: abusive clients do not get
	// validation feedback.
	if !h.limiter.Allow(c.RealIP()) {
		return apperrors.ErrRateLimited
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.contactService.Submit(c.Request().Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, msg)
}

// List godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	msgs, pagination, err := h.contactService.List(c.Request().Context(), queryInt(c, "page", 0), queryInt(c, "limit", 0))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, msgs, len(msgs), pagination)
}
