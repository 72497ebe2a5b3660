package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"codeforge/internal/service"
)

// GenerationHandler handles code generation and history endpoints.
type GenerationHandler struct {
	generationService service.GenerationService
	defaultPageSize   int
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(generationService service.GenerationService, defaultPageSize int) *GenerationHandler {
	if defaultPageSize < 1 || defaultPageSize > service.MaxPageSize {
		defaultPageSize = 10
	}
	return &GenerationHandler{
		generationService: generationService,
		defaultPageSize:   defaultPageSize,
	}
}

// GenerateRequest represents a code generation request.
type GenerateRequest struct {
	Prompt     string `json:"prompt" validate:"required,min=10,max=1000"`
	LanguageID uint   `json:"languageId" validate:"required,gt=0"`
}

// Generate godoc
// @Summary Generate code from a prompt
// @Tags generation
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /generate [post]
func (h *GenerationHandler) Generate(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	generation, err := h.generationService.Generate(c.Request().Context(), claims.UserID, req.Prompt, req.LanguageID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    generation,
	})
}

// GetHistory godoc
// @Summary Paginated generation history for the current user
// @Tags generation
// @Produce json
// @Param page query int false "Page number (min 1)"
// @Param limit query int false "Items per page (1-50)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /history [get]
func (h *GenerationHandler) GetHistory(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", h.defaultPageSize)

	history, err := h.generationService.GetHistory(c.Request().Context(), claims.UserID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       history.Data,
		"pagination": history.Pagination,
	})
}

// queryInt parses a numeric query parameter, falling back to def when the
// parameter is absent or not a number. Out-of-range numeric values are left
// for the service to clamp.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return parsed
}
