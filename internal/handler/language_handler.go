package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeforge/internal/service"
)

// LanguageHandler handles language catalog endpoints.
type LanguageHandler struct {
	languageService service.LanguageService
}

// NewLanguageHandler creates a new language handler.
func NewLanguageHandler(languageService service.LanguageService) *LanguageHandler {
	return &LanguageHandler{languageService: languageService}
}

// List godoc
// @Summary List supported languages
// @Tags languages
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /languages [get]
func (h *LanguageHandler) List(c echo.Context) error {
	languages, err := h.languageService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    languages,
	})
}

// Seed godoc
// @Summary Seed the language catalog
// @Tags languages
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /languages/seed [post]
func (h *LanguageHandler) Seed(c echo.Context) error {
	languages, err := h.languageService.Seed(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "languages seeded successfully",
		"data":    languages,
	})
}
