package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/autoschema/internal/dto"
	"github.com/octobees/autoschema/internal/render"
	"github.com/octobees/autoschema/internal/seed"
	"github.com/octobees/autoschema/internal/service"
)

// SchemaHandler exposes stateless generate, validate and render endpoints.
type SchemaHandler struct {
	service *service.SchemaService
}

// NewSchemaHandler creates a new handler instance.
func NewSchemaHandler(service *service.SchemaService) *SchemaHandler {
	return &SchemaHandler{service: service}
}

// Placeholder handles GET /placeholder requests.
func (h *SchemaHandler) Placeholder(c echo.Context) error {
	profile, err := seed.Placeholder()
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to load placeholder profile")
	}
	return Success(c, http.StatusOK, "", profile)
}

// Generate handles POST /schema/generate requests.
func (h *SchemaHandler) Generate(c echo.Context) error {
	profile, err := bindProfile(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	return Success(c, http.StatusOK, "", h.service.Generate(profile))
}

// Validate handles POST /schema/validate requests.
func (h *SchemaHandler) Validate(c echo.Context) error {
	target, err := service.ParseValidationTarget(c.QueryParam("target"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "target must be profile or document")
	}
	profile, err := bindProfile(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	return Success(c, http.StatusOK, "", h.service.Validate(profile, target))
}

// Render handles POST /schema/render requests.
func (h *SchemaHandler) Render(c echo.Context) error {
	profile, err := bindProfile(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	format, content, err := h.service.Render(profile, c.QueryParam("format"))
	if err != nil {
		return renderFailure(c, err)
	}
	return Success(c, http.StatusOK, "", dto.RenderResponse{Format: string(format), Content: content})
}

// Export handles POST /schema/export requests.
func (h *SchemaHandler) Export(c echo.Context) error {
	profile, err := bindProfile(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	artifact, err := h.service.Export(profile, c.QueryParam("format"))
	if err != nil {
		return renderFailure(c, err)
	}
	return Attachment(c, artifact.FileName, artifact.ContentType, artifact.Content)
}

func renderFailure(c echo.Context, err error) error {
	if errors.Is(err, render.ErrUnknownFormat) {
		return Error(c, http.StatusBadRequest, "format must be one of json-ld, json, microdata, rdfa")
	}
	return Error(c, http.StatusInternalServerError, "failed to render schema")
}
