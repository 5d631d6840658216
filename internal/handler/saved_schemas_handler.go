package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/autoschema/internal/dto"
	"github.com/octobees/autoschema/internal/service"
)

// SavedSchemasHandler exposes the saved schema library.
type SavedSchemasHandler struct {
	service *service.SavedSchemaService
}

// NewSavedSchemasHandler creates a new handler instance.
func NewSavedSchemasHandler(service *service.SavedSchemaService) *SavedSchemasHandler {
	return &SavedSchemasHandler{service: service}
}

// List handles GET /saved requests.
func (h *SavedSchemasHandler) List(c echo.Context) error {
	items := h.service.List(c.Request().Context())
	return Success(c, http.StatusOK, "", dto.SavedSchemaList{Items: items, Total: len(items)})
}

// Create handles POST /saved requests.
func (h *SavedSchemasHandler) Create(c echo.Context) error {
	req, err := bindSaveRequest(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	saved, err := h.service.Save(c.Request().Context(), req.Data, strings.TrimSpace(req.Name))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to save schema")
	}
	return Success(c, http.StatusCreated, "schema saved", saved)
}

// Get handles GET /saved/:id requests.
func (h *SavedSchemasHandler) Get(c echo.Context) error {
	saved, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return savedFailure(c, err, "failed to load schema")
	}
	return Success(c, http.StatusOK, "", saved)
}

// Update handles PUT /saved/:id requests.
func (h *SavedSchemasHandler) Update(c echo.Context) error {
	req, err := bindSaveRequest(c)
	if err != nil {
		return payloadFailure(c, err)
	}
	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Data, strings.TrimSpace(req.Name))
	if err != nil {
		return savedFailure(c, err, "failed to update schema")
	}
	return Success(c, http.StatusOK, "schema updated", updated)
}

// Delete handles DELETE /saved/:id requests.
func (h *SavedSchemasHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return savedFailure(c, err, "failed to delete schema")
	}
	return Success(c, http.StatusOK, "schema deleted", nil)
}

// Duplicate handles POST /saved/:id/duplicate requests.
func (h *SavedSchemasHandler) Duplicate(c echo.Context) error {
	dup, err := h.service.Duplicate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return savedFailure(c, err, "failed to duplicate schema")
	}
	return Success(c, http.StatusCreated, "schema duplicated", dup)
}

// Render handles GET /saved/:id/render requests.
func (h *SavedSchemasHandler) Render(c echo.Context) error {
	format, content, err := h.service.Render(c.Request().Context(), c.Param("id"), c.QueryParam("format"))
	if err != nil {
		if errors.Is(err, service.ErrSavedSchemaNotFound) {
			return savedFailure(c, err, "")
		}
		return renderFailure(c, err)
	}
	return Success(c, http.StatusOK, "", dto.RenderResponse{Format: string(format), Content: content})
}

// Export handles GET /saved/:id/export requests.
func (h *SavedSchemasHandler) Export(c echo.Context) error {
	artifact, err := h.service.Export(c.Request().Context(), c.Param("id"), c.QueryParam("format"))
	if err != nil {
		if errors.Is(err, service.ErrSavedSchemaNotFound) {
			return savedFailure(c, err, "")
		}
		return renderFailure(c, err)
	}
	return Attachment(c, artifact.FileName, artifact.ContentType, artifact.Content)
}

func savedFailure(c echo.Context, err error, fallback string) error {
	if errors.Is(err, service.ErrSavedSchemaNotFound) {
		return Error(c, http.StatusNotFound, "saved schema not found")
	}
	return Error(c, http.StatusInternalServerError, fallback)
}
