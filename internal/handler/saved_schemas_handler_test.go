package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/autoschema/internal/entity"
	"github.com/octobees/autoschema/internal/repository"
	"github.com/octobees/autoschema/internal/service"
)

func newSavedSchemasHandler(t *testing.T) (*SavedSchemasHandler, *service.SavedSchemaService) {
	t.Helper()
	repo := repository.NewKVSavedSchemasRepository(repository.NewMemoryKeyValueStore())
	svc := service.NewSavedSchemaService(repo, nil, zap.NewNop())
	if _, err := svc.Initialize(context.Background(), true); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return NewSavedSchemasHandler(svc), svc
}

func newIDContext(e *echo.Echo, method, target, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(e, method, target, body)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestSavedSchemasHandler_List(t *testing.T) {
	h, _ := newSavedSchemasHandler(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/saved", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var list struct {
		Items []entity.SavedSchema `json:"items"`
		Total int                  `json:"total"`
	}
	decodeEnvelope(t, rec, &list)
	if list.Total != 3 || list.Items[0].ID != "sample-1" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestSavedSchemasHandler_List_StoreFailureYieldsEmptyList(t *testing.T) {
	store := repository.NewMemoryKeyValueStore()
	if err := store.Set(context.Background(), repository.DefaultStoreKey, []byte("corrupt")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	svc := service.NewSavedSchemaService(repository.NewKVSavedSchemasRepository(store), nil, zap.NewNop())
	h := NewSavedSchemasHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/saved", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty list, got %d %s", rec.Code, rec.Body.String())
	}

	c, rec := newJSONContext(e, http.MethodPost, "/saved", `{"data": {"name": "Acme"}}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the stored list is corrupt, got %d", rec.Code)
	}
}

func TestSavedSchemasHandler_CreateAndGet(t *testing.T) {
	h, svc := newSavedSchemasHandler(t)
	e := echo.New()

	c, rec := newJSONContext(e, http.MethodPost, "/saved", `{"name": "  ", "data": `+validProfileBody+`}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var saved entity.SavedSchema
	decodeEnvelope(t, rec, &saved)
	if saved.Name != "Acme Motors" || saved.ID == "" {
		t.Fatalf("unexpected saved schema: %+v", saved)
	}

	items := svc.List(context.Background())
	if len(items) != 4 || items[0].ID != saved.ID {
		t.Fatalf("expected new schema first, got %d items", len(items))
	}

	c, rec = newIDContext(e, http.MethodGet, "/saved/"+saved.ID, "", saved.ID)
	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var fetched entity.SavedSchema
	decodeEnvelope(t, rec, &fetched)
	if fetched.Data.Address.PostalCode != "62701" {
		t.Fatalf("unexpected fetched data: %+v", fetched.Data)
	}
}

func TestSavedSchemasHandler_Create_RequiresData(t *testing.T) {
	h, _ := newSavedSchemasHandler(t)
	e := echo.New()

	c, rec := newJSONContext(e, http.MethodPost, "/saved", `{"name": "Only a name"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSavedSchemasHandler_UpdateDuplicateDelete(t *testing.T) {
	h, svc := newSavedSchemasHandler(t)
	e := echo.New()

	c, rec := newIDContext(e, http.MethodPut, "/saved/sample-2", `{"data": {"name": "XYZ Renamed"}}`, "sample-2")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var updated entity.SavedSchema
	decodeEnvelope(t, rec, &updated)
	if updated.Name != "XYZ Renamed" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	c, rec = newIDContext(e, http.MethodPost, "/saved/sample-2/duplicate", "", "sample-2")
	if err := h.Duplicate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var dup entity.SavedSchema
	decodeEnvelope(t, rec, &dup)
	if dup.Name != "XYZ Renamed (Copy)" {
		t.Fatalf("unexpected duplicate name: %s", dup.Name)
	}

	c, rec = newIDContext(e, http.MethodDelete, "/saved/sample-1", "", "sample-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	items := svc.List(context.Background())
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if len(ids) != 3 || ids[0] != dup.ID || ids[1] != "sample-2" || ids[2] != "sample-3" {
		t.Fatalf("unexpected order after mutations: %v", ids)
	}
}

func TestSavedSchemasHandler_NotFound(t *testing.T) {
	h, _ := newSavedSchemasHandler(t)
	e := echo.New()

	calls := map[string]func(echo.Context) error{
		"get":       h.Get,
		"delete":    h.Delete,
		"duplicate": h.Duplicate,
		"render":    h.Render,
		"export":    h.Export,
	}
	for name, call := range calls {
		c, rec := newIDContext(e, http.MethodGet, "/saved/missing", "", "missing")
		if err := call(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", name, rec.Code)
		}
	}

	c, rec := newIDContext(e, http.MethodPut, "/saved/missing", `{"data": {}}`, "missing")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update: expected 404, got %d", rec.Code)
	}
}

func TestSavedSchemasHandler_RenderAndExport(t *testing.T) {
	h, _ := newSavedSchemasHandler(t)
	e := echo.New()

	c, rec := newIDContext(e, http.MethodGet, "/saved/sample-1/render?format=rdfa", "", "sample-1")
	if err := h.Render(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Format  string `json:"format"`
		Content string `json:"content"`
	}
	decodeEnvelope(t, rec, &out)
	if out.Format != "rdfa" || !strings.Contains(out.Content, `vocab="https://schema.org/"`) {
		t.Fatalf("unexpected render output: %+v", out)
	}

	c, rec = newIDContext(e, http.MethodGet, "/saved/sample-1/render?format=csv", "", "sample-1")
	if err := h.Render(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", rec.Code)
	}

	c, rec = newIDContext(e, http.MethodGet, "/saved/sample-3/export?format=json", "", "sample-3")
	if err := h.Export(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `attachment; filename="budget-cars-trucks-schema.json"` {
		t.Fatalf("unexpected content disposition: %s", got)
	}
}

func TestSavedFailure_MapsUnexpectedErrors(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := savedFailure(c, errors.New("backend down"), "failed to load schema"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "failed to load schema") {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}
