package quotations

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/docgen"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fixture) {
	t.Helper()
	f := newFixture(t)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), f.service)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, f
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandlerCreate(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/quotations", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var q Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.NotEmpty(t, q.RefNumber)
	assert.Equal(t, int64(1), q.CompanyID)
}

func TestHandlerCreateValidationProblem(t *testing.T) {
	r, _ := newTestRouter(t)

	req := validRequest()
	req.Items = nil
	rec := postJSON(t, r, "/quotations", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Validation Failed", problem.Title)
	assert.Equal(t, http.StatusBadRequest, problem.Status)
}

func TestHandlerCreateMalformedBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/quotations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerShowAndList(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/quotations", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = get(r, fmt.Sprintf("/quotations/%d", created.ID))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "/quotations?company_id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = get(r, "/quotations?company_id=999")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "/quotations/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDelete(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/quotations", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/quotations/%d", created.ID), nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	assert.Equal(t, http.StatusNotFound, get(r, fmt.Sprintf("/quotations/%d", created.ID)).Code)
}

func TestHandlerDocumentDownload(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := postJSON(t, r, "/quotations", validRequest())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Quotation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = get(r, fmt.Sprintf("/quotations/%d/document", created.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, docgen.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), DocumentFilename(created.RefNumber))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	// The stored copy is retrievable through the documents endpoint.
	artifactID := rec.Header().Get("X-Document-Id")
	require.NotEmpty(t, artifactID)
	stored := get(r, "/documents/"+artifactID)
	require.Equal(t, http.StatusOK, stored.Code)
	assert.Equal(t, rec.Body.Bytes(), stored.Body.Bytes())
}

func TestHandlerDocumentMissingQuotation(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, get(r, "/quotations/404/document").Code)
}
