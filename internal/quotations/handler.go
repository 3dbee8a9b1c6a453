package quotations

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gauravitis/quotecms/internal/docgen"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var companyID int64
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.RespondError(w, httpx.ErrValidation)
			return
		}
		companyID = id
	}

	quotations, err := h.service.List(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list quotations failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quotations)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	quotation, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	quotation, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create quotation failed", slog.Any("error", err),
			slog.Int64("company_id", req.CompanyID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quotation)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete quotation failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Document generates the quotation document and streams it back, keeping a
// copy in the artifact store for later retrieval by id.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	artifact, err := h.service.GenerateDocument(r.Context(), id)
	if err != nil {
		h.logger.Error("generate quotation document failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("X-Document-Id", artifact.ID)
	httpx.Attachment(w, artifact.Filename, docgen.ContentType, artifact.Data)
}

// Artifact serves a previously generated document by its store id.
func (h *Handler) Artifact(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.artifacts.Get(r.Context(), chi.URLParam(r, "artifactID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Attachment(w, artifact.Filename, docgen.ContentType, artifact.Data)
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.ErrValidation
	}
	return id, nil
}
