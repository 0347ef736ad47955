package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/codeservice"
	"github.com/starford/raido/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *codeservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *codeservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListCodes handles GET /api/codes: every reachable entry in insertion order.
func (h *Handler) ListCodes(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.List(r.Context())
	writeJSON(w, http.StatusOK, ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// Search handles GET /api/search. Each keystroke yields a freshly
// formatted query and a fresh ordered suggestion list; an empty query
// returns everything.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	formatted, results := h.svc.Search(r.Context(), q)
	if results == nil {
		results = []Entry{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   formatted,
		Results: results,
	})
}

// ResolveCode handles GET /api/resolve: exact resolution only — partial
// codes never match.
func (h *Handler) ResolveCode(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("code")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'code' is required"))
		return
	}
	entry, err := h.svc.Resolve(r.Context(), raw)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("no file for that code"))
			return
		}
		slog.Error("resolve failed", slog.String("code", raw), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// OpenByCode handles POST /api/open and GET /api/open?code= (the latter is
// the target of raido://codes/open URIs relayed by the host).
func (h *Handler) OpenByCode(w http.ResponseWriter, r *http.Request) {
	var raw string
	if r.Method == http.MethodGet {
		raw = r.URL.Query().Get("code")
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		var req OpenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
		raw = req.Code
	}
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("code is required"))
		return
	}

	target, err := h.svc.Open(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("no file for that code"))
		case errors.Is(err, apperr.ErrFileMissing):
			writeJSON(w, http.StatusGone, errorBody("file no longer exists"))
		default:
			slog.Error("open failed", slog.String("code", raw), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, target)
}

// CodeForPath handles GET /api/codes/path?path=: the copy-code surface.
// The path is tracked lazily on first query.
func (h *Handler) CodeForPath(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'path' is required"))
		return
	}
	info, err := h.svc.CodeFor(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("no such file"))
			return
		}
		slog.Error("code for path failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Recents handles GET /api/recents.
func (h *Handler) Recents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recents, err := h.svc.Recents(r.Context(), limit)
	if err != nil {
		slog.Error("recents failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if recents == nil {
		recents = []models.RecentEntry{}
	}
	writeJSON(w, http.StatusOK, RecentsResponse{Recents: recents})
}
