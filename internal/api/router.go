package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/raido/internal/codeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *codeservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Index listing and copy-code.
	r.Get("/codes", h.ListCodes)
	r.Get("/codes/path", h.CodeForPath)

	// Interactive suggestion.
	r.Get("/search", h.Search)

	// Exact resolution and open-by-code (GET form serves URI-scheme links).
	r.Get("/resolve", h.ResolveCode)
	r.Get("/open", h.OpenByCode)
	r.Post("/open", h.OpenByCode)

	// Recently opened.
	r.Get("/recents", h.Recents)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
