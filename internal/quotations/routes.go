package quotations

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotations", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Show)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/document", h.Document)
	})
	r.Get("/documents/{artifactID}", h.Artifact)
}
