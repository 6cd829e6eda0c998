package runner

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (r *Runner) Health(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (r *Runner) Catalog(w http.ResponseWriter, req *http.Request) {
	cat := r.LastCatalog()
	if cat == nil {
		http.Error(w, "no runs completed", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cat)
}

func (r *Runner) RegisterRoutes(mux *chi.Mux) {
	mux.Get("/health", r.Health)
	mux.Get("/api/v1/catalog", r.Catalog)
}
