package catalog

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	Repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /catalog/plans — seeds the default plans when the table is empty.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list plans", http.StatusInternalServerError)
		return
	}

	if len(plans) == 0 {
		if err := h.Repo.CreateMany(r.Context(), DefaultPlans()); err != nil {
			http.Error(w, "failed to seed plans", http.StatusInternalServerError)
			return
		}
		plans, err = h.Repo.List(r.Context())
		if err != nil {
			http.Error(w, "failed to list plans", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(plans)
}
