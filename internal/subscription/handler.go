package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/moslemp47/vpnpanel1/internal/auth"
	"github.com/moslemp47/vpnpanel1/internal/providers"
)

type Handler struct {
	Repo      Repository
	Providers *providers.Registry
}

func NewHandler(repo Repository, registry *providers.Registry) *Handler {
	return &Handler{Repo: repo, Providers: registry}
}

// GET /subscriptions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	subs, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to list subscriptions", http.StatusInternalServerError)
		return
	}

	out := make([]SubscriptionOut, 0, len(subs))
	for _, s := range subs {
		out = append(out, ToOut(s))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// GET /subscriptions/{id}/usage — pass-through to the upstream panel.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid subscription id", http.StatusBadRequest)
		return
	}

	sub, err := h.Repo.FindByIDForUser(r.Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "subscription not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to load subscription", http.StatusInternalServerError)
		}
		return
	}

	client := h.Providers.Get(sub.Provider)
	usage, err := client.GetUsage(r.Context(), sub.ExternalUsername)
	if err != nil {
		http.Error(w, "usage unavailable: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(usage)
}
