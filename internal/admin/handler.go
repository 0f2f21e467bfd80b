package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/moslemp47/vpnpanel1/internal/catalog"
	"github.com/moslemp47/vpnpanel1/internal/providers"
	"github.com/moslemp47/vpnpanel1/internal/subscription"
	"github.com/moslemp47/vpnpanel1/internal/utils"
)

type Handler struct {
	Subscriptions subscription.Repository
	Plans         catalog.Repository
	Providers     *providers.Registry
}

func NewHandler(subs subscription.Repository, plans catalog.Repository, registry *providers.Registry) *Handler {
	return &Handler{Subscriptions: subs, Plans: plans, Providers: registry}
}

type ProvisionRequest struct {
	SubscriptionID uint   `json:"subscription_id"`
	Provider       string `json:"provider"`
}

// POST /admin/provision — creates the account on the upstream panel and
// stores the external identity on the subscription.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Provider == "" {
		req.Provider = providers.ProviderMarzban
	}

	sub, err := h.Subscriptions.FindByID(r.Context(), req.SubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "subscription not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to load subscription", http.StatusInternalServerError)
		}
		return
	}

	plan, err := h.Plans.FindByID(r.Context(), sub.PlanID)
	if err != nil {
		http.Error(w, "failed to load plan", http.StatusInternalServerError)
		return
	}

	username := fmt.Sprintf("user%d_%d", sub.UserID, sub.ID)
	password, err := utils.GenerateTempPassword()
	if err != nil {
		http.Error(w, "failed to generate credentials", http.StatusInternalServerError)
		return
	}

	client := h.Providers.Get(req.Provider)
	res, err := client.CreateUser(r.Context(), username, password, plan.QuotaGB, plan.DurationDays)
	if err != nil {
		http.Error(w, "Provision failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	sub.Provider = req.Provider
	sub.ExternalUsername = username
	sub.ExternalID = externalID(res)
	sub.StartedAt = time.Now()
	sub.ExpiresAt = time.Now().Add(time.Duration(plan.DurationDays) * 24 * time.Hour)
	if err := h.Subscriptions.Save(r.Context(), sub); err != nil {
		http.Error(w, "failed to save subscription", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":         "Provisioned",
		"subscription_id": sub.ID,
		"external":        res,
	})
}

func externalID(res map[string]any) string {
	if v, ok := res["id"]; ok {
		return fmt.Sprint(v)
	}
	if v, ok := res["uuid"]; ok {
		return fmt.Sprint(v)
	}
	return ""
}
