package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/moslemp47/vpnpanel1/internal/auth"
	"github.com/moslemp47/vpnpanel1/internal/catalog"
	"github.com/moslemp47/vpnpanel1/internal/subscription"
)

type Handler struct {
	Orders          Repository
	Plans           catalog.Repository
	Subscriptions   subscription.Repository
	PaymentProvider string
}

func NewHandler(orders Repository, plans catalog.Repository, subs subscription.Repository, paymentProvider string) *Handler {
	return &Handler{
		Orders:          orders,
		Plans:           plans,
		Subscriptions:   subs,
		PaymentProvider: paymentProvider,
	}
}

// POST /orders — creates a pending order; the mock payment provider settles
// it immediately and opens a subscription.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	plan, err := h.Plans.FindByID(r.Context(), req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to load plan", http.StatusInternalServerError)
		}
		return
	}

	order := &Order{
		UserID: userID,
		PlanID: plan.ID,
		Amount: plan.Price,
		Status: StatusPending,
	}
	if err := h.Orders.Create(r.Context(), order); err != nil {
		http.Error(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	out := OrderOut{ID: order.ID, Status: order.Status, Amount: order.Amount}

	if h.PaymentProvider == "mock" {
		order.Status = StatusPaid
		if err := h.Orders.Save(r.Context(), order); err != nil {
			http.Error(w, "failed to settle order", http.StatusInternalServerError)
			return
		}

		sub := &subscription.Subscription{
			UserID:    userID,
			PlanID:    plan.ID,
			Provider:  "marzban",
			StartedAt: time.Now(),
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
			QuotaGB:   plan.QuotaGB,
		}
		if err := h.Subscriptions.Create(r.Context(), sub); err != nil {
			http.Error(w, "failed to create subscription", http.StatusInternalServerError)
			return
		}
		out.Status = order.Status
		out.SubscriptionID = &sub.ID
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
