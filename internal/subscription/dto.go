package subscription

import "time"

type SubscriptionOut struct {
	ID               uint    `json:"id"`
	PlanID           uint    `json:"plan_id"`
	Provider         string  `json:"provider"`
	ExternalUsername string  `json:"external_username"`
	ExpiresAt        string  `json:"expires_at"`
	QuotaGB          float64 `json:"quota_gb"`
	UsedGB           float64 `json:"used_gb"`
}

func ToOut(s Subscription) SubscriptionOut {
	out := SubscriptionOut{
		ID:               s.ID,
		PlanID:           s.PlanID,
		Provider:         s.Provider,
		ExternalUsername: s.ExternalUsername,
		QuotaGB:          s.QuotaGB,
		UsedGB:           s.UsedGB,
	}
	if !s.ExpiresAt.IsZero() {
		out.ExpiresAt = s.ExpiresAt.Format(time.RFC3339)
	}
	return out
}
