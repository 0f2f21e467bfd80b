package subscription

import "time"

type Subscription struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	PlanID           uint      `json:"plan_id" gorm:"not null"`
	Provider         string    `json:"provider" gorm:"default:marzban"`
	ExternalUsername string    `json:"external_username"`
	ExternalID       string    `json:"external_id"`
	StartedAt        time.Time `json:"started_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	QuotaGB          float64   `json:"quota_gb" gorm:"default:50"`
	UsedGB           float64   `json:"used_gb" gorm:"default:0"`
}
