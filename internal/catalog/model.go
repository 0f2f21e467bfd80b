package catalog

import "time"

type Plan struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	Price        float64   `json:"price" gorm:"not null"`
	DurationDays int       `json:"duration_days" gorm:"default:30"`
	QuotaGB      float64   `json:"quota_gb" gorm:"default:50"`
	CreatedAt    time.Time `json:"created_at"`
}

// DefaultPlans seeds the catalog on first use.
func DefaultPlans() []Plan {
	return []Plan{
		{Name: "Basic 30d / 50GB", Price: 5.0, DurationDays: 30, QuotaGB: 50},
		{Name: "Pro 60d / 150GB", Price: 12.0, DurationDays: 60, QuotaGB: 150},
		{Name: "Max 90d / 300GB", Price: 20.0, DurationDays: 90, QuotaGB: 300},
	}
}
