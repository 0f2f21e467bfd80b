package orders

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	PlanID    uint      `json:"plan_id" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:pending"`
	Amount    float64   `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
