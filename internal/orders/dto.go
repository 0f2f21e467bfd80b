package orders

type CreateOrderRequest struct {
	PlanID uint `json:"plan_id"`
}

type OrderOut struct {
	ID             uint    `json:"id"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	SubscriptionID *uint   `json:"subscription_id,omitempty"`
}
