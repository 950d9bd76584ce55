package models

import "vbs/src/types"

// Order is created at checkout and mutated only by the fulfillment
// orchestrator. The unpaid->paid transition happens at most once in effect
// no matter how many completion commands arrive.
type Order struct {
	ID                uint                `gorm:"primarykey" json:"id"`
	OrderNumber       string              `gorm:"uniqueIndex" json:"order_number,omitempty"`
	EventID           uint                `json:"event_id,omitempty"`
	CustomerName      string              `json:"customer_name,omitempty"`
	CustomerEmail     string              `json:"customer_email,omitempty"`
	TotalAmount       float64             `json:"total_amount"`
	PaymentStatus     types.PaymentStatus `gorm:"default:'unpaid'" json:"payment_status,omitempty"`
	Status            types.OrderStatus   `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentMethod     string              `json:"payment_method,omitempty"`
	PaymentIntentId   *string             `json:"payment_intent_id,omitempty"`
	CheckoutSessionId *string             `json:"-"`

	Event   Event    `json:"event,omitempty"`
	Tickets []Ticket `json:"tickets,omitempty"`

	types.Timestamps
}

func (Order) TableName() string {
	return "ticket_orders"
}
