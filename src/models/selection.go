package models

// OrderTicketSelection is the persisted copy of what a customer picked at
// checkout, keyed by order id. Fulfillment clears the rows once issuance has
// gone through, so absence is an expected state.
type OrderTicketSelection struct {
	ID            uint  `gorm:"primarykey" json:"id"`
	TicketOrderID uint  `gorm:"index" json:"ticket_order_id"`
	TicketTypeID  *uint `json:"ticket_type_id,omitempty"`
	BaseAdmission bool  `json:"base_admission"`
	Quantity      uint  `json:"quantity"`
}
