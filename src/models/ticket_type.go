package models

import "vbs/src/types"

// TicketType is one purchasable admission tier of an event. QuantityTotal is
// nil for unlimited tiers; QuantitySold only ever grows.
type TicketType struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	EventID       uint    `json:"event_id,omitempty"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `gorm:"default:'usd'" json:"currency,omitempty"`
	QuantityTotal *uint   `json:"quantity_total,omitempty"`
	QuantitySold  uint    `json:"quantity_sold"`

	Event Event `json:"event,omitempty"`

	types.Timestamps
}
