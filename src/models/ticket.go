package models

import (
	"time"
	"vbs/src/types"
)

// Ticket is a single issued admission. QRData carries the payload encoded in
// the ticket's QR code and QRHash its sha256, so a scanned code can be checked
// for tampering against the stored row. PricePaid is captured at issuance and
// does not follow later ticket type price changes.
type Ticket struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	TicketNumber string             `gorm:"uniqueIndex" json:"ticket_number,omitempty"`
	OrderID      uint               `json:"order_id,omitempty"`
	TicketTypeID uint               `json:"ticket_type_id,omitempty"`
	EventID      uint               `json:"event_id,omitempty"`
	QRData       string             `json:"qr_data,omitempty"`
	QRHash       string             `json:"qr_hash,omitempty"`
	QRImage      string             `json:"qr_image,omitempty"`
	Status       types.TicketStatus `gorm:"default:'valid'" json:"status,omitempty"`
	PricePaid    float64            `json:"price_paid"`
	IssuedAt     time.Time          `json:"issued_at,omitempty"`

	Order      Order      `json:"-"`
	TicketType TicketType `json:"ticket_type,omitempty"`

	types.Timestamps
}
