package models

import (
	"time"
	"vbs/src/types"
)

type Event struct {
	ID         uint              `gorm:"primarykey" json:"id"`
	Title      string            `json:"title,omitempty"`
	Name       string            `json:"name,omitempty"`
	Slug       string            `gorm:"index" json:"slug,omitempty"`
	Location   string            `json:"location,omitempty"`
	EventStart time.Time         `gorm:"column:event_start" json:"event_start,omitempty"`
	BasePrice  *float64          `json:"base_price,omitempty"`
	Status     types.EventStatus `gorm:"default:'draft'" json:"status,omitempty"`

	TicketTypes []TicketType `json:"ticket_types,omitempty"`

	types.Timestamps
}
