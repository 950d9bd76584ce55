package fulfillment

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"
	"vbs/src/lib"
	"vbs/src/models"
	"vbs/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type qrPayload struct {
	TicketID     string    `json:"ticket_id"`
	OrderID      uint      `json:"order_id"`
	EventID      uint      `json:"event_id"`
	TicketNumber string    `json:"ticket_number"`
	IssuedAt     time.Time `json:"issued_at"`
}

// BuildQRPayload serializes a ticket's QR payload and returns it together
// with its sha256 hex digest for tamper evidence.
func BuildQRPayload(ticketId string, orderId uint, eventId uint, ticketNumber string, issuedAt time.Time) (string, string) {
	payload := qrPayload{
		TicketID:     ticketId,
		OrderID:      orderId,
		EventID:      eventId,
		TicketNumber: ticketNumber,
		IssuedAt:     issuedAt,
	}
	b, _ := json.Marshal(&payload)
	sum := sha256.Sum256(b)
	return string(b), hex.EncodeToString(sum[:])
}

// IssueTickets creates quantity ticket instances for one (order, ticket type)
// group. A persist failure for one unit is logged and skipped rather than
// aborting the order; a later duplicate completion trigger repairs the gap.
func IssueTickets(dbc *gorm.DB, order *models.Order, tt *models.TicketType, quantity uint) []models.Ticket {
	issued := make([]models.Ticket, 0, quantity)
	for range quantity {
		number := lib.NextTicketNumber(order.EventID)
		now := time.Now()
		data, hash := BuildQRPayload(uuid.NewString(), order.ID, order.EventID, number, now)
		ticket := models.Ticket{
			TicketNumber: number,
			OrderID:      order.ID,
			TicketTypeID: tt.ID,
			EventID:      order.EventID,
			QRData:       data,
			QRHash:       hash,
			Status:       types.TICKET_VALID,
			PricePaid:    tt.Price,
			IssuedAt:     now,
		}
		img, err := lib.RenderTicketCode(fmt.Sprintf("ticketcode_%s", number), data)
		if err != nil {
			log.Printf("[Issue] Could not render code for ticket %s: %s\n", number, err.Error())
		} else {
			ticket.QRImage = img
		}
		if err := dbc.Create(&ticket).Error; err != nil {
			log.Printf("[Issue] Error persisting ticket %s for order %d: %s\n", number, order.ID, err.Error())
			continue
		}
		issued = append(issued, ticket)
	}
	return issued
}
