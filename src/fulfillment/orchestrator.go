package fulfillment

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"
	"vbs/src/db"
	"vbs/src/lib/mailer"
	"vbs/src/models"
	"vbs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompleteInput is the uniform payload of all three completion triggers: the
// synchronous client call for zero-cost orders, the payment gateway webhook,
// and the client-side verification fallback.
type CompleteInput struct {
	OrderID       uint
	TransactionID string
	Method        string
	Tickets       []types.SelectionItem
}

type issueGroup struct {
	ticketType *models.TicketType
	quantity   uint
}

// CompleteOrder turns a "payment confirmed" signal into issued tickets,
// decremented inventory and a confirmed order. The command may arrive 0, 1 or
// N times, in any order, possibly concurrently; the effect happens once.
func CompleteOrder(in CompleteInput) (*types.CompleteOrderResponse, error) {
	dbc := db.GetDb()

	var order models.Order
	if err := dbc.Where(&models.Order{ID: in.OrderID}).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	var event models.Event
	if err := dbc.Where(&models.Event{ID: order.EventID}).First(&event).Error; err != nil {
		return nil, err
	}
	if time.Now().After(event.EventStart) {
		return nil, ErrEventExpired
	}

	if !DefaultGuard.TryAcquire(order.ID) {
		log.Printf("[Fulfill] Order %d already has a completion in flight\n", order.ID)
		return &types.CompleteOrderResponse{
			Success:    true,
			Processing: true,
			Order:      orderSummary(&order),
			Event:      eventSummary(&event),
		}, nil
	}
	defer DefaultGuard.Release(order.ID)

	var phase CompletionPhase
	if err := dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Order{ID: order.ID}).
			First(&order).
			Error; err != nil {
			return err
		}
		p, err := BeginCompletion(tx, &order, in.TransactionID, in.Method)
		if err != nil {
			return err
		}
		phase = p
		return nil
	}); err != nil {
		return nil, err
	}

	if phase == AlreadyComplete {
		log.Printf("[Fulfill] Order %d is already fulfilled, returning existing tickets\n", order.ID)
		var existing []models.Ticket
		if err := dbc.
			Where(&models.Ticket{OrderID: order.ID}).
			Order("id asc").
			Find(&existing).
			Error; err != nil {
			return nil, err
		}
		return buildResponse(&order, &event, existing), nil
	}

	var entries []SelectionEntry
	if err := dbc.Transaction(func(tx *gorm.DB) error {
		resolved, err := ResolveSelection(tx, &order, &event, in.Tickets)
		if err != nil {
			return err
		}
		entries = resolved
		return nil
	}); err != nil {
		return nil, err
	}

	// Validate every group before issuing anything so an unavailable type
	// aborts the completion as a whole.
	var groups []issueGroup
	if err := dbc.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			var tt *models.TicketType
			if entry.Ref.Base {
				ga, err := LookupOrCreateGeneralAdmission(tx, &event)
				if err != nil {
					return err
				}
				tt = ga
			} else {
				found, _, _, err := CheckAvailability(tx, event.ID, entry.Ref.ID)
				if err != nil {
					return err
				}
				tt = found
			}
			if remaining, unlimited := Remaining(tt); !unlimited && remaining < int(entry.Quantity) {
				return ErrInsufficientAvailability
			}
			groups = append(groups, issueGroup{ticketType: tt, quantity: entry.Quantity})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	tickets := make([]models.Ticket, 0)
	for _, group := range groups {
		if err := dbc.Transaction(func(tx *gorm.DB) error {
			return Reserve(tx, group.ticketType, group.quantity)
		}); err != nil {
			return nil, err
		}
		issued := IssueTickets(dbc, &order, group.ticketType, group.quantity)
		tickets = append(tickets, issued...)
	}
	log.Printf("[Fulfill] Issued %d tickets for order %d (phase=%d)\n", len(tickets), order.ID, phase)

	// The persisted selection stays authoritative until issuance has gone
	// through, so an aborted completion can retry against it instead of
	// falling back to reconstruction.
	if err := dbc.
		Where(&models.OrderTicketSelection{TicketOrderID: order.ID}).
		Delete(&models.OrderTicketSelection{}).
		Error; err != nil {
		log.Printf("[Fulfill] Could not clear selection rows for order %d: %s\n", order.ID, err.Error())
	}

	go func(order models.Order, event models.Event, tickets []models.Ticket) {
		if err := mailer.SendOrderConfirmation(&order, &event, tickets); err != nil {
			log.Printf("[Fulfill] Could not send confirmation email for order %d: %s\n", order.ID, err.Error())
		}
	}(order, event, tickets)

	return buildResponse(&order, &event, tickets), nil
}

func orderSummary(order *models.Order) *types.OrderSummary {
	return &types.OrderSummary{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
	}
}

func eventSummary(event *models.Event) *types.EventSummary {
	return &types.EventSummary{
		ID:    event.ID,
		Title: event.Title,
		Slug:  event.Slug,
	}
}

func buildResponse(order *models.Order, event *models.Event, tickets []models.Ticket) *types.CompleteOrderResponse {
	issued := make([]types.IssuedTicket, 0, len(tickets))
	for _, t := range tickets {
		issued = append(issued, types.IssuedTicket{
			ID:           t.ID,
			TicketNumber: t.TicketNumber,
			TicketTypeID: t.TicketTypeID,
			PricePaid:    t.PricePaid,
			QRData:       t.QRData,
			QRHash:       t.QRHash,
			QRImage:      t.QRImage,
		})
	}
	return &types.CompleteOrderResponse{
		Success:     true,
		Order:       orderSummary(order),
		Tickets:     issued,
		Event:       eventSummary(event),
		RedirectURL: fmt.Sprintf("%s/events/%s/tickets?order=%s", os.Getenv("APP_HOST"), event.Slug, order.OrderNumber),
	}
}
