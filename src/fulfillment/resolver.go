package fulfillment

import (
	"log"
	"math"
	"vbs/src/config"
	"vbs/src/models"
	"vbs/src/types"

	"gorm.io/gorm"
)

// TicketTypeRef names a ticket type either explicitly by id or as the event's
// base admission, which is resolved to a concrete persisted type later by a
// lookup-or-create step.
type TicketTypeRef struct {
	ID   uint
	Base bool
}

// SelectionEntry is one resolved (ticket type ref, quantity) pair.
type SelectionEntry struct {
	Ref      TicketTypeRef
	Quantity uint
}

// ResolveSelection recovers what was purchased for an order. Priority order:
// the persisted selection rows keyed by the order id, the caller-supplied
// selection, and finally reconstruction from the order total. Entries naming
// the same ticket type are folded together so availability is always checked
// against the combined quantity; the orchestrator clears the persisted rows
// once issuance has gone through.
func ResolveSelection(tx *gorm.DB, order *models.Order, event *models.Event, caller []types.SelectionItem) ([]SelectionEntry, error) {
	var rows []models.OrderTicketSelection
	if err := tx.
		Where(&models.OrderTicketSelection{TicketOrderID: order.ID}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		entries := make([]SelectionEntry, 0, len(rows))
		for _, r := range rows {
			ref := TicketTypeRef{Base: r.BaseAdmission}
			if r.TicketTypeID != nil {
				ref.ID = *r.TicketTypeID
			}
			entries = append(entries, SelectionEntry{Ref: ref, Quantity: r.Quantity})
		}
		return mergeEntries(entries), nil
	}

	if len(caller) > 0 {
		entries := make([]SelectionEntry, 0, len(caller))
		for _, item := range caller {
			entries = append(entries, SelectionEntry{
				Ref:      TicketTypeRef{ID: item.TicketTypeID, Base: item.BaseAdmission},
				Quantity: item.Quantity,
			})
		}
		return mergeEntries(entries), nil
	}

	var ticketTypes []models.TicketType
	if err := tx.
		Where(&models.TicketType{EventID: event.ID}).
		Order("price asc").
		Find(&ticketTypes).
		Error; err != nil {
		return nil, err
	}
	log.Printf("[Resolve] No stored or supplied selection for order %d, reconstructing from total %.2f\n", order.ID, order.TotalAmount)
	return ReconstructSelection(order.TotalAmount, event.BasePrice, ticketTypes)
}

// mergeEntries folds entries naming the same ticket type into one so the
// availability check and the sold-count increment see the combined quantity.
// Base admission references are normalized first; the explicit id is
// irrelevant once the base flag is set.
func mergeEntries(entries []SelectionEntry) []SelectionEntry {
	merged := make([]SelectionEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Ref.Base {
			entry.Ref.ID = 0
		}
		found := false
		for i := range merged {
			if merged[i].Ref == entry.Ref {
				merged[i].Quantity += entry.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, entry)
		}
	}
	return merged
}

// ReconstructSelection guesses the purchased selection from the order total
// alone. It tries the event's flat base price, then each ticket type on its
// own, then every unordered pair of types with 1..10 units of the first,
// solving for an integer quantity of the second. Candidates are visited with
// ticket types ascending by price, then increasing quantity of the first
// type; the first combination within tolerance wins, even when several
// combinations reproduce the same total.
func ReconstructSelection(total float64, basePrice *float64, ticketTypes []models.TicketType) ([]SelectionEntry, error) {
	if basePrice != nil && *basePrice > 0 {
		qty := math.Round(total / *basePrice)
		if qty > 0 {
			return []SelectionEntry{{Ref: TicketTypeRef{Base: true}, Quantity: uint(qty)}}, nil
		}
	}

	for _, tt := range ticketTypes {
		if tt.Price <= 0 {
			continue
		}
		qty := math.Round(total / tt.Price)
		if qty > 0 && math.Abs(total-tt.Price*qty) < config.PriceMatchTolerance {
			return []SelectionEntry{{Ref: TicketTypeRef{ID: tt.ID}, Quantity: uint(qty)}}, nil
		}
	}

	for i := range ticketTypes {
		first := ticketTypes[i]
		if first.Price <= 0 {
			continue
		}
		for qty1 := uint(1); qty1 <= 10; qty1++ {
			remainder := total - first.Price*float64(qty1)
			if remainder < -config.PriceMatchTolerance {
				break
			}
			for j := i; j < len(ticketTypes); j++ {
				second := ticketTypes[j]
				if second.Price <= 0 {
					continue
				}
				qty2 := math.Round(remainder / second.Price)
				if qty2 < 1 {
					continue
				}
				if math.Abs(remainder-second.Price*qty2) < config.PriceMatchTolerance {
					if i == j {
						return []SelectionEntry{{Ref: TicketTypeRef{ID: first.ID}, Quantity: qty1 + uint(qty2)}}, nil
					}
					return []SelectionEntry{
						{Ref: TicketTypeRef{ID: first.ID}, Quantity: qty1},
						{Ref: TicketTypeRef{ID: second.ID}, Quantity: uint(qty2)},
					}, nil
				}
			}
		}
	}

	return nil, ErrNoSelectionFound
}
