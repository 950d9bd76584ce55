package fulfillment

import (
	"errors"
	"vbs/src/config"
	"vbs/src/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Remaining reports how many units of a ticket type can still be sold. The
// second return is true for unlimited types.
func Remaining(tt *models.TicketType) (int, bool) {
	if tt.QuantityTotal == nil {
		return 0, true
	}
	return int(*tt.QuantityTotal) - int(tt.QuantitySold), false
}

// CheckAvailability loads an event's ticket type and reports its remaining
// quantity.
func CheckAvailability(tx *gorm.DB, eventId uint, ticketTypeId uint) (*models.TicketType, int, bool, error) {
	var tt models.TicketType
	if err := tx.Where(&models.TicketType{ID: ticketTypeId, EventID: eventId}).First(&tt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, false, ErrTicketTypeNotFound
		}
		return nil, 0, false, err
	}
	remaining, unlimited := Remaining(&tt)
	return &tt, remaining, unlimited, nil
}

// Reserve accounts the sold quantity for one (order, ticket type) group. The
// increment happens exactly once per group during fulfillment; the processing
// guard and the order state machine keep duplicate triggers from reaching
// this point twice for the same order. The quantity is re-checked against a
// locked re-read of the row so a stale in-memory copy (or a concurrent order)
// can never push quantity_sold past quantity_total.
func Reserve(tx *gorm.DB, tt *models.TicketType, quantity uint) error {
	var current models.TicketType
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.TicketType{ID: tt.ID}).
		First(&current).
		Error; err != nil {
		return err
	}
	if remaining, unlimited := Remaining(&current); !unlimited && remaining < int(quantity) {
		return ErrInsufficientAvailability
	}
	if err := tx.
		Model(&models.TicketType{}).
		Where(&models.TicketType{ID: tt.ID}).
		Update("quantity_sold", gorm.Expr("quantity_sold + ?", quantity)).
		Error; err != nil {
		return err
	}
	tt.QuantitySold = current.QuantitySold + quantity
	return nil
}

// LookupOrCreateGeneralAdmission resolves a base admission reference to a
// concrete ticket type, materializing it from the event's flat base price the
// first time it is needed and reusing it by its reserved name afterwards.
func LookupOrCreateGeneralAdmission(tx *gorm.DB, event *models.Event) (*models.TicketType, error) {
	var tt models.TicketType
	err := tx.
		Where(&models.TicketType{EventID: event.ID, Name: config.GeneralAdmissionName}).
		First(&tt).
		Error
	if err == nil {
		return &tt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if event.BasePrice == nil {
		return nil, ErrTicketTypeNotFound
	}
	tt = models.TicketType{
		EventID: event.ID,
		Name:    config.GeneralAdmissionName,
		Price:   *event.BasePrice,
	}
	if err := tx.Create(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}
