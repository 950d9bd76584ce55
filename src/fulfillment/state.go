package fulfillment

import (
	"vbs/src/models"
	"vbs/src/types"

	"gorm.io/gorm"
)

type CompletionPhase int

const (
	// AlreadyComplete short-circuits: the order is paid and its tickets exist.
	AlreadyComplete CompletionPhase = iota
	// ProceedNew performs the unpaid->paid transition and issues tickets.
	ProceedNew
	// ProceedRepair re-runs issuance for an order that was paid earlier but
	// whose issuance failed or was interrupted; payment fields stay untouched.
	ProceedRepair
)

// DecidePhase is the three-way branch that makes completion safe against
// duplicate triggers arriving after partial progress, not merely before any
// progress.
func DecidePhase(paymentStatus types.PaymentStatus, ticketCount int64) CompletionPhase {
	if paymentStatus == types.PAYMENT_PAID {
		if ticketCount > 0 {
			return AlreadyComplete
		}
		return ProceedRepair
	}
	return ProceedNew
}

// BeginCompletion inspects the persisted order state and, for a fresh
// completion, atomically records the paid/confirmed transition together with
// the payment method and transaction reference.
func BeginCompletion(tx *gorm.DB, order *models.Order, transactionId string, method string) (CompletionPhase, error) {
	var ticketCount int64
	if err := tx.
		Model(&models.Ticket{}).
		Where(&models.Ticket{OrderID: order.ID}).
		Count(&ticketCount).
		Error; err != nil {
		return ProceedNew, err
	}

	phase := DecidePhase(order.PaymentStatus, ticketCount)
	if phase != ProceedNew {
		return phase, nil
	}

	updates := map[string]any{
		"payment_status": types.PAYMENT_PAID,
		"status":         types.ORDER_CONFIRMED,
		"payment_method": method,
	}
	if transactionId != "" {
		updates["payment_intent_id"] = transactionId
	}
	if err := tx.
		Model(&models.Order{}).
		Where(&models.Order{ID: order.ID}).
		Updates(updates).
		Error; err != nil {
		return phase, err
	}
	order.PaymentStatus = types.PAYMENT_PAID
	order.Status = types.ORDER_CONFIRMED
	order.PaymentMethod = method
	if transactionId != "" {
		order.PaymentIntentId = &transactionId
	}
	return phase, nil
}
