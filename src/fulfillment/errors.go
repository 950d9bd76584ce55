package fulfillment

import "errors"

var (
	// ErrOrderNotFound means no order exists for the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEventExpired rejects completion of an order whose event has already
	// started, regardless of payment status.
	ErrEventExpired = errors.New("event has already started")

	// ErrNoSelectionFound means neither a persisted nor a caller-supplied
	// selection exists and reconstruction from the order total failed. The
	// customer has to re-initiate the purchase.
	ErrNoSelectionFound = errors.New("could not determine purchased tickets for this order")

	// ErrTicketTypeNotFound aborts the whole completion when a selection
	// references a ticket type that does not exist.
	ErrTicketTypeNotFound = errors.New("ticket type not found")

	// ErrInsufficientAvailability aborts the whole completion so a paid order
	// is never partially fulfilled silently.
	ErrInsufficientAvailability = errors.New("not enough tickets available")
)
