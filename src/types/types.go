package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_PUBLISHED EventStatus = "published"
	EVENT_COMPLETED EventStatus = "completed"
	EVENT_ARCHIVED  EventStatus = "archived"
)

type PaymentStatus string

const (
	PAYMENT_UNPAID PaymentStatus = "unpaid"
	PAYMENT_PAID   PaymentStatus = "paid"
)

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_CONFIRMED OrderStatus = "confirmed"
)

type TicketStatus string

const (
	TICKET_VALID TicketStatus = "valid"
	TICKET_VOID  TicketStatus = "void"
)

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateEventRequestBody struct {
	Title      string   `json:"title" binding:"required"`
	Name       string   `json:"name,omitempty"`
	Location   string   `json:"location,omitempty"`
	EventStart string   `json:"event_start" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	BasePrice  *float64 `json:"base_price,omitempty"`
	Publish    bool     `json:"publish,omitempty"`
}

type CreateTicketTypeRequestBody struct {
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency" binding:"required"`
	EventID       uint    `json:"event" binding:"required"`
	QuantityTotal *uint   `json:"quantity_total,omitempty"`
}

// SelectionItem is one (ticket type, quantity) pair of an order's selection.
// TicketTypeID is zero when the item refers to the event's base admission.
type SelectionItem struct {
	TicketTypeID  uint `json:"ticket_type_id,omitempty"`
	BaseAdmission bool `json:"base_admission,omitempty"`
	Quantity      uint `json:"quantity" binding:"required"`
}

type CreateOrderRequestBody struct {
	CustomerName  string          `json:"customer_name" binding:"required"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	Items         []SelectionItem `json:"items" binding:"required,min=1"`
}

type CompleteOrderRequestBody struct {
	PaymentTransactionID string          `json:"payment_transaction_id,omitempty"`
	PaymentMethod        string          `json:"payment_method,omitempty"`
	Tickets              []SelectionItem `json:"tickets,omitempty"`
}

type VerifyCheckoutRequestBody struct {
	SessionID string `json:"session_id" binding:"required"`
}

type OrderSummary struct {
	ID          uint    `json:"id"`
	OrderNumber string  `json:"order_number"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

type EventSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type IssuedTicket struct {
	ID           uint    `json:"id"`
	TicketNumber string  `json:"ticket_number"`
	TicketTypeID uint    `json:"ticket_type_id"`
	PricePaid    float64 `json:"price_paid"`
	QRData       string  `json:"qr_data"`
	QRHash       string  `json:"qr_hash"`
	QRImage      string  `json:"qr_image,omitempty"`
}

type CompleteOrderResponse struct {
	Success     bool           `json:"success"`
	Processing  bool           `json:"processing,omitempty"`
	Order       *OrderSummary  `json:"order,omitempty"`
	Tickets     []IssuedTicket `json:"tickets,omitempty"`
	Event       *EventSummary  `json:"event,omitempty"`
	RedirectURL string         `json:"redirect_url,omitempty"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}
