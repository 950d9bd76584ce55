package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	"vbs/src/config"
	"vbs/src/db"
	"vbs/src/fulfillment"
	"vbs/src/lib"
	"vbs/src/models"
	"vbs/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

func CreateNewEvent(params *types.CreateEventRequestBody) (uint, error) {
	eventStart, err := time.Parse(config.TIME_PARSE_FORMAT, params.EventStart)
	if err != nil {
		log.Printf("Error parsing event_start: %s\n", err.Error())
		return 0, err
	}
	eventStart = time.Date(
		eventStart.Year(),
		eventStart.Month(),
		eventStart.Day(),
		eventStart.Hour(),
		eventStart.Minute(),
		0,
		0,
		eventStart.Location(),
	)
	eventStatus := types.EVENT_DRAFT
	if params.Publish {
		eventStatus = types.EVENT_PUBLISHED
	}

	event := models.Event{
		Title:      params.Title,
		Name:       params.Name,
		Location:   params.Location,
		EventStart: eventStart,
		BasePrice:  params.BasePrice,
		Status:     eventStatus,
	}

	var eventId uint
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		eventSlug := slug.Make(params.Title)
		var clashes int64
		if err := tx.
			Model(&models.Event{}).
			Where(&models.Event{Slug: eventSlug}).
			Count(&clashes).
			Error; err != nil {
			return err
		}
		if clashes > 0 {
			eventSlug = fmt.Sprintf("%s-%s", eventSlug, strings.Split(uuid.NewString(), "-")[0])
		}
		event.Slug = eventSlug
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		eventId = event.ID
		return nil
	})
	if err != nil {
		log.Printf("Error creating Event: %s\n", err.Error())
		return 0, err
	}
	return eventId, nil
}

func CreateTicketType(params *types.CreateTicketTypeRequestBody) (uint, error) {
	var ticketTypeId uint
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where(&models.Event{ID: params.EventID}).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("event %d does not exist", params.EventID)
			}
			return err
		}
		tt := models.TicketType{
			EventID:       event.ID,
			Name:          params.Name,
			Price:         params.Price,
			Currency:      params.Currency,
			QuantityTotal: params.QuantityTotal,
		}
		if err := tx.Create(&tt).Error; err != nil {
			return err
		}
		ticketTypeId = tt.ID
		return nil
	})
	if err != nil {
		log.Printf("Error creating TicketType: %s\n", err.Error())
		return 0, err
	}
	return ticketTypeId, nil
}

func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%s", strings.Split(uuid.NewString(), "-")[0])
}

// CreateNewOrder prices the selection, persists the order as unpaid/pending
// and records the selection rows that the fulfillment resolver reads back.
func CreateNewOrder(params *types.CreateOrderRequestBody, eventId uint) (*models.Order, error) {
	var order models.Order
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where(&models.Event{ID: eventId}).First(&event).Error; err != nil {
			return err
		}
		if time.Now().After(event.EventStart) {
			return errors.New("event is no longer accepting orders")
		}

		var total float64
		for _, item := range params.Items {
			if item.BaseAdmission {
				if event.BasePrice == nil {
					return errors.New("event has no base admission price")
				}
				total += *event.BasePrice * float64(item.Quantity)
				continue
			}
			tt, remaining, unlimited, err := fulfillment.CheckAvailability(tx, event.ID, item.TicketTypeID)
			if err != nil {
				return err
			}
			if !unlimited && remaining < int(item.Quantity) {
				return fulfillment.ErrInsufficientAvailability
			}
			total += tt.Price * float64(item.Quantity)
		}

		order = models.Order{
			OrderNumber:   NewOrderNumber(),
			EventID:       event.ID,
			CustomerName:  params.CustomerName,
			CustomerEmail: params.CustomerEmail,
			TotalAmount:   total,
			PaymentStatus: types.PAYMENT_UNPAID,
			Status:        types.ORDER_PENDING,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range params.Items {
			selection := models.OrderTicketSelection{
				TicketOrderID: order.ID,
				BaseAdmission: item.BaseAdmission,
				Quantity:      item.Quantity,
			}
			if !item.BaseAdmission {
				ttId := item.TicketTypeID
				selection.TicketTypeID = &ttId
			}
			if err := tx.Create(&selection).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating Order: %s\n", err.Error())
		return nil, err
	}
	return &order, nil
}

// CreateStripeCheckout opens a hosted checkout session for an order and
// stamps the session with the metadata the webhook handler keys on.
func CreateStripeCheckout(order *models.Order, event *models.Event, params *types.CreateOrderRequestBody) (*string, *string, error) {
	sc := lib.GetStripeClient()
	successUrl := fmt.Sprintf("%s/checkout/callback/success?session_id={CHECKOUT_SESSION_ID}", os.Getenv("APP_HOST"))
	metadata := map[string]string{
		"type":    "ticket",
		"orderId": fmt.Sprint(order.ID),
	}
	piParams := &stripe.CheckoutSessionCreatePaymentIntentDataParams{}
	for k, v := range metadata {
		piParams.AddMetadata(k, v)
	}
	createParams := stripe.CheckoutSessionCreateParams{
		SuccessURL:        stripe.String(successUrl),
		UIMode:            stripe.String("hosted"),
		Mode:              stripe.String("payment"),
		PaymentIntentData: piParams,
		CustomerEmail:     stripe.String(order.CustomerEmail),
		Metadata:          metadata,
	}

	lineItems := []*stripe.CheckoutSessionCreateLineItemParams{}
	dbc := db.GetDb()
	err := dbc.Transaction(func(tx *gorm.DB) error {
		for _, item := range params.Items {
			name := config.GeneralAdmissionName
			price := 0.0
			currency := "usd"
			if item.BaseAdmission {
				if event.BasePrice == nil {
					return errors.New("event has no base admission price")
				}
				price = *event.BasePrice
			} else {
				var tt models.TicketType
				if err := tx.Where(&models.TicketType{ID: item.TicketTypeID, EventID: event.ID}).First(&tt).Error; err != nil {
					return err
				}
				name = tt.Name
				price = tt.Price
				if tt.Currency != "" {
					currency = strings.ToLower(tt.Currency)
				}
			}
			lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(int64(price * 100)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s - %s", event.Title, name)),
					},
				},
				Quantity: stripe.Int64(int64(item.Quantity)),
			})
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateStripeCheckout failed: %s\n", err.Error())
		return nil, nil, err
	}
	createParams.LineItems = lineItems
	checkoutSession, err := sc.V1CheckoutSessions.Create(context.Background(), &createParams)
	if err != nil {
		log.Printf("CreateStripeCheckout failed: %s\n", err.Error())
		return nil, nil, err
	}
	log.Printf("CheckoutSessionID: %s\n", checkoutSession.ID)
	err = dbc.
		Model(&models.Order{}).
		Where(&models.Order{ID: order.ID}).
		Update("checkout_session_id", checkoutSession.ID).
		Error
	if err != nil {
		log.Printf("Error saving checkout session id for order %d: %s\n", order.ID, err.Error())
		return nil, nil, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		_, err := rd.SetEx(context.Background(), checkoutSession.ID, fmt.Sprint(order.ID), 24*time.Hour).Result()
		if err != nil {
			log.Printf("Error caching session [%s]: %s\n", checkoutSession.ID, err.Error())
		}
	}
	return &checkoutSession.URL, &checkoutSession.ID, nil
}

// GetEvent resolves a published event by numeric id or by slug.
func GetEvent(ref string) (*models.Event, error) {
	var event models.Event
	db := db.GetDb()
	query := db.Preload("TicketTypes")
	if id, err := strconv.Atoi(ref); err == nil {
		query = query.Where(&models.Event{ID: uint(id), Status: types.EVENT_PUBLISHED})
	} else {
		query = query.Where(&models.Event{Slug: ref, Status: types.EVENT_PUBLISHED})
	}
	if err := query.First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func GetOrdersForEvent(eventId uint) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	db := db.GetDb()
	err := db.
		Where(&models.Order{EventID: eventId}).
		Order("created_at desc").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
