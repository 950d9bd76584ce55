package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"vbs/src/db"
	"vbs/src/fulfillment"
	"vbs/src/lib"
	"vbs/src/models"
	"vbs/src/types"
	"vbs/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events/:id/orders", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			order, err := utils.CreateNewOrder(&body, params.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.Status(http.StatusNotFound)
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			// Zero-cost orders skip the payment gateway; the client follows
			// up with the completion call directly.
			if order.TotalAmount == 0 {
				ctx.JSON(http.StatusCreated, gin.H{
					"order": gin.H{
						"id":           order.ID,
						"order_number": order.OrderNumber,
						"total_amount": order.TotalAmount,
					},
				})
				return
			}

			var event models.Event
			dbc := db.GetDb()
			if err := dbc.Where(&models.Event{ID: order.EventID}).First(&event).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			checkoutUrl, sessionId, err := utils.CreateStripeCheckout(order, &event, &body)
			if err != nil {
				ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{
				"order": gin.H{
					"id":           order.ID,
					"order_number": order.OrderNumber,
					"total_amount": order.TotalAmount,
				},
				"checkout_url": checkoutUrl,
				"session_id":   sessionId,
			})
		}).
		POST("/orders/:id/complete", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.CompleteOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			method := body.PaymentMethod
			if method == "" {
				method = "client"
			}
			resp, err := fulfillment.CompleteOrder(fulfillment.CompleteInput{
				OrderID:       params.ID,
				TransactionID: body.PaymentTransactionID,
				Method:        method,
				Tickets:       body.Tickets,
			})
			if err != nil {
				completionError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, resp)
		}).
		POST("/checkout/verify", func(ctx *gin.Context) {
			var body types.VerifyCheckoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			cs, err := lib.RetrieveCheckoutSession(body.SessionID)
			if err != nil {
				log.Printf("[Verify] Error retrieving session %s: %s\n", body.SessionID, err.Error())
				ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "could not verify checkout session"})
				return
			}
			if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
				ctx.JSON(http.StatusOK, gin.H{"success": false, "payment_status": cs.PaymentStatus})
				return
			}
			if cs.Metadata["type"] != "ticket" {
				ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "session is not a ticket checkout"})
				return
			}
			atoi, err := strconv.Atoi(cs.Metadata["orderId"])
			if err != nil {
				// Sessions created before the metadata was stamped are
				// recoverable through the cached session->order mapping.
				atoi, err = cachedOrderId(ctx, cs.ID)
				if err != nil {
					log.Printf("[Verify] Could not read order id from session %s: %s\n", cs.ID, err.Error())
					ctx.JSON(http.StatusOK, gin.H{"success": false, "error": "session carries no order reference"})
					return
				}
			}
			resp, err := fulfillment.CompleteOrder(fulfillment.CompleteInput{
				OrderID:       uint(atoi),
				TransactionID: paymentIntentId(cs),
				Method:        "card",
			})
			if err != nil {
				log.Printf("[Verify] Completion failed for order %d: %s\n", atoi, err.Error())
				ctx.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, resp)
		})
	return g
}

func cachedOrderId(ctx *gin.Context, sessionId string) (int, error) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return 0, errors.New("no session cache available")
	}
	val, err := rd.Get(ctx, sessionId).Result()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func paymentIntentId(cs *stripe.CheckoutSession) string {
	if cs.PaymentIntent == nil {
		return ""
	}
	return cs.PaymentIntent.ID
}

func completionError(ctx *gin.Context, err error) {
	if errors.Is(err, fulfillment.ErrOrderNotFound) {
		ctx.Status(http.StatusNotFound)
		return
	}
	if errors.Is(err, fulfillment.ErrEventExpired) ||
		errors.Is(err, fulfillment.ErrNoSelectionFound) ||
		errors.Is(err, fulfillment.ErrTicketTypeNotFound) ||
		errors.Is(err, fulfillment.ErrInsufficientAvailability) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("Error completing order: %s\n", err.Error())
	ctx.Status(http.StatusInternalServerError)
}
