package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"vbs/src/fulfillment"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed", "checkout.session.async_payment_succeeded":
			var cs stripe.CheckoutSession
			err := json.Unmarshal(event.Data.Raw, &cs)
			if err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			log.Printf("[CheckoutSession] ID: %s %s\n", cs.ID, cs.Status)
			md := cs.Metadata
			if md["type"] != "ticket" {
				log.Printf("[%s] Ignoring session of type %q\n", cs.ID, md["type"])
				break
			}
			if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
				log.Printf("[%s] Session not paid yet: %s\n", cs.ID, cs.PaymentStatus)
				break
			}
			atoi, err := strconv.Atoi(md["orderId"])
			if err != nil {
				log.Printf("[%s] Could not read order id from metadata: %s\n", cs.ID, err.Error())
				break
			}
			orderId := uint(atoi)
			txnId := ""
			if cs.PaymentIntent != nil {
				txnId = cs.PaymentIntent.ID
			}
			// Fulfillment runs detached; the gateway only needs the ack, and
			// a lost completion is repaired by the client-side verify call.
			go func() {
				_, err := fulfillment.CompleteOrder(fulfillment.CompleteInput{
					OrderID:       orderId,
					TransactionID: txnId,
					Method:        "card",
				})
				if err != nil {
					log.Printf("[Stripe] Error completing order %d: %s\n", orderId, err.Error())
				}
			}()
		case "checkout.session.expired":
			var cs stripe.CheckoutSession
			if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			log.Printf("[CheckoutSession] ID: %s expired\n", cs.ID)
		default:
			log.Printf("[StripeEvent] Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
