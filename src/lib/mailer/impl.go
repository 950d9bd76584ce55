package mailer

import (
	"fmt"
	"os"
	"strings"
	"vbs/src/lib"
	"vbs/src/models"
)

// SendOrderConfirmation mails the customer their ticket numbers. Callers fire
// this from a detached goroutine and only log a failure; issued tickets are
// the source of truth, not the email.
func SendOrderConfirmation(order *models.Order, event *models.Event, tickets []models.Ticket) error {
	var lines []string
	for _, t := range tickets {
		lines = append(lines, fmt.Sprintf("<li>%s</li>", t.TicketNumber))
	}
	body := fmt.Sprintf(`
	<p>Hi %s,</p>
	<p>Your order %s for %s is confirmed.</p>
	<ul>%s</ul>
	`, order.CustomerName, order.OrderNumber, event.Title, strings.Join(lines, ""))
	return lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "noreply",
		To:       []string{order.CustomerEmail},
		Subject:  fmt.Sprintf("Your tickets for %s", event.Title),
		Body:     body,
		Html:     true,
	})
}
