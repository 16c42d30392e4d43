package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"framestudio/internal/models"
)

// EmailSettings configures outgoing order mail. An empty User or Pass
// disables delivery; messages are then only logged.
type EmailSettings struct {
	Host       string
	Port       int
	User       string
	Pass       string
	From       string
	AdminEmail string
}

// EmailService sends order confirmations over SMTP.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	admin  string
	logger *zap.Logger
}

// NewEmailService builds an EmailService. Without SMTP credentials the
// service runs in disabled mode.
func NewEmailService(s EmailSettings, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	from := s.From
	if from == "" {
		from = s.User
	}
	if from == "" {
		from = "noreply@framestudio.com.np"
	}

	if s.User == "" || s.Pass == "" {
		logger.Info("SMTP credentials not set, email delivery disabled")
		return &EmailService{from: from, admin: s.AdminEmail, logger: logger}
	}

	return &EmailService{
		dialer: gomail.NewDialer(s.Host, s.Port, s.User, s.Pass),
		from:   from,
		admin:  s.AdminEmail,
		logger: logger,
	}
}

// Enabled reports whether messages are actually delivered.
func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

// SendOrderConfirmation mails the customer (when an address was given) and
// the shop admin (when configured).
func (es *EmailService) SendOrderConfirmation(ctx context.Context, c *models.Confirmation) error {
	msgs := es.orderMessages(c)
	if len(msgs) == 0 {
		return nil
	}

	if es.dialer == nil {
		es.logger.Info("email delivery disabled, order confirmation not sent",
			zap.String("order_number", c.OrderNumber),
			zap.Int("messages", len(msgs)))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := es.dialer.DialAndSend(msgs...); err != nil {
		return fmt.Errorf("send order %s: %w", c.OrderNumber, err)
	}
	es.logger.Info("order confirmation sent", zap.String("order_number", c.OrderNumber), zap.Int("messages", len(msgs)))
	return nil
}

func (es *EmailService) orderMessages(c *models.Confirmation) []*gomail.Message {
	var msgs []*gomail.Message
	body := orderBody(c)

	if c.Form.Email != "" {
		m := gomail.NewMessage()
		m.SetHeader("From", es.from)
		m.SetHeader("To", c.Form.Email)
		m.SetHeader("Subject", "Your Frame Studio order "+c.OrderNumber)
		m.SetBody("text/html", body)
		msgs = append(msgs, m)
	}
	if es.admin != "" {
		m := gomail.NewMessage()
		m.SetHeader("From", es.from)
		m.SetHeader("To", es.admin)
		m.SetHeader("Subject", fmt.Sprintf("New order %s - %s", c.OrderNumber, models.FormatPrice(c.GrandTotal)))
		m.SetBody("text/html", body)
		msgs = append(msgs, m)
	}
	return msgs
}

func orderBody(c *models.Confirmation) string {
	var b strings.Builder
	e := html.EscapeString

	fmt.Fprintf(&b, "<h2>Order %s</h2>\n", e(c.OrderNumber))
	fmt.Fprintf(&b, "<p>Thank you, %s. We will call you on %s to confirm.</p>\n", e(c.Form.Name), e(c.Form.Phone))
	b.WriteString("<table>\n")
	for _, it := range c.Items {
		fmt.Fprintf(&b, "<tr><td>%s, %s, %s</td><td>%s</td></tr>\n",
			e(it.FrameName), e(it.SizeName), e(it.MatName), models.FormatPrice(it.LineTotal()))
	}
	b.WriteString("</table>\n")
	fmt.Fprintf(&b, "<p>Subtotal: %s<br>Delivery: %s<br><strong>Total: %s</strong></p>\n",
		models.FormatPrice(c.Subtotal), deliveryLabel(c.DeliveryFee), models.FormatPrice(c.GrandTotal))
	fmt.Fprintf(&b, "<p>Deliver to: %s, %s (%s)<br>Estimated delivery: %s<br>Payment: %s</p>\n",
		e(c.Form.Address), e(c.Form.City), e(c.Form.Zone), e(c.DeliveryWindow), e(string(c.Form.PaymentMethod)))
	if c.Form.Notes != "" {
		fmt.Fprintf(&b, "<p>Notes: %s</p>\n", e(c.Form.Notes))
	}
	return b.String()
}

func deliveryLabel(fee int64) string {
	if fee == 0 {
		return "FREE"
	}
	return models.FormatPrice(fee)
}
