package infra

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/juanmiguelzamora/StockWise/internal/config"
	"github.com/juanmiguelzamora/StockWise/internal/model"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for outbound mail: low-stock alerts,
// daily digests and password-reset links.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	domain   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		domain:   cfg.Domain,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

// SendLowStockAlert notifies that a single product crossed the low-stock
// threshold after a mutation.
func (m *Mailer) SendLowStockAlert(to, productName, sku string, quantity int) error {
	subject := fmt.Sprintf("StockWise alert: %s is low on stock", productName)
	body := fmt.Sprintf(
		"Product %q (SKU %s) is down to %d units.\n\nReview it in the inventory dashboard.\n",
		productName, sku, quantity,
	)
	return m.send(to, subject, body)
}

// SendLowStockDigest sends the periodic summary of every product at or below
// the threshold.
func (m *Mailer) SendLowStockDigest(to string, products []model.Product) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d product(s) need restocking:\n\n", len(products))
	for _, p := range products {
		fmt.Fprintf(&b, "  - %s (SKU %s): %d units\n", p.Name, p.SKU, p.Quantity)
	}
	return m.send(to, "StockWise daily low-stock digest", b.String())
}

// SendPasswordReset mails the reset token link.
func (m *Mailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(m.domain, "/"), token)
	body := fmt.Sprintf(
		"A password reset was requested for your StockWise account.\n\nReset link: %s\n\nIf you did not request this, ignore this email.\n",
		link,
	)
	return m.send(to, "StockWise password reset", body)
}
