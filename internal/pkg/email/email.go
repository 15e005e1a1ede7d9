// internal/pkg/email/email.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/velvety/storefront/internal/config"
)

// OrderLine is one order item rendered in the confirmation email
type OrderLine struct {
	Name           string
	VariationLabel string
	Quantity       int
	TotalFormatted string
}

// OrderConfirmationData feeds the order confirmation template
type OrderConfirmationData struct {
	OrderNumber       string
	FirstName         string
	Items             []OrderLine
	SubtotalFormatted string
	DiscountFormatted string
	ShippingFormatted string
	TotalFormatted    string
}

// WelcomeData feeds the welcome template
type WelcomeData struct {
	FirstName string
	StoreName string
}

// Service sends transactional email over SMTP
type Service struct {
	config    *config.Config
	templates *template.Template
}

const orderConfirmationTmpl = `
<h1>Thanks for your order, {{.FirstName}}!</h1>
<p>Your order <strong>{{.OrderNumber}}</strong> has been received.</p>
<table>
{{range .Items}}
  <tr>
    <td>{{.Name}}{{if .VariationLabel}} ({{.VariationLabel}}){{end}}</td>
    <td>x{{.Quantity}}</td>
    <td>{{.TotalFormatted}}</td>
  </tr>
{{end}}
</table>
<p>Subtotal: {{.SubtotalFormatted}}</p>
{{if ne .DiscountFormatted "$0.00"}}<p>Discount: -{{.DiscountFormatted}}</p>{{end}}
<p>Shipping: {{.ShippingFormatted}}</p>
<p><strong>Total: {{.TotalFormatted}}</strong></p>
`

const welcomeTmpl = `
<h1>Welcome to {{.StoreName}}, {{.FirstName}}!</h1>
<p>Your account is ready. Happy shopping.</p>
`

// NewService creates a new email service
func NewService(cfg *config.Config) (*Service, error) {
	templates := template.New("email")
	if _, err := templates.New("order_confirmation").Parse(orderConfirmationTmpl); err != nil {
		return nil, fmt.Errorf("failed to parse order confirmation template: %w", err)
	}
	if _, err := templates.New("welcome").Parse(welcomeTmpl); err != nil {
		return nil, fmt.Errorf("failed to parse welcome template: %w", err)
	}
	return &Service{config: cfg, templates: templates}, nil
}

// SendOrderConfirmation renders and sends the order confirmation
func (s *Service) SendOrderConfirmation(to string, data OrderConfirmationData) error {
	body, err := s.render("order_confirmation", data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Order Confirmation - %s", data.OrderNumber)
	return s.send(to, subject, body)
}

// SendWelcome renders and sends the welcome email
func (s *Service) SendWelcome(to, firstName string) error {
	body, err := s.render("welcome", WelcomeData{
		FirstName: firstName,
		StoreName: s.config.App.Name,
	})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Welcome to %s!", s.config.App.Name)
	return s.send(to, subject, body)
}

func (s *Service) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

func (s *Service) send(to, subject, htmlBody string) error {
	cfg := s.config.Email
	if cfg.Host == "" {
		// Email disabled; callers already treat delivery as best-effort
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", cfg.FromName, cfg.FromAddress))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, cfg.FromAddress, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
