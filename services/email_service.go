package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/binna/binna-backend/config"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/resend/resend-go/v2"
)

type emailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

var (
	emailMetricsInstance *emailMetrics
	emailMetricsOnce     sync.Once
	emailMetricsRegistry = prometheus.DefaultRegisterer
)

func newEmailMetrics() *emailMetrics {
	emailMetricsOnce.Do(func() {
		factory := promauto.With(emailMetricsRegistry)
		emailMetricsInstance = &emailMetrics{
			sendLatency: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "binna_email_send_duration_seconds",
				Help:    "Time taken to send emails",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
			}),
			errorCount: factory.NewCounter(prometheus.CounterOpts{
				Name: "binna_email_errors_total",
				Help: "Total number of email sending errors",
			}),
			sentCount: factory.NewCounter(prometheus.CounterOpts{
				Name: "binna_emails_sent_total",
				Help: "Total number of emails sent",
			}),
		}
	})
	return emailMetricsInstance
}

// emailSender is the part of the Resend client the service calls.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// OrderMailer sends order notifications.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, data OrderConfirmation) error
}

// OrderConfirmation is the data rendered into the confirmation mail.
type OrderConfirmation struct {
	To           string
	CustomerName string
	Currency     string
	Orders       []*types.Order
}

type EmailService struct {
	config  *config.EmailConfig
	sender  emailSender
	metrics *emailMetrics
	tmpl    *template.Template
}

var _ OrderMailer = (*EmailService)(nil)

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"from", cfg.FromAddress,
		"enabled", cfg.Enabled,
		"apikey", logger.MaskSensitiveString(cfg.ResendAPIKey, 3, 0))
	return newEmailService(cfg, resend.NewClient(cfg.ResendAPIKey).Emails)
}

func newEmailService(cfg *config.EmailConfig, sender emailSender) *EmailService {
	return &EmailService{
		config:  cfg,
		sender:  sender,
		metrics: newEmailMetrics(),
		tmpl:    template.Must(template.New("order_confirmation").Parse(orderConfirmationTemplate)),
	}
}

// SendOrderConfirmation mails the customer a summary of the orders one
// checkout created. It is a no-op when email is disabled.
func (s *EmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmation) error {
	log := logger.GetLogger()
	if !s.config.Enabled {
		log.Debugw("Email disabled, skipping order confirmation", "orders", len(data.Orders))
		return nil
	}
	if data.To == "" || len(data.Orders) == 0 {
		s.metrics.errorCount.Inc()
		return errors.New("order confirmation needs a recipient and at least one order")
	}

	startTime := time.Now()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := "Your Binna order is confirmed"
	if len(data.Orders) > 1 {
		subject = fmt.Sprintf("Your %d Binna orders are confirmed", len(data.Orders))
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{data.To},
		Subject: subject,
		Html:    html.String(),
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", logger.MaskEmail(data.To),
			"subject", subject)
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Email sent successfully",
		"to", logger.MaskEmail(data.To),
		"subject", subject)
	return nil
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html dir="auto">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Order confirmed</title>
    <style>
        body { font-family: sans-serif; background-color: #f5f5f4; color: #292524; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; padding: 30px; border-radius: 12px; }
        h1 { color: #c2410c; font-size: 24px; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
        td, th { padding: 8px; border-bottom: 1px solid #e7e5e4; text-align: start; }
        .total { font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Thank you{{if .CustomerName}}, {{.CustomerName}}{{end}}!</h1>
        <p>We received your order and passed it on to the store.</p>
        {{range .Orders}}
        <h3>Order {{.ID}}</h3>
        <table>
            <tr><th>Item</th><th>Qty</th><th>Total</th></tr>
            {{range .Items}}
            <tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.LineTotal.StringFixed 2}}</td></tr>
            {{end}}
            <tr><td colspan="2">Subtotal</td><td>{{.Subtotal.StringFixed 2}}</td></tr>
            <tr><td colspan="2">VAT</td><td>{{.Tax.StringFixed 2}}</td></tr>
            <tr class="total"><td colspan="2">Total</td><td>{{.Total.StringFixed 2}} {{$.Currency}}</td></tr>
        </table>
        {{end}}
    </div>
</body>
</html>`
