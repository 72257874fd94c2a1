package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shade-store/internal/shades/cart"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

var ErrNotConfigured = errors.New("email is not configured")

// Quote is who receives the quote summary.
type Quote struct {
	ToEmail string
	ToName  string
	Message string
}

// ============================================================
// EmailJS
// ============================================================

// EmailJS sends template emails. The template itself lives in the EmailJS
// dashboard; this client only fills its parameters.
type EmailJS struct {
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	HTTPClient *http.Client
}

func NewEmailJS(serviceID, templateID, publicKey string) *EmailJS {
	return &EmailJS{
		endpoint:   defaultEndpoint,
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// WithEndpoint overrides the send URL, e.g. for tests.
func (e *EmailJS) WithEndpoint(url string) *EmailJS {
	e.endpoint = url
	return e
}

func (e *EmailJS) Configured() bool {
	return e.serviceID != "" && e.templateID != "" && e.publicKey != ""
}

// SendQuote emails the order summary.
func (e *EmailJS) SendQuote(ctx context.Context, to Quote, order cart.Order) error {
	if !e.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to.ToEmail) == "" {
		return fmt.Errorf("recipient email is required")
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"service_id":      e.serviceID,
		"template_id":     e.templateID,
		"user_id":         e.publicKey,
		"template_params": TemplateParams(to, order),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}
	return nil
}

// TemplateParams flattens the order into the template's variables.
func TemplateParams(to Quote, order cart.Order) map[string]string {
	var lines strings.Builder
	for _, l := range order.Lines {
		fmt.Fprintf(&lines, "%d × %s @ $%s = $%s\n", l.Quantity, l.Title, l.UnitPrice, l.LineTotal)
		for _, p := range l.Properties {
			fmt.Fprintf(&lines, "    %s: %s\n", p.Name, p.Value)
		}
	}

	params := map[string]string{
		"to_email":   to.ToEmail,
		"to_name":    to.ToName,
		"message":    to.Message,
		"line_items": strings.TrimRight(lines.String(), "\n"),
		"item_count": fmt.Sprint(order.ItemCount),
		"subtotal":   "$" + order.Subtotal,
		"discount":   "$" + order.Discount,
		"total":      "$" + order.Total,
	}
	if !order.BulkDiscount {
		params["discount"] = "$0.00"
	}
	return params
}
