package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shade-store/internal/shades/cart"
)

const apiVersion = "2024-10"

// ErrNotConfigured means the store domain or access token is missing.
var ErrNotConfigured = errors.New("checkout is not configured")

// Draft is the created draft order.
type Draft struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	InvoiceURL string `json:"invoice_url"`
	Status     string `json:"status"`
}

// Customer is optional contact info attached to the draft order.
type Customer struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Note  string `json:"note,omitempty"`
}

type draftLineItem struct {
	Title      string          `json:"title"`
	Price      string          `json:"price"`
	Quantity   int             `json:"quantity"`
	Taxable    bool            `json:"taxable"`
	Properties []cart.Property `json:"properties,omitempty"`
}

type appliedDiscount struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ValueType   string `json:"value_type"`
	Value       string `json:"value"`
}

type draftOrderRequest struct {
	DraftOrder struct {
		LineItems       []draftLineItem  `json:"line_items"`
		AppliedDiscount *appliedDiscount `json:"applied_discount,omitempty"`
		Email           string           `json:"email,omitempty"`
		Note            string           `json:"note,omitempty"`
		Tags            string           `json:"tags"`
	} `json:"draft_order"`
}

// ============================================================
// Shopify
// ============================================================

// Shopify creates draft orders through the Admin REST API and returns the
// invoice URL the shopper is redirected to.
type Shopify struct {
	baseURL    string
	token      string
	HTTPClient *http.Client
}

// NewShopify builds a client for store, e.g. "my-shades" or
// "my-shades.myshopify.com".
func NewShopify(store, token string) *Shopify {
	base := ""
	if store = strings.TrimSpace(store); store != "" {
		if !strings.Contains(store, ".") {
			store += ".myshopify.com"
		}
		base = "https://" + store
	}
	return &Shopify{
		baseURL: base,
		token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func (s *Shopify) WithBaseURL(url string) *Shopify {
	s.baseURL = strings.TrimRight(url, "/")
	return s
}

func (s *Shopify) Configured() bool {
	return s.baseURL != "" && s.token != ""
}

// CreateDraftOrder sends the order. The bulk discount becomes an order-level
// percentage discount so Shopify recomputes the same total.
func (s *Shopify) CreateDraftOrder(ctx context.Context, order cart.Order, customer Customer) (*Draft, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("order has no lines")
	}

	requestBody, err := json.Marshal(buildDraftRequest(order, customer))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/admin/api/%s/draft_orders.json", s.baseURL, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", s.token)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("received non-2xx status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		DraftOrder Draft `json:"draft_order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if response.DraftOrder.InvoiceURL == "" {
		return nil, fmt.Errorf("draft order %d has no invoice url", response.DraftOrder.ID)
	}
	return &response.DraftOrder, nil
}

func buildDraftRequest(order cart.Order, customer Customer) draftOrderRequest {
	var req draftOrderRequest
	for _, line := range order.Lines {
		req.DraftOrder.LineItems = append(req.DraftOrder.LineItems, draftLineItem{
			Title:      line.Title,
			Price:      line.UnitPrice,
			Quantity:   line.Quantity,
			Taxable:    !line.Service,
			Properties: line.Properties,
		})
	}

	if order.BulkDiscount && order.DiscountRate > 0 {
		pct := strconv.FormatFloat(order.DiscountRate*100, 'f', -1, 64)
		req.DraftOrder.AppliedDiscount = &appliedDiscount{
			Title:       "Bulk discount",
			Description: pct + "% off large orders",
			ValueType:   "percentage",
			Value:       pct,
		}
	}

	req.DraftOrder.Email = customer.Email
	req.DraftOrder.Note = customer.Note
	if customer.Name != "" {
		if req.DraftOrder.Note != "" {
			req.DraftOrder.Note += "\n"
		}
		req.DraftOrder.Note += "Customer: " + customer.Name
	}
	req.DraftOrder.Tags = "custom-shades"
	return req
}
