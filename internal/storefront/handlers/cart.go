package handlers

import (
	"context"
	"net/http"
	"strings"

	"shade-store/internal/integrations/checkout"
	"shade-store/internal/integrations/email"
	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/models"
	"shade-store/internal/storefront/service"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// DraftOrderCreator turns an order into a hosted checkout.
type DraftOrderCreator interface {
	CreateDraftOrder(ctx context.Context, order cart.Order, customer checkout.Customer) (*checkout.Draft, error)
}

// QuoteSender emails an order summary.
type QuoteSender interface {
	SendQuote(ctx context.Context, to email.Quote, order cart.Order) error
}

// ============================================================
// Cart Handler
// ============================================================

type CartHandler struct {
	carts    *service.CartService
	wizards  *service.WizardSessions
	checkout DraftOrderCreator
	mailer   QuoteSender
	log      *zap.Logger
}

func NewCartHandler(carts *service.CartService, wizards *service.WizardSessions, checkout DraftOrderCreator, mailer QuoteSender, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, wizards: wizards, checkout: checkout, mailer: mailer, log: log}
}

func (h *CartHandler) Create(c fiber.Ctx) error {
	view, err := h.carts.Create(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(http.StatusCreated).JSON(view)
}

func (h *CartHandler) Get(c fiber.Ctx) error {
	view, err := h.carts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *CartHandler) Clear(c fiber.Ctx) error {
	view, err := h.carts.Clear(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *CartHandler) AddItem(c fiber.Ctx) error {
	var cfg models.ShadeConfiguration
	if err := decodeBody(c, &cfg); err != nil {
		return badRequest(c, err.Error())
	}

	view, item, err := h.carts.Add(c.Context(), c.Params("id"), cfg)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"cart": view, "item": item})
}

func (h *CartHandler) ReplaceItem(c fiber.Ctx) error {
	var cfg models.ShadeConfiguration
	if err := decodeBody(c, &cfg); err != nil {
		return badRequest(c, err.Error())
	}

	view, item, err := h.carts.Replace(c.Context(), c.Params("id"), c.Params("itemId"), cfg)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"cart": view, "item": item})
}

func (h *CartHandler) RemoveItem(c fiber.Ctx) error {
	view, err := h.carts.Remove(c.Context(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

// EditItem opens a configurator over a cart item with every step completed.
func (h *CartHandler) EditItem(c fiber.Ctx) error {
	item, err := h.carts.Item(c.Context(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(http.StatusCreated).JSON(h.wizards.Resume(item))
}

func (h *CartHandler) Order(c fiber.Ctx) error {
	order, err := h.carts.Order(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(order)
}

// ============================================================
// Checkout
// ============================================================

type checkoutRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Note  string `json:"note"`
}

// Checkout creates a draft order and returns the invoice URL the browser is
// sent to. The cart is kept; the shop clears it once the order is paid.
func (h *CartHandler) Checkout(c fiber.Ctx) error {
	var req checkoutRequest
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}

	order, err := h.carts.Order(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	if len(order.Lines) == 0 {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "cart is empty"})
	}

	draft, err := h.checkout.CreateDraftOrder(c.Context(), order, checkout.Customer{
		Email: strings.TrimSpace(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Note:  strings.TrimSpace(req.Note),
	})
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.log.Error("draft order failed", zap.String("cart", c.Params("id")), zap.Error(err))
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "checkout is unavailable"})
		}
		return respondError(c, h.log, err)
	}

	h.log.Info("draft order created",
		zap.String("cart", c.Params("id")),
		zap.Int64("draft", draft.ID),
		zap.String("total", order.Total))
	return c.JSON(fiber.Map{"draftOrder": draft, "checkoutUrl": draft.InvoiceURL})
}

type quoteEmailRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// EmailQuote sends the order summary to the shopper.
func (h *CartHandler) EmailQuote(c fiber.Ctx) error {
	var req quoteEmailRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if !strings.Contains(req.Email, "@") {
		return badRequest(c, "valid email required")
	}

	order, err := h.carts.Order(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	err = h.mailer.SendQuote(c.Context(), email.Quote{
		ToEmail: strings.TrimSpace(req.Email),
		ToName:  strings.TrimSpace(req.Name),
		Message: req.Message,
	}, order)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.log.Error("quote email failed", zap.String("cart", c.Params("id")), zap.Error(err))
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "email is unavailable"})
		}
		return respondError(c, h.log, err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"status": "sent"})
}
