package handlers

import (
	"net/http"

	"shade-store/internal/shades/models"
	"shade-store/internal/shades/wizard"
	"shade-store/internal/storefront/service"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// CartSessionHeader carries the cart id for routes that are not under /carts.
const CartSessionHeader = "X-Cart-Session"

// ============================================================
// Wizard Handler
// ============================================================

type WizardHandler struct {
	wizards *service.WizardSessions
	carts   *service.CartService
	log     *zap.Logger
}

func NewWizardHandler(wizards *service.WizardSessions, carts *service.CartService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{wizards: wizards, carts: carts, log: log}
}

func (h *WizardHandler) Start(c fiber.Ctx) error {
	return c.Status(http.StatusCreated).JSON(h.wizards.Start())
}

func (h *WizardHandler) Get(c fiber.Ctx) error {
	view, err := h.wizards.Get(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *WizardHandler) Close(c fiber.Ctx) error {
	h.wizards.Close(c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// Edit replaces the configuration while the step in the path is open.
func (h *WizardHandler) Edit(c fiber.Ctx) error {
	step, err := wizard.ParseStep(c.Params("step"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	var cfg models.ShadeConfiguration
	if err := decodeBody(c, &cfg); err != nil {
		return badRequest(c, err.Error())
	}

	view, err := h.wizards.Edit(c.Context(), c.Params("id"), step, cfg)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *WizardHandler) Confirm(c fiber.Ctx) error {
	step, err := wizard.ParseStep(c.Params("step"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	view, err := h.wizards.Confirm(c.Params("id"), step)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *WizardHandler) Reopen(c fiber.Ctx) error {
	step, err := wizard.ParseStep(c.Params("step"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	view, err := h.wizards.Reopen(c.Params("id"), step)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

// AddToCart stores the finished configuration in the cart named by the
// X-Cart-Session header. A configurator opened from a cart item replaces that
// item instead of adding a new one. The configurator session is closed.
func (h *WizardHandler) AddToCart(c fiber.Ctx) error {
	cartID := c.Get(CartSessionHeader)
	if cartID == "" {
		return badRequest(c, CartSessionHeader+" header required")
	}

	id := c.Params("id")
	view, err := h.wizards.Get(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if !view.Done {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "configurator is not finished"})
	}

	var cartView service.CartView
	var item models.CartItem
	if view.ItemID != "" {
		cartView, item, err = h.carts.Replace(c.Context(), cartID, view.ItemID, view.Config)
	} else {
		cartView, item, err = h.carts.Add(c.Context(), cartID, view.Config)
	}
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.wizards.Close(id)
	h.log.Info("configuration added to cart",
		zap.String("cart", cartID),
		zap.String("item", item.ID),
		zap.Float64("total", item.TotalPrice))
	return c.JSON(fiber.Map{"cart": cartView, "item": item})
}
