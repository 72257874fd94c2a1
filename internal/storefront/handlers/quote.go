package handlers

import (
	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/models"
	"shade-store/internal/storefront/service"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Quote Handler
// ============================================================

// QuoteHandler prices a configuration without storing anything.
type QuoteHandler struct {
	pricer   cart.Pricer
	resolver *service.Resolver
	log      *zap.Logger
}

func NewQuoteHandler(pricer cart.Pricer, resolver *service.Resolver, log *zap.Logger) *QuoteHandler {
	return &QuoteHandler{pricer: pricer, resolver: resolver, log: log}
}

func (h *QuoteHandler) Quote(c fiber.Ctx) error {
	var cfg models.ShadeConfiguration
	if err := decodeBody(c, &cfg); err != nil {
		return badRequest(c, err.Error())
	}

	cfg, err := h.resolver.Resolve(c.Context(), cfg)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(h.pricer.Price(cfg))
}
