package handlers

import (
	"context"
	"net/http"
	"strings"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// FabricLister reads the live fabric catalog.
type FabricLister interface {
	ListFabrics(ctx context.Context, category models.Category) ([]models.Fabric, error)
}

// ============================================================
// Catalog Handler
// ============================================================

type CatalogHandler struct {
	catalog *catalog.Catalog
	fabrics FabricLister
	engine  *pricing.Engine
	log     *zap.Logger
}

func NewCatalogHandler(cat *catalog.Catalog, fabrics FabricLister, engine *pricing.Engine, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, fabrics: fabrics, engine: engine, log: log}
}

func (h *CatalogHandler) Shapes(c fiber.Ctx) error {
	return c.JSON(h.catalog.Shapes.All())
}

func (h *CatalogHandler) Shape(c fiber.Ctx) error {
	shape, ok := h.catalog.Shapes.Find(models.ShapeID(c.Params("id")))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "shape not found"})
	}
	return c.JSON(shape)
}

// Fabrics lists fabrics, optionally filtered by ?category=blackout|light-filtering.
func (h *CatalogHandler) Fabrics(c fiber.Ctx) error {
	var category models.Category
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category = catalog.ParseCategory(raw, "")
	}

	fabrics, err := h.fabrics.ListFabrics(c.Context(), category)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if fabrics == nil {
		fabrics = []models.Fabric{}
	}
	return c.JSON(fabrics)
}

func (h *CatalogHandler) Fractions(c fiber.Ctx) error {
	type fraction struct {
		Label   string  `json:"label"`
		Decimal float64 `json:"decimal"`
	}
	var out []fraction
	for _, f := range models.Fractions() {
		out = append(out, fraction{Label: string(f), Decimal: f.Decimal()})
	}
	return c.JSON(out)
}

func (h *CatalogHandler) Modifiers(c fiber.Ctx) error {
	return c.JSON(h.catalog.Modifiers)
}

func (h *CatalogHandler) Installer(c fiber.Ctx) error {
	inst, ok := h.catalog.Installers.ForZip(c.Params("zip"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no installer for this zip code"})
	}
	return c.JSON(inst)
}

func (h *CatalogHandler) Grids(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"groups": h.engine.Groups()})
}

// Grid returns the price sheet for a group letter or "specialty".
func (h *CatalogHandler) Grid(c fiber.Ctx) error {
	raw := c.Params("group")
	specialty := strings.EqualFold(raw, "specialty")

	sheet, ok := h.engine.Sheet(specialty, models.PriceGroup(strings.ToUpper(raw)))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no price grid for group " + raw})
	}
	return c.JSON(sheet)
}
