package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Handlers groups the route handlers of the storefront service.
type Handlers struct {
	Catalog    *CatalogHandler
	Quote      *QuoteHandler
	Wizard     *WizardHandler
	Cart       *CartHandler
	Visualizer *VisualizerHandler
}

// RegisterRoutes mounts the storefront API on r, normally the /api/v1 group.
func RegisterRoutes(r fiber.Router, h Handlers) {
	// ============================================================
	// Catalog
	// ============================================================

	r.Get("/catalog/shapes", h.Catalog.Shapes)
	r.Get("/catalog/shapes/:id", h.Catalog.Shape)
	r.Get("/catalog/fabrics", h.Catalog.Fabrics)
	r.Get("/catalog/fractions", h.Catalog.Fractions)
	r.Get("/catalog/modifiers", h.Catalog.Modifiers)
	r.Get("/catalog/installers/:zip", h.Catalog.Installer)
	r.Get("/catalog/grids", h.Catalog.Grids)
	r.Get("/catalog/grids/:group", h.Catalog.Grid)

	r.Post("/quote", h.Quote.Quote)

	// ============================================================
	// Configurator
	// ============================================================

	r.Post("/wizard", h.Wizard.Start)
	r.Get("/wizard/:id", h.Wizard.Get)
	r.Delete("/wizard/:id", h.Wizard.Close)
	r.Put("/wizard/:id/steps/:step", h.Wizard.Edit)
	r.Post("/wizard/:id/steps/:step/confirm", h.Wizard.Confirm)
	r.Post("/wizard/:id/steps/:step/reopen", h.Wizard.Reopen)
	r.Post("/wizard/:id/cart", h.Wizard.AddToCart)

	// ============================================================
	// Cart
	// ============================================================

	r.Post("/carts", h.Cart.Create)
	r.Get("/carts/:id", h.Cart.Get)
	r.Delete("/carts/:id", h.Cart.Clear)
	r.Post("/carts/:id/items", h.Cart.AddItem)
	r.Put("/carts/:id/items/:itemId", h.Cart.ReplaceItem)
	r.Delete("/carts/:id/items/:itemId", h.Cart.RemoveItem)
	r.Post("/carts/:id/items/:itemId/edit", h.Cart.EditItem)
	r.Get("/carts/:id/order", h.Cart.Order)
	r.Post("/carts/:id/checkout", h.Cart.Checkout)
	r.Post("/carts/:id/quote-email", h.Cart.EmailQuote)

	// ============================================================
	// Visualizer
	// ============================================================

	r.Get("/visualizer/rooms", h.Visualizer.Rooms)
	r.Post("/visualizer/sessions", h.Visualizer.Start)
	r.Get("/visualizer/sessions/:id", h.Visualizer.Get)
	r.Delete("/visualizer/sessions/:id", h.Visualizer.Close)
	r.Post("/visualizer/sessions/:id/photos", h.Visualizer.UploadPhoto)
	r.Get("/visualizer/sessions/:id/photos/:photoId", h.Visualizer.Photo)
	r.Post("/visualizer/sessions/:id/load", h.Visualizer.Load)
	r.Put("/visualizer/sessions/:id/container", h.Visualizer.Resize)
	r.Put("/visualizer/sessions/:id/zoom", h.Visualizer.Zoom)
	r.Post("/visualizer/sessions/:id/pointer/:action", h.Visualizer.Pointer)
	r.Post("/visualizer/sessions/:id/undo", h.Visualizer.Undo)
	r.Post("/visualizer/sessions/:id/reset", h.Visualizer.Reset)
	r.Post("/visualizer/sessions/:id/confirm", h.Visualizer.Confirm)
	r.Get("/visualizer/sessions/:id/overlay.svg", h.Visualizer.Overlay)
}
