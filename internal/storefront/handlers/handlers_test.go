package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"shade-store/internal/integrations/checkout"
	"shade-store/internal/integrations/email"
	"shade-store/internal/shades/cart"
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/pricing"
	"shade-store/internal/shades/wizard"
	"shade-store/internal/storefront/repository"
	"shade-store/internal/storefront/service"
	"shade-store/internal/visualizer/geometry"
	"shade-store/internal/visualizer/render"
	"shade-store/internal/visualizer/session"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCheckout struct {
	order cart.Order
	err   error
}

func (f *fakeCheckout) CreateDraftOrder(_ context.Context, order cart.Order, _ checkout.Customer) (*checkout.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.order = order
	return &checkout.Draft{ID: 7, InvoiceURL: "https://shop.example/invoices/7"}, nil
}

type fakeMailer struct {
	to  email.Quote
	err error
}

func (f *fakeMailer) SendQuote(_ context.Context, to email.Quote, _ cart.Order) error {
	f.to = to
	return f.err
}

type testServer struct {
	app      *fiber.App
	checkout *fakeCheckout
	mailer   *fakeMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	cat := catalog.MustDefault()

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.New(db, repository.SQLite)
	require.NoError(t, repo.Init(context.Background(), cat.Fabrics))

	engine := pricing.NewEngine(cat)
	resolver := service.NewResolver(repo, cat.Installers)
	carts := service.NewCartService(repo, engine, resolver, cat.Shapes)
	wizards := service.NewWizardSessions(cat.Shapes, engine, resolver)

	storage := session.NewPhotoStorage(t.TempDir())
	visualizers := session.NewManager(geometry.MustDefaults(), session.Options{Shapes: cat.Shapes, Photos: storage, Logger: log})

	ts := &testServer{checkout: &fakeCheckout{}, mailer: &fakeMailer{}}
	ts.app = fiber.New()
	health := NewHealthHandler(map[string]Pinger{"database": repo})
	ts.app.Get("/health/ready", health.ReadinessProbe)
	ts.app.Get("/docs/openapi.yaml", SwaggerSpec)
	RegisterRoutes(ts.app.Group("/api/v1"), Handlers{
		Catalog:    NewCatalogHandler(cat, repo, engine, log),
		Quote:      NewQuoteHandler(engine, resolver, log),
		Wizard:     NewWizardHandler(wizards, carts, log),
		Cart:       NewCartHandler(carts, wizards, ts.checkout, ts.mailer, log),
		Visualizer: NewVisualizerHandler(visualizers, storage, render.NewRenderer(), log),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

var standardBody = map[string]any{
	"shape":  "standard",
	"fabric": map[string]any{"id": "fab-001"},
	"dimensions": map[string]any{
		"width":  map[string]any{"whole": 36},
		"height": map[string]any{"whole": 60},
	},
	"quantity": 2,
}

func TestHealthAndDocs(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"database":"ok"`)

	resp, data = ts.do(t, http.MethodGet, "/docs/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Shade Storefront API")
}

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodGet, "/api/v1/catalog/shapes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shapes := decode[[]catalog.Shape](t, data)
	assert.Len(t, shapes, 10)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/catalog/shapes/octagon", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = ts.do(t, http.MethodGet, "/api/v1/catalog/fabrics?category=blackout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, f := range decode[[]map[string]any](t, data) {
		assert.Equal(t, "Blackout", f["category"])
	}

	resp, data = ts.do(t, http.MethodGet, "/api/v1/catalog/grids/c", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sheet := decode[pricing.PriceSheet](t, data)
	assert.Equal(t, 219.0, sheet.Rows[1][0])

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/catalog/grids/specialty", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, "/api/v1/catalog/grids/Q", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = ts.do(t, http.MethodGet, "/api/v1/catalog/installers/85004", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "sunbelt-shade-pros")
	resp, _ = ts.do(t, http.MethodGet, "/api/v1/catalog/installers/00000", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuoteRoute(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodPost, "/api/v1/quote", standardBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote := decode[pricing.Quote](t, data)
	assert.Equal(t, 219.0, quote.UnitPrice)
	assert.Equal(t, 438.0, quote.Total)

	unknown := map[string]any{
		"shape":  "standard",
		"fabric": map[string]any{"id": "not-in-catalog", "priceGroup": "A"},
		"dimensions": map[string]any{
			"width":  map[string]any{"whole": 36},
			"height": map[string]any{"whole": 60},
		},
	}
	resp, data = ts.do(t, http.MethodPost, "/api/v1/quote", unknown)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	quote = decode[pricing.Quote](t, data)
	assert.Equal(t, 219.0, quote.UnitPrice)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/quote", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodPost, "/api/v1/carts", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cartID := decode[service.CartView](t, data).ID

	resp, data = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/items", standardBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	added := decode[struct {
		Cart service.CartView `json:"cart"`
	}](t, data)
	require.Len(t, added.Cart.Items, 1)
	assert.Equal(t, 438.0, added.Cart.Totals.Total)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/items", map[string]any{"shape": "standard"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, data = ts.do(t, http.MethodGet, "/api/v1/carts/"+cartID+"/order", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	order := decode[cart.Order](t, data)
	assert.Equal(t, "438.00", order.Total)

	resp, data = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", map[string]any{"email": "sam@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, string(data), "https://shop.example/invoices/7")
	assert.Len(t, ts.checkout.order.Lines, 1)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/quote-email", map[string]any{"email": "sam@example.com", "name": "Sam"})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "Sam", ts.mailer.to.ToName)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/quote-email", map[string]any{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	itemID := added.Cart.Items[0].ID
	resp, data = ts.do(t, http.MethodDelete, "/api/v1/carts/"+cartID+"/items/"+itemID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[service.CartView](t, data).Items)

	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/api/v1/carts/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRoutes_IntegrationFailures(t *testing.T) {
	ts := newTestServer(t)

	_, data := ts.do(t, http.MethodPost, "/api/v1/carts", nil)
	cartID := decode[service.CartView](t, data).ID
	ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/items", standardBody)

	ts.checkout.err = checkout.ErrNotConfigured
	resp, _ := ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	ts.checkout.err = errors.New("received non-2xx status code: 500")
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/checkout", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	ts.mailer.err = email.ErrNotConfigured
	resp, _ = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/quote-email", map[string]any{"email": "a@b.c"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestWizardRoutes_ConfigureAndAddToCart(t *testing.T) {
	ts := newTestServer(t)

	_, data := ts.do(t, http.MethodPost, "/api/v1/carts", nil)
	cartID := decode[service.CartView](t, data).ID

	resp, data := ts.do(t, http.MethodPost, "/api/v1/wizard", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decode[service.WizardView](t, data)
	assert.Equal(t, wizard.StepShape, view.Current)
	base := "/api/v1/wizard/" + view.ID

	resp, _ = ts.do(t, http.MethodPost, base+"/steps/quantity/reopen", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, base+"/steps/colour/confirm", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, base+"/cart", nil, CartSessionHeader, cartID)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data = ts.do(t, http.MethodPut, base+"/steps/shape", standardBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Equal(t, 219.0, decode[service.WizardView](t, data).Quote.UnitPrice)

	for _, step := range wizard.Steps {
		resp, data = ts.do(t, http.MethodPost, base+"/steps/"+string(step)+"/confirm", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	}
	view = decode[service.WizardView](t, data)
	assert.True(t, view.Done)
	assert.Equal(t, `36" × 60"`, view.Steps[1].Summary)

	resp, _ = ts.do(t, http.MethodPost, base+"/cart", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = ts.do(t, http.MethodPost, base+"/cart", nil, CartSessionHeader, cartID)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	added := decode[struct {
		Cart service.CartView `json:"cart"`
	}](t, data)
	require.Len(t, added.Cart.Items, 1)

	resp, _ = ts.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// editing the item from the cart replaces it in place
	itemID := added.Cart.Items[0].ID
	resp, data = ts.do(t, http.MethodPost, "/api/v1/carts/"+cartID+"/items/"+itemID+"/edit", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	edit := decode[service.WizardView](t, data)
	assert.Equal(t, itemID, edit.ItemID)
	assert.True(t, edit.Done)

	resp, data = ts.do(t, http.MethodPost, "/api/v1/wizard/"+edit.ID+"/cart", nil, CartSessionHeader, cartID)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	replaced := decode[struct {
		Cart service.CartView `json:"cart"`
	}](t, data)
	require.Len(t, replaced.Cart.Items, 1)
	assert.Equal(t, itemID, replaced.Cart.Items[0].ID)
}

func TestVisualizerRoutes_SystemPhoto(t *testing.T) {
	ts := newTestServer(t)

	resp, data := ts.do(t, http.MethodPost, "/api/v1/visualizer/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[struct {
		ID string `json:"id"`
	}](t, data).ID
	base := "/api/v1/visualizer/sessions/" + id

	resp, _ = ts.do(t, http.MethodPost, base+"/pointer/press", geometry.Point{X: 10, Y: 10})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, data = ts.do(t, http.MethodPost, base+"/load", map[string]any{"shape": "standard", "photoId": "bedroom"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session.StateSeeded, decode[session.View](t, data).State)

	resp, _ = ts.do(t, http.MethodPut, base+"/container", map[string]any{"width": 800, "height": 600})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ts.do(t, http.MethodPost, base+"/pointer/press", geometry.Point{X: 600, Y: 400})
	ts.do(t, http.MethodPost, base+"/pointer/drag", geometry.Point{X: 300, Y: 200})
	resp, data = ts.do(t, http.MethodPost, base+"/pointer/release", geometry.Point{X: 200, Y: 100})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rect, ok := decode[session.View](t, data).Selection.Rect()
	require.True(t, ok)
	assert.Less(t, rect.W, 0.0)

	resp, data = ts.do(t, http.MethodPost, base+"/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode[session.View](t, data)
	assert.Equal(t, session.StateConfirmed, confirmed.State)
	assert.True(t, confirmed.AnalysisSkipped)

	resp, data = ts.do(t, http.MethodGet, base+"/overlay.svg?swatch=/swatches/fab-001.jpg", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(data), `<rect x="200" `)
	assert.Contains(t, string(data), `width="400"`)
	assert.Contains(t, string(data), `url(#fabric)`)

	resp, _ = ts.do(t, http.MethodPost, base+"/undo", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, base+"/pointer/wiggle", geometry.Point{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVisualizerRoutes_Upload(t *testing.T) {
	ts := newTestServer(t)

	_, data := ts.do(t, http.MethodPost, "/api/v1/visualizer/sessions", nil)
	id := decode[struct {
		ID string `json:"id"`
	}](t, data).ID
	base := "/api/v1/visualizer/sessions/" + id

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 40, 30))))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", "room.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, base+"/photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	photo := decode[session.Photo](t, raw)
	assert.Equal(t, 40, photo.Width)
	assert.True(t, strings.HasPrefix(photo.URL, base+"/photos/"))

	resp, data = ts.do(t, http.MethodGet, photo.URL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, img.Bytes(), data)

	resp, data = ts.do(t, http.MethodPost, base+"/load", map[string]any{"shape": "pentagon", "photoId": photo.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[session.View](t, data)
	_, isPoly := view.Selection.Polygon()
	assert.True(t, isPoly)

	resp, _ = ts.do(t, http.MethodPost, base+"/load", map[string]any{"photoId": "someone-elses"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
