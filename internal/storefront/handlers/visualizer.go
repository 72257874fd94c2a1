package handlers

import (
	"io"
	"net/http"
	"strconv"

	"shade-store/internal/shades/models"
	"shade-store/internal/visualizer/geometry"
	"shade-store/internal/visualizer/render"
	"shade-store/internal/visualizer/session"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Visualizer Handler
// ============================================================

type VisualizerHandler struct {
	sessions *session.Manager
	storage  *session.PhotoStorage
	renderer *render.Renderer
	log      *zap.Logger
}

func NewVisualizerHandler(sessions *session.Manager, storage *session.PhotoStorage, renderer *render.Renderer, log *zap.Logger) *VisualizerHandler {
	return &VisualizerHandler{sessions: sessions, storage: storage, renderer: renderer, log: log}
}

type loadRequest struct {
	Shape   models.ShapeID `json:"shape"`
	PhotoID string         `json:"photoId"`
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type zoomRequest struct {
	Zoom float64 `json:"zoom"`
}

func (h *VisualizerHandler) Rooms(c fiber.Ctx) error {
	return c.JSON(session.SystemPhotos)
}

func (h *VisualizerHandler) Start(c fiber.Ctx) error {
	id, v := h.sessions.Issue()
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id, "view": v.View()})
}

func (h *VisualizerHandler) Get(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	return c.JSON(v.View())
}

// Close forgets the session and deletes its uploaded photos.
func (h *VisualizerHandler) Close(c fiber.Ctx) error {
	id := c.Params("id")
	h.sessions.Close(id)
	if err := h.storage.Remove(id); err != nil {
		h.log.Warn("remove session photos", zap.String("session", id), zap.Error(err))
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Photos
// ============================================================

// UploadPhoto stores a room photo from the multipart field "photo".
func (h *VisualizerHandler) UploadPhoto(c fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.sessions.Resolve(id); !ok {
		return notFoundSession(c)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return badRequest(c, "photo required")
	}
	if fileHeader.Size > session.MaxPhotoBytes {
		return c.Status(http.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "photo is too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, session.MaxPhotoBytes+1))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	photo, err := h.storage.Save(id, data)
	if err != nil {
		h.log.Info("photo rejected", zap.String("session", id), zap.Error(err))
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	h.sessions.Remember(id, photo)

	h.log.Info("photo uploaded",
		zap.String("session", id),
		zap.String("photo", photo.ID),
		zap.Int("width", photo.Width),
		zap.Int("height", photo.Height))
	return c.Status(http.StatusCreated).JSON(photo)
}

func (h *VisualizerHandler) Photo(c fiber.Ctx) error {
	data, mimeType, err := h.storage.Open(c.Params("id"), c.Params("photoId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, mimeType)
	return c.Send(data)
}

// ============================================================
// Selection
// ============================================================

// Load selects the shape and photo; a change seeds the default outline.
func (h *VisualizerHandler) Load(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	var req loadRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	photo, ok := h.sessions.Photo(c.Params("id"), req.PhotoID)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "photo not found"})
	}
	shape := req.Shape
	if shape == "" {
		shape = models.ShapeStandard
	}
	return c.JSON(v.Load(shape, photo))
}

func (h *VisualizerHandler) Resize(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	var req sizeRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Width <= 0 || req.Height <= 0 {
		return badRequest(c, "width and height must be positive")
	}
	return c.JSON(v.Resize(req.Width, req.Height))
}

func (h *VisualizerHandler) Zoom(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	var req zoomRequest
	if err := decodeBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(v.SetZoom(req.Zoom))
}

// Pointer forwards press, drag and release events in container pixels.
func (h *VisualizerHandler) Pointer(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	var p geometry.Point
	if err := decodeBody(c, &p); err != nil {
		return badRequest(c, err.Error())
	}

	var (
		view session.View
		err  error
	)
	switch c.Params("action") {
	case "press":
		view, err = v.Press(p)
	case "drag":
		view, err = v.Drag(p)
	case "release":
		view, err = v.Release(p)
	default:
		return badRequest(c, "unknown pointer action")
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *VisualizerHandler) Undo(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	view, err := v.Undo()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *VisualizerHandler) Reset(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	return c.JSON(v.Reset())
}

// Confirm may wait for the room analyzer; the analyzer's own timeout bounds it.
func (h *VisualizerHandler) Confirm(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	view, err := v.Confirm(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

// Overlay renders the selection as SVG. ?swatch= is the fabric image URL,
// ?color= the flat fill used without one, ?opacity= the fill opacity.
func (h *VisualizerHandler) Overlay(c fiber.Ctx) error {
	v, ok := h.resolve(c)
	if !ok {
		return notFoundSession(c)
	}
	view := v.View()

	opacity, _ := strconv.ParseFloat(c.Query("opacity"), 64)
	svg, err := h.renderer.Render(render.Overlay{
		ContainerWidth:  view.ContainerWidth,
		ContainerHeight: view.ContainerHeight,
		Box:             view.Box,
		Selection:       view.Selection,
		FabricImage:     c.Query("swatch"),
		Color:           c.Query("color"),
		Zoom:            view.Zoom,
		Opacity:         opacity,
	})
	if err != nil {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.SendString(svg)
}

func (h *VisualizerHandler) resolve(c fiber.Ctx) (*session.Visualizer, bool) {
	return h.sessions.Resolve(c.Params("id"))
}

func notFoundSession(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "visualizer session not found"})
}
