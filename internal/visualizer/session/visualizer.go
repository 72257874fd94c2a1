package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"shade-store/internal/integrations/analysis"
	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/visualizer/geometry"

	"go.uber.org/zap"
)

var (
	ErrNoPhoto        = errors.New("no photo loaded")
	ErrNoContainer    = errors.New("container size not set")
	ErrWrongMode      = errors.New("interaction does not match the shape's selection mode")
	ErrNotDragging    = errors.New("no drag in progress")
	ErrEmptySelection = errors.New("selection is empty")
	ErrSuperseded     = errors.New("confirm superseded by a newer change")
)

// DefaultAnalysisTimeout bounds the room analysis call on confirm.
const DefaultAnalysisTimeout = 20 * time.Second

type State string

const (
	StateEmpty     State = "empty"
	StateSeeded    State = "seeded"
	StateDrawing   State = "drawing"
	StateConfirmed State = "confirmed"
)

// Analyzer reads a room photo. Implemented by the Gemini client.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, mimeType string) (*analysis.RoomAnalysis, error)
}

// PhotoReader loads the bytes of an uploaded photo.
type PhotoReader interface {
	Open(sessionID, photoID string) ([]byte, string, error)
}

// View is a read-only copy of the visualizer.
type View struct {
	State           State                      `json:"state"`
	Shape           models.ShapeID             `json:"shape"`
	Photo           *Photo                     `json:"photo,omitempty"`
	ContainerWidth  float64                    `json:"containerWidth"`
	ContainerHeight float64                    `json:"containerHeight"`
	Box             geometry.ImageBox          `json:"box"`
	Selection       geometry.Selection         `json:"selection"`
	Zoom            float64                    `json:"zoom"`
	Pattern         *geometry.PatternTransform `json:"pattern,omitempty"`
	Analysis        *analysis.RoomAnalysis     `json:"analysis,omitempty"`
	AnalysisSkipped bool                       `json:"analysisSkipped"`
}

// ============================================================
// Visualizer
// ============================================================

// Visualizer holds the selection for one shape/photo pair in one browser
// session. Changing the shape or the photo starts over.
type Visualizer struct {
	mu sync.Mutex

	sessionID string
	shapes    *catalog.Shapes
	defaults  *geometry.Defaults
	analyzer  Analyzer
	photos    PhotoReader
	timeout   time.Duration
	log       *zap.Logger

	shape     models.ShapeID
	photo     *Photo
	state     State
	selection geometry.Selection
	dragStart *geometry.Point

	containerW, containerH float64
	zoom                   float64

	// generation bumps on every change so a slow confirm can tell it is stale
	generation uint64
	result     *analysis.RoomAnalysis
	skipped    bool
}

type Options struct {
	// Shapes resolves shape ids; unknown ids draw as the standard rectangle.
	// Nil uses the built-in catalog.
	Shapes   *catalog.Shapes
	Analyzer Analyzer
	Photos   PhotoReader
	Timeout  time.Duration
	Logger   *zap.Logger
}

func NewVisualizer(sessionID string, defaults *geometry.Defaults, opts Options) *Visualizer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultAnalysisTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Shapes == nil {
		opts.Shapes = catalog.DefaultShapes()
	}
	return &Visualizer{
		sessionID: sessionID,
		shapes:    opts.Shapes,
		defaults:  defaults,
		analyzer:  opts.Analyzer,
		photos:    opts.Photos,
		timeout:   opts.Timeout,
		log:       opts.Logger,
		shape:     models.ShapeStandard,
		state:     StateEmpty,
		zoom:      geometry.DefaultZoom,
	}
}

// Load points the visualizer at a shape and photo. The default selection is
// seeded once per change; loading the same pair again keeps the current
// selection. Shapes missing from the catalog load as standard.
func (v *Visualizer) Load(shape models.ShapeID, photo Photo) View {
	v.mu.Lock()
	defer v.mu.Unlock()

	shape = v.shapes.Lookup(shape).ID

	if v.photo != nil && v.photo.ID == photo.ID && v.shape == shape {
		return v.viewLocked()
	}

	p := photo
	v.shape = shape
	v.photo = &p
	v.resetLocked()

	v.selection = v.defaults.For(shape)
	v.state = StateSeeded
	return v.viewLocked()
}

// Resize records the container size the client draws into.
func (v *Visualizer) Resize(width, height float64) View {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.containerW, v.containerH = width, height
	return v.viewLocked()
}

func (v *Visualizer) SetZoom(zoom float64) View {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.zoom = geometry.ClampZoom(zoom)
	return v.viewLocked()
}

// Reset clears the selection without touching shape or photo.
func (v *Visualizer) Reset() View {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resetLocked()
	return v.viewLocked()
}

// ============================================================
// Pointer input (container pixels)
// ============================================================

// Press starts a rectangle drag (standard shape) or adds a polygon vertex
// (specialty shapes).
func (v *Visualizer) Press(p geometry.Point) (View, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rel, err := v.toRelativeLocked(p)
	if err != nil {
		return View{}, err
	}

	v.beginEditLocked()
	if v.shape.IsSpecialty() {
		v.selection = geometry.AppendVertex(v.selection, rel)
		return v.viewLocked(), nil
	}

	v.dragStart = &rel
	v.selection = geometry.RectSelection(geometry.DragRect(rel, rel))
	return v.viewLocked(), nil
}

// Drag updates the rectangle while the pointer moves.
func (v *Visualizer) Drag(p geometry.Point) (View, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.dragLocked(p); err != nil {
		return View{}, err
	}
	return v.viewLocked(), nil
}

// Release ends the drag at p.
func (v *Visualizer) Release(p geometry.Point) (View, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.dragLocked(p); err != nil {
		return View{}, err
	}
	v.dragStart = nil
	return v.viewLocked(), nil
}

func (v *Visualizer) dragLocked(p geometry.Point) error {
	if v.shape.IsSpecialty() {
		return ErrWrongMode
	}
	if v.dragStart == nil {
		return ErrNotDragging
	}
	rel, err := v.toRelativeLocked(p)
	if err != nil {
		return err
	}

	v.generation++
	v.selection = geometry.RectSelection(geometry.DragRect(*v.dragStart, rel))
	return nil
}

// Undo removes the last polygon vertex.
func (v *Visualizer) Undo() (View, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.shape.IsSpecialty() {
		return View{}, ErrWrongMode
	}
	v.beginEditLocked()
	v.selection = geometry.UndoVertex(v.selection)
	if v.selection.IsEmpty() {
		v.state = StateEmpty
	}
	return v.viewLocked(), nil
}

// ============================================================
// Confirm
// ============================================================

// Confirm locks in the selection. Uploaded photos are sent to the room
// analyzer first; system photos, a missing analyzer, a failure or a timeout
// all confirm without analysis. A newer change made while the analyzer runs
// wins and this call returns ErrSuperseded.
func (v *Visualizer) Confirm(ctx context.Context) (View, error) {
	v.mu.Lock()
	if v.photo == nil {
		v.mu.Unlock()
		return View{}, ErrNoPhoto
	}
	if v.selection.IsEmpty() {
		v.mu.Unlock()
		return View{}, ErrEmptySelection
	}

	v.generation++
	gen := v.generation
	v.dragStart = nil

	if v.photo.Source != SourceUpload || v.analyzer == nil || v.photos == nil {
		v.finishConfirmLocked(nil)
		view := v.viewLocked()
		v.mu.Unlock()
		return view, nil
	}

	photo := *v.photo
	v.mu.Unlock()

	result := v.analyze(ctx, photo)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return View{}, ErrSuperseded
	}
	v.finishConfirmLocked(result)
	return v.viewLocked(), nil
}

func (v *Visualizer) analyze(ctx context.Context, photo Photo) *analysis.RoomAnalysis {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	data, mimeType, err := v.photos.Open(v.sessionID, photo.ID)
	if err != nil {
		v.log.Warn("room photo unreadable, confirming without analysis",
			zap.String("session", v.sessionID), zap.String("photo", photo.ID), zap.Error(err))
		return nil
	}

	result, err := v.analyzer.Analyze(ctx, data, mimeType)
	if err != nil {
		v.log.Warn("room analysis failed, confirming without analysis",
			zap.String("session", v.sessionID), zap.String("photo", photo.ID), zap.Error(err))
		return nil
	}
	return result
}

func (v *Visualizer) finishConfirmLocked(result *analysis.RoomAnalysis) {
	v.state = StateConfirmed
	v.result = result
	v.skipped = result == nil
}

// View returns the current state.
func (v *Visualizer) View() View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewLocked()
}

// ============================================================
// Helpers (caller holds mu)
// ============================================================

func (v *Visualizer) resetLocked() {
	v.generation++
	v.state = StateEmpty
	v.selection = geometry.Selection{}
	v.dragStart = nil
	v.result = nil
	v.skipped = false
}

// beginEditLocked moves to drawing. A seeded default is dropped, not edited.
func (v *Visualizer) beginEditLocked() {
	v.generation++
	switch v.state {
	case StateSeeded:
		v.selection = geometry.Selection{}
	case StateConfirmed:
		v.result = nil
		v.skipped = false
	}
	v.state = StateDrawing
}

func (v *Visualizer) boxLocked() geometry.ImageBox {
	if v.photo == nil {
		return geometry.ImageBox{}
	}
	return geometry.ContainBox(v.containerW, v.containerH, v.photo.Aspect())
}

func (v *Visualizer) toRelativeLocked(p geometry.Point) (geometry.Point, error) {
	if v.photo == nil {
		return geometry.Point{}, ErrNoPhoto
	}
	box := v.boxLocked()
	if box.IsZero() {
		return geometry.Point{}, ErrNoContainer
	}
	return box.ToRelative(p), nil
}

func (v *Visualizer) viewLocked() View {
	view := View{
		State:           v.state,
		Shape:           v.shape,
		ContainerWidth:  v.containerW,
		ContainerHeight: v.containerH,
		Box:             v.boxLocked(),
		Selection:       v.selection,
		Zoom:            v.zoom,
		Analysis:        v.result,
		AnalysisSkipped: v.skipped,
	}
	if v.photo != nil {
		p := *v.photo
		view.Photo = &p
	}
	if tr, ok := geometry.PatternFor(view.Box, v.selection, v.zoom); ok {
		view.Pattern = &tr
	}
	return view
}
