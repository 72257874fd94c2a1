package session

import (
	"sync"

	"shade-store/internal/visualizer/geometry"

	"github.com/google/uuid"
)

// SystemPhotos are the stock rooms offered before the customer uploads one.
var SystemPhotos = []Photo{
	{ID: "living-room", URL: "/rooms/living-room.jpg", Source: SourceSystem, MimeType: "image/jpeg", Width: 1600, Height: 1067},
	{ID: "bedroom", URL: "/rooms/bedroom.jpg", Source: SourceSystem, MimeType: "image/jpeg", Width: 1600, Height: 1200},
	{ID: "kitchen", URL: "/rooms/kitchen.jpg", Source: SourceSystem, MimeType: "image/jpeg", Width: 1200, Height: 1600},
	{ID: "vaulted-great-room", URL: "/rooms/vaulted-great-room.jpg", Source: SourceSystem, MimeType: "image/jpeg", Width: 1920, Height: 1080},
}

func FindSystemPhoto(id string) (Photo, bool) {
	for _, p := range SystemPhotos {
		if p.ID == id {
			return p, true
		}
	}
	return Photo{}, false
}

// ============================================================
// Session Manager
// ============================================================

// Manager hands out visualizer sessions keyed by an opaque id.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Visualizer
	uploads  map[string]map[string]Photo // session id -> photo id -> photo

	defaults *geometry.Defaults
	opts     Options
}

func NewManager(defaults *geometry.Defaults, opts Options) *Manager {
	return &Manager{
		sessions: make(map[string]*Visualizer),
		uploads:  make(map[string]map[string]Photo),
		defaults: defaults,
		opts:     opts,
	}
}

// Issue starts a new session and returns its id.
func (m *Manager) Issue() (string, *Visualizer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	v := NewVisualizer(id, m.defaults, m.opts)
	m.sessions[id] = v
	return id, v
}

func (m *Manager) Resolve(id string) (*Visualizer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.sessions[id]
	return v, ok
}

// Remember records an uploaded photo so later Load calls can find it by id.
func (m *Manager) Remember(sessionID string, photo Photo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploads[sessionID] == nil {
		m.uploads[sessionID] = make(map[string]Photo)
	}
	m.uploads[sessionID][photo.ID] = photo
}

// Photo finds a photo visible to the session: a system photo or one it
// uploaded.
func (m *Manager) Photo(sessionID, photoID string) (Photo, bool) {
	if p, ok := FindSystemPhoto(photoID); ok {
		return p, true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.uploads[sessionID][photoID]
	return p, ok
}

func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	delete(m.uploads, id)
}
