package session

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrPhotoNotFound is returned for an unknown photo id.
var ErrPhotoNotFound = errors.New("photo not found")

// MaxPhotoBytes caps uploaded room photos.
const MaxPhotoBytes = 15 << 20

type PhotoSource string

const (
	// SourceSystem photos ship with the store and skip room analysis.
	SourceSystem PhotoSource = "system"
	SourceUpload PhotoSource = "upload"
)

// Photo is a room image the shade is previewed on.
type Photo struct {
	ID       string      `json:"id"`
	URL      string      `json:"url"`
	Source   PhotoSource `json:"source"`
	MimeType string      `json:"mimeType"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
}

// Aspect is width/height, or 0 when the size is unknown.
func (p Photo) Aspect() float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	return float64(p.Width) / float64(p.Height)
}

// ============================================================
// Photo Storage
// ============================================================

type PhotoStorage struct {
	root string
}

func NewPhotoStorage(root string) *PhotoStorage {
	return &PhotoStorage{root: root}
}

func (s *PhotoStorage) SessionDir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

func (s *PhotoStorage) PhotoPath(sessionID, photoID, ext string) string {
	return filepath.Join(s.SessionDir(sessionID), photoID+ext)
}

func (s *PhotoStorage) EnsureDir(sessionID string) error {
	path := s.SessionDir(sessionID)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir session dir: %w", err)
	}
	return nil
}

// Save stores an uploaded photo and reads its pixel size.
func (s *PhotoStorage) Save(sessionID string, data []byte) (Photo, error) {
	if len(data) == 0 {
		return Photo{}, fmt.Errorf("photo is empty")
	}
	if len(data) > MaxPhotoBytes {
		return Photo{}, fmt.Errorf("photo exceeds %d bytes", MaxPhotoBytes)
	}

	mimeType := http.DetectContentType(data)
	ext, ok := photoExtensions[mimeType]
	if !ok {
		return Photo{}, fmt.Errorf("unsupported photo type %s", mimeType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Photo{}, fmt.Errorf("decode photo: %w", err)
	}

	if err := s.EnsureDir(sessionID); err != nil {
		return Photo{}, err
	}

	id := uuid.NewString()
	if err := os.WriteFile(s.PhotoPath(sessionID, id, ext), data, 0o644); err != nil {
		return Photo{}, fmt.Errorf("write photo: %w", err)
	}

	return Photo{
		ID:       id,
		URL:      "/api/v1/visualizer/sessions/" + sessionID + "/photos/" + id,
		Source:   SourceUpload,
		MimeType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// Open reads a stored photo back.
func (s *PhotoStorage) Open(sessionID, photoID string) ([]byte, string, error) {
	if _, err := uuid.Parse(photoID); err != nil {
		return nil, "", ErrPhotoNotFound
	}
	for mimeType, ext := range photoExtensions {
		data, err := os.ReadFile(s.PhotoPath(sessionID, photoID, ext))
		if err == nil {
			return data, mimeType, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("read photo: %w", err)
		}
	}
	return nil, "", ErrPhotoNotFound
}

// Remove deletes every photo of a session.
func (s *PhotoStorage) Remove(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return os.RemoveAll(s.SessionDir(sessionID))
}

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}
