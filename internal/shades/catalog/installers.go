package catalog

import (
	"fmt"
	"io"
	"strings"

	"shade-store/internal/shades/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Installers
// ============================================================

// ZipPrefixLength is how many leading zip digits select an installer.
const ZipPrefixLength = 3

type installerEntry struct {
	models.Installer `yaml:",inline"`
	ZipPrefixes      []string `yaml:"zipPrefixes"`
}

type installerFile struct {
	Installers []installerEntry `yaml:"installers"`
}

// Installers maps zip prefixes to the installer serving them.
type Installers struct {
	byPrefix map[string]models.Installer
}

func LoadInstallers(r io.Reader) (*Installers, error) {
	var raw installerFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode installers: %w", err)
	}

	inst := &Installers{byPrefix: make(map[string]models.Installer)}
	for _, e := range raw.Installers {
		for _, prefix := range e.ZipPrefixes {
			if len(prefix) != ZipPrefixLength {
				return nil, fmt.Errorf("installer %s: bad zip prefix %q", e.ID, prefix)
			}
			if other, dup := inst.byPrefix[prefix]; dup {
				return nil, fmt.Errorf("zip prefix %s claimed by %s and %s", prefix, other.ID, e.ID)
			}
			inst.byPrefix[prefix] = e.Installer
		}
	}
	return inst, nil
}

// ForZip finds the installer for a zip code by its prefix.
func (i *Installers) ForZip(zip string) (models.Installer, bool) {
	zip = strings.TrimSpace(zip)
	if len(zip) < ZipPrefixLength {
		return models.Installer{}, false
	}
	inst, ok := i.byPrefix[zip[:ZipPrefixLength]]
	return inst, ok
}
