package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"shade-store/internal/shades/models"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	PriceGridsFile = "price_grids.yaml"
	ModifiersFile  = "modifiers.yaml"
	InstallersFile = "installers.yaml"
	FabricsFile    = "fabrics.yaml"
)

// Catalog bundles the static lookup tables the pricing engine reads. It is
// loaded once at start-up and never mutated afterwards.
type Catalog struct {
	Shapes     *Shapes
	Grids      *PriceGrids
	Modifiers  Modifiers
	Installers *Installers
	Fabrics    []models.Fabric
}

// Default loads the embedded catalog.
func Default() (*Catalog, error) {
	return Load("")
}

// MustDefault is Default for tests and tools where the embedded data is known good.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads the catalog, preferring files found in overrideDir over the
// embedded copies. An empty overrideDir uses only embedded data.
func Load(overrideDir string) (*Catalog, error) {
	c := &Catalog{Shapes: DefaultShapes()}

	err := withFile(overrideDir, PriceGridsFile, func(r io.Reader) (loadErr error) {
		c.Grids, loadErr = LoadPriceGrids(r)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	err = withFile(overrideDir, ModifiersFile, func(r io.Reader) (loadErr error) {
		c.Modifiers, loadErr = LoadModifiers(r)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	err = withFile(overrideDir, InstallersFile, func(r io.Reader) (loadErr error) {
		c.Installers, loadErr = LoadInstallers(r)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	err = withFile(overrideDir, FabricsFile, func(r io.Reader) (loadErr error) {
		c.Fabrics, loadErr = LoadFabrics(r)
		return loadErr
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func withFile(overrideDir, name string, fn func(io.Reader) error) error {
	if overrideDir != "" {
		f, err := os.Open(filepath.Join(overrideDir, name))
		switch {
		case err == nil:
			defer f.Close()
			if err := fn(f); err != nil {
				return fmt.Errorf("%s: %w", f.Name(), err)
			}
			return nil
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("open %s: %w", name, err)
		}
	}

	f, err := dataFS.Open("data/" + name)
	if err != nil {
		return fmt.Errorf("open embedded %s: %w", name, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("embedded %s: %w", name, err)
	}
	return nil
}

// FindFabric looks a fabric up in the seed list.
func (c *Catalog) FindFabric(id string) (models.Fabric, bool) {
	for _, f := range c.Fabrics {
		if f.ID == id {
			return f, true
		}
	}
	return models.Fabric{}, false
}
