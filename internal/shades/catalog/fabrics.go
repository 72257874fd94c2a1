package catalog

import (
	"fmt"
	"io"
	"strings"

	"shade-store/internal/shades/models"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Fabric Catalog
// ============================================================

type fabricEntry struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	PriceGroup string `yaml:"priceGroup"`
}

type fabricFile struct {
	Fabrics []fabricEntry `yaml:"fabrics"`
}

// LoadFabrics decodes the seed fabric list, normalizing categories, price
// groups and collections.
func LoadFabrics(r io.Reader) ([]models.Fabric, error) {
	var raw fabricFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode fabrics: %w", err)
	}

	out := make([]models.Fabric, 0, len(raw.Fabrics))
	seen := make(map[string]bool, len(raw.Fabrics))
	for _, e := range raw.Fabrics {
		if e.ID == "" {
			return nil, fmt.Errorf("fabric %q has no id", e.Name)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate fabric id %s", e.ID)
		}
		seen[e.ID] = true
		out = append(out, NormalizeFabric(models.Fabric{
			ID:         e.ID,
			Name:       e.Name,
			Category:   models.Category(e.Category),
			PriceGroup: models.PriceGroup(e.PriceGroup),
		}))
	}
	return out, nil
}

// NormalizeFabric fills in the defaults the catalog guarantees: a valid price
// group, a known category and a collection.
func NormalizeFabric(f models.Fabric) models.Fabric {
	f.PriceGroup = f.Group()
	f.Category = ParseCategory(string(f.Category), f.Name)
	if f.Collection == "" {
		f.Collection = CollectionFor(f.Name)
	}
	return f
}

// ParseCategory accepts the two catalog categories case-insensitively. When
// the value is unknown the fabric name decides.
func ParseCategory(raw, name string) models.Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "blackout":
		return models.CategoryBlackout
	case "light filtering", "light-filtering", "lightfiltering":
		return models.CategoryLightFiltering
	}
	if strings.Contains(strings.ToLower(name), "blackout") {
		return models.CategoryBlackout
	}
	return models.CategoryLightFiltering
}

// collectionKeywords is matched in order against the lowercased fabric name;
// the first hit wins.
var collectionKeywords = []struct {
	keyword    string
	collection string
}{
	{"solar", "Solar Screen"},
	{"screen", "Solar Screen"},
	{"sheer", "Sheer"},
	{"voile", "Sheer"},
	{"jute", "Natural Woven"},
	{"woven", "Natural Woven"},
	{"bamboo", "Natural Woven"},
	{"linen", "Linen"},
	{"velvet", "Luxe"},
	{"silk", "Luxe"},
	{"vinyl", "Essentials"},
	{"basic", "Essentials"},
}

const defaultCollection = "Signature"

// CollectionFor picks the merchandising collection for a fabric name.
func CollectionFor(name string) string {
	lower := strings.ToLower(name)
	for _, k := range collectionKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.collection
		}
	}
	return defaultCollection
}

// FilterByCategory keeps fabrics of the given category; an empty category keeps all.
func FilterByCategory(fabrics []models.Fabric, category models.Category) []models.Fabric {
	if category == "" {
		return fabrics
	}
	var out []models.Fabric
	for _, f := range fabrics {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}
