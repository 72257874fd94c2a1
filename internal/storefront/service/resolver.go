package service

import (
	"context"
	"errors"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/storefront/repository"
)

// FabricStore is the fabric lookup the resolver needs.
type FabricStore interface {
	GetFabric(ctx context.Context, id string) (models.Fabric, error)
}

// ============================================================
// Configuration Resolver
// ============================================================

// Resolver replaces client-supplied catalog data in a configuration with the
// stored records: the fabric is reloaded by id and the installer is looked up
// from the zip code. Prices can then never depend on what a browser sent.
// A fabric id missing from the catalog keeps its id and prices at the
// default group.
type Resolver struct {
	fabrics    FabricStore
	installers *catalog.Installers
}

func NewResolver(fabrics FabricStore, installers *catalog.Installers) *Resolver {
	return &Resolver{fabrics: fabrics, installers: installers}
}

func (r *Resolver) Resolve(ctx context.Context, cfg models.ShadeConfiguration) (models.ShadeConfiguration, error) {
	if cfg.Fabric != nil {
		if cfg.Fabric.ID == "" {
			cfg.Fabric = nil
		} else {
			f, err := r.fabrics.GetFabric(ctx, cfg.Fabric.ID)
			if err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					return cfg, err
				}
				f = catalog.NormalizeFabric(models.Fabric{
					ID:         cfg.Fabric.ID,
					Name:       cfg.Fabric.Name,
					PriceGroup: models.DefaultPriceGroup,
				})
			}
			cfg = cfg.WithFabric(f)
		}
	}

	cfg.Installer = nil
	if cfg.ZipCode != "" && r.installers != nil {
		if inst, ok := r.installers.ForZip(cfg.ZipCode); ok {
			cfg.Installer = &inst
		}
	}
	return cfg, nil
}
