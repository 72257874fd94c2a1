package cli

import (
	"fmt"
	"os"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/pricing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// env carries what every subcommand needs once the catalog is loaded.
type env struct {
	catalogDir string
	catalog    *catalog.Catalog
	engine     *pricing.Engine
}

func NewRootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:   "shadectl",
		Short: "Quote and inspect custom window shades from the command line",
		Long: `shadectl prices shade configurations and prints the catalog data the
storefront uses: shapes, fabrics and price grids.

Catalog files found in --catalog-dir (or CATALOG_DIR) override the built-in data.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			dir := e.catalogDir
			if dir == "" {
				dir = os.Getenv("CATALOG_DIR")
			}
			c, err := catalog.Load(dir)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			e.catalog = c
			e.engine = pricing.NewEngine(c)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&e.catalogDir, "catalog-dir", "", "directory with catalog YAML overrides")

	cmd.AddCommand(
		newQuoteCmd(e),
		newGridCmd(e),
		newShapesCmd(e),
		newFabricsCmd(e),
	)

	return cmd
}
