package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"

	"github.com/spf13/cobra"
)

// ============================================================
// Price grids
// ============================================================

func newGridCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "grid [group|specialty]",
		Short: "Print a price grid (heights down, widths across)",
		Long: `Print the price grid for a fabric price group, or the specialty grid used
for every non-rectangular shape. Without an argument the available groups are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				groups := e.engine.Groups()
				names := make([]string, len(groups))
				for i, g := range groups {
					names[i] = string(g)
				}
				fmt.Fprintf(out, "groups: %s, specialty\n", strings.Join(names, " "))
				return nil
			}

			specialty := strings.EqualFold(args[0], "specialty")
			sheet, ok := e.engine.Sheet(specialty, models.PriceGroup(strings.ToUpper(args[0])))
			if !ok {
				return fmt.Errorf("no price grid for %q", args[0])
			}

			w := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "%s\t", sheet.Name)
			for _, bp := range sheet.Breakpoints {
				fmt.Fprintf(w, "%s\t", strconv.FormatFloat(bp, 'f', -1, 64))
			}
			fmt.Fprintln(w)
			for h, row := range sheet.Rows {
				fmt.Fprintf(w, "%s\t", strconv.FormatFloat(sheet.Breakpoints[h], 'f', -1, 64))
				for _, price := range row {
					fmt.Fprintf(w, "%s\t", strconv.FormatFloat(price, 'f', -1, 64))
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

// ============================================================
// Shapes and fabrics
// ============================================================

func newShapesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "List supported shapes and the measurements each needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tGRID\tFIELDS")
			for _, s := range e.catalog.Shapes.All() {
				grid := "group"
				if s.IsSpecialty() {
					grid = "specialty"
				}
				keys := make([]string, len(s.Fields))
				for i, f := range s.Fields {
					keys[i] = f.Key
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, grid, strings.Join(keys, ", "))
			}
			return w.Flush()
		},
	}
}

func newFabricsCmd(e *env) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "fabrics",
		Short: "List the seed fabric catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fabrics := e.catalog.Fabrics
			if category != "" {
				fabrics = catalog.FilterByCategory(fabrics, catalog.ParseCategory(category, ""))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tGROUP\tCOLLECTION")
			for _, f := range fabrics {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Category, f.Group(), f.Collection)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "blackout or light-filtering")

	return cmd
}
