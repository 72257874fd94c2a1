package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"

	"github.com/spf13/cobra"
)

type quoteOptions struct {
	shape       string
	dims        []string
	fabric      string
	group       string
	service     string
	zip         string
	mount       string
	valance     string
	sideChannel string
	quantity    int

	motor     string
	remote    bool
	hub       bool
	charger   bool
	sunSensor bool

	asJSON bool
}

func newQuoteCmd(e *env) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price one shade configuration",
		Example: `  shadectl quote --dim width=36 --dim height="60 1/2" --group C
  shadectl quote --shape pentagon --dim width=48 --dim leftHeight=40 \
    --dim rightHeight=40 --dim centerHeight=60 --fabric fab-003 --remote`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configuration(e)
			if err != nil {
				return err
			}
			q := e.engine.Price(cfg)

			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Config models.ShadeConfiguration `json:"config"`
					Quote  pricing.Quote             `json:"quote"`
				}{cfg, q})
			}
			return printQuote(cmd, cfg, q)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.shape, "shape", string(models.ShapeStandard), "shape id (see `shadectl shapes`)")
	f.StringArrayVar(&opts.dims, "dim", nil, `dimension as key=inches, e.g. width="36 3/8" (repeatable)`)
	f.StringVar(&opts.fabric, "fabric", "", "fabric id from the catalog")
	f.StringVar(&opts.group, "group", "", "price group letter when no fabric id is given")
	f.StringVar(&opts.service, "service", string(models.ServiceSelfMeasure), "self-measure, measure-only, measure-and-install or install-only")
	f.StringVar(&opts.zip, "zip", "", "customer zip code for installer pricing")
	f.StringVar(&opts.mount, "mount", string(models.InsideMount), "mount type")
	f.StringVar(&opts.valance, "valance", string(models.ValanceNone), "none, square-fascia, round-cassette or fabric-wrapped")
	f.StringVar(&opts.sideChannel, "side-channel", string(models.SideChannelNone), "none or standard")
	f.IntVar(&opts.quantity, "quantity", 1, "number of identical shades")
	f.StringVar(&opts.motor, "motor", "", "motorize with a power source: battery, hardwired or solar")
	f.BoolVar(&opts.remote, "remote", false, "add a remote (motorized only)")
	f.BoolVar(&opts.hub, "hub", false, "add a smart hub (motorized only)")
	f.BoolVar(&opts.charger, "charger", false, "add a charger (motorized only)")
	f.BoolVar(&opts.sunSensor, "sun-sensor", false, "add a sun sensor (motorized only)")
	f.BoolVar(&opts.asJSON, "json", false, "print the configuration and quote as JSON")

	return cmd
}

// configuration turns the flags into a configuration the engine can price.
func (o *quoteOptions) configuration(e *env) (models.ShadeConfiguration, error) {
	shape := e.catalog.Shapes.Lookup(models.ShapeID(o.shape))

	values := make(map[string]models.Dimension, len(o.dims))
	for _, raw := range o.dims {
		key, val, ok := strings.Cut(raw, "=")
		if !ok {
			return models.ShadeConfiguration{}, fmt.Errorf("dimension %q: expected key=inches", raw)
		}
		d, err := ParseDimension(val)
		if err != nil {
			return models.ShadeConfiguration{}, fmt.Errorf("dimension %q: %w", key, err)
		}
		values[strings.TrimSpace(key)] = d
	}

	cfg := models.NewConfiguration().WithShape(shape.ID)
	cfg.Measurements = shape.Measurements(values)
	cfg.ServicePath = models.ServicePath(o.service)
	cfg.Mount = models.Mount(o.mount)
	cfg.Valance = models.Valance(o.valance)
	cfg.SideChannel = models.SideChannel(o.sideChannel)
	cfg = cfg.WithQuantity(o.quantity)

	switch {
	case o.fabric != "":
		fab, ok := e.catalog.FindFabric(o.fabric)
		if !ok {
			return models.ShadeConfiguration{}, fmt.Errorf("unknown fabric %q", o.fabric)
		}
		cfg = cfg.WithFabric(fab)
	case o.group != "":
		g := models.ParsePriceGroup(o.group)
		cfg = cfg.WithFabric(models.Fabric{ID: "group-" + string(g), Name: "Group " + string(g), PriceGroup: g})
	}

	if o.motor != "" || o.remote || o.hub || o.charger || o.sunSensor {
		m := models.DefaultMotor()
		if o.motor != "" {
			m.PowerSource = models.PowerSource(o.motor)
		}
		m.Remote, m.Hub, m.Charger, m.SunSensor = o.remote, o.hub, o.charger, o.sunSensor
		cfg = cfg.WithControl(m)
	}

	if o.zip != "" {
		cfg.ZipCode = o.zip
		if inst, ok := e.catalog.Installers.ForZip(o.zip); ok {
			cfg.Installer = &inst
		}
	}
	return cfg, nil
}

// ParseDimension reads "36", "36 3/8", "36-3/8" or "36.5". Decimal input
// must land on an eighth.
func ParseDimension(raw string) (models.Dimension, error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), `"`)
	s = strings.ReplaceAll(s, "-", " ")
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 2 {
		return models.Dimension{}, fmt.Errorf("invalid length %q", raw)
	}

	whole, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || whole < 0 {
		return models.Dimension{}, fmt.Errorf("invalid length %q", raw)
	}

	if len(parts) == 2 {
		frac := models.Fraction(parts[1])
		if frac != models.FractionZero && frac.Decimal() == 0 {
			return models.Dimension{}, fmt.Errorf("fraction %q is not an eighth", parts[1])
		}
		return models.Inches(whole, frac), nil
	}

	intPart := float64(int(whole))
	rest := whole - intPart
	for _, f := range models.Fractions() {
		if f.Decimal() == rest {
			return models.Inches(intPart, f), nil
		}
	}
	return models.Dimension{}, fmt.Errorf("%q is not a whole number of eighths", raw)
}

func printQuote(cmd *cobra.Command, cfg models.ShadeConfiguration, q pricing.Quote) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Shape\t%s\n", cfg.Shape)
	for _, key := range cfg.Measurements.Keys() {
		d, _ := cfg.Measurements.Get(key)
		fmt.Fprintf(w, "  %s\t%s\n", key, d)
	}
	if cfg.Fabric != nil {
		fmt.Fprintf(w, "Fabric\t%s (group %s)\n", cfg.Fabric.Name, cfg.Fabric.Group())
	}
	fmt.Fprintf(w, "Control\t%s\n", cfg.ControlType())
	if cfg.Installer != nil {
		fmt.Fprintf(w, "Installer\t%s\n", cfg.Installer.Name)
	}

	if q.Incomplete {
		fmt.Fprintln(w, "Quote\tincomplete: a fabric and every dimension are required")
		return w.Flush()
	}

	if !q.MeasureOnly {
		fmt.Fprintf(w, "Priced size\t%s x %s\n", formatInches(q.Width), formatInches(q.Height))
		fmt.Fprintf(w, "Base\t$%s\n", pricing.FormatMoney(q.UnitBase))
		fmt.Fprintf(w, "Motorization\t$%s\n", pricing.FormatMoney(q.Addons.Motorization))
		fmt.Fprintf(w, "Valance\t$%s\n", pricing.FormatMoney(q.Addons.Valance))
		fmt.Fprintf(w, "Side channels\t$%s\n", pricing.FormatMoney(q.Addons.SideChannels))
	}
	fmt.Fprintf(w, "Unit price\t$%s\n", pricing.FormatMoney(q.UnitPrice))
	fmt.Fprintf(w, "Quantity\t%d\n", q.Quantity)
	fmt.Fprintf(w, "Pro services\t$%s\n", pricing.FormatMoney(q.InstallerCost))
	fmt.Fprintf(w, "Total\t$%s\n", pricing.FormatMoney(q.Total))
	return w.Flush()
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + `"`
}
