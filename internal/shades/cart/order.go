package cart

import (
	"fmt"

	"shade-store/internal/shades/catalog"
	"shade-store/internal/shades/models"
	"shade-store/internal/shades/pricing"
	"shade-store/internal/shades/wizard"
)

// Property is a name/value pair shown under a line item at checkout.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LineItem is one checkout line. Money is already formatted for display.
type LineItem struct {
	ItemID     string     `json:"itemId"`
	Title      string     `json:"title"`
	Quantity   int        `json:"quantity"`
	UnitPrice  string     `json:"unitPrice"`
	LineTotal  string     `json:"lineTotal"`
	Service    bool       `json:"service,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Order is the normalized cart handed to checkout and email.
type Order struct {
	Lines        []LineItem `json:"lines"`
	ItemCount    int        `json:"itemCount"`
	Subtotal     string     `json:"subtotal"`
	BulkDiscount bool       `json:"bulkDiscount"`
	DiscountRate float64    `json:"discountRate"`
	Discount     string     `json:"discount"`
	Total        string     `json:"total"`
}

// AssembleOrder turns cart items into checkout lines. Each shade becomes one
// line; an installer fee becomes a separate service line after it.
func AssembleOrder(items []models.CartItem, totals pricing.CartTotals, shapes *catalog.Shapes) Order {
	order := Order{
		ItemCount:    totals.ItemCount,
		Subtotal:     pricing.FormatMoney(totals.Subtotal),
		BulkDiscount: totals.BulkDiscount,
		DiscountRate: totals.DiscountRate,
		Discount:     pricing.FormatMoney(totals.Discount),
		Total:        pricing.FormatMoney(totals.Total),
	}

	for _, item := range items {
		cfg := item.Config
		shape := shapes.Lookup(cfg.Shape)

		if cfg.ServicePath == models.ServiceMeasureOnly {
			order.Lines = append(order.Lines, LineItem{
				ItemID:     item.ID,
				Title:      "Professional Measurement",
				Quantity:   1,
				UnitPrice:  pricing.FormatMoney(item.TotalPrice),
				LineTotal:  pricing.FormatMoney(item.TotalPrice),
				Service:    true,
				Properties: installerProperties(cfg),
			})
			continue
		}

		qty := cfg.EffectiveQuantity()
		order.Lines = append(order.Lines, LineItem{
			ItemID:     item.ID,
			Title:      fmt.Sprintf("Custom %s Shade", shape.Name),
			Quantity:   qty,
			UnitPrice:  pricing.FormatMoney(item.UnitPrice),
			LineTotal:  pricing.FormatMoney(item.UnitPrice * float64(qty)),
			Properties: shadeProperties(cfg, shape),
		})

		if item.InstallerFee > 0 {
			order.Lines = append(order.Lines, LineItem{
				ItemID:     item.ID,
				Title:      wizard.ServiceLabel(cfg.ServicePath),
				Quantity:   1,
				UnitPrice:  pricing.FormatMoney(item.InstallerFee),
				LineTotal:  pricing.FormatMoney(item.InstallerFee),
				Service:    true,
				Properties: installerProperties(cfg),
			})
		}
	}
	return order
}

func shadeProperties(cfg models.ShadeConfiguration, shape catalog.Shape) []Property {
	props := []Property{{Name: "Shape", Value: shape.Name}}
	if cfg.Fabric != nil {
		props = append(props,
			Property{Name: "Fabric", Value: cfg.Fabric.Name},
			Property{Name: "Price Group", Value: string(cfg.Fabric.Group())},
		)
	}
	if size := wizard.FormatSize(shape, cfg.Measurements); size != "" {
		props = append(props, Property{Name: "Size", Value: size})
	}
	props = append(props,
		Property{Name: "Mount", Value: string(cfg.Mount)},
		Property{Name: "Control", Value: wizard.ControlSummary(cfg.EffectiveControl())},
		Property{Name: "Valance", Value: wizard.ValanceLabel(cfg.Valance)},
	)
	if cfg.SideChannel == models.SideChannelStandard {
		props = append(props, Property{Name: "Side Channels", Value: "Standard"})
	}
	return append(props, installerProperties(cfg)...)
}

func installerProperties(cfg models.ShadeConfiguration) []Property {
	if cfg.Installer == nil {
		return nil
	}
	props := []Property{{Name: "Installer", Value: cfg.Installer.Name}}
	if cfg.ZipCode != "" {
		props = append(props, Property{Name: "Zip Code", Value: cfg.ZipCode})
	}
	return props
}
