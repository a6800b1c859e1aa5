package quote

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders a stored quote as a plain-text summary for pasting into
// emails and order notes.
func WriteText(w io.Writer, q Quote) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Quote %s\n", q.ID)
	fmt.Fprintf(tw, "Date:\t%s\n", q.CreatedAt.Format("2006-01-02 15:04"))
	if q.CustomerName != "" {
		fmt.Fprintf(tw, "Customer:\t%s\n", q.CustomerName)
	}
	fmt.Fprintf(tw, "Template:\t%s (%s)\n", q.TemplateID, q.Kind)
	fmt.Fprintln(tw)

	switch {
	case len(q.Pricing.ScreenPrint) > 0:
		fmt.Fprintln(tw, "Garment\tQty\tColors\tLocations\tEach\tSetup\tLine")
		for _, l := range q.Pricing.ScreenPrint {
			locations := "front"
			if len(l.Line.Locations) > 0 {
				locations = strings.Join(l.Line.Locations, ", ")
			}
			gap := ""
			if l.Pricing.PricingGap {
				gap = " (no tier)"
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s%s\t%s\t%s\n",
				l.Line.GarmentID, l.Line.Quantity, l.Line.ColorCount, locations,
				l.Pricing.PricePerPiece.StringFixed(2), gap, l.SetupFee.StringFixed(2), l.LineTotal.StringFixed(2))
		}
	case q.Pricing.DTF != nil:
		fmt.Fprintln(tw, "Sheet\tSize\tDesigns\tUtilization\tPrice")
		for i, sheet := range q.Pricing.DTF.Calculation.Sheets {
			price := "-"
			if i < len(q.Pricing.DTF.SheetPrices) {
				price = q.Pricing.DTF.SheetPrices[i].Price.StringFixed(2)
			}
			fmt.Fprintf(tw, "%d\t%gx%g in\t%d\t%.1f%%\t%s\n",
				i+1, sheet.Tier.Width, sheet.Tier.Length, len(sheet.Designs), sheet.Utilization, price)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Subtotal:\t%s\n", q.Totals.Subtotal.StringFixed(2))
	fmt.Fprintf(tw, "Tax (%s%%):\t%s\n", q.Totals.TaxPercent.String(), q.Totals.Tax.StringFixed(2))
	fmt.Fprintf(tw, "Total:\t%s\n", q.Totals.Total.StringFixed(2))
	if q.Notes != "" {
		fmt.Fprintf(tw, "\nNotes: %s\n", q.Notes)
	}

	return tw.Flush()
}
