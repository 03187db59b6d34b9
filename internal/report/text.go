package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fdg312/diet-hub/internal/diet"
)

// Text writes an aligned table of portions and costs followed by nutrient
// totals next to the requirement.
func Text(w io.Writer, sol *diet.Solution, req diet.Requirement) error {
	if !sol.IsOptimal() {
		_, err := fmt.Fprintln(w, statusLine(sol))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "FOOD\tPORTIONS\tCOST")
	for _, a := range sol.Allocations {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", a.Food, a.Quantity, a.Cost)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%.2f\n", sol.Cost)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "NUTRIENT\tTOTAL\tREQUIRED")
	for _, n := range orderedNutrients(sol.Totals, req) {
		required := "-"
		if v, ok := req[n]; ok {
			required = fmt.Sprintf("%.1f", v)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\n", nutrientLabel(n), sol.Totals[n], required)
	}

	return tw.Flush()
}
