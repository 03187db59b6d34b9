package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fdg312/diet-hub/internal/catalog"
)

func newFoodsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "foods",
		Short: "List the food catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			switch strings.ToLower(output) {
			case "table", "":
				return writeFoodsTable(cmd.OutOrStdout(), cat)
			case catalog.FormatYAML, catalog.FormatJSON:
				data, err := catalog.Encode(cat, output)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return fmt.Errorf("unknown output %q (table|yaml|json)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "table|yaml|json")
	return cmd
}

func writeFoodsTable(w io.Writer, cat *catalog.Catalog) error {
	nutrients := cat.Nutrients()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "FOOD\tPRICE")
	for _, n := range nutrients {
		label := strings.ToUpper(string(n))
		if unit := n.Unit(); unit != "" {
			label += " (" + unit + ")"
		}
		fmt.Fprintf(tw, "\t%s", label)
	}
	fmt.Fprintln(tw, "\t")

	for _, item := range cat.All() {
		fmt.Fprintf(tw, "%s\t%.2f", item.Name, item.Price)
		for _, n := range nutrients {
			fmt.Fprintf(tw, "\t%.2f", item.Amount(n))
		}
		fmt.Fprintln(tw, "\t")
	}
	return tw.Flush()
}
