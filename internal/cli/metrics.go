package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/build-flow-labs/cvsscalc/cvss"
	"github.com/spf13/cobra"
)

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List base metrics, their codes and weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "METRIC\tNAME\tCODE\tCATEGORY\tWEIGHT\n")
			fmt.Fprintf(w, "------\t----\t----\t--------\t------\n")
			for _, d := range cvss.Dimensions() {
				for _, o := range d.Options {
					weight, err := cvss.Weight(d.Key, o.Category)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						d.Key, d.Name, o.Code, o.Category,
						strconv.FormatFloat(weight, 'f', -1, 64))
				}
			}
			return w.Flush()
		},
	}
}
