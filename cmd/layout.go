//go:build linux && (amd64 || arm64)

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
)

// CreateLayoutCmd creates the layout command.
func CreateLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "layout <record>",
		Short:     "Print the field table of a record",
		Args:      cobra.ExactArgs(1),
		ValidArgs: catalog.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%d bytes, align %d\n\n", r.CName, r.Size, r.Align)
			fmt.Fprintln(w, "OFFSET\tSIZE\tTYPE\tFIELD")
			for _, f := range r.Fields {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", f.Offset, f.Size(), f.CType(), f.Name)
			}
			return w.Flush()
		},
	}
}
