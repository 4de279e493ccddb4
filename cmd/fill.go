//go:build linux && (amd64 || arm64)

package cmd

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/abiprobe/internal/logging"
	"github.com/smazurov/abiprobe/pkg/abiprobe"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
)

// CreateFillCmd creates the fill command.
func CreateFillCmd() *cobra.Command {
	var modeName string
	var decode bool

	cmd := &cobra.Command{
		Use:       "fill <record>",
		Short:     "Fill a record and dump the bytes",
		Long:      `Fills a zeroed buffer with the pattern or realistic table of a record and prints a hex dump, or with --decode, every field read back through the layout.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: catalog.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := abiprobe.ParseMode(modeName)
			if err != nil {
				return err
			}
			r, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			buf, err := r.Filled(mode)
			if err != nil {
				return err
			}
			logging.GetLogger(logging.ModuleProbe).Debug("filled record", "record", r.Key, "mode", mode, "size", len(buf))

			out := cmd.OutOrStdout()
			if !decode {
				_, err := fmt.Fprint(out, hex.Dump(buf))
				return err
			}

			values, err := r.Decode(buf)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, v := range values {
				fmt.Fprintf(w, "%s\t= %s\n", v.Field.Name, v.Format())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", abiprobe.ModePattern.String(), "Fill mode (pattern, realistic)")
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Print field values instead of a hex dump")
	return cmd
}
