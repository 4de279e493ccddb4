//go:build linux && (amd64 || arm64)

package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
	"github.com/smazurov/abiprobe/pkg/linuxav/v4l2"
)

type sizeRow struct {
	Key   string `json:"key"`
	Group string `json:"group"`
	CName string `json:"cname"`
	Size  uint64 `json:"size"`
	Align uint64 `json:"align"`
}

// CreateSizesCmd creates the sizes command.
func CreateSizesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Print the size and alignment of every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows []sizeRow
			for _, e := range catalog.All() {
				rows = append(rows, sizeRow{
					Key:   e.Record.Key,
					Group: string(e.Group),
					CName: e.Record.CName,
					Size:  uint64(e.Record.Size),
					Align: uint64(e.Record.Align),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					OffTSize int       `json:"off_t_size"`
					Records  []sizeRow `json:"records"`
				}{v4l2.OffTSize(), rows})
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tKEY\tSIZE\tALIGN\tTYPE")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.Group, r.Key, r.Size, r.Align, r.CName)
			}
			fmt.Fprintf(w, "\t__off_t\t%d\t%d\t\n", v4l2.OffTSize(), v4l2.OffTSize())
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
