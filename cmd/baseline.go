//go:build linux && (amd64 || arm64)

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smazurov/abiprobe/internal/config"
	"github.com/smazurov/abiprobe/internal/logging"
	"github.com/smazurov/abiprobe/pkg/linuxav/catalog"
)

// CreateBaselineCmd creates the baseline command.
func CreateBaselineCmd() *cobra.Command {
	var out string
	var headers config.HeaderVersions

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Capture the current layouts into a baseline manifest",
		Long: `Writes the size, alignment and field table of every record, together with the running kernel ` +
			`release and the header versions, to a TOML manifest that later runs verify against.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.NewBaseline(catalog.Records(), headers)
			if err != nil {
				return err
			}
			if err := config.SaveBaseline(out, b); err != nil {
				return err
			}

			logging.GetLogger(logging.ModuleConfig).Info("Baseline written",
				"path", out, "records", len(b.Records), "kernel", b.Host.Kernel, "libdrm", b.Headers.Libdrm)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(b.Records), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "baseline.toml", "Output manifest path")
	cmd.Flags().StringVar(&headers.Libdrm, "libdrm-version", "", "libdrm version the DRM mirrors follow")
	cmd.Flags().StringVar(&headers.Linux, "linux-headers", "", "Kernel UAPI header version (default: running kernel)")
	return cmd
}
