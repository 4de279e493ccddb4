//go:build linux && (amd64 || arm64)

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/smazurov/abiprobe/internal/logging"
	"github.com/smazurov/abiprobe/pkg/linuxav/dmaheap"
	"github.com/smazurov/abiprobe/pkg/linuxav/hotplug"
	"github.com/smazurov/abiprobe/pkg/linuxav/v4l2"
)

const heapProbeSize = 4096

// CreateDevicesCmd creates the devices command.
func CreateDevicesCmd() *cobra.Command {
	var heapPath string
	var skipAlloc bool
	var follow bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Exercise the mirrors against the running kernel",
		Long: `Runs VIDIOC_QUERYCAP on every video node and allocates a buffer from a dma-heap. ` +
			`Both ioctls encode the mirror size in their request code, so the kernel rejects a wrong layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.GetLogger(logging.ModuleDevices)
			out := cmd.OutOrStdout()

			devices, err := v4l2.FindDevices()
			if err != nil {
				return err
			}
			if err := printDevices(out, devices); err != nil {
				return err
			}
			logger.Info("V4L2 devices queried", "count", len(devices))

			if !skipAlloc {
				if err := probeHeap(out, logger, heapPath); err != nil {
					return err
				}
			}
			if !follow {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, unix.SIGTERM)
			defer stop()
			return followDevices(ctx, out, logger, skipAlloc)
		},
	}

	cmd.Flags().StringVar(&heapPath, "heap", dmaheap.DefaultHeap, "dma-heap device to allocate from")
	cmd.Flags().BoolVar(&skipAlloc, "no-alloc", false, "Skip the dma-heap allocation")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep running and probe nodes as they are added")
	return cmd
}

func printDevices(out io.Writer, devices []v4l2.DeviceInfo) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tDRIVER\tCARD\tBUS\tCAPS\tM2M")
	for _, d := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t0x%08x\t%t\n", d.DevicePath, d.Driver, d.Card, d.BusInfo, d.Caps, d.M2M())
	}
	return w.Flush()
}

func probeHeap(out io.Writer, logger *slog.Logger, heapPath string) error {
	buf, err := dmaheap.Alloc(heapPath, heapProbeSize)
	switch {
	case errors.Is(err, dmaheap.ErrNoHeap):
		logger.Warn("dma-heap not present, allocation skipped", "heap", heapPath)
		return nil
	case err != nil:
		return err
	}
	defer buf.Close()

	fmt.Fprintf(out, "\n%s: allocated %d bytes, fd %d\n", heapPath, buf.Len, buf.Fd)
	return nil
}

func followDevices(ctx context.Context, out io.Writer, logger *slog.Logger, skipAlloc bool) error {
	mon, err := hotplug.NewMonitor(hotplug.SubsystemVideo4Linux, hotplug.SubsystemDMAHeap)
	if err != nil {
		return fmt.Errorf("open uevent socket: %w", err)
	}
	defer mon.Close()

	events := make(chan hotplug.Event, 16)
	errCh := make(chan error, 1)
	go func() { errCh <- mon.Run(ctx, events) }()

	logger.Info("Waiting for devices")
	for e := range events {
		node := e.Node()
		if e.Action != hotplug.ActionAdd || node == "" {
			logger.Debug("Ignoring uevent", "action", e.Action, "subsystem", e.Subsystem, "kobj", e.KObj)
			continue
		}

		switch e.Subsystem {
		case hotplug.SubsystemVideo4Linux:
			info, err := v4l2.QueryCap(node)
			if err != nil {
				logger.Warn("QUERYCAP failed on new node", "device", node, "error", err)
				continue
			}
			if err := printDevices(out, []v4l2.DeviceInfo{info}); err != nil {
				return err
			}
		case hotplug.SubsystemDMAHeap:
			if skipAlloc {
				continue
			}
			if err := probeHeap(out, logger, node); err != nil {
				logger.Warn("Allocation failed on new heap", "heap", node, "error", err)
			}
		}
	}

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
