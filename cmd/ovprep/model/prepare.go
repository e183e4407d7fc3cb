package model

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/benchmark"
	"github.com/YgNiko/openvino-prep/pkg/prep"
	"github.com/YgNiko/openvino-prep/pkg/progress"
)

func NewPrepareCmd() *cobra.Command {
	opts := prep.Options{
		Seconds:     benchmark.DefaultSeconds,
		Retries:     2,
		Concurrency: progress.DefaultConcurrency,
	}
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "download, convert and optionally benchmark a model in one go",
		Example: `
  ovprep prepare mobilenet-v2-pytorch
  ovprep prepare mobilenet-v2-pytorch -p FP16 -p FP32 --benchmark
  ovprep prepare lab/face-detection-retail-0004@FP16-INT8 --benchmark -d GPU
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			ref, err := ParseReference(args[0])
			if err != nil {
				return err
			}
			ws, err := ref.Open()
			if err != nil {
				return err
			}
			if len(opts.Precisions) == 0 {
				opts.Precisions = []string{ref.ResolvePrecision(ws)}
			} else if ref.Precision != "" {
				return errors.New("use either a @precision reference or --precisions, not both")
			}
			if opts.Device == "" {
				opts.Device = ws.DefaultDevice()
			}

			results, err := prep.Run(ctx, ws, ref.Model, opts)
			if err != nil {
				return err
			}
			renderPrepare(cmd, results)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts.Precisions, "precisions", "p", opts.Precisions, "precisions to prepare")
	cmd.Flags().BoolVar(&opts.Benchmark, "benchmark", opts.Benchmark, "benchmark each prepared IR")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", opts.Device, "benchmark device")
	cmd.Flags().IntVarP(&opts.Seconds, "time", "t", opts.Seconds, "benchmark duration in seconds")
	cmd.Flags().IntVar(&opts.Retries, "retries", opts.Retries, "download retries on failure")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "precisions prepared in parallel")
	return cmd
}

func renderPrepare(cmd *cobra.Command, results []prep.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	withBench := false
	for _, r := range results {
		if r.Benchmark != nil {
			withBench = true
			break
		}
	}
	if withBench {
		t.AppendHeader(table.Row{"Precision", "IR", "Throughput (FPS)", "Median Latency (ms)"})
		for _, r := range results {
			fps, latency := "-", "-"
			if r.Benchmark != nil {
				fps = fmt.Sprintf("%.2f", r.Benchmark.ThroughputFPS)
				latency = fmt.Sprintf("%.2f", r.Benchmark.Latency.Median)
			}
			t.AppendRow(table.Row{r.Precision, shortenHome(r.IRPath), fps, latency})
		}
	} else {
		t.AppendHeader(table.Row{"Precision", "IR"})
		for _, r := range results {
			t.AppendRow(table.Row{r.Precision, shortenHome(r.IRPath)})
		}
	}
	t.Render()
}

func shortenHome(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if strings.HasPrefix(p, home) {
		return "~" + strings.TrimPrefix(p, home)
	}
	return p
}
