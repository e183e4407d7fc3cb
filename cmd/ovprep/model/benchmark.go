package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/benchmark"
	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

func NewBenchmarkCmd() *cobra.Command {
	deviceName := ""
	seconds := benchmark.DefaultSeconds
	api := benchmark.APIAsync
	batch := benchmark.DefaultBatch
	output := "raw"
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "benchmark a converted model on a device",
		Example: `
  ovprep benchmark mobilenet-v2-pytorch@FP16
  ovprep benchmark mobilenet-v2-pytorch -d GPU -t 60 --api sync -o table
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
			cache, err := ws.OpenInfoCache()
			if err != nil {
				return err
			}
			defer cache.Close()

			info, err := omz.CachedInfo(ctx, ws.Tool(omz.InfoDumperTool), cache, ref.Model, false)
			if err != nil {
				return err
			}
			irpath, err := ws.ResolveIR(*info, ref.ResolvePrecision(ws))
			if err != nil {
				return err
			}

			if deviceName == "" {
				deviceName = ws.DefaultDevice()
			}
			opts := benchmark.Options{
				ModelPath: irpath,
				Device:    deviceName,
				Seconds:   seconds,
				API:       api,
				Batch:     batch,
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Benchmark command: %s %s\n\n",
				omz.BenchmarkTool, strings.Join(opts.Args(), " "))

			result, lines, err := benchmark.Run(ctx, ws.Tool(omz.BenchmarkTool), opts)
			if result != nil {
				result.Model = ref.Model
			}
			return renderBenchmark(cmd, result, lines, output, err)
		},
	}
	cmd.Flags().StringVarP(&deviceName, "device", "d", deviceName, "target device, e.g. CPU, GPU, AUTO")
	cmd.Flags().IntVarP(&seconds, "time", "t", seconds, "benchmark duration in seconds")
	cmd.Flags().StringVar(&api, "api", api, "inference mode: sync or async")
	cmd.Flags().IntVarP(&batch, "batch", "b", batch, "batch size")
	cmd.Flags().StringVarP(&output, "output", "o", output, "output format: raw, table or json")
	return cmd
}

// renderBenchmark displays a benchmark run. Raw mode is a verbatim
// passthrough of the filtered tool output, so it tolerates an unparseable
// statistics block; the typed formats need the parse to have succeeded.
func renderBenchmark(cmd *cobra.Command, result *types.BenchmarkResult, lines []string, output string, runErr error) error {
	if runErr != nil && !(output == "raw" && len(lines) > 0 && apierr.IsErrCode(runErr, apierr.ErrCodeOutputInvalid)) {
		return runErr
	}
	switch output {
	case "raw":
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
		return nil
	case "json":
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Model", "Device", "Count", "Duration", "Median Latency", "Throughput"})
		t.AppendRow(table.Row{
			result.Model,
			result.Device,
			result.Count,
			fmt.Sprintf("%.2f ms", result.DurationMS),
			fmt.Sprintf("%.2f ms", result.Latency.Median),
			fmt.Sprintf("%.2f FPS", result.ThroughputFPS),
		})
		t.Render()
		return nil
	default:
		return apierr.NewParameterInvalidError("unknown output format: " + output)
	}
}
