package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

func NewInfoCmd() *cobra.Command {
	output := "table"
	refresh := false
	cmd := &cobra.Command{
		Use:   "info",
		Short: "show model zoo metadata for a model",
		Example: `
  ovprep info mobilenet-v2-pytorch
  ovprep info mobilenet-v2-pytorch -o json --refresh
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

			info, err := omz.CachedInfo(ctx, ws.Tool(omz.InfoDumperTool), cache, ref.Model, refresh)
			if err != nil {
				return err
			}
			return renderInfo(cmd, *info, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&refresh, "refresh", refresh, "bypass the metadata cache")
	return cmd
}

func renderInfo(cmd *cobra.Command, info types.ModelInfo, output string) error {
	switch output {
	case "json":
		content, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	case "yaml":
		content, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	case "table":
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendRow(table.Row{"Name", info.Name})
		t.AppendRow(table.Row{"Description", info.Description})
		t.AppendRow(table.Row{"Framework", info.Framework})
		t.AppendRow(table.Row{"License", info.LicenseURL})
		t.AppendRow(table.Row{"Precisions", strings.Join(info.Precisions, ", ")})
		if len(info.QuantizationOutputPrecisions) > 0 {
			t.AppendRow(table.Row{"Quantizable to", strings.Join(info.QuantizationOutputPrecisions, ", ")})
		}
		t.AppendRow(table.Row{"Subdirectory", info.Subdirectory})
		t.AppendRow(table.Row{"Task", info.TaskType})
		for _, input := range info.InputInfo {
			t.AppendRow(table.Row{"Input", fmt.Sprintf("%s %v %s", input.Name, input.Shape, input.Layout)})
		}
		t.Render()
		return nil
	default:
		return apierr.NewParameterInvalidError("unknown output format: " + output)
	}
}
