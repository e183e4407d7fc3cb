package model

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/device"
	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewDevicesCmd() *cobra.Command {
	wsname := workspace.DefaultWorkspaceName
	output := "table"
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "list available inference devices",
		Example: `
  ovprep devices
  ovprep devices -o json
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()

			details, err := workspace.DefaultManager.Get(wsname)
			if err != nil {
				return err
			}
			ws, err := details.Open()
			if err != nil {
				return err
			}
			devices, err := device.List(ctx, ws.Tool(omz.QueryDeviceTool))
			if err != nil {
				return err
			}

			switch output {
			case "json":
				content, err := json.MarshalIndent(devices, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(content))
			case "table":
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.AppendHeader(table.Row{"Device", "Full Name"})
				for _, item := range devices {
					t.AppendRow(table.Row{item.Name, item.FullName})
				}
				t.Render()
			default:
				return apierr.NewParameterInvalidError("unknown output format: " + output)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&wsname, "workspace", wsname, "workspace whose tool config to use")
	cmd.Flags().StringVarP(&output, "output", "o", output, "output format: table or json")
	return cmd
}
