package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	ws "github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewWorkspaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management",
		Long:  "Workspace management",
	}
	cmd.AddCommand(NewWorkspaceAddCmd())
	cmd.AddCommand(NewWorkspaceListCmd())
	cmd.AddCommand(NewWorkspaceRemoveCmd())

	return cmd
}

func NewWorkspaceAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a workspace directory",
		Long:  "Register a workspace directory",
		Example: `
	# Register a workspace
	ovprep workspace add lab /data/openvino-lab
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("workspace add requires two arguments")
			}
			name := args[0]
			root, err := filepath.Abs(args[1])
			if err != nil {
				return err
			}
			details := ws.Details{Name: name, Root: root}
			if _, err := details.Open(); err != nil {
				return err
			}
			return ws.DefaultManager.Set(details)
		},
	}
	return cmd
}

func NewWorkspaceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list registered workspaces",
		Long:  "List workspaces",
		Example: `
	# List workspaces

		ovprep workspace list

		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			details := ws.DefaultManager.List()
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Name", "Root"})
			for _, item := range details {
				t.AppendRow(table.Row{item.Name, item.Root})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}

func NewWorkspaceRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a workspace registration",
		Long:  "Remove a workspace registration",
		Example: `
		# Remove a workspace registration
		ovprep workspace remove lab`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			details := ws.DefaultManager.List()
			ret := make([]string, 0, len(details))
			for _, d := range details {
				ret = append(ret, d.Name)
			}
			return ret, cobra.ShellCompDirectiveNoFileComp
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("workspace remove requires at least one argument")
			}
			for _, name := range args {
				if err := ws.DefaultManager.Remove(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}
