package model

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewInitCmd() *cobra.Command {
	force := false
	name := ""
	cmd := &cobra.Command{
		Use:   "init",
		Short: "init a workspace at path",
		Example: `
  ovprep init .
  ovprep init --name lab /data/openvino
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			if err := workspace.Init(args[0], force); err != nil {
				return err
			}
			if name != "" {
				return workspace.DefaultManager.Set(workspace.Details{Name: name, Root: args[0]})
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "force init")
	cmd.Flags().StringVar(&name, "name", "", "register the workspace under this name")
	return cmd
}
