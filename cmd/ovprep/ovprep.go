package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/cmd/ovprep/model"
	"github.com/YgNiko/openvino-prep/cmd/ovprep/workspace"
)

const ErrExitCode = 1

func main() {
	if err := NewOvprepCmd().Execute(); err != nil {
		os.Exit(ErrExitCode)
	}
}

func NewOvprepCmd() *cobra.Command {
	cmd := model.NewOvprepCmd()
	cmd.AddCommand(
		workspace.NewWorkspaceCmd(),
	)
	return cmd
}
