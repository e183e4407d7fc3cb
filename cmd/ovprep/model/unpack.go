package model

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewUnpackCmd() *cobra.Command {
	into := ""
	wsname := workspace.DefaultWorkspaceName
	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "extract a tar.gz pack into the workspace model directory",
		Example: `
  ovprep unpack mobilenet-v2-pytorch.tar.gz
  ovprep unpack /tmp/face.tar.gz --into public/face-detection-retail-0004
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}

			details, err := workspace.DefaultManager.Get(wsname)
			if err != nil {
				return err
			}
			ws, err := details.Open()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			intodir := ws.ModelDir()
			if into != "" {
				intodir = filepath.Join(intodir, filepath.FromSlash(into))
			}
			return workspace.Unpack(ctx, intodir, f)
		},
	}
	cmd.Flags().StringVar(&into, "into", into, "subdirectory under the model directory to extract into")
	cmd.Flags().StringVar(&wsname, "workspace", wsname, "destination workspace")
	return cmd
}
