package model

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/units"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewPackCmd() *cobra.Command {
	output := ""
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "archive a model's files as a tar.gz pack",
		Example: `
  ovprep pack mobilenet-v2-pytorch
  ovprep pack mobilenet-v2-pytorch@FP16
  ovprep pack lab/face-detection-retail-0004 -o /tmp/face.tar.gz
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
			dir, intofile, err := packTarget(ctx, ws, ref, output)
			if err != nil {
				return err
			}
			dgst, size, err := workspace.Pack(ctx, dir, intofile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", intofile, dgst.String(), units.HumanSize(float64(size)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "archive path, defaults into the workspace pack directory")
	return cmd
}

// packTarget resolves the directory to archive and the archive path. A
// precision reference narrows the archive to that precision's IR directory.
func packTarget(ctx context.Context, ws *workspace.Workspace, ref Reference, output string) (string, string, error) {
	cache, err := ws.OpenInfoCache()
	if err != nil {
		return "", "", err
	}
	defer cache.Close()
	info, err := omz.CachedInfo(ctx, ws.Tool(omz.InfoDumperTool), cache, ref.Model, false)
	if err != nil {
		return "", "", err
	}

	dir, packname := ws.ModelRoot(*info), ref.Model+".tar.gz"
	if ref.Precision != "" {
		dir = filepath.Join(dir, ref.Precision)
		packname = ref.Model + "-" + ref.Precision + ".tar.gz"
	}
	if _, err := os.Stat(dir); err != nil {
		return "", "", err
	}
	if output == "" {
		output = filepath.Join(ws.PackDir(), packname)
	}
	return dir, output, nil
}
