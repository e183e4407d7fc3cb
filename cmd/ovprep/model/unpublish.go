package model

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/mirror"
	"github.com/YgNiko/openvino-prep/pkg/omz"
)

func NewUnpublishCmd() *cobra.Command {
	opts := mirror.NewDefaultOptions()
	cmd := &cobra.Command{
		Use:   "unpublish",
		Short: "remove a packed IR from the model mirror",
		Example: `
  ovprep unpublish mobilenet-v2-pytorch@FP16 --mirror-url https://s3.example.com
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
			precision := ref.ResolvePrecision(ws)

			m, err := mirror.New(ctx, opts)
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
			return m.Remove(ctx, mirror.ArchiveKey(info.Subdirectory, precision, ref.Model))
		},
	}
	addMirrorFlags(cmd, opts)
	return cmd
}
