package model

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/omz"
)

func NewDownloadCmd() *cobra.Command {
	precisions := []string{}
	retries := 2
	cmd := &cobra.Command{
		Use:   "download",
		Short: "download a model from the zoo into the workspace",
		Example: `
  ovprep download mobilenet-v2-pytorch
  ovprep download lab/face-detection-0200@FP16 --retries 5
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
			if len(precisions) == 0 && ref.Precision != "" {
				precisions = []string{ref.Precision}
			}
			return omz.Download(ctx, ws.Tool(omz.DownloaderTool), omz.DownloadOptions{
				Name:       ref.Model,
				OutputDir:  ws.ModelDir(),
				CacheDir:   ws.CacheDir(),
				Precisions: precisions,
				Retries:    retries,
			})
		},
	}
	cmd.Flags().StringSliceVarP(&precisions, "precisions", "p", precisions, "restrict downloaded precisions")
	cmd.Flags().IntVar(&retries, "retries", retries, "retry count for failed downloads")
	return cmd
}
