package model

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/omz"
)

func NewConvertCmd() *cobra.Command {
	jobs := 0
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "convert a downloaded model to OpenVINO IR",
		Example: `
  ovprep convert mobilenet-v2-pytorch@FP16
  ovprep convert lab/mobilenet-v2-pytorch --jobs 4
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
			return omz.Convert(ctx, ws.Tool(omz.ConverterTool), omz.ConvertOptions{
				Name:        ref.Model,
				Precisions:  []string{ref.ResolvePrecision(ws)},
				DownloadDir: ws.ModelDir(),
				OutputDir:   ws.ModelDir(),
				Jobs:        jobs,
			})
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", jobs, "parallel conversion jobs")
	return cmd
}
