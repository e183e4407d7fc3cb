package omz

import (
	"context"
	"strconv"
	"strings"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
)

type ConvertOptions struct {
	Name        string
	Precisions  []string
	DownloadDir string
	OutputDir   string
	Jobs        int
}

func (o ConvertOptions) Args() []string {
	args := []string{"--name", o.Name}
	if len(o.Precisions) > 0 {
		args = append(args, "--precisions", strings.Join(o.Precisions, ","))
	}
	if o.DownloadDir != "" {
		args = append(args, "--download_dir", o.DownloadDir)
	}
	if o.OutputDir != "" {
		args = append(args, "--output_dir", o.OutputDir)
	}
	if o.Jobs > 0 {
		args = append(args, "--jobs", strconv.Itoa(o.Jobs))
	}
	return args
}

// Convert runs omz_converter, producing IR under
// <output_dir>/<subdirectory>/<PRECISION>/. Models already in IR format are a
// no-op for the converter and succeed immediately.
func Convert(ctx context.Context, tool Tool, opts ConvertOptions) error {
	if opts.Name == "" {
		return apierr.NewParameterInvalidError("model name is required")
	}
	if err := ValidatePrecisions(opts.Precisions); err != nil {
		return err
	}
	return tool.Run(ctx, opts.Args()...)
}
