package model

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/mirror"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/progress"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func addMirrorFlags(cmd *cobra.Command, opts *mirror.Options) {
	cmd.Flags().StringVar(&opts.URL, "mirror-url", opts.URL, "s3 endpoint of the model mirror")
	cmd.Flags().StringVar(&opts.Region, "mirror-region", opts.Region, "s3 region")
	cmd.Flags().StringVar(&opts.Bucket, "mirror-bucket", opts.Bucket, "s3 bucket")
	cmd.Flags().StringVar(&opts.AccessKey, "mirror-access-key", opts.AccessKey, "s3 access key")
	cmd.Flags().StringVar(&opts.SecretKey, "mirror-secret-key", opts.SecretKey, "s3 secret key")
	cmd.Flags().BoolVar(&opts.PathStyle, "mirror-path-style", opts.PathStyle, "use path style bucket addressing")
	cmd.Flags().StringVar(&opts.Prefix, "mirror-prefix", opts.Prefix, "key prefix inside the bucket")
}

func NewPublishCmd() *cobra.Command {
	opts := mirror.NewDefaultOptions()
	precisions := []string{}
	force := false
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "pack converted IRs and upload them to the model mirror",
		Example: `
  ovprep publish mobilenet-v2-pytorch@FP16 --mirror-url https://s3.example.com
  ovprep publish mobilenet-v2-pytorch -p FP16 -p FP32 --mirror-url https://s3.example.com
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
			if len(precisions) == 0 {
				precisions = []string{ref.ResolvePrecision(ws)}
			}
			if err := omz.ValidatePrecisions(precisions); err != nil {
				return err
			}

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

			mb := progress.NewMultiBar(cmd.OutOrStdout(), 40, progress.DefaultConcurrency)
			barctx, barcancel := context.WithCancel(ctx)
			defer barcancel()
			go mb.Run(barctx)

			for _, precision := range precisions {
				precision := precision
				mb.Go(ref.Model+"@"+precision, "packing", func(b *progress.Bar) error {
					key := mirror.ArchiveKey(info.Subdirectory, precision, ref.Model)
					if !force {
						if exists, err := m.Exists(ctx, key); err != nil {
							return err
						} else if exists {
							b.SetStatus(b.Name, "already published")
							return nil
						}
					}

					irdir := filepath.Join(ws.ModelRoot(*info), precision)
					if _, err := os.Stat(irdir); err != nil {
						return err
					}
					packfile := filepath.Join(ws.PackDir(), ref.Model+"-"+precision+".tar.gz")
					_, size, err := workspace.Pack(ctx, irdir, packfile)
					if err != nil {
						return err
					}

					f, err := os.Open(packfile)
					if err != nil {
						return err
					}
					body := b.WrapReader(f, b.Name, size, "uploading", "done", "failed")
					defer body.Close()

					return m.Put(ctx, key, body, size, "application/gzip")
				})
			}
			return mb.Wait()
		},
	}
	cmd.Flags().StringSliceVarP(&precisions, "precisions", "p", precisions, "precisions to publish")
	cmd.Flags().BoolVar(&force, "force", force, "overwrite already published archives")
	addMirrorFlags(cmd, opts)
	return cmd
}
