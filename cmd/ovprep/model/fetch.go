package model

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YgNiko/openvino-prep/pkg/mirror"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/progress"
	"github.com/YgNiko/openvino-prep/pkg/units"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewFetchCmd() *cobra.Command {
	opts := mirror.NewDefaultOptions()
	precisions := []string{}
	list := false
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "download packed IRs from the model mirror instead of converting locally",
		Example: `
  ovprep fetch mobilenet-v2-pytorch@FP16 --mirror-url https://s3.example.com
  ovprep fetch mobilenet-v2-pytorch -p FP16 -p FP32 --mirror-url https://s3.example.com
  ovprep fetch mobilenet-v2-pytorch --list --mirror-url https://s3.example.com
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

			if list {
				return listArchives(ctx, cmd, m, info.Subdirectory)
			}

			mb := progress.NewMultiBar(cmd.OutOrStdout(), 40, progress.DefaultConcurrency)
			barctx, barcancel := context.WithCancel(ctx)
			defer barcancel()
			go mb.Run(barctx)

			for _, precision := range precisions {
				precision := precision
				mb.Go(ref.Model+"@"+precision, "pending", func(b *progress.Bar) error {
					key := mirror.ArchiveKey(info.Subdirectory, precision, ref.Model)
					body, size, err := m.Get(ctx, key)
					if err != nil {
						return err
					}
					r := b.WrapReader(body, b.Name, size, "fetching", "done", "failed")
					defer r.Close()

					intodir := filepath.Join(ws.ModelRoot(*info), precision)
					return workspace.Unpack(ctx, intodir, r)
				})
			}
			return mb.Wait()
		},
	}
	cmd.Flags().StringSliceVarP(&precisions, "precisions", "p", precisions, "precisions to fetch")
	cmd.Flags().BoolVar(&list, "list", list, "list published archives for the model instead of fetching")
	addMirrorFlags(cmd, opts)
	return cmd
}

func listArchives(ctx context.Context, cmd *cobra.Command, m *mirror.Mirror, subdirectory string) error {
	objects, err := m.List(ctx, subdirectory)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Archive", "Size", "Published"})
	for _, obj := range objects {
		t.AppendRow(table.Row{obj.Key, units.HumanSize(float64(obj.Size)), obj.LastModified.Format(time.RFC3339)})
	}
	t.Render()
	return nil
}
