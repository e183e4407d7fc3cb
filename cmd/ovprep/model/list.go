package model

import (
	"context"
	"path"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/units"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

func NewListCmd() *cobra.Command {
	wsname := workspace.DefaultWorkspaceName
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list downloaded models or the files of one model",
		Example: `
  ovprep list
  ovprep list --workspace lab
  ovprep list mobilenet-v2-pytorch
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()

			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			ref, err := listReference(arg, wsname)
			if err != nil {
				return err
			}

			ws, err := ref.Open()
			if err != nil {
				return err
			}
			show, err := List(ctx, ws, ref.Model)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row(show.Header))
			for _, item := range show.Items {
				t.AppendRow(table.Row(item))
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&wsname, "workspace", wsname, "workspace to list")
	return cmd
}

// listReference resolves what to list: the --workspace flag fills in only
// when the reference did not name a workspace itself.
func listReference(arg string, wsflag string) (Reference, error) {
	if arg == "" {
		return Reference{Workspace: wsflag}, nil
	}
	parsed, err := ParseReference(arg)
	if err != nil {
		return Reference{}, err
	}
	if parsed.Workspace == "" {
		parsed.Workspace = wsflag
	}
	return parsed, nil
}

type ShowList struct {
	Header []any
	Items  [][]any
}

func List(ctx context.Context, ws *workspace.Workspace, model string) (*ShowList, error) {
	if model == "" {
		// list model trees
		models, err := ws.Models(ctx)
		if err != nil {
			return nil, err
		}
		show := &ShowList{Header: []any{"Model", "Files", "Size"}}
		for _, name := range models {
			manifest, err := ws.Scan(ctx, name)
			if err != nil {
				return nil, err
			}
			var total int64
			for _, file := range manifest.Files {
				total += file.Size
			}
			show.Items = append(show.Items, []any{name, len(manifest.Files), units.HumanSize(float64(total))})
		}
		return show, nil
	}

	// list files of one model
	subpath, err := findModelTree(ctx, ws, model)
	if err != nil {
		return nil, err
	}
	manifest, err := ws.Scan(ctx, subpath)
	if err != nil {
		return nil, err
	}
	show := &ShowList{Header: []any{"File", "Precision", "Size", "Digest", "Modified"}}
	for _, file := range manifest.Files {
		show.Items = append(show.Items, []any{
			file.Name,
			file.Precision,
			units.HumanSize(float64(file.Size)),
			file.Digest.Encoded()[:16],
			file.Modified.Format(time.RFC3339),
		})
	}
	return show, nil
}

// findModelTree maps a zoo model name to its <group>/<name> tree in the
// workspace.
func findModelTree(ctx context.Context, ws *workspace.Workspace, model string) (string, error) {
	models, err := ws.Models(ctx)
	if err != nil {
		return "", err
	}
	for _, name := range models {
		if name == model || path.Base(name) == model {
			return name, nil
		}
	}
	return "", apierr.NewModelUnknownError(model)
}
