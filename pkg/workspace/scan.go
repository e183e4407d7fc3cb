package workspace

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencontainers/go-digest"
	"golang.org/x/exp/slices"

	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

// Scan walks the model tree under models/<subpath> and describes every file
// with its size, sha256 digest and precision (taken from the path element the
// converter layout puts IR under). An empty subpath scans everything.
func (w *Workspace) Scan(ctx context.Context, subpath string) (*types.Manifest, error) {
	root := w.ModelDir()
	if subpath != "" {
		root = filepath.Join(root, filepath.FromSlash(subpath))
	}

	manifest := &types.Manifest{
		Model: subpath,
		Files: []types.Descriptor{},
	}
	fsys := os.DirFS(root)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		desc := types.Descriptor{
			Name:      p,
			Precision: precisionOf(p),
		}
		if fi, err := d.Info(); err == nil {
			desc.Size = fi.Size()
			desc.Modified = fi.ModTime()
		}

		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		dgst, err := digest.FromReader(f)
		if err != nil {
			return err
		}
		desc.Digest = dgst

		manifest.Files = append(manifest.Files, desc)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return manifest, nil
		}
		return nil, err
	}
	slices.SortFunc(manifest.Files, types.SortDescriptorName)
	return manifest, nil
}

// Models lists the model trees present in the workspace as
// <group>/<name> paths, matching the zoo's subdirectory layout.
func (w *Workspace) Models(ctx context.Context) ([]string, error) {
	fsys := os.DirFS(w.ModelDir())
	groups, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	models := []string{}
	for _, group := range groups {
		if !group.IsDir() || strings.HasPrefix(group.Name(), ".") {
			continue
		}
		entries, err := fs.ReadDir(fsys, group.Name())
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				models = append(models, path.Join(group.Name(), entry.Name()))
			}
		}
	}
	sort.Strings(models)
	return models, nil
}

func precisionOf(p string) string {
	for _, elem := range strings.Split(p, "/") {
		if omz.IsPrecision(elem) {
			return elem
		}
	}
	return ""
}
