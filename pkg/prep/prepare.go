package prep

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/YgNiko/openvino-prep/pkg/benchmark"
	"github.com/YgNiko/openvino-prep/pkg/device"
	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/progress"
	"github.com/YgNiko/openvino-prep/pkg/types"
	"github.com/YgNiko/openvino-prep/pkg/workspace"
)

type Options struct {
	Precisions  []string
	Device      string
	Benchmark   bool
	Seconds     int
	Retries     int
	Concurrency int

	// Progress receives the progress display; defaults to os.Stdout.
	Progress io.Writer
}

type Result struct {
	Precision string
	IRPath    string
	Benchmark *types.BenchmarkResult
}

// Run prepares a model end to end: download, convert to IR, and optionally
// benchmark, once per requested precision. Precisions proceed concurrently
// under one progress display; benchmark steps are serialized so parallel
// inference does not skew each other's numbers.
func Run(ctx context.Context, ws *workspace.Workspace, model string, opts Options) ([]Result, error) {
	if err := omz.ValidatePrecisions(opts.Precisions); err != nil {
		return nil, err
	}

	cache, err := ws.OpenInfoCache()
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	info, err := omz.CachedInfo(ctx, silent(ws.Tool(omz.InfoDumperTool)), cache, model, false)
	if err != nil {
		return nil, err
	}
	for _, p := range opts.Precisions {
		if !info.HasPrecision(p) {
			return nil, apierr.NewPrecisionInvalidError(p + " not published for " + model)
		}
	}

	// fail on an unknown device before the long download and convert steps
	if opts.Benchmark && opts.Device != "" {
		if _, err := device.Find(ctx, silent(ws.Tool(omz.QueryDeviceTool)), opts.Device); err != nil {
			return nil, err
		}
	}

	dest := opts.Progress
	if dest == nil {
		dest = os.Stdout
	}
	mb := progress.NewMultiBar(dest, 40, opts.Concurrency)
	barctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go mb.Run(barctx)

	results := make([]Result, len(opts.Precisions))
	var benchmu sync.Mutex

	for i, precision := range opts.Precisions {
		i, precision := i, precision
		name := model + "@" + precision
		mb.Go(name, "pending", func(b *progress.Bar) error {
			b.SetStatus(name, "downloading")
			err := omz.Download(ctx, silent(ws.Tool(omz.DownloaderTool)), omz.DownloadOptions{
				Name:       model,
				OutputDir:  ws.ModelDir(),
				CacheDir:   ws.CacheDir(),
				Precisions: []string{precision},
				Retries:    opts.Retries,
			})
			if err != nil {
				return err
			}

			b.SetStatus(name, "converting")
			err = omz.Convert(ctx, silent(ws.Tool(omz.ConverterTool)), omz.ConvertOptions{
				Name:        model,
				Precisions:  []string{precision},
				DownloadDir: ws.ModelDir(),
				OutputDir:   ws.ModelDir(),
			})
			if err != nil {
				return err
			}

			irpath, err := ws.ResolveIR(*info, precision)
			if err != nil {
				return err
			}
			results[i] = Result{Precision: precision, IRPath: irpath}

			if opts.Benchmark {
				b.SetStatus(name, "waiting for device")
				benchmu.Lock()
				b.SetStatus(name, "benchmarking")
				result, _, err := benchmark.Run(ctx, silent(ws.Tool(omz.BenchmarkTool)), benchmark.Options{
					ModelPath: irpath,
					Device:    opts.Device,
					Seconds:   opts.Seconds,
				})
				benchmu.Unlock()
				if err != nil {
					return err
				}
				result.Model = model
				results[i].Benchmark = result
			}

			b.SetStatus(name, "done")
			return nil
		})
	}
	if err := mb.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// silent redirects tool chatter away from the progress display; failures keep
// their stderr detail through the tool's error wrapping.
func silent(t omz.Tool) omz.Tool {
	t.Stdout = io.Discard
	t.Stderr = io.Discard
	return t
}
