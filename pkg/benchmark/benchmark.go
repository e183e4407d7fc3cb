package benchmark

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

const (
	APISync  = "sync"
	APIAsync = "async"

	DefaultSeconds = 15
	DefaultBatch   = 1
)

type Options struct {
	ModelPath string
	Device    string
	Seconds   int
	API       string
	Batch     int
}

func (o Options) Args() []string {
	seconds := o.Seconds
	if seconds <= 0 {
		seconds = DefaultSeconds
	}
	api := o.API
	if api == "" {
		api = APIAsync
	}
	batch := o.Batch
	if batch <= 0 {
		batch = DefaultBatch
	}
	args := []string{"-m", o.ModelPath}
	if o.Device != "" {
		args = append(args, "-d", o.Device)
	}
	return append(args,
		"-t", strconv.Itoa(seconds),
		"-api", api,
		"-b", strconv.Itoa(batch),
	)
}

// Run executes benchmark_app and returns the parsed summary together with the
// filtered display lines (tool output minus log lines, exactly as the tool
// printed them).
func Run(ctx context.Context, tool omz.Tool, opts Options) (*types.BenchmarkResult, []string, error) {
	if opts.ModelPath == "" {
		return nil, nil, apierr.NewParameterInvalidError("model path is required")
	}
	if opts.API != "" && opts.API != APISync && opts.API != APIAsync {
		return nil, nil, apierr.NewParameterInvalidError("api must be sync or async: " + opts.API)
	}

	out, err := tool.Output(ctx, opts.Args()...)
	if err != nil {
		return nil, nil, err
	}

	lines := FilterSummary(splitLines(out))
	result, err := ParseSummary(lines)
	if err != nil {
		return nil, lines, apierr.NewOutputInvalidError(tool.Name, err)
	}
	result.Device = opts.Device
	return result, lines, nil
}

func splitLines(out []byte) []string {
	return strings.Split(string(bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))), "\n")
}
