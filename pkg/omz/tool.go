package omz

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
)

// Names of the vendor command-line tools driven by this package.
const (
	DownloaderTool  = "omz_downloader"
	ConverterTool   = "omz_converter"
	InfoDumperTool  = "omz_info_dumper"
	BenchmarkTool   = "benchmark_app"
	QueryDeviceTool = "hello_query_device"
)

// stderr kept for error details, to avoid unbounded messages
const stderrTailLimit = 4 << 10

// Tool is one external binary. The zero Path means lookup via PATH.
type Tool struct {
	Name   string
	Path   string
	Stdout io.Writer
	Stderr io.Writer
}

func NewTool(name string, path string) Tool {
	return Tool{Name: name, Path: path}
}

func (t Tool) Resolve() (string, error) {
	if t.Path != "" {
		if _, err := os.Stat(t.Path); err != nil {
			return "", apierr.NewToolNotFoundError(t.Path)
		}
		return t.Path, nil
	}
	path, err := exec.LookPath(t.Name)
	if err != nil {
		return "", apierr.NewToolNotFoundError(t.Name)
	}
	return path, nil
}

// Run executes the tool, forwarding its output to t.Stdout/t.Stderr
// (os.Stdout/os.Stderr when unset). stderr is additionally retained for the
// returned error detail.
func (t Tool) Run(ctx context.Context, args ...string) error {
	path, err := t.Resolve()
	if err != nil {
		return err
	}

	stdout := t.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderrdst := t.Stderr
	if stderrdst == nil {
		stderrdst = os.Stderr
	}
	stderr := &bytes.Buffer{}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderrdst, stderr)

	logr.FromContextOrDiscard(ctx).Info("running tool", "command", cmdline(path, args))
	return t.wrap(ctx, cmd.Run(), stderr)
}

// Output executes the tool and returns its captured stdout.
func (t Tool) Output(ctx context.Context, args ...string) ([]byte, error) {
	path, err := t.Resolve()
	if err != nil {
		return nil, err
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logr.FromContextOrDiscard(ctx).Info("running tool", "command", cmdline(path, args))
	if err := t.wrap(ctx, cmd.Run(), stderr); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

func (t Tool) wrap(ctx context.Context, err error, stderr *bytes.Buffer) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	exiterr := &exec.ExitError{}
	if errors.As(err, &exiterr) {
		return apierr.NewToolFailedError(t.Name, exiterr.ExitCode(), stderrTail(stderr))
	}
	if errors.Is(err, exec.ErrNotFound) {
		return apierr.NewToolNotFoundError(t.Name)
	}
	return err
}

func stderrTail(buf *bytes.Buffer) string {
	s := buf.String()
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return strings.TrimSpace(s)
}

func cmdline(path string, args []string) string {
	return strings.Join(append([]string{path}, args...), " ")
}
