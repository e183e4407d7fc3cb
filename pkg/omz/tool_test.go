package omz

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

func fakeTool(t *testing.T, script string) Tool {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	path := filepath.Join(t.TempDir(), "fake_tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return Tool{Name: "fake_tool", Path: path}
}

func TestToolRun(t *testing.T) {
	tool := fakeTool(t, `echo "hello $1"`)
	out := &bytes.Buffer{}
	tool.Stdout, tool.Stderr = out, out

	if err := tool.Run(context.Background(), "world"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := out.String(); got != "hello world\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestToolRunFailure(t *testing.T) {
	tool := fakeTool(t, `echo "boom" >&2; exit 3`)
	tool.Stdout, tool.Stderr = &bytes.Buffer{}, &bytes.Buffer{}

	err := tool.Run(context.Background())
	if !apierr.IsErrCode(err, apierr.ErrCodeToolFailed) {
		t.Fatalf("Run() error = %v, want TOOL_FAILED", err)
	}
	info := apierr.ErrorInfo{}
	if errors.As(err, &info) && info.Detail != "boom" {
		t.Errorf("Detail = %q, want boom", info.Detail)
	}
}

func TestToolNotFound(t *testing.T) {
	tool := Tool{Name: "definitely-not-installed-tool"}
	err := tool.Run(context.Background())
	if !apierr.IsErrCode(err, apierr.ErrCodeToolNotFound) {
		t.Errorf("Run() error = %v, want TOOL_NOT_FOUND", err)
	}

	tool = Tool{Name: "fake_tool", Path: filepath.Join(t.TempDir(), "missing")}
	err = tool.Run(context.Background())
	if !apierr.IsErrCode(err, apierr.ErrCodeToolNotFound) {
		t.Errorf("Run() with missing override = %v, want TOOL_NOT_FOUND", err)
	}
}

func TestToolOutput(t *testing.T) {
	tool := fakeTool(t, `echo "line"`)
	out, err := tool.Output(context.Background())
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if string(out) != "line\n" {
		t.Errorf("Output() = %q", out)
	}
}

func TestDownloadRetries(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "attempted")
	// fails once, then succeeds
	tool := fakeTool(t, `if [ -e `+marker+` ]; then exit 0; fi; touch `+marker+`; exit 1`)
	tool.Stdout, tool.Stderr = &bytes.Buffer{}, &bytes.Buffer{}

	err := Download(context.Background(), tool, DownloadOptions{
		Name:       "mobilenet-v2-pytorch",
		OutputDir:  dir,
		Retries:    2,
		RetryDelay: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
}

func TestDownloadNoRetryBudget(t *testing.T) {
	tool := fakeTool(t, `exit 1`)
	tool.Stdout, tool.Stderr = &bytes.Buffer{}, &bytes.Buffer{}

	err := Download(context.Background(), tool, DownloadOptions{
		Name:       "mobilenet-v2-pytorch",
		OutputDir:  t.TempDir(),
		RetryDelay: 10 * time.Millisecond,
	})
	if !apierr.IsErrCode(err, apierr.ErrCodeToolFailed) {
		t.Errorf("Download() error = %v, want TOOL_FAILED", err)
	}
}

func TestInfoCache(t *testing.T) {
	cache, err := OpenInfoCache(filepath.Join(t.TempDir(), "info.db"))
	if err != nil {
		t.Fatalf("OpenInfoCache() error = %v", err)
	}
	defer cache.Close()

	if _, ok, err := cache.Get("mobilenet-v2-pytorch"); err != nil || ok {
		t.Fatalf("Get() on empty cache = (ok %v, err %v)", ok, err)
	}

	info := types.ModelInfo{
		Name:         "mobilenet-v2-pytorch",
		Subdirectory: "public/mobilenet-v2-pytorch",
		Precisions:   []string{"FP16", "FP32"},
	}
	if err := cache.Put(info); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := cache.Get("mobilenet-v2-pytorch")
	if err != nil || !ok {
		t.Fatalf("Get() after Put = (ok %v, err %v)", ok, err)
	}
	if got.Subdirectory != info.Subdirectory {
		t.Errorf("Get().Subdirectory = %v", got.Subdirectory)
	}

	if err := cache.Delete("mobilenet-v2-pytorch"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := cache.Get("mobilenet-v2-pytorch"); ok {
		t.Errorf("Get() after Delete still found the entry")
	}
}
