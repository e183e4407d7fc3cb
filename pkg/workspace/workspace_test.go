package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YgNiko/openvino-prep/pkg/types"
)

func TestInitAndOpen(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := Init(dir, false); err == nil {
		t.Errorf("Init() on initialized workspace expected error, got nil")
	}
	if err := Init(dir, true); err != nil {
		t.Errorf("Init(force) error = %v", err)
	}

	for _, sub := range []string{ModelDirName, CacheDirName, PackDirName, ConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, sub)); err != nil {
			t.Errorf("missing %s after Init: %v", sub, err)
		}
	}

	ws, err := Open("test", dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := ws.DefaultPrecision(); got != "FP16" {
		t.Errorf("DefaultPrecision() = %v, want FP16", got)
	}
	if got := ws.DefaultDevice(); got != "CPU" {
		t.Errorf("DefaultDevice() = %v, want CPU", got)
	}
}

func TestOpenConfig(t *testing.T) {
	dir := t.TempDir()
	config := "precision: FP32\ndevice: GPU\ntools:\n  benchmark: /opt/intel/benchmark_app\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := Open("test", dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := ws.DefaultPrecision(); got != "FP32" {
		t.Errorf("DefaultPrecision() = %v, want FP32", got)
	}
	if got := ws.DefaultDevice(); got != "GPU" {
		t.Errorf("DefaultDevice() = %v, want GPU", got)
	}
	if got := ws.Config.Tools.Benchmark; got != "/opt/intel/benchmark_app" {
		t.Errorf("Tools.Benchmark = %v", got)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open("test", filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Errorf("Open() on missing root expected error, got nil")
	}
}

func TestResolveIR(t *testing.T) {
	dir := t.TempDir()
	ws := &Workspace{Name: "test", Root: dir}
	info := types.ModelInfo{
		Name:         "mobilenet-v2-pytorch",
		Subdirectory: "public/mobilenet-v2-pytorch",
	}

	if _, err := ws.ResolveIR(info, "FP16"); err == nil {
		t.Errorf("ResolveIR() before conversion expected error, got nil")
	}
	if _, err := ws.ResolveIR(info, "INT8"); err == nil {
		t.Errorf("ResolveIR() with bad precision expected error, got nil")
	}

	irdir := filepath.Join(ws.ModelDir(), "public", "mobilenet-v2-pytorch", "FP16")
	if err := os.MkdirAll(irdir, 0o755); err != nil {
		t.Fatal(err)
	}
	xml := filepath.Join(irdir, "mobilenet-v2-pytorch.xml")
	if err := os.WriteFile(xml, []byte("<net/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	// xml without bin is not a usable IR
	if _, err := ws.ResolveIR(info, "FP16"); err == nil {
		t.Errorf("ResolveIR() without .bin expected error, got nil")
	}

	if err := os.WriteFile(filepath.Join(irdir, "mobilenet-v2-pytorch.bin"), []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ws.ResolveIR(info, "FP16")
	if err != nil {
		t.Fatalf("ResolveIR() error = %v", err)
	}
	if got != xml {
		t.Errorf("ResolveIR() = %v, want %v", got, xml)
	}
}
