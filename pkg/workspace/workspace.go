package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	apierr "github.com/YgNiko/openvino-prep/pkg/errors"
	"github.com/YgNiko/openvino-prep/pkg/omz"
	"github.com/YgNiko/openvino-prep/pkg/types"
)

const (
	ConfigFileName = "ovprep.yaml"
	ReadmeFileName = "README.md"

	ModelDirName = "models"
	CacheDirName = "cache"
	PackDirName  = "packs"

	DefaultPrecision = "FP16"
)

// ToolPaths overrides binary locations for nonstandard installs. Empty means
// PATH lookup.
type ToolPaths struct {
	Downloader  string `json:"downloader,omitempty"`
	Converter   string `json:"converter,omitempty"`
	InfoDumper  string `json:"infoDumper,omitempty"`
	Benchmark   string `json:"benchmark,omitempty"`
	QueryDevice string `json:"queryDevice,omitempty"`
}

type Config struct {
	Precision string    `json:"precision,omitempty"`
	Device    string    `json:"device,omitempty"`
	Tools     ToolPaths `json:"tools,omitempty"`
}

// Workspace is one prepared-model tree: downloads and converted IR under
// models/, downloader and metadata caches under cache/, exported archives
// under packs/.
type Workspace struct {
	Name   string
	Root   string
	Config Config
}

func Open(name string, root string) (*Workspace, error) {
	if fi, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("workspace %s: %w", name, err)
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("workspace %s: %s is not a directory", name, root)
	}
	w := &Workspace{Name: name, Root: root}

	content, err := os.ReadFile(filepath.Join(root, ConfigFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		return w, nil
	}
	if err := yaml.Unmarshal(content, &w.Config); err != nil {
		return nil, apierr.NewConfigInvalidError(fmt.Sprintf("parse %s: %v", ConfigFileName, err))
	}
	return w, nil
}

// Init creates the workspace skeleton at path.
func Init(path string, force bool) error {
	if _, err := os.Stat(filepath.Join(path, ConfigFileName)); err == nil && !force {
		return fmt.Errorf("workspace already initialized at %s", path)
	}

	for _, dir := range []string{ModelDirName, CacheDirName, PackDirName} {
		if err := os.MkdirAll(filepath.Join(path, dir), 0o755); err != nil {
			return fmt.Errorf("create workspace directory: %w", err)
		}
	}

	config := Config{Precision: DefaultPrecision, Device: "CPU"}
	content, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode workspace config: %w", err)
	}
	configfile := filepath.Join(path, ConfigFileName)
	if err := os.WriteFile(configfile, content, 0o644); err != nil {
		return fmt.Errorf("write workspace config:%s %w", configfile, err)
	}

	readmefile := filepath.Join(path, ReadmeFileName)
	if _, err := os.Stat(readmefile); errors.Is(err, os.ErrNotExist) {
		readme := fmt.Sprintf("# %s\n\nPrepared OpenVINO models. Managed by ovprep.\n", filepath.Base(path))
		_ = os.WriteFile(readmefile, []byte(readme), 0o644)
	}

	fmt.Printf("Workspace initialized in %s\n", path)
	return nil
}

func (w *Workspace) ModelDir() string {
	return filepath.Join(w.Root, ModelDirName)
}

func (w *Workspace) CacheDir() string {
	return filepath.Join(w.Root, CacheDirName)
}

func (w *Workspace) PackDir() string {
	return filepath.Join(w.Root, PackDirName)
}

func (w *Workspace) InfoCachePath() string {
	return filepath.Join(w.CacheDir(), "info.db")
}

func (w *Workspace) OpenInfoCache() (*omz.InfoCache, error) {
	if err := os.MkdirAll(w.CacheDir(), 0o755); err != nil {
		return nil, err
	}
	return omz.OpenInfoCache(w.InfoCachePath())
}

// Tool builds the named vendor tool with any configured path override.
func (w *Workspace) Tool(name string) omz.Tool {
	override := ""
	switch name {
	case omz.DownloaderTool:
		override = w.Config.Tools.Downloader
	case omz.ConverterTool:
		override = w.Config.Tools.Converter
	case omz.InfoDumperTool:
		override = w.Config.Tools.InfoDumper
	case omz.BenchmarkTool:
		override = w.Config.Tools.Benchmark
	case omz.QueryDeviceTool:
		override = w.Config.Tools.QueryDevice
	}
	return omz.NewTool(name, override)
}

// DefaultPrecision resolves the workspace precision default.
func (w *Workspace) DefaultPrecision() string {
	if w.Config.Precision != "" {
		return w.Config.Precision
	}
	return DefaultPrecision
}

func (w *Workspace) DefaultDevice() string {
	if w.Config.Device != "" {
		return w.Config.Device
	}
	return "CPU"
}

// ResolveIR locates the converted IR for a model at the given precision:
// models/<subdirectory>/<PRECISION>/<name>.xml with its .bin next to it.
func (w *Workspace) ResolveIR(info types.ModelInfo, precision string) (string, error) {
	if !omz.IsPrecision(precision) {
		return "", apierr.NewPrecisionInvalidError(precision)
	}
	irdir := filepath.Join(w.ModelDir(), filepath.FromSlash(info.Subdirectory), precision)
	xml := filepath.Join(irdir, info.Name+".xml")
	bin := filepath.Join(irdir, info.Name+".bin")
	if _, err := os.Stat(xml); err != nil {
		return "", apierr.NewIRUnknownError(info.Name, precision)
	}
	if _, err := os.Stat(bin); err != nil {
		return "", apierr.NewIRUnknownError(info.Name, precision)
	}
	return xml, nil
}

// ModelRoot is the downloaded tree of one model.
func (w *Workspace) ModelRoot(info types.ModelInfo) string {
	return filepath.Join(w.ModelDir(), filepath.FromSlash(info.Subdirectory))
}
