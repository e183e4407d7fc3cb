package types

import (
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

// InputInfo describes one model input as reported by the info dumper.
type InputInfo struct {
	Name   string `json:"name"`
	Shape  []int  `json:"shape"`
	Layout string `json:"layout"`
}

// ModelInfo is the metadata record emitted by omz_info_dumper for a single
// model. Field names follow the tool's JSON output.
type ModelInfo struct {
	Name                         string      `json:"name"`
	CompositeModelName           string      `json:"composite_model_name,omitempty"`
	Description                  string      `json:"description"`
	Framework                    string      `json:"framework"`
	LicenseURL                   string      `json:"license_url"`
	Precisions                   []string    `json:"precisions"`
	QuantizationOutputPrecisions []string    `json:"quantization_output_precisions,omitempty"`
	Subdirectory                 string      `json:"subdirectory"`
	TaskType                     string      `json:"task_type"`
	InputInfo                    []InputInfo `json:"input_info,omitempty"`
}

// HasPrecision reports whether the model is published at the given precision.
func (m ModelInfo) HasPrecision(precision string) bool {
	for _, p := range m.Precisions {
		if p == precision {
			return true
		}
	}
	return false
}

type Descriptor struct {
	Name      string        `json:"name"`
	Precision string        `json:"precision,omitempty"`
	Digest    digest.Digest `json:"digest,omitempty"`
	Size      int64         `json:"size,omitempty"`
	Modified  time.Time     `json:"modified,omitempty"`
}

func SortDescriptorName(a, b Descriptor) bool {
	return strings.Compare(a.Name, b.Name) < 0
}

// Manifest lists the files of one model tree inside a workspace.
type Manifest struct {
	Model string       `json:"model"`
	Files []Descriptor `json:"files"`
}

// Latency is the latency section of a benchmark run, in milliseconds.
type Latency struct {
	Median  float64 `json:"median,omitempty"`
	Average float64 `json:"average,omitempty"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
}

// BenchmarkResult is the parsed summary of one benchmark_app run.
type BenchmarkResult struct {
	Model         string  `json:"model,omitempty"`
	Device        string  `json:"device,omitempty"`
	Count         int64   `json:"count"`
	DurationMS    float64 `json:"durationMS"`
	Latency       Latency `json:"latency"`
	ThroughputFPS float64 `json:"throughputFPS"`
}

// Device is one accelerator reported by the runtime query tool.
type Device struct {
	Name       string            `json:"name"`
	FullName   string            `json:"fullName,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}
