package benchmark

import (
	"reflect"
	"strings"
	"testing"

	"github.com/YgNiko/openvino-prep/pkg/types"
)

const sampleOutput = `[Step 1/11] Parsing and validating input arguments
[ INFO ] Parsing input parameters
[Step 2/11] Loading OpenVINO Runtime
[ INFO ] OpenVINO:
[ INFO ] Build ................................. 2022.3.0-9052-9752fafe8eb-releases/2022/3
[Step 10/11] Measuring performance (Start inference asynchronously, 4 inference requests, limits: 15000 ms duration)
[ INFO ] First inference took 7.85 ms
[Step 11/11] Dumping statistics report
[ INFO ] Count:            27612 iterations
[ INFO ] Duration:         15007.22 ms
[ INFO ] Latency:
[ INFO ]    Median:        6.32 ms
[ INFO ]    Average:       6.40 ms
[ INFO ]    Min:           4.88 ms
[ INFO ]    Max:           13.37 ms
[ INFO ] Throughput:   1839.91 FPS

Count:          27612 iterations
Duration:       15007.22 ms
Latency:
    Median:     6.32 ms
    Average:    6.40 ms
    Min:        4.88 ms
    Max:        13.37 ms
Throughput:     1839.91 FPS`

func TestFilterSummary(t *testing.T) {
	lines := strings.Split(sampleOutput, "\n")
	got := FilterSummary(lines)
	want := []string{
		"Count:          27612 iterations",
		"Duration:       15007.22 ms",
		"Latency:",
		"    Median:     6.32 ms",
		"    Average:    6.40 ms",
		"    Min:        4.88 ms",
		"    Max:        13.37 ms",
		"Throughput:     1839.91 FPS",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterSummary() = %v, want %v", got, want)
	}
}

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    *types.BenchmarkResult
		wantErr bool
	}{
		{
			name:  "latency block",
			lines: FilterSummary(strings.Split(sampleOutput, "\n")),
			want: &types.BenchmarkResult{
				Count:      27612,
				DurationMS: 15007.22,
				Latency: types.Latency{
					Median:  6.32,
					Average: 6.40,
					Min:     4.88,
					Max:     13.37,
				},
				ThroughputFPS: 1839.91,
			},
		},
		{
			name: "single line latency",
			lines: []string{
				"Count:      1000 iterations",
				"Duration:   5000.00 ms",
				"Latency:    5.00 ms",
				"Throughput: 200.00 FPS",
			},
			want: &types.BenchmarkResult{
				Count:         1000,
				DurationMS:    5000.00,
				Latency:       types.Latency{Median: 5.00},
				ThroughputFPS: 200.00,
			},
		},
		{
			name:    "no statistics",
			lines:   []string{"some unrelated output"},
			wantErr: true,
		},
		{
			name:    "empty",
			lines:   nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSummary(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSummary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSummary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOptionsArgs(t *testing.T) {
	opts := Options{
		ModelPath: "/ws/models/public/mobilenet-v2-pytorch/FP16/mobilenet-v2-pytorch.xml",
		Device:    "GPU",
		Seconds:   15,
		API:       APIAsync,
		Batch:     1,
	}
	want := []string{
		"-m", "/ws/models/public/mobilenet-v2-pytorch/FP16/mobilenet-v2-pytorch.xml",
		"-d", "GPU",
		"-t", "15",
		"-api", "async",
		"-b", "1",
	}
	if got := opts.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("Options.Args() = %v, want %v", got, want)
	}
}
