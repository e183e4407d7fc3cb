package omz

import (
	"reflect"
	"testing"
)

func TestIsPrecision(t *testing.T) {
	tests := []struct {
		precision string
		want      bool
	}{
		{precision: "FP16", want: true},
		{precision: "FP32", want: true},
		{precision: "FP16-INT8", want: true},
		{precision: "FP32-INT1", want: true},
		{precision: "INT8", want: false},
		{precision: "fp16", want: false},
		{precision: "FP64", want: false},
		{precision: "FP16-INT4", want: false},
		{precision: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.precision, func(t *testing.T) {
			if got := IsPrecision(tt.precision); got != tt.want {
				t.Errorf("IsPrecision(%q) = %v, want %v", tt.precision, got, tt.want)
			}
		})
	}
}

func TestDownloadOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts DownloadOptions
		want []string
	}{
		{
			name: "minimal",
			opts: DownloadOptions{Name: "mobilenet-v2-pytorch", OutputDir: "/ws/models"},
			want: []string{"--name", "mobilenet-v2-pytorch", "--output_dir", "/ws/models"},
		},
		{
			name: "full",
			opts: DownloadOptions{
				Name:       "mobilenet-v2-pytorch",
				OutputDir:  "/ws/models",
				CacheDir:   "/ws/cache",
				Precisions: []string{"FP16", "FP32"},
			},
			want: []string{
				"--name", "mobilenet-v2-pytorch",
				"--output_dir", "/ws/models",
				"--cache_dir", "/ws/cache",
				"--precisions", "FP16,FP32",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DownloadOptions.Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertOptionsArgs(t *testing.T) {
	tests := []struct {
		name string
		opts ConvertOptions
		want []string
	}{
		{
			name: "minimal",
			opts: ConvertOptions{Name: "mobilenet-v2-pytorch"},
			want: []string{"--name", "mobilenet-v2-pytorch"},
		},
		{
			name: "full",
			opts: ConvertOptions{
				Name:        "mobilenet-v2-pytorch",
				Precisions:  []string{"FP16"},
				DownloadDir: "/ws/models",
				OutputDir:   "/ws/models",
				Jobs:        4,
			},
			want: []string{
				"--name", "mobilenet-v2-pytorch",
				"--precisions", "FP16",
				"--download_dir", "/ws/models",
				"--output_dir", "/ws/models",
				"--jobs", "4",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ConvertOptions.Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	raw := []byte(`[
  {
    "name": "mobilenet-v2-pytorch",
    "composite_model_name": null,
    "description": "MobileNet V2 is image classification model pre-trained on ImageNet dataset.",
    "framework": "pytorch",
    "license_url": "https://raw.githubusercontent.com/tonylins/pytorch-mobilenet-v2/master/LICENSE",
    "precisions": ["FP16", "FP32"],
    "quantization_output_precisions": [],
    "subdirectory": "public/mobilenet-v2-pytorch",
    "task_type": "classification",
    "input_info": [
      {"name": "data", "shape": [1, 3, 224, 224], "layout": "NCHW"}
    ]
  }
]`)
	infos, err := ParseInfo(raw)
	if err != nil {
		t.Fatalf("ParseInfo() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("ParseInfo() returned %d models, want 1", len(infos))
	}
	info := infos[0]
	if info.Name != "mobilenet-v2-pytorch" {
		t.Errorf("Name = %v, want mobilenet-v2-pytorch", info.Name)
	}
	if info.Subdirectory != "public/mobilenet-v2-pytorch" {
		t.Errorf("Subdirectory = %v, want public/mobilenet-v2-pytorch", info.Subdirectory)
	}
	if !reflect.DeepEqual(info.Precisions, []string{"FP16", "FP32"}) {
		t.Errorf("Precisions = %v, want [FP16 FP32]", info.Precisions)
	}
	if !info.HasPrecision("FP16") || info.HasPrecision("FP16-INT8") {
		t.Errorf("HasPrecision mismatch on %v", info.Precisions)
	}
	if len(info.InputInfo) != 1 || info.InputInfo[0].Layout != "NCHW" {
		t.Errorf("InputInfo = %+v, want one NCHW input", info.InputInfo)
	}

	if _, err := ParseInfo([]byte("not json")); err == nil {
		t.Errorf("ParseInfo() on garbage expected error, got nil")
	}
}
