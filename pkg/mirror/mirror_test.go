package mirror

import "testing"

func TestArchiveKey(t *testing.T) {
	tests := []struct {
		name         string
		subdirectory string
		precision    string
		model        string
		want         string
	}{
		{
			name:         "public model",
			subdirectory: "public/mobilenet-v2-pytorch",
			precision:    "FP16",
			model:        "mobilenet-v2-pytorch",
			want:         "public/mobilenet-v2-pytorch/FP16/mobilenet-v2-pytorch.tar.gz",
		},
		{
			name:         "intel model",
			subdirectory: "intel/face-detection-retail-0004",
			precision:    "FP16-INT8",
			model:        "face-detection-retail-0004",
			want:         "intel/face-detection-retail-0004/FP16-INT8/face-detection-retail-0004.tar.gz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArchiveKey(tt.subdirectory, tt.precision, tt.model); got != tt.want {
				t.Errorf("ArchiveKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if IsNotFound(nil) {
		t.Errorf("IsNotFound(nil) = true, want false")
	}
}
