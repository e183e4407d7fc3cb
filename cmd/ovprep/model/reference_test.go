package model

import (
	"reflect"
	"testing"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Reference
		wantErr bool
	}{
		{
			name: "bare model leaves workspace empty",
			raw:  "mobilenet-v2-pytorch",
			want: Reference{
				Model: "mobilenet-v2-pytorch",
			},
		},
		{
			raw: "mobilenet-v2-pytorch@FP16",
			want: Reference{
				Model:     "mobilenet-v2-pytorch",
				Precision: "FP16",
			},
		},
		{
			name: "explicitly typed default workspace is kept",
			raw:  "default/mobilenet-v2-pytorch",
			want: Reference{
				Workspace: "default",
				Model:     "mobilenet-v2-pytorch",
			},
		},
		{
			raw: "lab/face-detection-retail-0004@FP16-INT8",
			want: Reference{
				Workspace: "lab",
				Model:     "face-detection-retail-0004",
				Precision: "FP16-INT8",
			},
		},
		{
			raw: "lab/mobilenet-v2-pytorch",
			want: Reference{
				Workspace: "lab",
				Model:     "mobilenet-v2-pytorch",
			},
		},
		{
			raw:     "mobilenet-v2-pytorch@INT8",
			wantErr: true,
		},
		{
			raw:     "mobilenet-v2-pytorch@fp16",
			wantErr: true,
		},
		{
			raw:     "/mobilenet-v2-pytorch",
			wantErr: true,
		},
		{
			raw:     "lab/",
			wantErr: true,
		},
		{
			raw:     "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseReference() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseReference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListReference(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wsflag  string
		want    Reference
		wantErr bool
	}{
		{
			name:   "no argument lists the flag workspace",
			wsflag: "lab",
			want:   Reference{Workspace: "lab"},
		},
		{
			name:   "bare model takes the flag workspace",
			arg:    "mobilenet-v2-pytorch",
			wsflag: "lab",
			want:   Reference{Workspace: "lab", Model: "mobilenet-v2-pytorch"},
		},
		{
			name:   "typed workspace wins over the flag",
			arg:    "prod/mobilenet-v2-pytorch",
			wsflag: "lab",
			want:   Reference{Workspace: "prod", Model: "mobilenet-v2-pytorch"},
		},
		{
			name:   "typed default workspace is not rebound",
			arg:    "default/mobilenet-v2-pytorch",
			wsflag: "lab",
			want:   Reference{Workspace: "default", Model: "mobilenet-v2-pytorch"},
		},
		{
			name:    "bad reference",
			arg:     "lab/",
			wsflag:  "lab",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := listReference(tt.arg, tt.wsflag)
			if (err != nil) != tt.wantErr {
				t.Errorf("listReference() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("listReference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReferenceString(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{
			name: "default workspace omitted",
			ref:  Reference{Workspace: "default", Model: "mobilenet-v2-pytorch", Precision: "FP16"},
			want: "mobilenet-v2-pytorch@FP16",
		},
		{
			ref:  Reference{Workspace: "lab", Model: "mobilenet-v2-pytorch"},
			want: "lab/mobilenet-v2-pytorch",
		},
		{
			ref:  Reference{Model: "mobilenet-v2-pytorch"},
			want: "mobilenet-v2-pytorch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.want {
				t.Errorf("Reference.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
