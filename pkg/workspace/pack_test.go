package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPackUnpackRoundtrip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"FP16/mobilenet-v2-pytorch.xml": "<net/>",
		"FP16/mobilenet-v2-pytorch.bin": "weights",
	})

	packfile := filepath.Join(t.TempDir(), "packs", "mobilenet-v2-pytorch.tar.gz")
	dgst, size, err := Pack(context.Background(), src, packfile)
	if err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	if size <= 0 {
		t.Errorf("Pack() size = %d, want > 0", size)
	}
	if err := dgst.Validate(); err != nil {
		t.Errorf("Pack() digest %q invalid: %v", dgst, err)
	}
	fi, err := os.Stat(packfile)
	if err != nil {
		t.Fatalf("archive not written: %v", err)
	}
	if fi.Size() != size {
		t.Errorf("archive size = %d, Pack() reported %d", fi.Size(), size)
	}

	// digest-only run writes nothing but reports the same digest
	dgst2, size2, err := Pack(context.Background(), src, "")
	if err != nil {
		t.Fatalf("Pack() digest-only error = %v", err)
	}
	if dgst2 != dgst || size2 != size {
		t.Errorf("digest-only Pack() = (%v, %d), want (%v, %d)", dgst2, size2, dgst, size)
	}

	dst := t.TempDir()
	f, err := os.Open(packfile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := Unpack(context.Background(), dst, f); err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}

	for name, want := range map[string]string{
		"FP16/mobilenet-v2-pytorch.xml": "<net/>",
		"FP16/mobilenet-v2-pytorch.bin": "weights",
	} {
		content, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("missing %s after Unpack: %v", name, err)
			continue
		}
		if string(content) != want {
			t.Errorf("%s = %q, want %q", name, content, want)
		}
	}
}
