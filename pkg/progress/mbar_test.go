package progress

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMultiBarConcurrentUpdates(t *testing.T) {
	out := &bytes.Buffer{}
	mb := NewMultiBar(out, 20, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		mb.Run(ctx)
	}()

	for _, name := range []string{"a@FP16", "b@FP16", "c@FP32", "d@FP32"} {
		name := name
		mb.Go(name, "pending", func(b *Bar) error {
			for i := 0; i < 100; i++ {
				b.SetStatus(name, "working")
				b.SetProgress(int64(i), 100)
			}
			b.SetStatus(name, "done")
			return nil
		})
	}
	if err := mb.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	cancel()
	<-done

	final := out.String()
	for _, name := range []string{"a@FP16", "b@FP16", "c@FP32", "d@FP32"} {
		if !strings.Contains(final, name) {
			t.Errorf("final paint missing bar %s", name)
		}
	}
}

func TestMultiBarPropagatesWorkerError(t *testing.T) {
	mb := NewMultiBar(io.Discard, 20, 2)
	boom := errors.New("boom")

	mb.Go("ok", "pending", func(b *Bar) error { return nil })
	mb.Go("bad", "pending", func(b *Bar) error { return boom })

	if err := mb.Wait(); !errors.Is(err, boom) {
		t.Errorf("Wait() error = %v, want %v", err, boom)
	}
}

func TestBarReaderCountsAndCompletes(t *testing.T) {
	b := &Bar{Width: 10}
	payload := strings.Repeat("x", 100)
	r := b.WrapReader(io.NopCloser(strings.NewReader(payload)), "pack", int64(len(payload)), "uploading", "done", "failed")

	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatal(err)
	}
	r.Close()

	if b.Completed != int64(len(payload)) {
		t.Errorf("Completed = %d, want %d", b.Completed, len(payload))
	}
	if !b.Done || b.Status != "done" {
		t.Errorf("bar state = (done %v, status %q), want completed", b.Done, b.Status)
	}

	// short read marks failure on close
	b2 := &Bar{Width: 10}
	r2 := b2.WrapReader(io.NopCloser(strings.NewReader("xx")), "pack", 100, "uploading", "done", "failed")
	_, _ = io.Copy(io.Discard, r2)
	_ = r2.Close()
	if b2.Status != "failed" {
		t.Errorf("Status after short read = %q, want failed", b2.Status)
	}
}
