package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/YgNiko/openvino-prep/pkg/units"
)

// Bar is one row of a MultiBar. Total <= 0 renders as a status-only bar,
// which is what tool-driven steps use: the vendor tools do not report byte
// progress, only completion.
//
// Fields are written by the worker goroutine and read by the repaint
// goroutine; mu guards them.
type Bar struct {
	Name      string
	Total     int64
	Completed int64
	Width     int
	Status    string
	Done      bool

	mu sync.Mutex
	mp *MultiBar
}

func (b *Bar) Write(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Width == 0 {
		b.Width = 40
	}
	var completed int
	var status string

	if b.Done {
		completed = b.Width
		status = b.Status
	} else if b.Total <= 0 {
		completed = 0
		status = b.Status
	} else {
		completed = int(float64(b.Width) * float64(b.Completed) / float64(b.Total))
		if completed < 0 {
			completed = 0
		}
		if completed > b.Width {
			completed = b.Width
		}
		status = units.HumanSize(float64(b.Completed)) + "/" + units.HumanSize(float64(b.Total))
	}

	fmt.Fprintf(w, "%s [%s%s] %s\n",
		b.Name,
		strings.Repeat("+", completed),
		strings.Repeat("-", b.Width-completed),
		status,
	)
}

func (b *Bar) SetStatus(name, status string) {
	b.mu.Lock()
	b.Name, b.Status = name, status
	b.mu.Unlock()
	b.Notify()
}

func (b *Bar) SetProgress(completed, total int64) {
	b.mu.Lock()
	b.Completed, b.Total = completed, total
	b.mu.Unlock()
	b.Notify()
}

func (b *Bar) Notify() {
	if b.mp != nil {
		b.mp.changed()
	}
}

func (b *Bar) setStatus(status string) {
	b.mu.Lock()
	b.Status = status
	b.mu.Unlock()
	b.Notify()
}

func (b *Bar) complete() {
	b.mu.Lock()
	b.Done = true
	b.mu.Unlock()
	b.Notify()
}

// WrapReader counts bytes flowing through rc against the bar.
func (b *Bar) WrapReader(rc io.ReadCloser, name string, total int64, onProcess, onComplete, onFailed string) io.ReadCloser {
	b.mu.Lock()
	b.Name = name
	b.Total = total
	b.Status = onProcess
	b.mu.Unlock()
	b.Notify()
	return &barReader{rc: rc, b: b, onComplete: onComplete, onFailed: onFailed}
}

type barReader struct {
	rc         io.ReadCloser
	b          *Bar
	onComplete string
	onFailed   string
}

func (r *barReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	r.b.mu.Lock()
	r.b.Completed += int64(n)
	if r.b.Total > 0 && r.b.Completed >= r.b.Total {
		r.b.Status = r.onComplete
		r.b.Done = true
	}
	r.b.mu.Unlock()
	r.b.Notify()
	return n, err
}

func (r *barReader) Close() error {
	r.b.mu.Lock()
	if r.b.Total > 0 && r.b.Completed < r.b.Total {
		r.b.Status = r.onFailed
	}
	r.b.mu.Unlock()
	r.b.Notify()
	return r.rc.Close()
}
