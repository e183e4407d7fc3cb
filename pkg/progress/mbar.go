package progress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 3

// MultiBar renders a set of Bars to one terminal region and runs their work
// functions on a bounded errgroup.
type MultiBar struct {
	w               io.Writer
	width           int
	lastWrittenRows int
	bars            []*Bar
	barslock        sync.Mutex
	eg              *errgroup.Group

	haschange bool
}

func NewMultiBar(dest io.Writer, width int, concurrent int) *MultiBar {
	if concurrent <= 0 {
		concurrent = DefaultConcurrency
	}
	mb := &MultiBar{
		width: width,
		w:     dest,
		eg:    &errgroup.Group{},
	}
	mb.eg.SetLimit(concurrent)
	return mb
}

func (m *MultiBar) changed() {
	m.barslock.Lock()
	m.haschange = true
	m.barslock.Unlock()
}

// consumeChange reports and clears the pending repaint flag.
func (m *MultiBar) consumeChange() bool {
	m.barslock.Lock()
	defer m.barslock.Unlock()
	c := m.haschange
	m.haschange = false
	return c
}

func (m *MultiBar) print() {
	m.barslock.Lock()
	defer m.barslock.Unlock()

	buf := &bytes.Buffer{}

	// move up and clear previously written rows
	if m.lastWrittenRows > 0 {
		fmt.Fprintf(buf, "\033[%dA\033[J", m.lastWrittenRows)
	}

	for _, b := range m.bars {
		b.Write(buf)
	}

	_, _ = m.w.Write(buf.Bytes())
	m.lastWrittenRows = len(m.bars)
}

// Run repaints on change until ctx is done. Call it in its own goroutine.
func (m *MultiBar) Run(ctx context.Context) {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if m.consumeChange() {
				m.print()
			}
		}
	}
}

// Go adds a bar and schedules fun for it.
func (m *MultiBar) Go(name string, initstatus string, fun func(b *Bar) error) {
	bar := &Bar{
		mp:     m,
		Name:   name,
		Status: initstatus,
		Width:  m.width,
	}
	m.barslock.Lock()
	m.bars = append(m.bars, bar)
	m.barslock.Unlock()
	m.print()

	m.eg.Go(func() error {
		if err := fun(bar); err != nil {
			bar.setStatus("failed")
			return err
		}
		bar.complete()
		return nil
	})
}

// Wait blocks until all scheduled work finished and paints the final state.
func (m *MultiBar) Wait() error {
	err := m.eg.Wait()
	m.print()
	return err
}
