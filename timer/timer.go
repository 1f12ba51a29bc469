// SPDX-License-Identifier: MIT

// Package timer accumulates named wall-clock timings and renders them as a
// table. It is instrumentation around the mesh operators, not part of them.
//
// Usage:
//
//	tm := timer.New(logger)
//	stop := tm.Start("synchronize")
//	err := mr.Synchronize(f, bc)
//	stop()
//	tm.Report(os.Stdout)
package timer

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Timer is a registry of named durations; safe for concurrent use.
type Timer struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	logger  *slog.Logger
	now     func() time.Time
}

type entry struct {
	calls int
	total time.Duration
}

// New returns an empty Timer. A nil logger discards debug output.
func New(logger *slog.Logger) *Timer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Timer{entries: make(map[string]*entry), logger: logger, now: time.Now}
}

// Start begins a measurement and returns the function that ends it.
// Calling the returned function more than once records only the first call.
func (t *Timer) Start(name string) (stop func()) {
	begin := t.now()
	var once sync.Once

	return func() {
		once.Do(func() { t.add(name, t.now().Sub(begin)) })
	}
}

// Measure times fn under name and returns its error.
func (t *Timer) Measure(name string, fn func() error) error {
	stop := t.Start(name)
	defer stop()

	return fn()
}

func (t *Timer) add(name string, d time.Duration) {
	t.mu.Lock()
	e, ok := t.entries[name]
	if !ok {
		e = &entry{}
		t.entries[name] = e
		t.order = append(t.order, name)
	}
	e.calls++
	e.total += d
	t.mu.Unlock()

	t.logger.Debug("timer", "name", name, "elapsed", d)
}

// Total returns the accumulated duration of name.
func (t *Timer) Total(name string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[name]; ok {
		return e.total
	}

	return 0
}

// Calls returns how many measurements of name were recorded.
func (t *Timer) Calls(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.entries[name]; ok {
		return e.calls
	}

	return 0
}

// Names returns the recorded names in first-seen order.
func (t *Timer) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.order...)
}

// Report writes one row per name: calls, total and mean duration.
func (t *Timer) Report(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"timer", "calls", "total", "mean"})

	t.mu.Lock()
	var sum time.Duration
	for _, name := range t.order {
		e := t.entries[name]
		sum += e.total
		tbl.AppendRow(table.Row{name, e.calls, e.total.Round(time.Microsecond), (e.total / time.Duration(e.calls)).Round(time.Microsecond)})
	}
	t.mu.Unlock()

	tbl.AppendFooter(table.Row{"total", "", sum.Round(time.Microsecond), ""})
	tbl.Render()
}
