// Package timer_test contains unit tests for the timing registry.
package timer_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/timer"
)

// TestTimer_StartStop accumulates calls and ignores repeated stops.
func TestTimer_StartStop(t *testing.T) {
	tm := timer.New(nil)

	stop := tm.Start("project")
	stop()
	stop()
	tm.Start("predict")()
	tm.Start("project")()

	require.Equal(t, []string{"project", "predict"}, tm.Names())
	require.Equal(t, 2, tm.Calls("project"))
	require.Equal(t, 1, tm.Calls("predict"))
	require.Zero(t, tm.Calls("missing"))
	require.Zero(t, tm.Total("missing"))
	require.GreaterOrEqual(t, tm.Total("project"), tm.Total("missing"))
}

// TestTimer_MeasureAndReport returns fn's error and renders every name.
func TestTimer_MeasureAndReport(t *testing.T) {
	tm := timer.New(nil)
	boom := errors.New("boom")

	require.ErrorIs(t, tm.Measure("mesh", func() error { return boom }), boom)
	require.NoError(t, tm.Measure("sync", func() error { return nil }))

	var buf bytes.Buffer
	tm.Report(&buf)
	out := buf.String()
	require.Contains(t, out, "mesh")
	require.Contains(t, out, "sync")
	require.Contains(t, out, "TOTAL")
}
