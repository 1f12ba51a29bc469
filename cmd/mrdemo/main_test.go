package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mrmesh/cells"
	"github.com/katalvlaran/mrmesh/config"
	"github.com/katalvlaran/mrmesh/mr"
	"github.com/katalvlaran/mrmesh/stencil"
)

func smallMesh() config.MeshConfig {
	return config.MeshConfig{
		MinLevel: 1, MaxLevel: 5, GhostWidth: 2,
		BoxMin: -4, BoxMax: 4, RefineMin: -1, RefineMax: 1,
	}
}

// TestExact_HatProfile checks the hat at t=0 and the moving kink.
func TestExact_HatProfile(t *testing.T) {
	require.Zero(t, exact(-1.5, 0))
	require.InDelta(t, 0.5, exact(-0.5, 0), 1e-15)
	require.InDelta(t, 1.0, exact(0, 0), 1e-15)
	require.InDelta(t, 0.5, exact(0.5, 0), 1e-15)
	require.Zero(t, exact(1, 0))

	// the peak rides at x = t with height 1; both ramps meet there
	require.InDelta(t, 1.0, exact(0.5, 0.5), 1e-15)
	require.InDelta(t, 0.5, exact(-0.25, 0.5), 1e-15)
	require.InDelta(t, 0.5, exact(0.75, 0.5), 1e-15)

	f := equilibrium(0.8)
	require.InDelta(t, 0.8, f[0]+f[1], 1e-15)
}

// TestBuildMesh_Graded keeps neighbouring leaves within one level.
func TestBuildMesh_Graded(t *testing.T) {
	mc := smallMesh()
	m, err := buildMesh(mc, nil)
	require.NoError(t, err)
	require.Equal(t, mc.MinLevel, m.MinLevel())
	require.Equal(t, mc.MaxLevel, m.MaxLevel())

	leaves := m.Leaves()
	levelOf := func(level, x int) int {
		for l := max(level-1, 0); l <= min(level+1, mc.MaxLevel); l++ {
			y := x << 1
			switch {
			case l < level:
				y = x >> 1
			case l == level:
				y = x
			}
			if leaves.Level(l).Contains(cells.Outer{}, y) {
				return l
			}
		}
		return -1
	}
	leaves.ForEachCell(func(c cells.Cell) {
		lo, hi := mc.BoxMin<<c.Level, mc.BoxMax<<c.Level
		for _, n := range []int{c.Coord[0] - 1, c.Coord[0] + 1} {
			if n < lo || n >= hi {
				continue
			}
			require.NotEqual(t, -1, levelOf(c.Level, n), "neighbour %d of %v", n, c)
		}
	})
}

// TestReconstructError_RefinedKinks stays small when the kinks sit in refined cells.
func TestReconstructError_RefinedKinks(t *testing.T) {
	m, err := buildMesh(smallMesh(), nil)
	require.NoError(t, err)
	f, err := initField(m, 0)
	require.NoError(t, err)
	require.NoError(t, mr.Synchronize(f, nil))

	p := mr.NewPredictor(f)
	rows, total, err := reconstructError(f, p, 0)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Less(t, total, 1e-3)
	require.Positive(t, p.Stats().Calls)

	leaves := 0
	for _, r := range rows {
		leaves += r.Leaves
	}
	require.Equal(t, m.NbCells(), leaves)
}

// TestRenderEdges_Depths lists the four face maps of every requested depth.
func TestRenderEdges_Depths(t *testing.T) {
	var buf bytes.Buffer
	b := stencil.NewBuilder()
	renderEdges(&buf, b, []int{1, 3})
	out := buf.String()

	require.Contains(t, out, "PREDICTION MAP")
	// depth 1: the last fine cell left of cell 0 is the odd child of -1
	require.Contains(t, out, "{-2: -0.125, -1: 1, 0: 0.125}")
	require.Contains(t, out, "{-1: 0.125, 0: 1, 1: -0.125}")
	require.Contains(t, out, b.Edges(3, 0).RightOut.String())
	require.Contains(t, out, "right out")
	require.Positive(t, b.Len())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mrdemo.yaml")
	body := "mesh:\n  min_level: 1\n  max_level: 4\n  box_min: -2\n  box_max: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append(args, "--config", path))
	err := cmd.Execute()

	return stdout.String(), err
}

// TestRootCmd_Subcommands runs every subcommand end to end.
func TestRootCmd_Subcommands(t *testing.T) {
	out, err := run(t, "mesh")
	require.NoError(t, err)
	require.Contains(t, out, "ANCESTORS")
	require.Contains(t, out, "uniform cells")

	out, err = run(t, "reconstruct", "--time", "0.25")
	require.NoError(t, err)
	require.Contains(t, out, "L1 ERROR")
	require.Contains(t, out, "PREDICTION MAP")
	require.Contains(t, out, "memo:")
	require.Contains(t, out, "synchronize")

	out, err = run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "mrdemo dev")

	_, err = run(t, "mesh", "--max-level", "30")
	require.ErrorIs(t, err, config.ErrInvalidMaxLevel)

	_, err = run(t, "mesh", "--log", "loud")
	require.ErrorIs(t, err, config.ErrInvalidLogLevel)
}
