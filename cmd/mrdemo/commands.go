// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mrmesh/config"
	"github.com/katalvlaran/mrmesh/field"
	"github.com/katalvlaran/mrmesh/mesh"
	"github.com/katalvlaran/mrmesh/mr"
	"github.com/katalvlaran/mrmesh/stencil"
	"github.com/katalvlaran/mrmesh/timer"
)

// addMeshFlags registers the mesh overrides shared by the subcommands.
func addMeshFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-level", config.DefaultMinLevel, "coarsest leaf level")
	cmd.Flags().Int("max-level", config.DefaultMaxLevel, "finest leaf level")
	cmd.Flags().Float64("time", config.DefaultTime, "time of the exact Burgers solution")
}

// applyMeshFlags copies explicitly set flags over cfg.
func applyMeshFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("min-level") {
		if cfg.Mesh.MinLevel, err = flags.GetInt("min-level"); err != nil {
			return err
		}
	}
	if flags.Changed("max-level") {
		if cfg.Mesh.MaxLevel, err = flags.GetInt("max-level"); err != nil {
			return err
		}
	}
	if flags.Changed("time") {
		if cfg.Burgers.Time, err = flags.GetFloat64("time"); err != nil {
			return err
		}
	}

	return nil
}

func count(n int) string { return humanize.Comma(int64(n)) }

// renderSets writes one row per level with the size of every cell set.
func renderSets(w io.Writer, m *mesh.Mesh) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"level", "cells", "ancestors", "ghosts", "boundary", "all"})

	types := []mesh.MeshType{mesh.Cells, mesh.Ancestors, mesh.Ghosts, mesh.Boundary, mesh.AllCells}
	for lvl := 0; lvl <= m.MaxRefinementLevel(); lvl++ {
		row := table.Row{lvl}
		for _, t := range types {
			row = append(row, count(m.Get(t).Level(lvl).NbCells()))
		}
		tbl.AppendRow(row)
	}
	footer := table.Row{"total"}
	for _, t := range types {
		footer = append(footer, count(m.Get(t).NbCells()))
	}
	tbl.AppendFooter(footer)
	tbl.Render()
}

func newMeshCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mesh",
		Short: "Print the cell sets of the configured mesh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := buildMesh(a.cfg.Mesh, a.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, m)
			renderSets(out, m)

			uniform := (a.cfg.Mesh.BoxMax - a.cfg.Mesh.BoxMin) << a.cfg.Mesh.MaxLevel
			fmt.Fprintf(out, "leaves: %s of %s uniform cells (%.2f%%)\n",
				count(m.NbCells()), count(uniform), 100*float64(m.NbCells())/float64(uniform))

			return nil
		},
	}
	addMeshFlags(cmd)

	return cmd
}

func newReconstructCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Reconstruct the Burgers profile at the finest level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.reconstruct(cmd.OutOrStdout())
		},
	}
	addMeshFlags(cmd)

	return cmd
}

// reconstruct builds, synchronizes and predicts, then reports errors,
// memo statistics and timings.
func (a *app) reconstruct(out io.Writer) error {
	tm := timer.New(a.logger)
	t := a.cfg.Burgers.Time

	var (
		m *mesh.Mesh
		f *field.Field
	)
	err := tm.Measure("mesh", func() error {
		var err error
		m, err = buildMesh(a.cfg.Mesh, a.logger)
		return err
	})
	if err != nil {
		return err
	}
	if err := tm.Measure("init", func() error {
		var err error
		f, err = initField(m, t)
		return err
	}); err != nil {
		return err
	}
	if err := tm.Measure("synchronize", func() error { return mr.Synchronize(f, field.Neumann()) }); err != nil {
		return err
	}

	p := mr.NewPredictor(f, mr.WithLogger(a.logger))
	var (
		rows  []levelError
		total float64
	)
	if err := tm.Measure("reconstruct", func() error {
		var err error
		rows, total, err = reconstructError(f, p, t)
		return err
	}); err != nil {
		return err
	}

	fmt.Fprintln(out, m)
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"level", "leaves", "L1 error"})
	leaves := 0
	for _, r := range rows {
		leaves += r.Leaves
		tbl.AppendRow(table.Row{r.Level, count(r.Leaves), fmt.Sprintf("%.3e", r.L1)})
	}
	tbl.AppendFooter(table.Row{"total", count(leaves), fmt.Sprintf("%.3e", total)})
	tbl.Render()

	depths := make([]int, 0, len(rows))
	for _, r := range rows {
		if d := m.MaxRefinementLevel() - r.Level; d > 0 {
			depths = append(depths, d)
		}
	}
	renderEdges(out, stencil.NewBuilder(), depths)

	st := p.Stats()
	fmt.Fprintf(out, "memo: %s calls, %s hits, %s misses, %s entries\n",
		count(st.Calls), count(st.Hits), count(st.Misses), count(st.Entries))
	tm.Report(out)

	return nil
}

// renderEdges writes the face prediction maps of a coarse cell for each
// depth: the fine values a flux across either face of a depth-k leaf reads,
// as combinations of the leaf (0) and its coarse neighbours.
func renderEdges(w io.Writer, b *stencil.Builder, depths []int) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"depth", "face", "prediction map"})
	for _, k := range depths {
		e := b.Edges(k, 0)
		tbl.AppendRow(table.Row{k, "left out", e.LeftOut})
		tbl.AppendRow(table.Row{k, "left in", e.LeftIn})
		tbl.AppendRow(table.Row{k, "right in", e.RightIn})
		tbl.AppendRow(table.Row{k, "right out", e.RightOut})
		tbl.AppendSeparator()
	}
	tbl.AppendFooter(table.Row{"maps", count(b.Len()), ""})
	tbl.Render()
}
