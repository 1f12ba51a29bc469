// SPDX-License-Identifier: MIT

// Package main provides mrdemo, a driver for the multiresolution mesh: it
// builds a graded 1D mesh around the Burgers hat profile, synchronizes the
// field and measures how well deep prediction reconstructs the finest level.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/mrmesh/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what every subcommand needs after the root pre-run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "mrdemo",
		Short: "Multiresolution mesh demo",
		Long: `mrdemo exercises the adaptive multiresolution mesh.

Commands:
  mesh         Print the cell sets of the configured mesh
  reconstruct  Reconstruct the Burgers profile at the finest level`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default .mrmesh.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log", "", "log level: debug, info, warning, error")

	rootCmd.AddCommand(newMeshCmd(a))
	rootCmd.AddCommand(newReconstructCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	if cmd.Name() == "version" {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := applyMeshFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate flags: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded", "path", a.configPath, "min_level", cfg.Mesh.MinLevel, "max_level", cfg.Mesh.MaxLevel)

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mrdemo %s\n", version)
		},
	}
}
