package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gobridge/internal/config"
	"github.com/alexiusacademia/gobridge/internal/logger"
	"github.com/alexiusacademia/gobridge/internal/version"
	"github.com/spf13/cobra"
)

var (
	envFiles []string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "gobridge",
	Short: "Multi-span bridge modeling on a structural analysis engine",
	Long: `gobridge - Go Bridge Modeler

A CLI tool that assembles multi-span continuous bridge models
(double-box hollow piers, steel box girders and bearings) through
a structural analysis engine, and prepares their seismic checks.

This tool helps structural engineers:
  - Build piers, girders and bearings from a JSON description
  - Calibrate bearings from dead-load axial forces
  - Inspect response spectra and bearing backbones
  - Select Rayleigh damping periods from modal tables

Settings are read from .env files and BRIDGE_* environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobridge v%-46s║\n", version.Version)
		fmt.Println("  ║   Go Bridge Modeler                                       ║")
		fmt.Printf("  ║   %-56s║\n", version.Author+" ©  "+version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for multi-span continuous bridge models with")
		fmt.Println("  hollow piers, box girders and calibrated bearings.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Pier, girder and bearing assembly from a JSON description")
		fmt.Println("    • Two-phase bearing calibration (multi-linear or plastic-Wen)")
		fmt.Println("    • Response spectrum and time-history case definitions")
		fmt.Println("    • Rayleigh period selection from modal mass ratios")
		fmt.Println()
		fmt.Println("  Use 'gobridge --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil, "Environment files to read (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, info, success, warn, error, off (overrides BRIDGE_LOG_LEVEL)")
}

// settings resolves the configuration and the console logger of a command
func settings() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return cfg, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logger.ParseLevel(logLevel)
	}
	return cfg, logger.New(cfg.LogLevel), nil
}
