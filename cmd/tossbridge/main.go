// tossbridge drives managed scripts through the native component lifecycle.
//
// Usage:
//
//	tossbridge simulate   - Run ships headless for a number of frames
//	tossbridge stress     - Churn components and print a performance report
//	tossbridge play       - Open a window with orbiting ships and the debug overlay
//	tossbridge scripts    - List registered script types
//
// Global flags:
//
//	--config <path>     - Config file (default: ./tossbridge.yaml, then embedded defaults)
//	--log-level <level> - Override log.level from the config
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/bridge"
	"github.com/plus3/tossbridge/config"
	"github.com/plus3/tossbridge/engine"
	"github.com/plus3/tossbridge/logging"
	"github.com/plus3/tossbridge/scripts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tossbridge",
	Short: "Drive managed scripts through the native component lifecycle",
	Long: `tossbridge runs script components against an in-process native engine.
Every component receives OnCreate, OnUpdate, OnFixedUpdate and OnDestroy
in lifecycle order, and late callbacks are logged as protocol violations.

Examples:
  tossbridge simulate --ships 3 --frames 120
  tossbridge stress --duration 5s --components 2000 --churn 0.05
  tossbridge play
  tossbridge scripts`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(stressCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scriptsCmd)
}

// app is the wiring shared by every command.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	engine   *engine.Engine
	registry *bridge.Registry
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}

	e, err := engine.New(cfg.Engine, logger)
	if err != nil {
		return nil, errors.Wrap(err, "start engine")
	}

	registry := bridge.NewRegistry(logger)
	scripts.Register(registry)

	return &app{
		cfg:      cfg,
		log:      logger,
		engine:   e,
		registry: registry,
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}
