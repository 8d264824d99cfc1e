package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/bridge"
	"github.com/plus3/tossbridge/scripts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDuration       time.Duration
	flagComponents     int
	flagChurn          float64
	flagGCPauseMetrics bool
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Churn components and print a performance report",
	Long: `Keeps a population of Ship components alive and, every frame, destroys a
fraction of them and constructs replacements, then prints a report covering
frame times, lifecycle counts, protocol violations and memory.`,
	RunE: runStress,
}

func init() {
	stressCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Second, "The total duration the test should run for")
	stressCmd.Flags().IntVar(&flagComponents, "components", 10000, "The number of live components to maintain")
	stressCmd.Flags().Float64Var(&flagChurn, "churn", 0.01, "Fraction of components replaced each frame")
	stressCmd.Flags().BoolVar(&flagGCPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report")
}

func runStress(cmd *cobra.Command, args []string) error {
	if flagComponents <= 0 {
		return errors.New("components must be positive")
	}
	if flagChurn < 0 || flagChurn > 1 {
		return errors.Errorf("churn must be between 0 and 1, got %v", flagChurn)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.log.Info("starting stress test",
		zap.Int("components", flagComponents),
		zap.Float64("churn", flagChurn),
		zap.Duration("duration", flagDuration),
	)

	live := make([]*bridge.Component, 0, flagComponents)
	spawn := func() error {
		c, err := a.registry.Instantiate(a.engine, scripts.ShipType, nil)
		if err != nil {
			return err
		}
		live = append(live, c)
		return nil
	}

	for i := 0; i < flagComponents; i++ {
		if err := spawn(); err != nil {
			return errors.Wrap(err, "populate")
		}
	}
	a.log.Info("population complete", zap.Int("live_handles", a.engine.Len()))

	report := &Report{
		Duration:       flagDuration,
		Components:     flagComponents,
		Churn:          flagChurn,
		GCPauseMetrics: flagGCPauseMetrics,
	}
	churn := int(float64(flagComponents) * flagChurn)

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(cmd.Context(), flagDuration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			a.engine.Tick(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			churnStart := time.Now()
			for i := 0; i < churn; i++ {
				victim := rand.Intn(len(live))
				report.Violations += live[victim].Violations()
				live[victim].Destroy()
				live[victim] = live[len(live)-1]
				live = live[:len(live)-1]
				report.Destroyed++

				if err := spawn(); err != nil {
					return errors.Wrap(err, "respawn")
				}
				report.Constructed++
			}
			report.ChurnTime.Samples = append(report.ChurnTime.Samples, time.Since(churnStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.ChurnTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	for _, c := range live {
		report.Violations += c.Violations()
	}
	report.Engine = *a.engine.CollectStats()

	a.log.Info("stress test finished", zap.Int64("frames", report.TotalUpdates))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return errors.Wrap(err, "generate report")
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}
