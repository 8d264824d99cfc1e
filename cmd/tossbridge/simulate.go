package main

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/plus3/tossbridge/bridge"
	"github.com/plus3/tossbridge/engine"
	"github.com/plus3/tossbridge/scripts"
	"github.com/spf13/cobra"
)

var (
	flagShips  int
	flagFrames int
	flagDT     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run ships headless for a number of frames",
	Long: `Creates a fleet GameObject with the requested number of Ship components,
ticks the engine, then destroys the fleet and prints the engine stats.

Run with --log-level debug to see every lifecycle hook.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagShips, "ships", 3, "Number of ships in the fleet")
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 120, "Number of frames to tick")
	simulateCmd.Flags().Float64Var(&flagDT, "dt", 1.0/60.0, "Seconds per frame")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagShips < 0 || flagFrames < 0 || flagDT < 0 {
		return errors.New("ships, frames and dt must not be negative")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fleet, ships, err := spawnFleet(a, flagShips)
	if err != nil {
		return err
	}

	for i := 0; i < flagFrames; i++ {
		a.engine.Tick(flagDT)
	}

	out := cmd.OutOrStdout()
	for i, ship := range ships {
		ship.LogSomething()
		p := ship.Position()
		fmt.Fprintf(out, "ship %d: position (%.2f, %.2f, %.2f) after %.2fs\n", i, p.X, p.Y, p.Z, ship.Elapsed())
	}

	fleet.Destroy()
	printStats(out, a.engine.CollectStats())
	return nil
}

// spawnFleet creates a GameObject holding n ships spread evenly around the orbit.
func spawnFleet(a *app, n int) (*bridge.GameObject, []*scripts.Ship, error) {
	fleet, err := bridge.NewGameObject(a.engine, "fleet", a.log)
	if err != nil {
		return nil, nil, err
	}

	ships := make([]*scripts.Ship, 0, n)
	for i := 0; i < n; i++ {
		ship, err := addShip(a, fleet, i, n)
		if err != nil {
			fleet.Destroy()
			return nil, nil, err
		}
		ships = append(ships, ship)
	}
	return fleet, ships, nil
}

func addShip(a *app, fleet *bridge.GameObject, i, n int) (*scripts.Ship, error) {
	c, err := a.registry.Instantiate(a.engine, scripts.ShipType, a.log)
	if err != nil {
		return nil, err
	}
	if err := fleet.AddComponent(c); err != nil {
		c.Destroy()
		return nil, err
	}

	ship := c.Sink().(*scripts.Ship)
	ship.Phase = float32(2 * math.Pi * float64(i) / float64(max(n, 1)))
	ship.Radius = float32(30 + 10*(i%4))
	return ship, nil
}

func printStats(w io.Writer, stats *engine.Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "frames:          %d\n", stats.Frames)
	fmt.Fprintf(w, "fixed steps:     %d (%d dropped)\n", stats.FixedSteps, stats.DroppedSteps)
	fmt.Fprintf(w, "live handles:    %d\n", stats.LiveHandles)
	fmt.Fprintf(w, "released:        %d\n", stats.Released)
	fmt.Fprintf(w, "callback panics: %d\n", stats.CallbackPanics)
}
