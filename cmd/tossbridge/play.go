package main

import (
	"fmt"
	"image/color"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tossbridge/bridge"
	"github.com/plus3/tossbridge/engine/debugui"
	debugui_ebiten "github.com/plus3/tossbridge/engine/debugui/ebiten"
	"github.com/plus3/tossbridge/scripts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagPlayShips int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open a window with orbiting ships and the debug overlay",
	Long: `Opens a window showing the fleet from above, with the handle browser and
performance windows drawn over it.

Controls:
  Space      - Add a ship
  Backspace  - Destroy the newest ship
  F1         - Toggle the debug overlay
  Q/Esc      - Quit`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayShips, "ships", 6, "Number of ships at start")
}

var (
	backgroundColor = color.RGBA{16, 18, 28, 255}
	orbitColor      = color.RGBA{60, 64, 90, 255}
	shipColor       = color.RGBA{255, 200, 90, 255}
	headingColor    = color.RGBA{120, 220, 255, 255}
)

// Game implements ebiten.Game and ticks the engine inside a Dear ImGui frame.
type Game struct {
	app         *app
	backend     *debugui_ebiten.ImguiBackend
	overlay     *debugui.Overlay
	fleet       *bridge.GameObject
	ships       []*scripts.Ship
	components  []*bridge.Component
	showOverlay bool
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	backend := debugui_ebiten.NewImguiBackend(a.cfg.Window.Title, a.cfg.Window.Width, a.cfg.Window.Height)

	fleet, err := bridge.NewGameObject(a.engine, "fleet", a.log)
	if err != nil {
		return err
	}
	defer fleet.Destroy()

	game := &Game{
		app:         a,
		backend:     backend,
		overlay:     debugui.New(a.engine),
		fleet:       fleet,
		showOverlay: true,
	}
	game.overlay.Add(game.renderControls)
	a.engine.Register(game.overlay)

	for i := 0; i < flagPlayShips; i++ {
		if err := game.addShip(); err != nil {
			return err
		}
	}

	return ebiten.RunGame(game)
}

func (g *Game) addShip() error {
	c, err := g.app.registry.Instantiate(g.app.engine, scripts.ShipType, g.app.log)
	if err != nil {
		return err
	}
	if err := g.fleet.AddComponent(c); err != nil {
		c.Destroy()
		return err
	}

	ship := c.Sink().(*scripts.Ship)
	n := len(g.ships)
	ship.Radius = float32(80 + 40*(n%5))
	ship.Speed = 1 / (1 + float32(n%5)*0.5)
	ship.Phase = float32(n) * 0.9

	g.ships = append(g.ships, ship)
	g.components = append(g.components, c)
	return nil
}

func (g *Game) removeShip() {
	last := len(g.components) - 1
	if last < 0 {
		return
	}
	g.components[last].Destroy()
	g.components = g.components[:last]
	g.ships = g.ships[:last]
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showOverlay = !g.showOverlay
	}

	if !g.overlay.Input.WantCaptureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			if err := g.addShip(); err != nil {
				g.app.log.Warn("could not add ship", zap.Error(err))
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			g.removeShip()
		}
	}

	return g.backend.Frame(func() error {
		g.app.engine.Tick(1.0 / float64(ebiten.TPS()))
		return nil
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	bounds := screen.Bounds()
	cx, cy := float32(bounds.Dx())/2, float32(bounds.Dy())/2

	for i, ship := range g.ships {
		if g.components[i].State() == bridge.StateDestroyed {
			continue
		}
		p, f := ship.Position(), ship.Forward()
		vector.StrokeCircle(screen, cx, cy, ship.Radius, 1, orbitColor, true)
		x, y := cx+p.X, cy+p.Z
		vector.DrawFilledCircle(screen, x, y, 6, shipColor, true)
		vector.StrokeLine(screen, x, y, x+f.X*14, y+f.Z*14, 2, headingColor, true)
	}

	if g.showOverlay {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) renderControls() {
	if !g.showOverlay {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 140), imgui.CondOnce)

	if imgui.BeginV("Fleet", nil, imgui.WindowFlagsNone) {
		imgui.Text(fmt.Sprintf("Ships: %d", len(g.fleet.Components())))
		if imgui.Button("Add Ship") {
			if err := g.addShip(); err != nil {
				g.app.log.Warn("could not add ship", zap.Error(err))
			}
		}
		imgui.SameLine()
		if imgui.Button("Remove Ship") {
			g.removeShip()
		}
		if len(g.components) > 0 && imgui.Button("Log Something") {
			g.ships[len(g.ships)-1].LogSomething()
		}
	}
	imgui.End()
}
