package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/overland/internal/gamedata"
	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/logger"
	"github.com/samdwyer/overland/internal/telemetry"
	"github.com/samdwyer/overland/internal/ui"
	"github.com/samdwyer/overland/internal/world"
)

// Game runs a Sim in the terminal.
type Game struct {
	cfg      Config
	sim      *Sim
	screen   *ui.Screen
	renderer *ui.Renderer
	running  bool

	cursor    *grid.Point
	buttons   tcell.ButtonMask
	pressedAt grid.Point
}

// New opens the terminal and creates a game over seeded noise terrain.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(cfg, screen, world.NewNoiseGenerator(cfg.Seed))
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing to screen over terrain from gen.
func NewWithScreen(cfg Config, screen *ui.Screen, gen world.Generator) (*Game, error) {
	reg, err := gamedata.LoadTerrainRegistry()
	if err != nil {
		return nil, fmt.Errorf("load terrain: %w", err)
	}
	pal, err := ui.NewPalette(reg)
	if err != nil {
		return nil, err
	}

	sim := NewSim(cfg, gen)
	w, h := screen.Size()
	ui.Fit(sim.View, w, h-1)

	return &Game{
		cfg:      cfg,
		sim:      sim,
		screen:   screen,
		renderer: ui.NewRenderer(screen, pal),
		running:  true,
	}, nil
}

// Sim returns the simulation being shown.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Run populates the world and runs the tick loop until the player quits or
// ctx is cancelled. The screen is closed on return.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	ctx, initSpan := telemetry.Tracer("game").Start(ctx, "game.init")
	if err := g.sim.Populate(ctx, DefaultSpawns); err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		return err
	}
	initSpan.SetAttributes(
		attribute.String("world.seed", g.cfg.Seed),
		attribute.Int("sim.units", len(g.sim.Units)),
	)
	initSpan.End()

	logger.Log.WithField("seed", g.cfg.Seed).Info("world ready")

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	frame := time.Second / time.Duration(g.cfg.TickRate)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	g.render()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			g.sim.Tick(float64(now.Sub(last)) / float64(frame))
			last = now
			g.render()
		}
	}
	return nil
}

func (g *Game) render() {
	g.renderer.Render(ui.Scene{
		World:    g.sim.World,
		View:     g.sim.View,
		Units:    g.sim.Units,
		Selected: g.sim.Selected,
		Cursor:   g.cursor,
		Status:   g.status(),
	})
}

// status is the bottom line: mode, cursor tile, selected unit.
func (g *Game) status() string {
	s := fmt.Sprintf(" %s | units %d | seed %s", g.sim.Mode, len(g.sim.Units), g.cfg.Seed)
	if g.cursor != nil {
		t := g.sim.World.Tile(*g.cursor)
		s += fmt.Sprintf(" | cursor (%d, %d) %s", t.X, t.Y, t.Type)
	}
	if u := g.sim.Selected; u != nil {
		if u.IsMoving() {
			p := u.TargetTile()
			s += fmt.Sprintf(" | target (%d, %d)", p.X, p.Y)
		} else {
			p := u.TilePosition()
			s += fmt.Sprintf(" | at (%d, %d)", p.X, p.Y)
		}
	}
	return s
}

func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ui.Fit(g.sim.View, w, h-1)
		g.screen.Sync()
	}
}

func (g *Game) handleKeyEvent(ev *tcell.EventKey) {
	const step = grid.CellSize

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyUp:
		g.sim.Pan(0, -step)
	case tcell.KeyDown:
		g.sim.Pan(0, step)
	case tcell.KeyLeft:
		g.sim.Pan(-step, 0)
	case tcell.KeyRight:
		g.sim.Pan(step, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'k':
			g.sim.Pan(0, -step)
		case 'j':
			g.sim.Pan(0, step)
		case 'h':
			g.sim.Pan(-step, 0)
		case 'l':
			g.sim.Pan(step, 0)
		case 'c':
			g.centerOnSelected()
		}
	}
}

// handleMouseEvent turns press/release pairs on the same tile into clicks.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	_, h := g.screen.Size()
	if y >= h-1 {
		return
	}
	tile := ui.CellTile(g.sim.View, x, y)
	g.cursor = &tile

	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2)
	pressed := buttons &^ g.buttons
	released := g.buttons &^ buttons
	g.buttons = buttons

	if pressed != 0 {
		g.pressedAt = tile
	}
	if released == 0 || tile != g.pressedAt {
		return
	}

	if released&tcell.Button1 != 0 {
		g.sim.Click(tile)
	}
	if released&tcell.Button2 != 0 {
		if err := g.sim.RightClick(ctx, tile); err != nil {
			logger.Log.WithError(err).Warn("send unit failed")
		}
	}
}

// centerOnSelected moves the camera to the selected unit's tile.
func (g *Game) centerOnSelected() {
	u := g.sim.Selected
	if u == nil {
		return
	}
	target := grid.TileToWorld(u.TilePosition())
	g.sim.Pan(target.X-g.sim.View.Camera.X, target.Y-g.sim.View.Camera.Y)
}
