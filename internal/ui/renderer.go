package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/overland/internal/entity"
	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/world"
)

var (
	reservedColor = tcell.NewHexColor(0x0030C0)
	cursorColor   = tcell.NewHexColor(0xC03030)

	statusStyle   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	unitStyle     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true)
	selectedStyle = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack).Bold(true)
)

// Scene is everything one frame shows.
type Scene struct {
	World    *world.World
	View     *grid.Viewport
	Units    []*entity.Unit
	Selected *entity.Unit
	Cursor   *grid.Point
	Status   string
}

// Renderer draws scenes. After the first frame it only repaints tiles the
// world reports dirty and cells that held overlays, unless the camera or
// terminal size changed.
type Renderer struct {
	screen  *Screen
	palette Palette

	drawn        bool
	lastCamera   grid.Vec
	lastW, lastH int

	// overlaid holds tiles covered by units, markers or the cursor last
	// frame; they get their terrain back before the next overlay pass.
	overlaid mapset.Set[grid.Key]
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{
		screen:   screen,
		palette:  palette,
		overlaid: mapset.New[grid.Key](),
	}
}

// Render draws one frame.
func (r *Renderer) Render(sc Scene) {
	w, h := r.screen.Size()
	mapH := h - 1

	units := mapset.New[grid.Key]()
	for _, u := range sc.Units {
		units.Put(u.TilePosition().Key())
	}

	if !r.drawn || sc.View.Camera != r.lastCamera || w != r.lastW || h != r.lastH {
		r.drawAll(sc, w, mapH)
		r.drawn = true
		r.lastCamera = sc.View.Camera
		r.lastW, r.lastH = w, h
	} else {
		r.overlaid.Each(func(k grid.Key) {
			r.drawTile(sc, k.Point(), w, mapH)
		})
		for _, t := range sc.World.FlushDirty() {
			if t.AvoidNextRedraw {
				t.AvoidNextRedraw = false
				if units.Has(t.Key()) {
					continue
				}
			}
			r.drawTile(sc, t.Point(), w, mapH)
		}
	}
	r.overlaid = mapset.New[grid.Key]()

	r.drawSearch(sc, w, mapH)
	r.drawUnits(sc, w, mapH)
	if sc.Cursor != nil {
		r.drawCursor(sc, *sc.Cursor, w, mapH)
	}
	r.drawStatus(sc.Status, w, h)

	r.screen.Show()
}

func (r *Renderer) drawAll(sc Scene, w, mapH int) {
	for cy := 0; cy < mapH; cy++ {
		for cx := 0; cx < w; cx++ {
			t := sc.World.Tile(CellTile(sc.View, cx, cy))
			r.paint(cx, cy, t)
		}
	}
	for _, t := range sc.World.FlushDirty() {
		t.AvoidNextRedraw = false
	}
}

// drawTile repaints tile p if it is on screen.
func (r *Renderer) drawTile(sc Scene, p grid.Point, w, mapH int) {
	cx, cy := TileCell(sc.View, p)
	if cx < 0 || cy < 0 || cx >= w || cy >= mapH {
		return
	}
	r.paint(cx, cy, sc.World.Tile(p))
}

func (r *Renderer) paint(cx, cy int, t *world.Tile) {
	sw := r.palette.Swatch(t.Type)
	if t.Reserved {
		r.screen.SetContent(cx, cy, 'o', sw.Style.Foreground(reservedColor).Bold(true))
		return
	}
	r.screen.SetContent(cx, cy, sw.Glyph, sw.Style)
}

// overlay draws ch over tile p, keeping the terrain background.
func (r *Renderer) overlay(sc Scene, p grid.Point, ch rune, fg tcell.Color, w, mapH int) {
	cx, cy := TileCell(sc.View, p)
	if cx < 0 || cy < 0 || cx >= w || cy >= mapH {
		return
	}
	sw := r.palette.Swatch(sc.World.Tile(p).Type)
	r.screen.SetContent(cx, cy, ch, sw.Style.Foreground(fg))
	r.overlaid.Put(p.Key())
}

// drawSearch shows the selected unit's route and any search in flight.
func (r *Renderer) drawSearch(sc Scene, w, mapH int) {
	u := sc.Selected
	if u == nil {
		return
	}
	if u.Pathfinder != nil {
		snap := u.Pathfinder.Snapshot()
		for _, p := range snap.Closed {
			r.overlay(sc, p, '·', tcell.ColorGray, w, mapH)
		}
		for _, p := range snap.Open {
			r.overlay(sc, p, '+', tcell.ColorWhite, w, mapH)
		}
	}
	for _, wp := range u.Path {
		r.overlay(sc, grid.WorldToTile(wp.X, wp.Y), '•', reservedColor, w, mapH)
	}
}

// drawUnits draws on-screen units in slice order and an edge arrow for each
// unit out of view.
func (r *Renderer) drawUnits(sc Scene, w, mapH int) {
	if w <= 0 || mapH <= 0 {
		return
	}
	for _, u := range sc.Units {
		style := unitStyle
		if u == sc.Selected {
			style = selectedStyle
		}

		cx, cy := worldCell(sc.View, u.Position)
		if cx >= 0 && cy >= 0 && cx < w && cy < mapH {
			r.screen.SetContent(cx, cy, u.Symbol, style)
			r.overlaid.Put(CellTile(sc.View, cx, cy).Key())
			continue
		}

		ex := min(max(cx, 0), w-1)
		ey := min(max(cy, 0), mapH-1)
		r.screen.SetContent(ex, ey, edgeArrow(cx-ex, cy-ey), style)
		r.overlaid.Put(CellTile(sc.View, ex, ey).Key())
	}
}

func (r *Renderer) drawCursor(sc Scene, p grid.Point, w, mapH int) {
	cx, cy := TileCell(sc.View, p)
	if cx < 0 || cy < 0 || cx >= w || cy >= mapH {
		return
	}
	ch, style := r.screen.Content(cx, cy)
	r.screen.SetContent(cx, cy, ch, style.Background(cursorColor))
	r.overlaid.Put(p.Key())
}

func (r *Renderer) drawStatus(msg string, w, h int) {
	if h <= 0 {
		return
	}
	runes := []rune(msg)
	for x := 0; x < w; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		r.screen.SetContent(x, h-1, ch, statusStyle)
	}
}
