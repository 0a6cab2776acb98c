package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gookit/color"

	"github.com/samdwyer/overland/internal/gamedata"
	"github.com/samdwyer/overland/internal/world"
)

// missingColor marks tile types with no terrain entry.
const missingColor = "#00ff00"

// Swatch is how one tile type is drawn.
type Swatch struct {
	Glyph rune
	Style tcell.Style
	Bg    tcell.Color

	ansi *color.RGBStyle
}

// Palette maps every tile type to its swatch.
type Palette map[world.TileType]Swatch

// NewPalette builds a palette from terrain definitions. Tile types without a
// definition are drawn as '?' on bright green.
func NewPalette(reg *gamedata.TerrainRegistry) (Palette, error) {
	p := make(Palette, len(world.TileTypes()))
	for _, tt := range world.TileTypes() {
		def := reg.GetByName(tt.String())
		if def == nil {
			def = &gamedata.TerrainDef{ID: "missing", Glyph: "?", Color: missingColor}
		}
		sw, err := newSwatch(def)
		if err != nil {
			return nil, fmt.Errorf("palette %s: %w", tt, err)
		}
		p[tt] = sw
	}
	return p, nil
}

func newSwatch(def *gamedata.TerrainDef) (Swatch, error) {
	style, err := def.Style()
	if err != nil {
		return Swatch{}, err
	}
	bg, err := gamedata.ParseHexColor(def.Color)
	if err != nil {
		return Swatch{}, err
	}
	bgHex, _ := gamedata.NormalizeHex(def.Color)
	fgHex, err := gamedata.NormalizeHex(def.ForegroundHex())
	if err != nil {
		return Swatch{}, err
	}
	return Swatch{
		Glyph: def.GlyphRune(),
		Style: style,
		Bg:    bg,
		ansi:  color.NewRGBStyle(color.HEX(fgHex), color.HEX(bgHex)),
	}, nil
}

// Swatch returns the swatch for tt.
func (p Palette) Swatch(tt world.TileType) Swatch {
	if sw, ok := p[tt]; ok {
		return sw
	}
	return Swatch{Glyph: '?', Style: tcell.StyleDefault.Background(tcell.GetColor(missingColor))}
}
