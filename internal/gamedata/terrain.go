package gamedata

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// defaultGlyphColor is used when a terrain entry sets no glyphColor.
const defaultGlyphColor = "#101010"

// TerrainDef is the display data for one tile type, loaded from terrain.json.
type TerrainDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`  // Tile type display name, matches world.TileType.String
	Glyph      string `json:"glyph"` // Single character drawn on the tile
	Color      string `json:"color"` // Background, hex
	GlyphColor string `json:"glyphColor,omitempty"`
}

// GlyphRune returns the glyph, or '?' if none is set.
func (d *TerrainDef) GlyphRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// ForegroundHex returns the glyph colour, falling back to a near-black.
func (d *TerrainDef) ForegroundHex() string {
	if d.GlyphColor == "" {
		return defaultGlyphColor
	}
	return d.GlyphColor
}

// Style returns the tcell style for drawing the tile.
func (d *TerrainDef) Style() (tcell.Style, error) {
	bg, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("terrain %s: %w", d.ID, err)
	}
	fg, err := ParseHexColor(d.ForegroundHex())
	if err != nil {
		return tcell.StyleDefault, fmt.Errorf("terrain %s: %w", d.ID, err)
	}
	return tcell.StyleDefault.Background(bg).Foreground(fg), nil
}

// TerrainFile is the layout of terrain.json.
type TerrainFile struct {
	Terrain []TerrainDef `json:"terrain"`
}

// LoadTerrain reads the embedded terrain.json.
func LoadTerrain() ([]TerrainDef, error) {
	file, err := Load[TerrainFile]("terrain.json")
	if err != nil {
		return nil, err
	}
	return file.Terrain, nil
}

// TerrainRegistry indexes terrain definitions by tile type name and by ID.
type TerrainRegistry struct {
	all    []TerrainDef
	byName map[string]*TerrainDef
	byID   map[string]*TerrainDef
}

// NewTerrainRegistry indexes defs. Duplicate names or IDs are an error.
func NewTerrainRegistry(defs []TerrainDef) (*TerrainRegistry, error) {
	r := &TerrainRegistry{
		all:    defs,
		byName: make(map[string]*TerrainDef, len(defs)),
		byID:   make(map[string]*TerrainDef, len(defs)),
	}
	for i := range defs {
		d := &defs[i]
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate terrain name %q", d.Name)
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate terrain id %q", d.ID)
		}
		r.byName[d.Name] = d
		r.byID[d.ID] = d
	}
	return r, nil
}

// LoadTerrainRegistry builds a registry from the embedded terrain.json.
func LoadTerrainRegistry() (*TerrainRegistry, error) {
	defs, err := LoadTerrain()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no terrain loaded from terrain.json")
	}
	return NewTerrainRegistry(defs)
}

// MustLoadTerrainRegistry loads the registry, panicking on error.
func MustLoadTerrainRegistry() *TerrainRegistry {
	r, err := LoadTerrainRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// GetByName returns the definition for a tile type display name, or nil.
func (r *TerrainRegistry) GetByName(name string) *TerrainDef {
	return r.byName[name]
}

// GetByID returns the definition with the given ID, or nil.
func (r *TerrainRegistry) GetByID(id string) *TerrainDef {
	return r.byID[id]
}

// All returns every definition in file order.
func (r *TerrainRegistry) All() []TerrainDef {
	return r.all
}

// Count returns the number of definitions.
func (r *TerrainRegistry) Count() int {
	return len(r.all)
}
