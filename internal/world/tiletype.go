// Package world provides the tile store, traversal rules and tile search for the overland map.
package world

import "fmt"

// TileType is the terrain or room kind of a tile.
type TileType uint8

// Natural terrain, ordered from the lowest to the highest generator band.
const (
	TypeDeepWater TileType = iota
	TypeWater
	TypeWetSand
	TypeSand
	TypeDirt
	TypeGrass
	TypeTallGrass
	TypeForest
	TypeDarkForest
	TypeRock
	TypeLava
	TypeSnow

	// Structural (ship interior) room kinds.
	TypeBridge
	TypeCloak
	TypeEmpty
	TypeEngine
	TypeDoors
	TypeMedical
	TypeOxygen
	TypeRobots
	TypeSensors
	TypeShield
	TypeTeleporter
	TypeWeapons

	numTileTypes
)

var tileTypeNames = [numTileTypes]string{
	TypeDeepWater:  "Deep Water",
	TypeWater:      "Water",
	TypeWetSand:    "Wet Sand",
	TypeSand:       "Sand",
	TypeDirt:       "Dirt",
	TypeGrass:      "Grass",
	TypeTallGrass:  "Tall Grass",
	TypeForest:     "Forest",
	TypeDarkForest: "Dark Forest",
	TypeRock:       "Rock",
	TypeLava:       "Lava",
	TypeSnow:       "Snow",
	TypeBridge:     "bridge",
	TypeCloak:      "cloak",
	TypeEmpty:      "empty",
	TypeEngine:     "engine",
	TypeDoors:      "doors",
	TypeMedical:    "medical",
	TypeOxygen:     "oxygen",
	TypeRobots:     "robots",
	TypeSensors:    "sensors",
	TypeShield:     "shield",
	TypeTeleporter: "teleporter",
	TypeWeapons:    "weapons",
}

// String returns the display name of the tile type.
func (t TileType) String() string {
	if t >= numTileTypes {
		return "unknown"
	}
	return tileTypeNames[t]
}

// ParseTileType returns the tile type with the given display name.
func ParseTileType(name string) (TileType, error) {
	for i, n := range tileTypeNames {
		if n == name {
			return TileType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile type %q", name)
}

// TileTypes returns every tile type in declaration order.
func TileTypes() []TileType {
	types := make([]TileType, numTileTypes)
	for i := range types {
		types[i] = TileType(i)
	}
	return types
}

// IsStructural reports whether t is a ship-interior room kind.
func (t TileType) IsStructural() bool {
	return t >= TypeBridge && t < numTileTypes
}

// IsImpassable reports whether no unit may ever enter a tile of type t.
func (t TileType) IsImpassable() bool {
	switch t {
	case TypeWater, TypeDeepWater, TypeLava, TypeRock:
		return true
	default:
		return false
	}
}
