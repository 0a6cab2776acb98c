// Package gamedata provides the embedded display data for tiles and the
// helpers that load it.
package gamedata

import "embed"

// dataFS holds every JSON file in this directory.
//
//go:embed *.json
var dataFS embed.FS
