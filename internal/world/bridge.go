package world

import "github.com/samdwyer/overland/internal/grid"

// BridgeKind says what joins two neighbouring tiles.
type BridgeKind uint8

const (
	// BridgeDoor is a door between two rooms.
	BridgeDoor BridgeKind = iota + 1
)

// Bridge joins tile A and tile B.
type Bridge struct {
	A, B grid.Point
	Kind BridgeKind
}

type bridgeKey [2]grid.Key

func makeBridgeKey(a, b grid.Point) bridgeKey {
	ka, kb := a.Key(), b.Key()
	if kb < ka {
		ka, kb = kb, ka
	}
	return bridgeKey{ka, kb}
}

// AddBridge registers b. A later bridge between the same pair replaces it.
func (w *World) AddBridge(b Bridge) {
	w.bridges[makeBridgeKey(b.A, b.B)] = b
}

// DeleteBridge removes the bridge between b.A and b.B.
func (w *World) DeleteBridge(b Bridge) {
	delete(w.bridges, makeBridgeKey(b.A, b.B))
}

// BridgeBetween returns the bridge joining a and b in either direction.
func (w *World) BridgeBetween(a, b grid.Point) (Bridge, bool) {
	br, ok := w.bridges[makeBridgeKey(a, b)]
	return br, ok
}
