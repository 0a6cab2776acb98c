package grid

// Key packs a tile coordinate into a single comparable value for map lookups.
// Both axes are stored as 32-bit two's complement, so any coordinate in the
// int32 range round-trips.
type Key uint64

// KeyOf returns the key for tile (x, y).
func KeyOf(x, y int) Key {
	return Key(uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(y))))
}

// Point unpacks the key.
func (k Key) Point() Point {
	return Point{
		X: int(int32(uint32(k >> 32))),
		Y: int(int32(uint32(k))),
	}
}
