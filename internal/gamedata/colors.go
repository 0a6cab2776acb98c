package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#rrggbb" or "#rgb" (leading # optional, any case)
// to a tcell colour.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}
	if len(digits) != 6 {
		return tcell.ColorDefault, fmt.Errorf("hex color %q: want 3 or 6 digits", hex)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("hex color %q: %w", hex, err)
	}
	return tcell.NewHexColor(int32(v)), nil
}

// MustParseHexColor is ParseHexColor for colours known at build time.
func MustParseHexColor(hex string) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// NormalizeHex returns hex as "#rrggbb" in lower case.
func NormalizeHex(hex string) (string, error) {
	c, err := ParseHexColor(hex)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("#%06x", c.Hex()), nil
}
