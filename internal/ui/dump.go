package ui

import (
	"bufio"
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/telemetry"
	"github.com/samdwyer/overland/internal/world"
)

// Dump writes a width x height block of terrain centred on center, one
// coloured glyph per tile and one line per row.
func Dump(ctx context.Context, out io.Writer, w *world.World, pal Palette, center grid.Point, width, height int) error {
	_, span := telemetry.Tracer("ui").Start(ctx, "world.dump",
		trace.WithAttributes(
			attribute.Int("dump.width", width),
			attribute.Int("dump.height", height),
			attribute.Int("dump.center_x", center.X),
			attribute.Int("dump.center_y", center.Y),
		),
	)
	defer span.End()

	bw := bufio.NewWriter(out)
	x0, y0 := center.X-width/2, center.Y-height/2
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			sw := pal.Swatch(w.GetTile(x, y).Type)
			if sw.ansi != nil {
				bw.WriteString(sw.ansi.Sprint(string(sw.Glyph)))
			} else {
				bw.WriteRune(sw.Glyph)
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			span.RecordError(err)
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
