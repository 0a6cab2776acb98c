package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/overland/internal/entity"
	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/logger"
	"github.com/samdwyer/overland/internal/pathfind"
	"github.com/samdwyer/overland/internal/telemetry"
	"github.com/samdwyer/overland/internal/world"
)

// ErrTileOccupied is returned when a unit cannot be placed because its
// spawn tile is taken.
var ErrTileOccupied = errors.New("tile occupied")

// DefaultSpawns are the tiles the starting units are placed near.
var DefaultSpawns = []grid.Point{
	grid.Pt(-15, 0),
	grid.Pt(15, 0),
	grid.Pt(85, 40),
}

// Sim is the simulation context. Everything the tick loop mutates hangs off
// it; nothing is kept in package state.
type Sim struct {
	cfg    Config
	tracer trace.Tracer

	World    *world.World
	View     *grid.Viewport
	Units    []*entity.Unit // Draw order; the selected unit is last
	Selected *entity.Unit
	Mode     State
}

// NewSim creates an empty simulation over the terrain produced by gen.
func NewSim(cfg Config, gen world.Generator) *Sim {
	return &Sim{
		cfg:    cfg,
		tracer: telemetry.Tracer("sim"),
		World: world.New(gen,
			world.WithDoorCrossing(cfg.DoorCrossing),
			world.WithSearchRadius(cfg.SearchRadius),
		),
		View: grid.NewViewport(0, 0),
		Mode: StateLoading,
	}
}

// Config returns the settings the simulation was built with.
func (s *Sim) Config() Config {
	return s.cfg
}

// Populate places a unit near each spawn tile and switches to world mode.
// Spawns whose nearest free tile is already taken are skipped.
func (s *Sim) Populate(ctx context.Context, spawns []grid.Point) error {
	_, span := s.tracer.Start(ctx, "sim.populate",
		trace.WithAttributes(attribute.Int("sim.spawns", len(spawns))),
	)
	defer span.End()

	for _, p := range spawns {
		if _, err := s.AddUnit(p); err != nil {
			if errors.Is(err, ErrTileOccupied) {
				logger.Log.WithField("tile", p).Warn("spawn skipped")
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	span.SetAttributes(attribute.Int("sim.units", len(s.Units)))
	s.Mode = StateWorld
	return nil
}

// AddUnit places a new unit on the free tile closest to p.
func (s *Sim) AddUnit(p grid.Point) (*entity.Unit, error) {
	pos, err := s.World.FindClosestAvailable(p, nil)
	if err != nil {
		return nil, fmt.Errorf("add unit near %v: %w", p, err)
	}

	tile := s.World.Tile(grid.WorldToTile(pos.X, pos.Y))
	if tile.Occupied {
		return nil, fmt.Errorf("add unit near %v: %w", p, ErrTileOccupied)
	}

	u := entity.NewUnit(tile, len(s.Units))
	u.Speed = s.cfg.UnitSpeed
	s.Units = append(s.Units, u)

	logger.Log.WithFields(logrus.Fields{
		"unit": u.ID,
		"x":    tile.X,
		"y":    tile.Y,
		"type": tile.Type,
	}).Debug("unit added")
	return u, nil
}

// SendUnitToTile starts a search from u to the free tile closest to p,
// preferring the side nearest the unit. A unit already walking halts at its
// next waypoint unless the new route arrives first. The route is only taken
// if the destination is still free when the search completes.
func (s *Sim) SendUnitToTile(ctx context.Context, u *entity.Unit, p grid.Point) error {
	ctx, span := s.tracer.Start(ctx, "sim.send_unit",
		trace.WithAttributes(
			attribute.String("unit.id", u.ID.String()),
			attribute.Int("sim.request_x", p.X),
			attribute.Int("sim.request_y", p.Y),
		),
	)
	defer span.End()

	ref := u.Position
	pos, err := s.World.FindClosestAvailable(p, &ref)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("send unit %s to %v: %w", u.ID, p, err)
	}
	dest := grid.WorldToTile(pos.X, pos.Y)
	span.SetAttributes(
		attribute.Int("sim.dest_x", dest.X),
		attribute.Int("sim.dest_y", dest.Y),
		attribute.Bool("unit.moving", u.IsMoving()),
	)

	if u.IsMoving() {
		u.StopAtNextWaypoint = true
	}
	u.CancelSearch()

	log := logger.Log.WithFields(logrus.Fields{
		"unit":   u.ID,
		"dest_x": dest.X,
		"dest_y": dest.Y,
	})
	log.Debug("path search started")

	u.Pathfinder = pathfind.New(ctx, s.World, u.TilePosition(), dest, s.cfg.Diagonal,
		func(path []grid.Point) {
			target := s.World.Tile(dest)
			if len(path) < 2 || !target.IsAvailable() {
				log.WithField("path_len", len(path)).Debug("route discarded")
				return
			}

			old := s.World.Tile(u.TargetTile())
			old.AvoidNextClear()
			old.Clear()

			u.FollowPath(path)

			target = s.World.Tile(dest)
			target.AvoidNextClear()
			target.Reserve()
			log.WithField("path_len", len(path)).Debug("route taken")
		},
		pathfind.WithBudget(s.cfg.PathBudget),
	)
	return nil
}

// Tick advances the simulation by one step. frac is the elapsed time as a
// fraction of the nominal tick length, so speed stays constant when ticks run
// late. Every unit moves, then every unit's search gets one budget of work.
func (s *Sim) Tick(frac float64) {
	for _, u := range s.Units {
		if u.IsMoving() {
			u.Advance(s.World, u.Speed*frac)
		}
		u.ResumeSearch()
	}
}

// UnitAt returns the unit standing on tile p, if any.
func (s *Sim) UnitAt(p grid.Point) *entity.Unit {
	t := s.World.Tile(p)
	if !t.Occupied {
		return nil
	}
	u, _ := t.Occupant.(*entity.Unit)
	return u
}

// Select makes u the selected unit and moves it to the end of the draw order.
func (s *Sim) Select(u *entity.Unit) {
	i := slices.Index(s.Units, u)
	if i < 0 {
		return
	}
	s.Units = append(slices.Delete(s.Units, i, i+1), u)
	s.Selected = u
	s.Mode = StateUnitSelected
}

// Deselect clears the selection.
func (s *Sim) Deselect() {
	s.Selected = nil
	if s.Mode == StateUnitSelected {
		s.Mode = StateWorld
	}
}

// Click handles a primary click on tile p.
func (s *Sim) Click(p grid.Point) {
	switch s.Mode {
	case StateLoading:
		return
	case StateUnitSelected:
		s.Deselect()
	}
	if u := s.UnitAt(p); u != nil {
		s.Select(u)
	}
}

// RightClick handles a secondary click on tile p. With a unit selected and p
// free, the unit is sent there.
func (s *Sim) RightClick(ctx context.Context, p grid.Point) error {
	if s.Mode != StateUnitSelected || s.Selected == nil {
		return nil
	}
	if !s.World.Tile(p).IsAvailable() {
		return nil
	}
	return s.SendUnitToTile(ctx, s.Selected, p)
}

// Pan moves the camera by (dx, dy) world units. Ignored while loading.
func (s *Sim) Pan(dx, dy float64) {
	if s.Mode == StateLoading {
		return
	}
	s.View.Pan(dx, dy)
}
