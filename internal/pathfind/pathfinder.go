// Package pathfind provides an incremental A* search over the tile world.
//
// A Pathfinder does a bounded amount of work per Update call so that long
// searches can be spread across simulation ticks. Neighbour expansion is
// pruned in the manner of jump point search: once a node has a parent, only
// the moves that continue its direction of travel, plus forced moves around
// obstacles, are considered.
package pathfind

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/overland/internal/grid"
	"github.com/samdwyer/overland/internal/telemetry"
)

// DefaultBudget is the number of nodes expanded per Update call.
const DefaultBudget = 8

// Oracle answers whether a step between two tiles is legal. A nil from
// means no origin constraint. *world.World satisfies it.
type Oracle interface {
	IsAllowed(from *grid.Point, to grid.Point) bool
}

// GoalFunc receives the path from start to goal, both inclusive.
type GoalFunc func(path []grid.Point)

// Option configures a Pathfinder.
type Option func(*Pathfinder)

// WithBudget sets how many nodes Update may expand per call.
func WithBudget(n int) Option {
	return func(p *Pathfinder) {
		if n > 0 {
			p.budget = n
		}
	}
}

// Pathfinder is a resumable search from start to goal. It is single use:
// once it leaves StateActive it never does any more work.
type Pathfinder struct {
	oracle   Oracle
	start    grid.Point
	goal     grid.Point
	diagonal bool
	onGoal   GoalFunc
	budget   int

	open     []grid.Point
	openSet  mapset.Set[grid.Key]
	closed   mapset.Set[grid.Key]
	cameFrom map[grid.Key]grid.Point
	gScore   map[grid.Key]float64
	fScore   map[grid.Key]float64

	state      State
	expansions int
	updates    int
	pathLen    int
	span       trace.Span
}

// New creates an active search. onGoal runs once, from inside Update, if the
// goal is reached; it is never called when the search exhausts or is stopped.
func New(ctx context.Context, oracle Oracle, start, goal grid.Point, diagonal bool, onGoal GoalFunc, opts ...Option) *Pathfinder {
	p := &Pathfinder{
		oracle:   oracle,
		start:    start,
		goal:     goal,
		diagonal: diagonal,
		onGoal:   onGoal,
		budget:   DefaultBudget,
		open:     []grid.Point{start},
		openSet:  mapset.New[grid.Key](),
		closed:   mapset.New[grid.Key](),
		cameFrom: make(map[grid.Key]grid.Point),
		gScore:   make(map[grid.Key]float64),
		fScore:   make(map[grid.Key]float64),
		state:    StateActive,
	}
	for _, opt := range opts {
		opt(p)
	}

	k := start.Key()
	p.openSet.Put(k)
	p.gScore[k] = 0
	p.fScore[k] = heuristic(start, goal, diagonal)

	_, p.span = telemetry.Tracer("pathfind").Start(ctx, "pathfind.search",
		trace.WithAttributes(
			attribute.Int("pathfind.start_x", start.X),
			attribute.Int("pathfind.start_y", start.Y),
			attribute.Int("pathfind.goal_x", goal.X),
			attribute.Int("pathfind.goal_y", goal.Y),
			attribute.Bool("pathfind.diagonal", diagonal),
			attribute.Int("pathfind.budget", p.budget),
		),
	)

	return p
}

// Update expands up to the iteration budget, then returns. Callers keep
// calling it, typically once per tick, while IsActive reports true.
func (p *Pathfinder) Update() {
	if p.state != StateActive {
		return
	}
	p.updates++

	for i := 0; i < p.budget; i++ {
		if p.state != StateActive {
			return
		}
		if len(p.open) == 0 {
			p.finish(StateExhausted)
			return
		}

		current := p.open[0]
		p.expansions++

		if current == p.goal {
			path := p.reconstruct(current)
			p.pathLen = len(path)
			p.finish(StateGoalReached)
			if p.onGoal != nil {
				p.onGoal(path)
			}
			return
		}

		k := current.Key()
		p.open = p.open[1:]
		p.openSet.Remove(k)
		p.closed.Put(k)

		p.expand(current)
		p.sortOpen()
	}

	if p.state == StateActive && len(p.open) == 0 {
		p.finish(StateExhausted)
	}
}

// Stop cancels the search. Update observes it before the next expansion.
func (p *Pathfinder) Stop() {
	if p.state == StateActive {
		p.finish(StateStopped)
	}
}

// IsActive reports whether the search still wants Update calls.
func (p *Pathfinder) IsActive() bool {
	return p.state == StateActive
}

// State returns the lifecycle state.
func (p *Pathfinder) State() State {
	return p.state
}

// Start returns the start tile.
func (p *Pathfinder) Start() grid.Point {
	return p.start
}

// Goal returns the goal tile.
func (p *Pathfinder) Goal() grid.Point {
	return p.goal
}

// Expansions returns the number of nodes taken off the open set so far,
// counting the goal.
func (p *Pathfinder) Expansions() int {
	return p.expansions
}

// Updates returns how many Update calls did work.
func (p *Pathfinder) Updates() int {
	return p.updates
}

func (p *Pathfinder) expand(current grid.Point) {
	ck := current.Key()
	var prev *grid.Point
	if from, ok := p.cameFrom[ck]; ok {
		prev = &from
	}

	for _, n := range p.neighbors(current, prev) {
		nk := n.point.Key()

		// Blocked tiles are closed without a score, so an allowed approach
		// from another side can still open them.
		if !p.oracle.IsAllowed(&current, n.point) {
			p.closed.Put(nk)
			continue
		}

		tentative := p.gScore[ck] + n.cost
		old, scored := p.gScore[nk]
		if p.closed.Has(nk) && scored && tentative >= old {
			continue
		}
		inOpen := p.openSet.Has(nk)
		if inOpen && tentative >= old {
			continue
		}

		p.cameFrom[nk] = current
		p.gScore[nk] = tentative
		p.fScore[nk] = tentative + heuristic(n.point, p.goal, p.diagonal)
		if !inOpen {
			p.open = append(p.open, n.point)
			p.openSet.Put(nk)
		}
	}
}

// sortOpen orders the frontier by f score. The sort is stable, so among
// equal scores the earliest queued node is expanded first.
func (p *Pathfinder) sortOpen() {
	slices.SortStableFunc(p.open, func(a, b grid.Point) int {
		return cmp.Compare(p.fScore[a.Key()], p.fScore[b.Key()])
	})
}

func (p *Pathfinder) reconstruct(end grid.Point) []grid.Point {
	path := []grid.Point{end}
	for prev, ok := p.cameFrom[end.Key()]; ok; prev, ok = p.cameFrom[prev.Key()] {
		path = append(path, prev)
	}
	slices.Reverse(path)
	return path
}

func (p *Pathfinder) finish(state State) {
	p.state = state
	p.span.SetAttributes(
		attribute.String("pathfind.state", state.String()),
		attribute.Int("pathfind.expansions", p.expansions),
		attribute.Int("pathfind.updates", p.updates),
		attribute.Int("pathfind.path_length", p.pathLen),
	)
	p.span.End()
}

// heuristic is the octile distance when diagonal moves are allowed and the
// Manhattan distance otherwise.
func heuristic(a, b grid.Point, diagonal bool) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	if diagonal {
		return math.Sqrt2*min(dx, dy) + math.Abs(dx-dy)
	}
	return dx + dy
}
