package movecheck

import (
	"math/rand/v2"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// ─── Aerospace path synthesis ───────────────────────────────────────────────

// groundTicks is how many hexes one velocity point covers when an
// aerospace unit flies over a ground-scale map.
const groundTicks = 16

// Occupancy reports the tonnage of units standing in a hex.
type Occupancy interface {
	TonnageAt(hexgrid.Coords) int
}

// OccupancyFunc adapts a function to Occupancy.
type OccupancyFunc func(hexgrid.Coords) int

func (f OccupancyFunc) TonnageAt(c hexgrid.Coords) int { return f(c) }

// Notifier receives the game-state side effects of synthesizing a path.
type Notifier interface {
	AddPassedThrough(hexgrid.Coords)
	UpdateEntity(*unit.Entity)
}

type Option func(*Synthesizer)

// WithOccupancy sets the tonnage lookup used to pick between split hexes.
func WithOccupancy(o Occupancy) Option {
	return func(s *Synthesizer) { s.occupancy = o }
}

// WithNotifier sets who hears about hexes passed through.
func WithNotifier(n Notifier) Option {
	return func(s *Synthesizer) { s.notify = n }
}

// WithRand enables the random opening turn of out-of-control units.
func WithRand(rng *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = rng }
}

// Synthesizer builds the steps of aerospace units that do not choose their
// own path: vector movement and out-of-control flight.
type Synthesizer struct {
	board     Board
	rules     game.RulesConfig
	compiler  *movepath.Compiler
	occupancy Occupancy
	notify    Notifier
	rng       *rand.Rand
}

func NewSynthesizer(board Board, env game.Environment, rules game.RulesConfig, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		board:    board,
		rules:    rules,
		compiler: movepath.NewCompiler(board, env, rules),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// MoveAero returns the path an aerospace unit will actually fly. Paths of
// other units, and of units in full control without vector movement, are
// returned unchanged.
func (s *Synthesizer) MoveAero(p movepath.Path) movepath.Path {
	e := p.Entity()
	if e == nil || !e.IsAero() {
		return p
	}
	if s.rules.VectorMovement {
		if last, ok := p.Last(); ok && last.Type == movepath.StepRam {
			return p
		}
		return s.vectorPath(p)
	}
	if e.Aero.OutOfControl {
		return s.outOfControlPath(p)
	}
	return p
}

func keepsTrailing(t movepath.StepType) bool {
	return t == movepath.StepLaunch || t == movepath.StepRecover || t == movepath.StepUndock
}

// vectorPath moves the unit along its velocity vectors from where p ends.
func (s *Synthesizer) vectorPath(p movepath.Path) movepath.Path {
	e := p.Entity()
	var trailing *movepath.Step
	if last, ok := p.Last(); ok && keepsTrailing(last.Type) {
		trailing = &last
		p = p.WithoutLast()
	}

	start := p.FinalPosition()
	end := start
	for dir, n := range p.FinalVectors() {
		if n > 0 {
			end = end.TranslatedN(dir, n)
		}
	}
	p, leftMap := s.addSteps(p, start, end)
	if s.notify != nil {
		s.notify.UpdateEntity(e)
	}
	if trailing != nil && !leftMap {
		p = s.compiler.AddStep(p, *trailing)
	}
	return p
}

// addSteps walks the hex line from start to end. Where the line runs along
// a hexside the lighter-occupied of the two hexes is taken.
func (s *Synthesizer) addSteps(p movepath.Path, start, end hexgrid.Coords) (movepath.Path, bool) {
	line := hexgrid.Intervening(start, end, start.IsSplitLine(end))
	cur := start
	for i := 1; i < len(line); i++ {
		next := line[i]
		if i+1 < len(line) && start.Distance(line[i+1]) == start.Distance(next) {
			left, right := next, line[i+1]
			if s.notify != nil {
				s.notify.AddPassedThrough(left)
				s.notify.AddPassedThrough(right)
			}
			if s.tonnage(left) < s.tonnage(right) || !s.board.Contains(right) {
				next = left
			} else {
				next = right
			}
			i++
		}
		if !s.board.Contains(next) {
			return s.compiler.Add(p, s.exitStep()), true
		}
		p = s.compiler.Add(p, stepToward(p.FinalFacing(), cur.Direction(next)))
		cur = next
	}
	return p, false
}

func (s *Synthesizer) exitStep() movepath.StepType {
	if s.rules.ReturnFlyover {
		return movepath.StepReturn
	}
	return movepath.StepOff
}

func (s *Synthesizer) tonnage(c hexgrid.Coords) int {
	if s.occupancy == nil {
		return 0
	}
	return s.occupancy.TonnageAt(c)
}

// stepToward picks the step that moves through hexside dir without turning.
func stepToward(facing, dir int) movepath.StepType {
	switch (dir - facing + 6) % 6 {
	case 1:
		return movepath.StepLateralRight
	case 5:
		return movepath.StepLateralLeft
	case 2:
		return movepath.StepLateralRightBackwards
	case 4:
		return movepath.StepLateralLeftBackwards
	case 3:
		return movepath.StepBackwards
	}
	return movepath.StepForwards
}

// outOfControlPath flies the unit straight ahead at its current velocity,
// after an optional random turn.
func (s *Synthesizer) outOfControlPath(p movepath.Path) movepath.Path {
	e := p.Entity()
	var keep []movepath.Step
	for _, st := range p.Steps() {
		if keepsTrailing(st.Type) {
			keep = append(keep, st)
		}
	}

	out := movepath.New(e)
	if s.rng != nil {
		switch s.rng.IntN(6) + 1 {
		case 1:
			out = s.compiler.Add(out, movepath.StepTurnLeft)
		case 6:
			out = s.compiler.Add(out, movepath.StepTurnRight)
		}
	}

	hexes := e.Aero.Velocity
	if s.board.OnGround() {
		hexes *= groundTicks
	}
	for i := 0; i < hexes; i++ {
		if !s.board.Contains(out.FinalPosition().Translated(out.FinalFacing())) {
			return s.compiler.Add(out, movepath.StepOff)
		}
		out = s.compiler.Add(out, movepath.StepForwards)
	}
	for _, st := range keep {
		out = s.compiler.AddStep(out, st)
	}
	return out
}
