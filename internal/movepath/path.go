package movepath

import (
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// Bounds answers whether a hex lies on the board.
type Bounds interface {
	Contains(hexgrid.Coords) bool
}

// Path is an immutable sequence of steps for one entity. Methods that change
// the sequence return a new Path.
type Path struct {
	entity *unit.Entity
	steps  []Step
}

// New builds a path from already positioned steps.
func New(e *unit.Entity, steps ...Step) Path {
	return Path{entity: e, steps: append([]Step(nil), steps...)}
}

func (p Path) Entity() *unit.Entity { return p.entity }

func (p Path) Len() int { return len(p.steps) }

func (p Path) Step(i int) Step { return p.steps[i] }

// Steps returns a copy of the steps.
func (p Path) Steps() []Step { return append([]Step(nil), p.steps...) }

// Last returns the final step, false for an empty path.
func (p Path) Last() (Step, bool) {
	if len(p.steps) == 0 {
		return Step{}, false
	}
	return p.steps[len(p.steps)-1], true
}

// Append returns a new path with s added as given.
func (p Path) Append(s ...Step) Path {
	steps := make([]Step, 0, len(p.steps)+len(s))
	steps = append(steps, p.steps...)
	steps = append(steps, s...)
	return Path{entity: p.entity, steps: steps}
}

// WithoutLast returns a new path minus its final step.
func (p Path) WithoutLast() Path {
	if len(p.steps) == 0 {
		return p
	}
	return Path{entity: p.entity, steps: p.steps[:len(p.steps)-1:len(p.steps)-1]}
}

// Clip returns the longest legal prefix: everything before the first illegal
// step, or before the first step that leaves the board without a return,
// off or flee step.
func (p Path) Clip(b Bounds) Path {
	for i, s := range p.steps {
		if s.MovementType == MoveIllegal {
			return p.prefix(i)
		}
		if b != nil && !s.Type.LeavesMap() && !b.Contains(s.Position) {
			return p.prefix(i)
		}
	}
	return p
}

func (p Path) prefix(n int) Path {
	return Path{entity: p.entity, steps: append([]Step(nil), p.steps[:n]...)}
}

// ─── Aggregate queries ──────────────────────────────────────────────────────

// LastStepMovementType is the overall movement classification of the path.
func (p Path) LastStepMovementType() MovementType {
	if s, ok := p.Last(); ok {
		return s.MovementType
	}
	return MoveNone
}

// Contains reports whether any step has type t.
func (p Path) Contains(t StepType) bool {
	for _, s := range p.steps {
		if s.Type == t {
			return true
		}
	}
	return false
}

// IsJumping reports a path that starts a jump.
func (p Path) IsJumping() bool { return p.Contains(StepStartJump) }

func (p Path) MPUsed() int {
	if s, ok := p.Last(); ok {
		return s.MPUsed
	}
	return 0
}

func (p Path) FinalPosition() hexgrid.Coords {
	if s, ok := p.Last(); ok {
		return s.Position
	}
	return p.entity.Position
}

func (p Path) FinalFacing() int {
	if s, ok := p.Last(); ok {
		return s.Facing
	}
	return p.entity.Facing
}

func (p Path) FinalElevation() int {
	if s, ok := p.Last(); ok {
		return s.Elevation
	}
	return p.entity.Elevation
}

func (p Path) FinalVelocity() int {
	if s, ok := p.Last(); ok {
		return s.Velocity
	}
	if p.entity.Aero != nil {
		return p.entity.Aero.Velocity
	}
	return 0
}

func (p Path) FinalNDown() int {
	if s, ok := p.Last(); ok {
		return s.NDown
	}
	return 0
}

// FinalVectors is the velocity vector the unit ends the turn with.
func (p Path) FinalVectors() [6]int {
	if p.entity.Aero == nil {
		return [6]int{}
	}
	return p.entity.Aero.Vectors
}

func (p Path) FinalClimbMode() bool {
	if s, ok := p.Last(); ok {
		return s.ClimbMode
	}
	return false
}

// HasActiveMASC reports any step that needed MASC.
func (p Path) HasActiveMASC() bool {
	for _, s := range p.steps {
		if s.UsesMASC {
			return true
		}
	}
	return false
}

// HasActiveSupercharger reports any step that needed the supercharger.
func (p Path) HasActiveSupercharger() bool {
	for _, s := range p.steps {
		if s.UsesSupercharger {
			return true
		}
	}
	return false
}
