package movepath

import (
	"reflect"
	"testing"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

type square struct{ w, h int }

func (s square) Contains(c hexgrid.Coords) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.w && c.Y < s.h
}

func stepAt(t StepType, x, y int, mt MovementType) Step {
	return Step{Type: t, Position: hexgrid.Coords{X: x, Y: y}, MovementType: mt}
}

func TestClip(t *testing.T) {
	e := &unit.Entity{ID: 1}
	bounds := square{5, 5}

	tests := []struct {
		name  string
		steps []Step
		want  int
	}{
		{"empty", nil, 0},
		{"all legal", []Step{
			stepAt(StepForwards, 2, 3, MoveWalk),
			stepAt(StepForwards, 2, 2, MoveWalk),
		}, 2},
		{"illegal in the middle", []Step{
			stepAt(StepForwards, 2, 3, MoveWalk),
			stepAt(StepForwards, 2, 2, MoveIllegal),
			stepAt(StepForwards, 2, 1, MoveWalk),
		}, 1},
		{"walks off the board", []Step{
			stepAt(StepForwards, 2, 0, MoveWalk),
			stepAt(StepForwards, 2, -1, MoveWalk),
		}, 1},
		{"flies off with an off step", []Step{
			stepAt(StepForwards, 2, 0, MoveSafeThrust),
			stepAt(StepOff, 2, -1, MoveSafeThrust),
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(e, tt.steps...)
			once := p.Clip(bounds)
			if once.Len() != tt.want {
				t.Fatalf("Clip().Len() = %d, want %d", once.Len(), tt.want)
			}
			twice := once.Clip(bounds)
			if !reflect.DeepEqual(once.Steps(), twice.Steps()) {
				t.Errorf("Clip is not idempotent: %v vs %v", once.Steps(), twice.Steps())
			}
			if p.Len() != len(tt.steps) {
				t.Errorf("Clip modified the input path")
			}
		})
	}
}

func TestAggregates(t *testing.T) {
	e := &unit.Entity{ID: 1, Position: hexgrid.Coords{X: 1, Y: 1}, Facing: 2, Aero: &unit.Aero{Velocity: 4}}
	empty := New(e)
	if empty.FinalPosition() != e.Position || empty.FinalFacing() != 2 || empty.FinalVelocity() != 4 {
		t.Errorf("empty path does not report the entity state")
	}
	if empty.LastStepMovementType() != MoveNone {
		t.Errorf("LastStepMovementType() = %v", empty.LastStepMovementType())
	}

	p := empty.Append(
		Step{Type: StepStartJump, MovementType: MoveJump},
		Step{Type: StepForwards, MovementType: MoveJump, MPUsed: 1, Velocity: 3, NDown: 1, UsesMASC: true},
	)
	if !p.IsJumping() || !p.Contains(StepForwards) || p.Contains(StepEject) {
		t.Error("Contains is wrong")
	}
	if p.MPUsed() != 1 || p.FinalVelocity() != 3 || p.FinalNDown() != 1 || !p.HasActiveMASC() {
		t.Errorf("aggregates wrong for %v", p.Steps())
	}
	if p.WithoutLast().Len() != 1 || p.Len() != 2 {
		t.Error("WithoutLast changed the source path")
	}
}
