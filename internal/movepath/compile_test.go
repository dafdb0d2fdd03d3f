package movepath

import (
	"testing"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// testBoard is 5x10 clear ground with a paved column at x=1, heavy woods at
// 0302 and a depth 2 lake at 0502.
func testBoard() *hexgrid.Board {
	b := hexgrid.NewBoard(5, 10)
	for y := 0; y < 10; y++ {
		b.Set(&hexgrid.Hex{Coord: hexgrid.Coords{X: 1, Y: y}, Terrain: []hexgrid.TerrainFeature{{Type: hexgrid.TerrainPavement, Level: 1}}})
	}
	b.Set(&hexgrid.Hex{Coord: hexgrid.Coords{X: 2, Y: 1}, Terrain: []hexgrid.TerrainFeature{{Type: hexgrid.TerrainWoods, Level: 2}}})
	b.Set(&hexgrid.Hex{Coord: hexgrid.Coords{X: 4, Y: 1}, Terrain: []hexgrid.TerrainFeature{{Type: hexgrid.TerrainWater, Level: 2}}})
	b.Finalize()
	return b
}

func mech(x, y int) *unit.Entity {
	return &unit.Entity{
		ID: 1, Kind: unit.KindMech, Mode: unit.ModeBiped,
		Position: hexgrid.Coords{X: x, Y: y}, Facing: hexgrid.North,
		Crew: unit.Crew{Piloting: 5}, WalkMP: 4, RunMP: 6, JumpMP: 3,
	}
}

func TestCompileWalkAndRun(t *testing.T) {
	c := NewCompiler(testBoard(), game.DefaultEnvironment(), game.DefaultRules())
	p := c.Build(mech(2, 4), StepForwards, StepForwards, StepForwards)

	want := []struct {
		pos hexgrid.Coords
		mp  int
		mt  MovementType
	}{
		{hexgrid.Coords{X: 2, Y: 3}, 1, MoveWalk},
		{hexgrid.Coords{X: 2, Y: 2}, 2, MoveWalk},
		{hexgrid.Coords{X: 2, Y: 1}, 5, MoveRun}, // heavy woods
	}
	for i, w := range want {
		s := p.Step(i)
		if s.Position != w.pos || s.MPUsed != w.mp || s.MovementType != w.mt {
			t.Errorf("step %d = %v %d %v, want %v %d %v", i, s.Position, s.MPUsed, s.MovementType, w.pos, w.mp, w.mt)
		}
		if s.Distance != i+1 {
			t.Errorf("step %d distance = %d", i, s.Distance)
		}
	}
}

func TestCompilePavementBonus(t *testing.T) {
	c := NewCompiler(testBoard(), game.DefaultEnvironment(), game.DefaultRules())
	types := make([]StepType, 8)
	p := c.Build(mech(1, 9), types...) // all forwards up the paved column

	seventh := p.Step(6)
	if !seventh.OnlyPavement || seventh.MPUsed != 7 || seventh.MovementType != MoveRun {
		t.Errorf("7th paved step = %+v, want run", seventh)
	}
	if eighth := p.Step(7); eighth.MovementType != MoveIllegal {
		t.Errorf("8th paved step = %v, want illegal", eighth.MovementType)
	}
	if got := p.Clip(c.terrain).Len(); got != 7 {
		t.Errorf("clipped length = %d, want 7", got)
	}
}

func TestCompileTurnsAndLaterals(t *testing.T) {
	c := NewCompiler(testBoard(), game.DefaultEnvironment(), game.DefaultRules())
	start := mech(2, 5)
	p := c.Build(start, StepTurnRight, StepLateralLeft, StepBackwards)

	if p.Step(0).Facing != hexgrid.NorthEast || p.Step(0).MPUsed != 1 {
		t.Errorf("turn right = %+v", p.Step(0))
	}
	if want := start.Position.Translated(hexgrid.North); p.Step(1).Position != want {
		t.Errorf("lateral left from NE facing = %v, want %v", p.Step(1).Position, want)
	}
	if want := p.Step(1).Position.Translated(hexgrid.SouthWest); p.Step(2).Position != want {
		t.Errorf("backwards from NE facing = %v, want %v", p.Step(2).Position, want)
	}
}

func TestCompileJumpAndWater(t *testing.T) {
	c := NewCompiler(testBoard(), game.DefaultEnvironment(), game.DefaultRules())

	jump := c.Build(mech(2, 5), StepStartJump, StepForwards, StepForwards, StepForwards, StepForwards)
	if jump.Step(3).MovementType != MoveJump || jump.Step(3).MPUsed != 3 {
		t.Errorf("third jump hex = %+v", jump.Step(3))
	}
	if jump.Step(4).MovementType != MoveIllegal {
		t.Errorf("fourth jump hex = %v, want illegal", jump.Step(4).MovementType)
	}

	wade := c.Build(mech(4, 2), StepForwards)
	s := wade.Step(0)
	if s.Elevation != -2 || s.MPUsed != 4 || !s.Danger {
		t.Errorf("entering depth 2 = %+v", s)
	}

	tank := mech(4, 2)
	tank.Kind, tank.Mode = unit.KindTank, unit.ModeTracked
	if got := c.Build(tank, StepForwards).Step(0).MovementType; got != MoveIllegal {
		t.Errorf("tracked tank into deep water = %v, want illegal", got)
	}
}

func TestCompileLowGravity(t *testing.T) {
	env := game.DefaultEnvironment()
	env.Gravity = 0.5
	c := NewCompiler(testBoard(), env, game.DefaultRules())
	types := make([]StepType, 7)
	p := c.Build(mech(3, 9), types...)
	if got := p.Step(6).MovementType; got != MoveWalk {
		t.Errorf("7 MP at half gravity = %v, want walk", got)
	}
}

func TestCompileStepFlags(t *testing.T) {
	c := NewCompiler(testBoard(), game.DefaultEnvironment(), game.DefaultRules())

	wade := c.Build(mech(4, 2), StepForwards, StepForwards)
	if s := wade.Step(0); !s.Danger || s.PastDanger {
		t.Errorf("into the lake = %+v, want danger", s)
	}
	if s := wade.Step(1); s.Danger || !s.PastDanger {
		t.Errorf("out of the lake = %+v, want past danger only", s)
	}

	b := hexgrid.NewBoard(5, 5)
	b.Set(&hexgrid.Hex{Coord: hexgrid.Coords{X: 2, Y: 3}, Level: 1})
	b.Finalize()
	hill := NewCompiler(b, game.DefaultEnvironment(), game.DefaultRules())
	tests := []struct {
		name  string
		start hexgrid.Coords
		steps []StepType
		want  bool
	}{
		{"backing uphill", hexgrid.Coords{X: 2, Y: 2}, []StepType{StepBackwards}, true},
		{"walking uphill", hexgrid.Coords{X: 2, Y: 4}, []StepType{StepForwards}, false},
		{"backing on the flat", hexgrid.Coords{X: 0, Y: 2}, []StepType{StepBackwards}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := hill.Build(mech(tt.start.X, tt.start.Y), tt.steps...)
			if got := p.Step(0).DangerousElevationChange; got != tt.want {
				t.Errorf("dangerous elevation change = %v, want %v", got, tt.want)
			}
		})
	}
}
