package movecheck

import (
	"slices"
	"testing"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/psr"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

func testFighter(pos hexgrid.Coords) *unit.Entity {
	return &unit.Entity{
		ID: 12, Name: "Stingray F-90", Kind: unit.KindFighter, Mode: unit.ModeAerodyne,
		Tonnage: 60, Position: pos, Facing: hexgrid.North, Elevation: 5,
		Crew: unit.Crew{Piloting: 5},
		Aero: &unit.Aero{Airborne: true, Velocity: 4, SI: 10, SafeThrust: 6},
	}
}

func TestCheckThrust(t *testing.T) {
	tests := []struct {
		name   string
		si     int
		hits   int
		thrust int
		want   map[string]int
	}{
		{"within limits", 10, 0, 4, nil},
		{"over SI", 3, 0, 4, map[string]int{"thrust-si": 6}},
		{"over pilot tolerance", 20, 0, 13, map[string]int{"thrust-pilot": 3}},
		{"wounded pilot", 20, 1, 11, map[string]int{"thrust-pilot": 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testFighter(at(2, 4))
			e.Aero.SI = tt.si
			e.Crew.Hits = tt.hits
			half := tt.thrust / 2
			p := movepath.New(e,
				movepath.Step{Type: movepath.StepAccelerate, Position: e.Position, MPUsed: half, MovementType: movepath.MoveSafeThrust},
				movepath.Step{Type: movepath.StepAccelerate, Position: e.Position, MPUsed: tt.thrust, MovementType: movepath.MoveSafeThrust},
				movepath.Step{Type: movepath.StepForwards, Position: at(2, 3), MPUsed: tt.thrust, MovementType: movepath.MoveSafeThrust},
			)
			ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())

			rep := ev.CheckThrust(p)
			got := map[string]int{}
			for _, e := range rep.Entries {
				got[e.Rule] = e.Roll.Value()
				if e.Step != 2 {
					t.Errorf("%s on step %d, want 2", e.Rule, e.Step)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("rolls = %v, want %v", got, tt.want)
			}
			for rule, v := range tt.want {
				if got[rule] != v {
					t.Errorf("%s = %d, want %d", rule, got[rule], v)
				}
			}
		})
	}
}

func TestCheckThrustSkipped(t *testing.T) {
	e := testFighter(at(2, 4))
	e.Aero.SI = 1
	p := movepath.New(e,
		movepath.Step{Type: movepath.StepForwards, Position: at(2, 3), MPUsed: 5, MovementType: movepath.MoveSafeThrust})

	r := game.DefaultRules()
	r.VectorMovement = true
	if rep := NewEvaluator(board(5, 5), game.DefaultEnvironment(), r).CheckThrust(p); !rep.Empty() {
		t.Errorf("vector movement: entries = %v", rep.Entries)
	}

	e.Aero.Airborne = false
	if rep := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules()).CheckThrust(p); !rep.Empty() {
		t.Errorf("landed: entries = %v", rep.Entries)
	}
}

func TestAeroEndOfPath(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *unit.Entity, s *movepath.Step)
		want  []string
	}{
		{"cruising", func(e *unit.Entity, s *movepath.Step) {}, nil},
		{"stalled", func(e *unit.Entity, s *movepath.Step) { s.Velocity = 0 }, []string{"aero-stall"}},
		{"stalled vstol", func(e *unit.Entity, s *movepath.Step) { s.Velocity = 0; e.Aero.VSTOL = true }, nil},
		{"too fast", func(e *unit.Entity, s *movepath.Step) { s.Velocity = 13 }, []string{"aero-velocity"}},
		{"dived", func(e *unit.Entity, s *movepath.Step) { s.NDown = 3 }, []string{"aero-altitude"}},
		{"over SI", func(e *unit.Entity, s *movepath.Step) { s.MPUsed = 11 }, []string{"aero-si"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testFighter(at(2, 4))
			s := movepath.Step{Type: movepath.StepForwards, Position: at(2, 3), Velocity: 4, MPUsed: 2, MovementType: movepath.MoveSafeThrust}
			tt.setup(e, &s)
			ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())

			rep := ev.Evaluate(movepath.New(e, s))
			var got []string
			for _, entry := range rep.Entries {
				got = append(got, entry.Rule)
				if entry.Step != EndOfPath {
					t.Errorf("%s on step %d, want end of path", entry.Rule, entry.Step)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("rules = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManeuverRoll(t *testing.T) {
	e := testFighter(at(2, 4))
	p := movepath.New(e, movepath.Step{
		Type: movepath.StepManeuver, Position: e.Position, Velocity: 4,
		Maneuver: movepath.ManeuverBarrelRoll, MPUsed: 1, MovementType: movepath.MoveSafeThrust,
	})
	ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())

	rolls := ev.PSRList(p)
	if len(rolls) != 1 {
		t.Fatalf("got %d rolls, want 1", len(rolls))
	}
	want := []string{"base piloting skill", "maneuver: " + movepath.ManeuverBarrelRoll.String()}
	if got := rolls[0].Reasons(); !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}
}

func TestLanding(t *testing.T) {
	tests := []struct {
		name  string
		pos   hexgrid.Coords
		hexes []*hexgrid.Hex
		step  movepath.StepType
		vstol bool
		vel   int
		want  int
	}{
		{"horizontal on clear", at(4, 9), nil, movepath.StepLand, false, 3, 7},
		{"horizontal fast", at(4, 9), nil, movepath.StepLand, false, 5, 9},
		{"horizontal on runway", at(4, 9), paved(at(4, 9), 8), movepath.StepLand, false, 3, 5},
		{"strip off the board", at(4, 3), nil, movepath.StepLand, false, 3, psr.Impossible},
		{"vertical without vstol", at(4, 15), nil, movepath.StepVLand, false, 1, psr.Impossible},
		{"vertical with vstol", at(4, 15), nil, movepath.StepVLand, true, 1, 7},
		{"vertical next to water", at(4, 15), []*hexgrid.Hex{hexAt(at(4, 14), 0, feature(hexgrid.TerrainWater, 1))}, movepath.StepVLand, true, 1, psr.Impossible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testFighter(tt.pos)
			e.Aero.VSTOL = tt.vstol
			p := movepath.New(e, movepath.Step{Type: tt.step, Position: tt.pos, Velocity: tt.vel, MovementType: movepath.MoveSafeThrust})
			ev := NewEvaluator(board(10, 20, tt.hexes...), game.DefaultEnvironment(), game.DefaultRules())

			rolls := ev.PSRList(p)
			if len(rolls) != 1 {
				t.Fatalf("got %d rolls, want 1", len(rolls))
			}
			if got := rolls[0].Value(); got != tt.want {
				t.Errorf("value = %d (%s), want %d", got, rolls[0].Desc(), tt.want)
			}
		})
	}
}

// paved returns n paved hexes running north from c.
func paved(c hexgrid.Coords, n int) []*hexgrid.Hex {
	out := make([]*hexgrid.Hex, n)
	for i := range out {
		out[i] = hexAt(c.TranslatedN(hexgrid.North, i), 0, feature(hexgrid.TerrainPavement, 1))
	}
	return out
}

func TestLaunchDoors(t *testing.T) {
	e := testFighter(at(2, 2))
	e.Kind = unit.KindDropShip
	e.Mode = unit.ModeSpheroid
	e.Aero.Bays = []unit.Bay{{Doors: 2}, {Doors: 1}}
	p := movepath.New(e, movepath.Step{
		Type: movepath.StepLaunch, Position: e.Position, Velocity: 4, MovementType: movepath.MoveSafeThrust,
		Launched: map[int][]int{0: {21, 22, 23, 24, 25}, 1: {31}},
	})
	ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())

	got := ev.Evaluate(p).Launches
	want := []DoorLoad{
		{Bay: 0, Door: 0, Units: 3, Bonus: 1},
		{Bay: 0, Door: 1, Units: 2, Bonus: 0},
		{Bay: 1, Door: 0, Units: 1, Bonus: 0},
	}
	if !slices.Equal(got, want) {
		t.Errorf("launches = %+v, want %+v", got, want)
	}
}
