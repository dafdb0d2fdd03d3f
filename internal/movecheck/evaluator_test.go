package movecheck

import (
	"slices"
	"strings"
	"testing"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

func at(x, y int) hexgrid.Coords { return hexgrid.Coords{X: x, Y: y} }

// board returns a w x h clear board with the given hexes set.
func board(w, h int, hexes ...*hexgrid.Hex) *hexgrid.Board {
	b := hexgrid.NewBoard(w, h)
	for _, hex := range hexes {
		b.Set(hex)
	}
	b.Finalize()
	return b
}

func hexAt(c hexgrid.Coords, level int, terrain ...hexgrid.TerrainFeature) *hexgrid.Hex {
	return &hexgrid.Hex{Coord: c, Level: level, Terrain: terrain}
}

func feature(t hexgrid.TerrainType, level int) hexgrid.TerrainFeature {
	return hexgrid.TerrainFeature{Type: t, Level: level}
}

func testMech(pos hexgrid.Coords) *unit.Entity {
	return &unit.Entity{
		ID: 7, Name: "Wolverine WVR-6R", Kind: unit.KindMech, Mode: unit.ModeBiped,
		Tonnage: 55, Position: pos, Facing: hexgrid.North,
		Crew: unit.Crew{Piloting: 5}, WalkMP: 4, RunMP: 6, JumpMP: 3,
	}
}

func ruleNames(r []*psrRoll) []string {
	out := make([]string, len(r))
	for i, x := range r {
		out[i] = x.rule
	}
	return out
}

type psrRoll struct {
	rule  string
	value int
}

func summarize(rep Report) []*psrRoll {
	var out []*psrRoll
	for _, e := range rep.Entries {
		if e.Roll != nil {
			out = append(out, &psrRoll{rule: e.Rule, value: e.Roll.Value()})
		}
	}
	return out
}

func TestEvaluateEmptyPath(t *testing.T) {
	ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())
	p := movepath.New(testMech(at(2, 2)))

	rep := ev.Evaluate(p)
	if !rep.Empty() {
		t.Errorf("entries = %v, want none", rep.Entries)
	}
	if got := ev.PSRList(p); len(got) != 0 {
		t.Errorf("PSRList = %v, want empty", got)
	}
	if got := ev.PSRCheck(p); got != "" {
		t.Errorf("PSRCheck = %q, want empty", got)
	}
}

func TestEvaluateNilEntityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for path without entity")
		}
	}()
	ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())
	ev.Evaluate(movepath.Path{})
}

func TestEvaluateStopsAtIllegalStep(t *testing.T) {
	b := board(5, 5, hexAt(at(2, 2), 0, feature(hexgrid.TerrainWater, 2)))
	ev := NewEvaluator(b, game.DefaultEnvironment(), game.DefaultRules())
	e := testMech(at(2, 4))
	p := movepath.New(e,
		movepath.Step{Type: movepath.StepForwards, Position: at(2, 3), MPUsed: 1, MovementType: movepath.MoveWalk},
		movepath.Step{Type: movepath.StepForwards, Position: at(2, 2), Elevation: -2, MPUsed: 20, MovementType: movepath.MoveIllegal},
	)

	rep := ev.Evaluate(p)
	if rep.Path.Len() != 1 {
		t.Errorf("clipped length = %d, want 1", rep.Path.Len())
	}
	if !rep.Empty() {
		t.Errorf("entries = %v, want none past the illegal step", rep.Entries)
	}
	if p.Len() != 2 {
		t.Errorf("input path modified: len %d", p.Len())
	}
}

func TestExcessMP(t *testing.T) {
	tests := []struct {
		name     string
		mp       int
		pavement bool
		want     bool
	}{
		{"within run", 6, false, false},
		{"over run", 7, false, true},
		{"pavement bonus", 7, true, false},
		{"over pavement bonus", 8, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())
			e := testMech(at(2, 4))
			p := movepath.New(e, movepath.Step{
				Type: movepath.StepForwards, Position: at(2, 3),
				MPUsed: tt.mp, MovementType: movepath.MoveRun, OnlyPavement: tt.pavement,
			})
			got := summarize(ev.Evaluate(p))
			if !tt.want {
				if len(got) != 0 {
					t.Errorf("rolls = %v, want none", ruleNames(got))
				}
				return
			}
			if len(got) != 1 || got[0].rule != "excess-mp" || got[0].value != 5 {
				t.Errorf("rolls = %v, want one excess-mp roll", ruleNames(got))
			}
		})
	}
}

func TestLeaping(t *testing.T) {
	tests := []struct {
		name  string
		from  int
		rolls []int
	}{
		{"three levels", 3, []int{11, 8}},
		{"two levels", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board(5, 5, hexAt(at(2, 4), tt.from))
			r := game.DefaultRules()
			r.Leaping = true
			ev := NewEvaluator(b, game.DefaultEnvironment(), r)
			p := movepath.New(testMech(at(2, 4)), movepath.Step{
				Type: movepath.StepForwards, Position: at(2, 3), MPUsed: 4, MovementType: movepath.MoveWalk,
			})

			rep := ev.Evaluate(p)
			got := summarize(rep)
			if len(got) != len(tt.rolls) {
				t.Fatalf("rolls = %v, want %d", ruleNames(got), len(tt.rolls))
			}
			for i, want := range tt.rolls {
				if got[i].value != want {
					t.Errorf("roll %d (%s) = %d, want %d", i, got[i].rule, got[i].value, want)
				}
			}
			if len(tt.rolls) > 0 {
				if got[0].rule != "leap-damage" || got[1].rule != "leap-fall" {
					t.Errorf("rules = %v", ruleNames(got))
				}
				rolls := rep.Rolls()
				last := rolls[0].Modifiers[len(rolls[0].Modifiers)-1]
				if last.Value != 6 || last.Desc != "leaping (leg damage)" {
					t.Errorf("leg modifier = %+v", last)
				}
			}
		})
	}
}

func TestLeapingOffByDefault(t *testing.T) {
	b := board(5, 5, hexAt(at(2, 4), 3))
	ev := NewEvaluator(b, game.DefaultEnvironment(), game.DefaultRules())
	p := movepath.New(testMech(at(2, 4)), movepath.Step{
		Type: movepath.StepForwards, Position: at(2, 3), MPUsed: 4, MovementType: movepath.MoveWalk,
	})
	if rep := ev.Evaluate(p); !rep.Empty() {
		t.Errorf("entries = %v, want none", rep.Entries)
	}
}

func TestEject(t *testing.T) {
	ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())
	e := testMech(at(2, 2))
	e.Prone = true
	e.Crew.Unconscious = true
	e.Damage.HeadIS = 1
	e.Damage.HeadMaxIS = 3
	p := movepath.New(e, movepath.Step{Type: movepath.StepEject, Position: e.Position, MovementType: movepath.MoveNone})

	rolls := ev.PSRList(p)
	if len(rolls) != 1 {
		t.Fatalf("got %d rolls, want 1", len(rolls))
	}
	roll := rolls[0]
	if roll.Value() != 13 {
		t.Errorf("value = %d, want 13", roll.Value())
	}
	want := []string{"ejecting", "Mech is prone", "pilot unconscious", "head damage", "landing in clear terrain"}
	if got := roll.Reasons(); !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}

	text := ev.PSRCheck(p)
	wantText := "Piloting skill check needed: target 13: 5 (ejecting) + 5 (Mech is prone) + 3 (pilot unconscious) + 2 (head damage) - 2 (landing in clear terrain)"
	if text != wantText {
		t.Errorf("text = %q\nwant %q", text, wantText)
	}
}

func TestEjectConditions(t *testing.T) {
	env := game.DefaultEnvironment()
	env.Gravity = 0.5
	env.Atmosphere = game.AtmosphereVacuum
	env.Wind = game.WindStorm
	ev := NewEvaluator(board(5, 5), env, game.DefaultRules())
	e := testMech(at(2, 2))
	p := movepath.New(e, movepath.Step{Type: movepath.StepEject, Position: e.Position, MovementType: movepath.MoveNone})

	rolls := ev.PSRList(p)
	if len(rolls) != 1 {
		t.Fatalf("got %d rolls, want 1", len(rolls))
	}
	// 5 - 2 clear + 2 low gravity + 3 vacuum + 3 really bad weather
	if got := rolls[0].Value(); got != 11 {
		t.Errorf("value = %d, want 11: %s", got, rolls[0].Desc())
	}
}

func TestWaterAndDarkness(t *testing.T) {
	tests := []struct {
		name  string
		light game.Light
		depth int
		want  int
	}{
		{"depth 1", game.LightDay, 1, 4},
		{"depth 2", game.LightDay, 2, 5},
		{"depth 3", game.LightDay, 3, 6},
		{"depth 2 moonless", game.LightMoonless, 2, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board(5, 5, hexAt(at(2, 3), 0, feature(hexgrid.TerrainWater, tt.depth)))
			env := game.DefaultEnvironment()
			env.Light = tt.light
			ev := NewEvaluator(b, env, game.DefaultRules())
			p := movepath.New(testMech(at(2, 4)), movepath.Step{
				Type: movepath.StepForwards, Position: at(2, 3), Elevation: -tt.depth,
				MPUsed: 2, MovementType: movepath.MoveWalk,
			})

			got := summarize(ev.Evaluate(p))
			if len(got) != 1 || got[0].rule != "water" {
				t.Fatalf("rolls = %v, want one water roll", ruleNames(got))
			}
			if got[0].value != tt.want {
				t.Errorf("value = %d, want %d", got[0].value, tt.want)
			}
		})
	}
}

func TestCompiledPathIntoWater(t *testing.T) {
	b := board(5, 5, hexAt(at(2, 3), 0, feature(hexgrid.TerrainWater, 2)))
	env, r := game.DefaultEnvironment(), game.DefaultRules()
	c := movepath.NewCompiler(b, env, r)
	p := c.Build(testMech(at(2, 4)), movepath.StepForwards)

	rolls := NewEvaluator(b, env, r).PSRList(p)
	if len(rolls) != 1 {
		t.Fatalf("got %d rolls, want 1", len(rolls))
	}
	want := []string{"base piloting skill", "entering Depth 2 Water"}
	if got := rolls[0].Reasons(); !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}
}

func TestSkidOnPavement(t *testing.T) {
	var hexes []*hexgrid.Hex
	for y := 0; y < 10; y++ {
		hexes = append(hexes, hexAt(at(1, y), 0, feature(hexgrid.TerrainPavement, 1)))
	}
	b := board(5, 10, hexes...)
	env, r := game.DefaultEnvironment(), game.DefaultRules()
	c := movepath.NewCompiler(b, env, r)
	p := c.Build(testMech(at(1, 9)),
		movepath.StepForwards, movepath.StepForwards, movepath.StepForwards, movepath.StepForwards,
		movepath.StepTurnRight, movepath.StepForwards)
	if p.LastStepMovementType() != movepath.MoveRun {
		t.Fatalf("overall = %v, want run", p.LastStepMovementType())
	}

	rep := NewEvaluator(b, env, r).Evaluate(p)
	rolls := rep.Rolls()
	if len(rolls) != 1 || rep.Entries[0].Rule != "skid" {
		t.Fatalf("entries = %v, want one skid roll", rep.Entries)
	}
	if rep.Entries[0].Step != 5 {
		t.Errorf("skid on step %d, want 5", rep.Entries[0].Step)
	}
	want := []string{"base piloting skill", "running & turning on pavement"}
	if got := rolls[0].Reasons(); !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}
}

func TestSkidModifier(t *testing.T) {
	tests := []struct{ distance, want int }{
		{0, -1}, {2, -1}, {3, 0}, {4, 0}, {5, 1}, {7, 1}, {8, 2}, {10, 2},
		{11, 4}, {17, 4}, {18, 5}, {24, 5}, {25, 6},
	}
	for _, tt := range tests {
		if got := skidModifier(tt.distance); got != tt.want {
			t.Errorf("skidModifier(%d) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestEnteringBuilding(t *testing.T) {
	b := board(5, 5, hexAt(at(2, 3), 0,
		feature(hexgrid.TerrainBuilding, int(hexgrid.BuildingMedium)),
		feature(hexgrid.TerrainBldgCF, 40)))
	env, r := game.DefaultEnvironment(), game.DefaultRules()
	c := movepath.NewCompiler(b, env, r)
	p := c.Build(testMech(at(2, 4)), movepath.StepForwards)

	rep := NewEvaluator(b, env, r).Evaluate(p)
	rolls := rep.Rolls()
	if len(rolls) != 1 {
		t.Fatalf("entries = %v, want one building roll", rep.Entries)
	}
	if rolls[0].Value() != 6 {
		t.Errorf("value = %d, want 6", rolls[0].Value())
	}
	want := []string{"base piloting skill", "entering medium building #1", "medium building"}
	if got := rolls[0].Reasons(); !slices.Equal(got, want) {
		t.Errorf("reasons = %v, want %v", got, want)
	}
	warnings := rep.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "may collapse under 55 tons") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestGetUp(t *testing.T) {
	tests := []struct {
		step movepath.StepType
		want int
	}{
		{movepath.StepGetUp, 5},
		{movepath.StepCarefulStand, 3},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			ev := NewEvaluator(board(5, 5), game.DefaultEnvironment(), game.DefaultRules())
			e := testMech(at(2, 2))
			e.Prone = true
			p := movepath.New(e, movepath.Step{Type: tt.step, Position: e.Position, MPUsed: 2, MovementType: movepath.MoveWalk, JustStood: true})

			got := summarize(ev.Evaluate(p))
			if len(got) != 1 || got[0].rule != "get-up" || got[0].value != tt.want {
				t.Errorf("rolls = %+v", got)
			}
		})
	}
}

func TestReportText(t *testing.T) {
	b := board(5, 5,
		hexAt(at(2, 3), 0, feature(hexgrid.TerrainRubble, 1)),
		hexAt(at(2, 2), 0, feature(hexgrid.TerrainFire, 1)))
	ev := NewEvaluator(b, game.DefaultEnvironment(), game.DefaultRules())
	p := movepath.New(testMech(at(2, 4)), movepath.Step{
		Type: movepath.StepForwards, Position: at(2, 3), MPUsed: 2, MovementType: movepath.MoveWalk,
	})

	rep := ev.Evaluate(p)
	text := ev.PSRCheck(p)
	if len(rep.Rolls()) != 1 {
		t.Fatalf("entries = %v, want one rubble roll", rep.Entries)
	}
	for _, r := range rep.Rolls() {
		if !strings.Contains(text, r.String()) {
			t.Errorf("text %q missing %q", text, r.String())
		}
	}
	if !strings.Contains(text, "0304 is next to a burning hex") {
		t.Errorf("text %q missing fire warning", text)
	}
}
