package movecheck

import (
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/psr"
)

// ─── Aerospace control ──────────────────────────────────────────────────────

func (ev *Evaluator) checkAeroControl(r *replay, acc *accumulator) {
	e := r.e
	if !e.IsAirborne() {
		return
	}
	switch r.step.Type {
	case movepath.StepRoll:
		if r.step.NRolls > 1 {
			roll := r.base()
			roll.AddModifier(0, "more than one roll")
			acc.roll("aero-control", roll)
		}
	case movepath.StepManeuver:
		roll := r.base()
		roll.AddModifier(r.step.Maneuver.Modifier(e.Aero.VSTOL), "maneuver: "+r.step.Maneuver.String())
		acc.roll("aero-control", roll)
	}
}

// ─── Take-off and landing ───────────────────────────────────────────────────

// landingTerrain returns the modifier for touching down in hex. ok is false
// when landing there is impossible.
func landingTerrain(hex *hexgrid.Hex) (mod int, reason string, ok bool) {
	switch {
	case hex.Contains(hexgrid.TerrainBuilding):
		return 0, "building in the landing area", false
	case hex.Depth() > 0 && !hex.Contains(hexgrid.TerrainIce):
		return 0, "water in the landing area", false
	case hex.IsPaved():
		return 0, "paved landing area", true
	case hex.TerrainLevel(hexgrid.TerrainWoods) >= 2 || hex.TerrainLevel(hexgrid.TerrainJungle) >= 2:
		return 5, "heavy woods in the landing area", true
	case hex.Contains(hexgrid.TerrainWoods) || hex.Contains(hexgrid.TerrainJungle):
		return 4, "light woods in the landing area", true
	case hex.Contains(hexgrid.TerrainRough) || hex.Contains(hexgrid.TerrainRubble):
		return 3, "rough ground in the landing area", true
	}
	return 2, "unpaved landing area", true
}

// addLandingArea adds the worst terrain modifier of hexes to roll, or an
// impossible modifier if any hex rules the landing out.
func (ev *Evaluator) addLandingArea(roll *psr.Roll, hexes []hexgrid.Coords) {
	worst, worstReason := -1, ""
	for _, c := range hexes {
		hex := ev.board.Get(c)
		if hex == nil {
			roll.AddModifier(psr.Impossible, "landing area off the board")
			return
		}
		mod, reason, ok := landingTerrain(hex)
		if !ok {
			roll.AddModifier(psr.Impossible, reason)
			return
		}
		if mod > worst {
			worst, worstReason = mod, reason
		}
	}
	if worst >= 0 {
		roll.AddModifier(worst, worstReason)
	}
}

func (ev *Evaluator) checkTakeoffLanding(r *replay, acc *accumulator) {
	e := r.e
	if !e.IsAero() {
		return
	}
	roll := r.base()
	switch r.step.Type {
	case movepath.StepVTakeoff:
		roll.AddModifier(0, "vertical take-off")
		if e.Aero.GearHit {
			roll.AddModifier(1, "landing gear damaged")
		}
	case movepath.StepLand:
		roll.AddModifier(0, "horizontal landing")
		if v := r.step.Velocity; v > 3 {
			roll.AddModifier(v-3, fmt.Sprintf("landing at velocity %d", v))
		}
		if e.Aero.GearHit {
			roll.AddModifier(3, "landing gear damaged")
		}
		strip := make([]hexgrid.Coords, e.LandingLength())
		for i := range strip {
			strip[i] = r.step.Position.TranslatedN(r.step.Facing, i)
		}
		ev.addLandingArea(roll, strip)
	case movepath.StepVLand:
		roll.AddModifier(0, "vertical landing")
		if !e.CanVerticalLand() {
			roll.AddModifier(psr.Impossible, "cannot land vertically")
		}
		if v := r.step.Velocity; v > 1 {
			roll.AddModifier(v-1, fmt.Sprintf("landing at velocity %d", v))
		}
		if e.Aero.GearHit {
			roll.AddModifier(3, "landing gear damaged")
		}
		area := []hexgrid.Coords{r.step.Position}
		adj := r.step.Position.Adjacent()
		area = append(area, adj[:]...)
		ev.addLandingArea(roll, area)
	}
	acc.roll("takeoff-landing", roll)
}

// ─── Thrust ─────────────────────────────────────────────────────────────────

// CheckThrust looks at the thrust spent in each hex of an airborne
// aerospace unit's path. It does nothing under vector movement.
func (ev *Evaluator) CheckThrust(p movepath.Path) Report {
	e := p.Entity()
	if e == nil {
		panic("movecheck: path has no entity")
	}
	clipped := p.Clip(ev.board)
	acc := &accumulator{}
	if ev.rules.VectorMovement || !e.IsAirborne() {
		return acc.report(clipped)
	}

	lastPos := e.Position
	thrust, spent := 0, 0
	for i := 0; i < clipped.Len(); i++ {
		s := clipped.Step(i)
		if s.MovementType == movepath.MoveIllegal {
			break
		}
		thrust += s.MPUsed - spent
		spent = s.MPUsed
		if s.Position == lastPos && i != clipped.Len()-1 {
			continue
		}
		acc.beginStep(i)
		if thrust > e.Aero.SI {
			roll := e.BasePilotingRoll()
			roll.AddModifier(thrust-e.Aero.SI, "thrust exceeds current SI in a single hex")
			acc.roll("thrust-si", roll)
		}
		if tolerance := 2 * (6 - e.Crew.Hits); thrust > tolerance {
			roll := psr.New(e.ID, 2, "pilot g-force tolerance")
			roll.AddModifier(thrust-tolerance, "thrust exceeds pilot tolerance in a single hex")
			if e.Crew.Hits > 0 {
				roll.AddModifier(2*e.Crew.Hits, "pilot hits")
			}
			acc.roll("thrust-pilot", roll)
		}
		thrust = 0
		lastPos = s.Position
	}
	return acc.report(clipped)
}
