package movecheck

import (
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// ─── Standing up ────────────────────────────────────────────────────────────

func (ev *Evaluator) checkGetUp(r *replay, acc *accumulator) {
	if !r.e.CanFall() {
		return
	}
	roll := r.base()
	if r.step.Type == movepath.StepCarefulStand {
		roll.AddModifier(-2, "careful stand")
	} else {
		roll.AddModifier(0, "getting up")
	}
	acc.roll("get-up", roll)
}

// ─── Leaping ────────────────────────────────────────────────────────────────

func (ev *Evaluator) checkLeap(r *replay, acc *accumulator) {
	if !ev.rules.Leaping || !r.e.IsMech() || r.jumping() || r.e.IsAirborne() {
		return
	}
	if !r.hexChanged() || r.prevHex == nil || r.step.Elevation > 0 {
		return
	}
	drop := (r.lastElevation + r.prevHex.Level) - (r.step.Elevation + r.curHex.Level)
	if drop <= 2 {
		return
	}
	legs := r.base()
	r.e.AddTerrainModifiers(legs, r.curHex)
	legs.AddModifier(2*drop, "leaping (leg damage)")
	acc.roll("leap-damage", legs)

	fall := r.base()
	r.e.AddTerrainModifiers(fall, r.curHex)
	fall.AddModifier(drop, "leaping (fall)")
	acc.roll("leap-fall", fall)
}

// ─── Skidding ───────────────────────────────────────────────────────────────

// skidModifier scales with the hexes moved before the turn.
func skidModifier(distance int) int {
	switch {
	case distance < 3:
		return -1
	case distance < 5:
		return 0
	case distance < 8:
		return 1
	case distance < 11:
		return 2
	case distance < 18:
		return 4
	case distance < 25:
		return 5
	}
	return 6
}

func (ev *Evaluator) checkSkid(r *replay, acc *accumulator) {
	e := r.e
	if r.jumping() || e.IsAirborne() || e.IsAirborneVTOLOrWiGE() || e.IsInfantry() {
		return
	}
	if r.prev == nil || r.prev.JustStood || !r.hexChanged() || r.prevFacing == r.step.Facing {
		return
	}

	var reason string
	switch {
	case r.prevHex != nil && r.lastElevation == 0 &&
		(r.prevHex.Contains(hexgrid.TerrainIce) || (ev.env.BlackIce && r.prevHex.IsPaved())):
		reason = "turning on ice"
	case r.prev.PavementStep && (r.overall.IsRun() || r.overall.IsSprint()):
		if e.IsMech() {
			reason = "running & turning on pavement"
		} else {
			reason = "reckless driving on pavement"
		}
	default:
		return
	}

	roll := r.base()
	roll.AddModifier(skidModifier(r.prev.Distance), reason)
	if !(r.prev.PavementStep && r.step.PavementStep) {
		e.AddTerrainModifiers(roll, ev.board.Get(r.lastPos))
	}
	acc.roll("skid", roll)
}

// ─── Rubble, light, reckless movement ───────────────────────────────────────

func (ev *Evaluator) checkRubble(r *replay, acc *accumulator) {
	if !r.hexChanged() || (r.jumping() && !r.isLast()) || r.step.PavementStep || !r.e.CanFall() {
		return
	}
	if !r.curHex.Contains(hexgrid.TerrainRubble) || r.step.Elevation > 0 {
		return
	}
	roll := r.base()
	roll.AddModifier(0, "entering Rubble")
	r.e.AddTerrainModifiers(roll, r.curHex)
	acc.roll("rubble", roll)
}

// checkLight adds the darkness penalty to every roll raised for the step.
func (ev *Evaluator) checkLight(r *replay, acc *accumulator) {
	penalty := ev.env.LightPenalty()
	if penalty == 0 {
		return
	}
	for _, roll := range acc.stepRolls() {
		roll.AddModifier(penalty, "darkness")
	}
}

func (ev *Evaluator) checkReckless(r *replay, acc *accumulator) {
	if !ev.env.RecklessConditions() || !r.hexChanged() || r.e.IsInfantry() || r.e.IsAirborne() {
		return
	}
	if !r.overall.IsRun() && !r.overall.IsSprint() {
		return
	}
	roll := r.base()
	roll.AddModifier(0, "moving recklessly")
	r.e.AddTerrainModifiers(roll, r.curHex)
	acc.roll("reckless", roll)
}

// ─── Ice, water, fire, magma ────────────────────────────────────────────────

func (ev *Evaluator) checkIce(r *replay, acc *accumulator) {
	if !r.hexChanged() || r.jumping() || r.e.IsAirborne() || r.e.IsAirborneVTOLOrWiGE() {
		return
	}
	if r.curHex.Contains(hexgrid.TerrainIce) && r.curHex.Depth() > 0 && r.step.Elevation == 0 {
		acc.nag("ice", "%s: the ice over the water may break", r.step.Position)
	}
}

// waterModifier is the piloting modifier for entering water of the depth.
func waterModifier(depth int) int {
	switch {
	case depth <= 1:
		return -1
	case depth == 2:
		return 0
	}
	return 1
}

func (ev *Evaluator) checkWater(r *replay, acc *accumulator) {
	e := r.e
	depth := r.curHex.Depth()
	if depth <= 0 || r.step.Elevation >= 0 || !r.hexChanged() || r.jumping() {
		return
	}
	if e.Hovers() || e.Mode == unit.ModeNaval || r.step.PavementStep || !e.CanFall() {
		return
	}
	roll := r.base()
	roll.AddModifier(waterModifier(depth), fmt.Sprintf("entering Depth %d Water", depth))
	acc.roll("water", roll)
}

func (ev *Evaluator) checkFire(r *replay, acc *accumulator) {
	if !r.hexChanged() || r.e.IsAirborne() || r.e.IsAirborneVTOLOrWiGE() || r.step.Elevation < 0 {
		return
	}
	if r.curHex.IsBurning() {
		acc.nag("fire", "%s is on fire", r.step.Position)
		return
	}
	for _, c := range r.step.Position.Adjacent() {
		if h := ev.board.Get(c); h != nil && h.IsBurning() {
			acc.nag("fire", "%s is next to a burning hex", r.step.Position)
			return
		}
	}
}

func (ev *Evaluator) checkMagma(r *replay, acc *accumulator) {
	if !r.hexChanged() || r.jumping() || r.e.IsAirborne() || r.step.Elevation != 0 {
		return
	}
	switch r.curHex.TerrainLevel(hexgrid.TerrainMagma) {
	case 1:
		acc.nag("magma", "%s: the magma crust may break", r.step.Position)
	case 2:
		if r.e.Mode != unit.ModeHover && r.e.Mode != unit.ModeWiGE {
			acc.nag("magma", "%s: entering liquid magma", r.step.Position)
		}
	}
}

// ─── Sideslip and bogging down ──────────────────────────────────────────────

func (ev *Evaluator) checkSideslip(r *replay, acc *accumulator) {
	e := r.e
	if e.Mode != unit.ModeVTOL && e.Mode != unit.ModeHover && e.Mode != unit.ModeWiGE {
		return
	}
	if r.prev == nil || r.step.Distance <= 1 || !r.hexChanged() || r.prevFacing == r.step.Facing {
		return
	}
	if !r.overall.IsRun() && !r.overall.IsSprint() {
		return
	}
	roll := r.base()
	roll.AddModifier(0, "flanking and turning")
	acc.roll("sideslip", roll)
}

// bogDownModifier returns the modifier for avoiding getting stuck in hex,
// and false when the unit cannot bog down there.
func bogDownModifier(e *unit.Entity, hex *hexgrid.Hex) (int, bool) {
	if lvl := hex.TerrainLevel(hexgrid.TerrainSwamp); lvl > 0 {
		switch lvl {
		case 1:
			return 0, true
		case 2:
			return 1, true
		}
		return 3, true
	}
	if hex.Contains(hexgrid.TerrainMud) && !e.CanFall() && !e.IsInfantry() {
		return 0, true
	}
	if hex.TerrainLevel(hexgrid.TerrainSnow) >= 2 && (e.Mode == unit.ModeWheeled || e.Mode == unit.ModeTracked) {
		return 1, true
	}
	return 0, false
}

func (ev *Evaluator) checkBogDown(r *replay, acc *accumulator) {
	e := r.e
	if r.jumping() || e.Hovers() || e.IsAirborne() || r.step.Elevation != 0 || r.step.PavementStep || !r.hexChanged() {
		return
	}
	mod, ok := bogDownModifier(e, r.curHex)
	if !ok {
		return
	}
	roll := r.base()
	roll.AddModifier(mod, "avoid bogging down")
	acc.roll("bog-down", roll)
}

// ─── Moving too fast ────────────────────────────────────────────────────────

// checkExcessMP compares the MP spent by the end of the path with what the
// unit can spend at standard gravity.
func (ev *Evaluator) checkExcessMP(r *replay, acc *accumulator) {
	e := r.e
	if !r.isLast() || e.IsAirborne() {
		return
	}
	if e.Kind != unit.KindMech && e.Kind != unit.KindTank && e.Kind != unit.KindVTOL {
		return
	}

	mp := r.step.MPUsed
	mt := r.step.MovementType
	bonus := 0
	if r.step.OnlyPavement && e.EligibleForPavementBonus() {
		bonus = 1
	}
	var limit int
	switch {
	case mt.IsWalk() || mt.IsRun():
		limit = e.RunMP
		if r.path.HasActiveMASC() || r.path.HasActiveSupercharger() {
			limit = e.MASCRunMP()
		}
		limit += bonus
	case mt.IsSprint():
		limit = e.SprintLimit() + bonus
	case mt == movepath.MoveJump:
		limit = e.JumpMP
		if ev.env.Gravity > 1 {
			mp = ceilMul(mp, ev.env.Gravity)
		}
	default:
		return
	}
	if mp <= limit {
		return
	}
	roll := r.base()
	roll.AddModifier(0, "used more MPs than possible at 1G")
	acc.roll("excess-mp", roll)
}

func ceilMul(mp int, g float64) int {
	v := float64(mp) * g
	n := int(v)
	if float64(n) < v {
		n++
	}
	return n
}

// ─── Buildings ──────────────────────────────────────────────────────────────

func buildingDistanceModifier(distance int) int {
	switch {
	case distance >= 7:
		return 3
	case distance >= 5:
		return 2
	case distance >= 3:
		return 1
	}
	return 0
}

func buildingClassModifier(c hexgrid.BuildingClass) int {
	switch c {
	case hexgrid.BuildingMedium:
		return 1
	case hexgrid.BuildingHeavy:
		return 2
	case hexgrid.BuildingHardened:
		return 5
	}
	return 0
}

func (ev *Evaluator) checkBuilding(r *replay, acc *accumulator) {
	e := r.e
	if e.IsInfantry() || e.IsAirborne() || !r.hexChanged() || (r.jumping() && !r.isLast()) {
		return
	}

	var pos hexgrid.Coords
	var verb string
	switch {
	case r.curHex != nil && r.curHex.Contains(hexgrid.TerrainBuilding) && r.step.Elevation < r.curHex.BuildingHeight():
		pos, verb = r.step.Position, "entering"
	case !r.jumping() && r.prevHex != nil && r.prevHex.Contains(hexgrid.TerrainBuilding) && r.lastElevation < r.prevHex.BuildingHeight():
		pos, verb = r.lastPos, "leaving"
	default:
		return
	}
	bldg := ev.board.BuildingAt(pos)
	if bldg == nil {
		return
	}
	cf := bldg.CurrentCF(pos)
	if cf <= 0 {
		return
	}

	roll := r.base()
	roll.AddModifier(buildingDistanceModifier(r.step.Distance), fmt.Sprintf("%s %s", verb, bldg.Name))
	roll.AddModifier(buildingClassModifier(bldg.Class), bldg.Class.String()+" building")
	acc.roll("building", roll)
	if e.Tonnage > cf {
		acc.nag("building", "%s (CF %d) may collapse under %d tons", bldg.Name, cf, e.Tonnage)
	}
}

// ─── Swarming infantry, reversing ───────────────────────────────────────────

func (ev *Evaluator) checkSwarm(r *replay, acc *accumulator) {
	if !r.e.Swarmed {
		return
	}
	roll := r.base()
	roll.AddModifier(0, "dislodging swarming infantry")
	acc.roll("swarm", roll)
}

// checkBackwardsElevation warns about backing across a level change the
// compiler flagged. Units climbing onto a bridge deck level with where they
// stood are not warned.
func (ev *Evaluator) checkBackwardsElevation(r *replay, acc *accumulator) {
	e := r.e
	if !r.step.DangerousElevationChange || r.path.IsJumping() || e.JumpBooster || e.Mode == unit.ModeVTOL {
		return
	}
	if r.path.FinalClimbMode() && r.prevHex != nil {
		if deck, ok := r.curHex.BridgeSurface(); ok {
			prevSurface := r.prevHex.Level + r.lastElevation
			if d, ok := r.prevHex.BridgeSurface(); ok {
				prevSurface = d
			}
			if deck == prevSurface {
				return
			}
		}
	}
	acc.nag("backwards-elevation", "%s: moving backwards across an elevation change", r.step.Position)
}
