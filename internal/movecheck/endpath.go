package movecheck

import (
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
)

// ─── End of path ────────────────────────────────────────────────────────────

// checkEndOfPath looks at the path as a whole once every step is replayed.
func (ev *Evaluator) checkEndOfPath(p movepath.Path, r *replay, acc *accumulator) {
	e := r.e
	overall := r.overall
	last, _ := p.Last()
	lastHex := ev.board.Get(last.Position)

	if (overall.IsRun() || overall.IsSprint()) && e.CanFall() && e.HasDamagedGyroOrHip() {
		roll := r.base()
		roll.AddModifier(0, "running with damaged hip actuator or gyro")
		acc.roll("running-damaged", roll)
	}
	if overall.IsSprint() && p.HasActiveMASC() {
		roll := r.base()
		roll.AddModifier(0, "sprinting with active MASC")
		acc.roll("sprint-masc", roll)
	}
	if overall.IsSprint() && p.HasActiveSupercharger() {
		roll := r.base()
		roll.AddModifier(0, "sprinting with active supercharger")
		acc.roll("sprint-supercharger", roll)
	}

	if overall == movepath.MoveJump {
		ev.checkJumpLanding(r, lastHex, last, acc)
	}

	if e.IsAirborne() && !p.Contains(movepath.StepLand) && !p.Contains(movepath.StepVLand) {
		ev.checkAeroEndOfPath(p, r, acc)
	}
}

func (ev *Evaluator) checkJumpLanding(r *replay, lastHex *hexgrid.Hex, last movepath.Step, acc *accumulator) {
	e := r.e
	if e.CanFall() && (e.Damage.GyroHits > 0 || e.HasDamagedLegs()) {
		roll := r.base()
		roll.AddModifier(0, "landing with damaged leg actuator or gyro")
		acc.roll("jump-damaged", roll)
	}
	if e.PrototypeJumpJets {
		roll := r.base()
		roll.AddModifier(3, "landing with prototype jump jets")
		acc.roll("jump-prototype", roll)
	}
	if lastHex == nil {
		return
	}
	if ev.rules.JumpHeavyWoodsPSR &&
		(lastHex.TerrainLevel(hexgrid.TerrainWoods) >= 2 || lastHex.TerrainLevel(hexgrid.TerrainJungle) >= 2) {
		roll := r.base()
		roll.AddModifier(0, "jumping into heavy woods")
		acc.roll("jump-heavy-woods", roll)
	}

	depth := lastHex.Depth()
	_, bridge := lastHex.BridgeSurface()
	onBridge := bridge && last.Elevation > 0
	if depth > 0 && !lastHex.Contains(hexgrid.TerrainIce) && !e.Hovers() && !onBridge && e.CanFall() {
		roll := r.base()
		roll.AddModifier(waterModifier(depth), fmt.Sprintf("entering Depth %d Water", depth))
		acc.roll("jump-water", roll)
	}
}

func (ev *Evaluator) checkAeroEndOfPath(p movepath.Path, r *replay, acc *accumulator) {
	e := r.e
	space := ev.board.InSpace() || e.IsSpaceborne()

	if p.MPUsed() > e.Aero.SI {
		roll := r.base()
		roll.AddModifier(0, "thrust spent during turn exceeds SI")
		acc.roll("aero-si", roll)
	}
	if !space && p.FinalVelocity() > 2*e.Aero.SafeThrust {
		roll := r.base()
		roll.AddModifier(0, "velocity greater than 2x safe thrust")
		acc.roll("aero-velocity", roll)
	}
	if n := p.FinalNDown(); n > 2 {
		roll := r.base()
		roll.AddModifier(n, "lost more than two altitudes")
		acc.roll("aero-altitude", roll)
	}
	leaving := p.Contains(movepath.StepReturn) || p.Contains(movepath.StepOff) || p.Contains(movepath.StepFlee)
	if !space && p.FinalVelocity() == 0 && !p.Contains(movepath.StepHover) && !leaving && !e.CanVerticalLand() {
		roll := r.base()
		roll.AddModifier(0, "stalled out")
		acc.roll("aero-stall", roll)
	}
	if p.Contains(movepath.StepHover) {
		roll := r.base()
		roll.AddModifier(0, "hovering")
		acc.roll("aero-hover", roll)
	}
}
