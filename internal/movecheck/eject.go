package movecheck

import (
	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/psr"
)

// ─── Ejection ───────────────────────────────────────────────────────────────

// ejectLanding is the modifier for where the crew comes down.
func ejectLanding(hex *hexgrid.Hex) (int, string) {
	if hex == nil {
		return -2, "landing off the board"
	}
	woods := hex.TerrainLevel(hexgrid.TerrainWoods)
	jungle := hex.TerrainLevel(hexgrid.TerrainJungle)
	switch {
	case hex.Depth() > 0 && !hex.Contains(hexgrid.TerrainIce):
		return -1, "landing in water"
	case hex.Contains(hexgrid.TerrainRough):
		return 0, "landing in rough"
	case hex.Contains(hexgrid.TerrainRubble):
		return 0, "landing in rubble"
	case woods == 1:
		return 2, "landing in light woods"
	case woods == 2:
		return 3, "landing in heavy woods"
	case woods >= 3:
		return 4, "landing in ultra heavy woods"
	case jungle == 1:
		return 3, "landing in light jungle"
	case jungle == 2:
		return 5, "landing in heavy jungle"
	case jungle >= 3:
		return 7, "landing in ultra heavy jungle"
	case hex.Contains(hexgrid.TerrainBuilding):
		return hex.BuildingHeight(), "landing in a building"
	}
	return -2, "landing in clear terrain"
}

func (ev *Evaluator) checkEject(r *replay, acc *accumulator) {
	e := r.e
	if !e.IsMech() && !e.IsAero() {
		return
	}
	roll := psr.New(e.ID, e.Crew.Piloting, "ejecting")
	if e.Prone {
		roll.AddModifier(5, "Mech is prone")
	}
	if e.Crew.Unconscious {
		roll.AddModifier(3, "pilot unconscious")
	}
	if dmg := e.Damage.HeadDamage(); dmg > 0 {
		roll.AddModifier(min(dmg, 2), "head damage")
	}
	mod, reason := ejectLanding(r.curHex)
	roll.AddModifier(mod, reason)

	if !e.IsSpaceborne() {
		addEjectConditions(roll, ev.env)
	}
	acc.roll("eject", roll)
}

func addEjectConditions(roll *psr.Roll, env game.Environment) {
	switch g := env.Gravity; {
	case g == 0:
		roll.AddModifier(3, "zero gravity")
	case g < 0.8:
		roll.AddModifier(2, "low gravity")
	case g > 1.2:
		roll.AddModifier(2, "high gravity")
	}
	switch env.Atmosphere {
	case game.AtmosphereVacuum:
		roll.AddModifier(3, "vacuum")
	case game.AtmosphereVeryHigh:
		roll.AddModifier(2, "very high atmospheric pressure")
	case game.AtmosphereTrace:
		roll.AddModifier(2, "trace atmosphere")
	}
	switch {
	case env.ReallyBadWeather():
		roll.AddModifier(3, "really bad weather")
	case env.BadWeather():
		roll.AddModifier(2, "bad weather")
	}
}
