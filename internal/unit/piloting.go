package unit

import (
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/psr"
)

// ─── Piloting target numbers ────────────────────────────────────────────────

// BasePilotingRoll is the crew's piloting skill plus every standing damage
// modifier (gyro, legs, avionics).
func (e *Entity) BasePilotingRoll() *psr.Roll {
	r := psr.New(e.ID, e.Crew.Piloting, "base piloting skill")
	if e.Crew.Dead || e.Crew.Unconscious {
		r.AddModifier(psr.AutomaticFail, "pilot incapacitated")
		return r
	}
	if e.ShutDown {
		r.AddModifier(psr.AutomaticFail, "reactor shutdown")
		return r
	}

	if e.CanFall() {
		gyroLimit := 2
		if e.Damage.HeavyDutyGyro {
			gyroLimit = 3
		}
		switch {
		case e.Damage.GyroHits >= gyroLimit:
			r.AddModifier(psr.AutomaticFail, "gyro destroyed")
			return r
		case e.Damage.GyroHits > 0 && e.Damage.HeavyDutyGyro:
			r.AddModifier(e.Damage.GyroHits, "heavy duty gyro damaged")
		case e.Damage.GyroHits > 0:
			r.AddModifier(3*e.Damage.GyroHits, "gyro damaged")
		}

		legDestroyed := false
		for _, leg := range e.Damage.Legs {
			switch {
			case leg.Destroyed:
				legDestroyed = true
				r.AddModifier(5, "leg destroyed")
			case leg.HipHit:
				r.AddModifier(2, "hip actuator destroyed")
			case leg.ActuatorHits > 0:
				r.AddModifier(leg.ActuatorHits, "leg actuators destroyed")
			}
		}
		if e.Mode == ModeQuad && !legDestroyed {
			r.AddModifier(-2, "quad bonus")
		}
	}

	if e.Aero != nil && e.Aero.AvionicsHits > 0 {
		r.AddModifier(e.Aero.AvionicsHits, "avionics damage")
	}
	return r
}

// HasDamagedGyroOrHip reports damage that makes running risky.
func (e *Entity) HasDamagedGyroOrHip() bool {
	if e.Damage.GyroHits > 0 {
		return true
	}
	for _, leg := range e.Damage.Legs {
		if leg.HipHit {
			return true
		}
	}
	return false
}

// HasDamagedLegs reports any leg damage.
func (e *Entity) HasDamagedLegs() bool {
	for _, leg := range e.Damage.Legs {
		if leg.Destroyed || leg.HipHit || leg.ActuatorHits > 0 {
			return true
		}
	}
	return false
}

// AddTerrainModifiers adds the piloting modifiers for standing in hex.
func (e *Entity) AddTerrainModifiers(r *psr.Roll, hex *hexgrid.Hex) {
	if hex == nil {
		return
	}
	if hex.Contains(hexgrid.TerrainIce) && e.Mode != ModeHover && e.Elevation <= 0 {
		r.AddModifier(4, "ice")
	}
	if !e.Hovers() && e.Elevation <= 0 {
		if hex.Contains(hexgrid.TerrainSwamp) {
			r.AddModifier(1, "swamp")
		}
		if hex.Contains(hexgrid.TerrainMud) {
			r.AddModifier(1, "mud")
		}
	}
	if hex.TerrainLevel(hexgrid.TerrainRubble) >= 2 {
		r.AddModifier(1, "ultra rubble")
	}
	if hex.TerrainLevel(hexgrid.TerrainRough) >= 2 {
		r.AddModifier(1, "ultra rough")
	}
	if hex.TerrainLevel(hexgrid.TerrainSnow) >= 2 {
		r.AddModifier(1, "deep snow")
	}
}
