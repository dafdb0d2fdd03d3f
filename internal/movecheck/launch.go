package movecheck

import (
	"slices"

	"github.com/sc68cal/megamek-sub000/internal/movepath"
)

// ─── Launch bookkeeping ─────────────────────────────────────────────────────

// safeUnitsPerDoor is how many units a bay door launches without penalty.
const safeUnitsPerDoor = 2

// checkLaunch spreads the units leaving each bay across its open doors in
// turn and records the load per door. Undocking uses one collar per entry.
func (ev *Evaluator) checkLaunch(r *replay, acc *accumulator) {
	e := r.e
	if e.Aero == nil || len(r.step.Launched) == 0 {
		return
	}
	bays := make([]int, 0, len(r.step.Launched))
	for bay := range r.step.Launched {
		bays = append(bays, bay)
	}
	slices.Sort(bays)

	for _, bay := range bays {
		units := r.step.Launched[bay]
		doors := 1
		if r.step.Type == movepath.StepLaunch {
			if bay < 0 || bay >= len(e.Aero.Bays) {
				continue
			}
			doors = e.Aero.Bays[bay].Doors
		}
		if doors <= 0 || len(units) == 0 {
			continue
		}
		perDoor := make([]int, doors)
		for i := range units {
			perDoor[i%doors]++
		}
		for door, n := range perDoor {
			if n == 0 {
				continue
			}
			acc.launches = append(acc.launches, DoorLoad{
				Bay:   bay,
				Door:  door,
				Units: n,
				Bonus: max(0, n-safeUnitsPerDoor),
			})
		}
	}
}
