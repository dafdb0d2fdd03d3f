// Package movecheck replays a proposed move step by step and reports the
// piloting skill checks and warnings it would trigger. It never rejects a
// move; the caller decides what to do with the findings.
package movecheck

import (
	"slices"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/psr"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// Board is the terrain the checks read.
type Board interface {
	Get(hexgrid.Coords) *hexgrid.Hex
	Contains(hexgrid.Coords) bool
	BuildingAt(hexgrid.Coords) *hexgrid.Building
	InSpace() bool
	OnGround() bool
}

// Evaluator checks movement paths against one board under fixed conditions
// and rules. It holds no per-path state and may be shared between
// goroutines as long as the board is not mutated.
type Evaluator struct {
	board Board
	env   game.Environment
	rules game.RulesConfig
}

func NewEvaluator(board Board, env game.Environment, rules game.RulesConfig) *Evaluator {
	return &Evaluator{board: board, env: env, rules: rules}
}

// ─── Replay state ───────────────────────────────────────────────────────────

// replay is the running state threaded through the steps of one path.
type replay struct {
	e       *unit.Entity
	path    movepath.Path
	overall movepath.MovementType

	index  int
	step   movepath.Step
	prev   *movepath.Step
	curHex *hexgrid.Hex

	prevHex       *hexgrid.Hex
	lastPos       hexgrid.Coords
	lastElevation int
	prevFacing    int
}

func (r *replay) hexChanged() bool { return r.step.Position != r.lastPos }

func (r *replay) isLast() bool { return r.index == r.path.Len()-1 }

func (r *replay) jumping() bool { return r.overall == movepath.MoveJump }

// base is the entity's piloting roll before any movement modifiers.
func (r *replay) base() *psr.Roll { return r.e.BasePilotingRoll() }

// advance moves the replay past the current step.
func (r *replay) advance() {
	if r.step.Position != r.lastPos {
		r.prevFacing = r.step.Facing
	}
	r.lastPos = r.step.Position
	r.lastElevation = r.step.Elevation
	r.prevHex = r.curHex
	s := r.step
	r.prev = &s
}

// ─── Rule table ─────────────────────────────────────────────────────────────

// rule is one hazard check. A rule with step types only runs on those steps;
// a rule that needs the hex is skipped when the step is off the board. A
// modifier rule adjusts the step's rolls and runs once all others have.
type rule struct {
	name     string
	steps    []movepath.StepType
	needsHex bool
	modifier bool
	check    func(ev *Evaluator, r *replay, acc *accumulator)
}

// stepRules run in this order on every step.
var stepRules = []rule{
	{name: "aero-control", check: (*Evaluator).checkAeroControl},
	{name: "get-up", steps: []movepath.StepType{movepath.StepGetUp, movepath.StepCarefulStand}, check: (*Evaluator).checkGetUp},
	{name: "takeoff-landing", steps: []movepath.StepType{movepath.StepVTakeoff, movepath.StepLand, movepath.StepVLand}, needsHex: true, check: (*Evaluator).checkTakeoffLanding},
	{name: "leap", needsHex: true, check: (*Evaluator).checkLeap},
	{name: "skid", needsHex: true, check: (*Evaluator).checkSkid},
	{name: "rubble", needsHex: true, check: (*Evaluator).checkRubble},
	{name: "light", modifier: true, check: (*Evaluator).checkLight},
	{name: "reckless", needsHex: true, check: (*Evaluator).checkReckless},
	{name: "ice", needsHex: true, check: (*Evaluator).checkIce},
	{name: "water", needsHex: true, check: (*Evaluator).checkWater},
	{name: "fire", needsHex: true, check: (*Evaluator).checkFire},
	{name: "magma", needsHex: true, check: (*Evaluator).checkMagma},
	{name: "sideslip", check: (*Evaluator).checkSideslip},
	{name: "bog-down", needsHex: true, check: (*Evaluator).checkBogDown},
	{name: "excess-mp", check: (*Evaluator).checkExcessMP},
	{name: "building", check: (*Evaluator).checkBuilding},
	{name: "swarm", steps: []movepath.StepType{movepath.StepGoProne}, check: (*Evaluator).checkSwarm},
	{name: "backwards-elevation", steps: []movepath.StepType{movepath.StepBackwards, movepath.StepLateralLeftBackwards, movepath.StepLateralRightBackwards}, needsHex: true, check: (*Evaluator).checkBackwardsElevation},
	{name: "launch", steps: []movepath.StepType{movepath.StepLaunch, movepath.StepUndock}, check: (*Evaluator).checkLaunch},
	{name: "eject", steps: []movepath.StepType{movepath.StepEject}, check: (*Evaluator).checkEject},
}

// ─── Evaluation ─────────────────────────────────────────────────────────────

// Evaluate clips p to its legal prefix and replays it through every check.
// The input path is not modified; Report.Path holds the clipped path.
func (ev *Evaluator) Evaluate(p movepath.Path) Report {
	e := p.Entity()
	if e == nil {
		panic("movecheck: path has no entity")
	}
	clipped := p.Clip(ev.board)
	acc := &accumulator{}
	if clipped.Len() == 0 {
		return acc.report(clipped)
	}

	r := &replay{
		e:             e,
		path:          clipped,
		overall:       clipped.LastStepMovementType(),
		prevHex:       ev.board.Get(e.Position),
		lastPos:       e.Position,
		lastElevation: e.Elevation,
		prevFacing:    e.Facing,
	}
	for i := 0; i < clipped.Len(); i++ {
		step := clipped.Step(i)
		if step.MovementType == movepath.MoveIllegal {
			break
		}
		r.index = i
		r.step = step
		r.curHex = ev.board.Get(step.Position)
		acc.beginStep(i)
		ev.runRules(r, acc, false)
		ev.runRules(r, acc, true)
		r.advance()
	}

	acc.beginStep(EndOfPath)
	ev.checkEndOfPath(clipped, r, acc)
	return acc.report(clipped)
}

// runRules applies the table's hazard or modifier rules to the current step.
func (ev *Evaluator) runRules(r *replay, acc *accumulator, modifiers bool) {
	for _, rl := range stepRules {
		if rl.modifier != modifiers {
			continue
		}
		if rl.steps != nil && !slices.Contains(rl.steps, r.step.Type) {
			continue
		}
		if rl.needsHex && r.curHex == nil {
			continue
		}
		rl.check(ev, r, acc)
	}
}

// PSRList returns only the pending rolls for p.
func (ev *Evaluator) PSRList(p movepath.Path) []*psr.Roll {
	return ev.Evaluate(p).Rolls()
}

// PSRCheck returns the findings for p as newline separated text.
func (ev *Evaluator) PSRCheck(p movepath.Path) string {
	return ev.Evaluate(p).String()
}
