package movepath

import (
	"math"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// ─── Step compiler ──────────────────────────────────────────────────────────
// Turns bare step types into positioned steps: resulting hex, facing and
// elevation, running MP total, pavement flags and movement classification.

// Terrain is the board surface steps are priced against.
type Terrain interface {
	Bounds
	Get(hexgrid.Coords) *hexgrid.Hex
}

type Compiler struct {
	terrain Terrain
	gravity float64
	rules   game.RulesConfig
}

func NewCompiler(t Terrain, env game.Environment, rules game.RulesConfig) *Compiler {
	return &Compiler{terrain: t, gravity: env.Gravity, rules: rules}
}

// Build compiles a whole path from step types.
func (c *Compiler) Build(e *unit.Entity, types ...StepType) Path {
	p := New(e)
	for _, t := range types {
		p = c.Add(p, t)
	}
	return p
}

// Add compiles one more step of type t onto p.
func (c *Compiler) Add(p Path, t StepType) Path {
	return c.AddStep(p, Step{Type: t})
}

// AddStep compiles s onto p. Only Type, Maneuver and Launched are read from
// s; everything else is derived from the previous step.
func (c *Compiler) AddStep(p Path, s Step) Path {
	e := p.entity
	prev := c.start(p)
	next := Step{
		Type:         s.Type,
		Maneuver:     s.Maneuver,
		Launched:     s.Launched,
		Position:     prev.Position,
		Facing:       prev.Facing,
		Elevation:    prev.Elevation,
		MPUsed:       prev.MPUsed,
		Distance:     prev.Distance,
		Velocity:     prev.Velocity,
		NRolls:       prev.NRolls,
		NDown:        prev.NDown,
		ClimbMode:    prev.ClimbMode,
		OnlyPavement: prev.OnlyPavement,
		PastDanger:   prev.Danger || prev.PastDanger,
	}
	jumping := p.IsJumping() || s.Type == StepStartJump
	aero := e.IsAirborne()
	prone := c.proneBefore(p)
	illegal := prev.MovementType == MoveIllegal

	cost := 0
	switch s.Type {
	case StepTurnLeft:
		next.Facing = hexgrid.TurnLeft(prev.Facing)
		if !jumping {
			cost = 1
		}
	case StepTurnRight:
		next.Facing = hexgrid.TurnRight(prev.Facing)
		if !jumping {
			cost = 1
		}
	case StepForwards, StepBackwards, StepLateralLeft, StepLateralRight,
		StepLateralLeftBackwards, StepLateralRightBackwards:
		next.Position = prev.Position.Translated(s.Type.direction(prev.Facing))
		next.Distance++
		switch {
		case aero:
		case jumping:
			cost = 1
			next.Elevation = c.landingElevation(next.Position)
		default:
			var ok bool
			cost, next.Elevation, ok = c.enterCost(e, prev, next.Position)
			if !ok || (prone && e.CanFall()) {
				illegal = true
			}
		}
		if s.Type.IsBackwards() && !jumping {
			next.DangerousElevationChange = c.absLevel(prev.Position, prev.Elevation) != c.absLevel(next.Position, next.Elevation)
		}
	case StepGoProne:
		cost = 1
	case StepGetUp:
		cost = 2
	case StepCarefulStand:
		cost = e.WalkMP
	case StepClimbModeOn:
		next.ClimbMode = true
	case StepClimbModeOff:
		next.ClimbMode = false
	case StepUp:
		next.Elevation++
		cost = 1
		if aero {
			cost = 2
		}
	case StepDown:
		next.Elevation--
		if aero {
			next.NDown++
		} else {
			cost = 1
		}
	case StepAccelerate:
		next.Velocity++
		cost = 1
	case StepDecelerate:
		if next.Velocity > 0 {
			next.Velocity--
		}
		cost = 1
	case StepHover:
		next.Velocity = 0
		cost = 2
	case StepRoll:
		next.NRolls++
		cost = 1
	case StepManeuver:
		cost = s.Maneuver.Cost(prev.Velocity)
	case StepLand, StepVLand:
		next.Elevation = 0
	}
	next.MPUsed += cost

	next.JustStood = s.Type == StepGetUp || s.Type == StepCarefulStand ||
		(prev.JustStood && next.Position == prev.Position)

	hex := c.terrain.Get(next.Position)
	next.PavementStep = hex != nil && hex.IsPaved() && next.Elevation == 0 && !jumping && !aero
	if s.Type.Translates() {
		next.OnlyPavement = prev.OnlyPavement && next.PavementStep
	}
	if hex != nil && s.Type.Translates() && !jumping && !aero {
		next.Danger = hex.Contains(hexgrid.TerrainIce) || hex.Contains(hexgrid.TerrainRubble) ||
			hex.Contains(hexgrid.TerrainSwamp) || hex.Depth() > 0
	}

	if illegal {
		next.MovementType = MoveIllegal
	} else {
		c.classify(e, jumping, aero, &next)
	}
	return p.Append(next)
}

// start is the state before the next step: the last step, or the entity's
// own position for an empty path.
func (c *Compiler) start(p Path) Step {
	if s, ok := p.Last(); ok {
		return s
	}
	e := p.entity
	s := Step{Position: e.Position, Facing: e.Facing, Elevation: e.Elevation}
	if e.Aero != nil {
		s.Velocity = e.Aero.Velocity
	}
	if hex := c.terrain.Get(e.Position); hex != nil {
		s.OnlyPavement = hex.IsPaved() && e.Elevation == 0
	}
	return s
}

func (c *Compiler) proneBefore(p Path) bool {
	prone := p.entity.Prone
	for _, s := range p.steps {
		switch s.Type {
		case StepGoProne:
			prone = true
		case StepGetUp, StepCarefulStand:
			prone = false
		}
	}
	return prone
}

func (c *Compiler) absLevel(pos hexgrid.Coords, elevation int) int {
	if hex := c.terrain.Get(pos); hex != nil {
		return hex.Level + elevation
	}
	return elevation
}

// surfaceLevel ignores submersion: wading in and out of water is priced by
// depth, not by level change.
func (c *Compiler) surfaceLevel(pos hexgrid.Coords, elevation int) int {
	level := 0
	if hex := c.terrain.Get(pos); hex != nil {
		level = hex.Level
	}
	return surface(level, elevation)
}

func surface(level, elevation int) int {
	if elevation > 0 {
		return level + elevation
	}
	return level
}

func (c *Compiler) landingElevation(pos hexgrid.Coords) int {
	hex := c.terrain.Get(pos)
	if hex == nil {
		return 0
	}
	if deck, ok := hex.BridgeSurface(); ok {
		return deck - hex.Level
	}
	return 0
}

// enterCost prices moving into to. It returns the MP cost, the elevation
// the unit ends at and false when the move cannot be made at all.
func (c *Compiler) enterCost(e *unit.Entity, from Step, to hexgrid.Coords) (int, int, bool) {
	hex := c.terrain.Get(to)
	if hex == nil {
		return 1, 0, true
	}
	if e.Mode == unit.ModeVTOL && from.Elevation > 0 {
		return 1, from.Elevation, true
	}

	cost := 1
	elev := 0
	depth := hex.Depth()
	deck, onBridge := hex.BridgeSurface()
	onBridge = onBridge && from.ClimbMode

	switch {
	case onBridge:
		elev = deck - hex.Level
	case hex.IsPaved():
	default:
		if depth > 0 && !hex.Contains(hexgrid.TerrainIce) {
			switch {
			case e.Hovers() || e.Mode == unit.ModeNaval:
			case e.CanFall() || e.IsInfantry():
				elev = -depth
				if depth == 1 {
					cost++
				} else {
					cost += 3
				}
			default:
				return cost, 0, false
			}
		}
		if lvl := hex.TerrainLevel(hexgrid.TerrainWoods); lvl > 0 {
			cost += lvl
		}
		if lvl := hex.TerrainLevel(hexgrid.TerrainJungle); lvl > 0 {
			cost += lvl + 1
		}
		cost += hex.TerrainLevel(hexgrid.TerrainRough)
		cost += hex.TerrainLevel(hexgrid.TerrainRubble)
		if !e.Hovers() && (hex.Contains(hexgrid.TerrainSwamp) || hex.Contains(hexgrid.TerrainMud)) {
			cost++
		}
		if hex.TerrainLevel(hexgrid.TerrainSnow) >= 2 {
			cost++
		}
		if hex.Contains(hexgrid.TerrainBuilding) {
			cost += hex.TerrainLevel(hexgrid.TerrainBuilding)
		}
	}

	delta := surface(hex.Level, elev) - c.surfaceLevel(from.Position, from.Elevation)
	switch {
	case e.CanFall():
		if delta > 2 || (delta < -2 && !c.rules.Leaping) {
			return cost, elev, false
		}
		cost += abs(delta)
	default:
		if abs(delta) > 1 {
			return cost, elev, false
		}
		if delta > 0 {
			cost += 2 * delta
		} else {
			cost -= delta
		}
	}
	return cost, elev, true
}

// classify sets the movement type from the running MP total.
func (c *Compiler) classify(e *unit.Entity, jumping, aero bool, s *Step) {
	mp := s.MPUsed
	switch {
	case aero:
		safe := e.Aero.SafeThrust
		switch {
		case mp <= safe:
			s.MovementType = MoveSafeThrust
		case mp <= (safe*3+1)/2:
			s.MovementType = MoveOverThrust
		default:
			s.MovementType = MoveIllegal
		}
		return
	case jumping:
		if mp <= c.atGravity(e.JumpMP) && e.JumpMP > 0 {
			s.MovementType = MoveJump
		} else {
			s.MovementType = MoveIllegal
		}
		return
	case mp == 0:
		s.MovementType = MoveNone
		return
	}

	bonus := 0
	if s.OnlyPavement && e.EligibleForPavementBonus() {
		bonus = 1
	}
	vtol := e.Mode == unit.ModeVTOL
	switch {
	case mp <= c.atGravity(e.WalkMP)+bonus:
		s.MovementType = pick(vtol, MoveVTOLWalk, MoveWalk)
	case mp <= c.atGravity(e.RunMP)+bonus:
		s.MovementType = pick(vtol, MoveVTOLRun, MoveRun)
	case (e.MASC || e.Supercharger) && mp <= c.atGravity(e.MASCRunMP())+bonus:
		s.MovementType = pick(vtol, MoveVTOLRun, MoveRun)
		if e.MASC {
			s.UsesMASC = true
		} else {
			s.UsesSupercharger = true
		}
	case c.rules.Sprint && mp <= c.atGravity(e.SprintLimit())+bonus:
		s.MovementType = pick(vtol, MoveVTOLSprint, MoveSprint)
	default:
		s.MovementType = MoveIllegal
	}
}

// atGravity scales a 1G MP rating to the local gravity.
func (c *Compiler) atGravity(mp int) int {
	if c.gravity <= 0 {
		return mp
	}
	return int(math.Floor(float64(mp) / c.gravity))
}

func pick(cond bool, a, b MovementType) MovementType {
	if cond {
		return a
	}
	return b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
