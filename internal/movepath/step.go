// Package movepath models one turn of proposed movement: an ordered list of
// steps, each carrying the position and bookkeeping it results in.
package movepath

import (
	"errors"
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
)

// ErrUnknownStep is returned when a step name cannot be parsed.
var ErrUnknownStep = errors.New("unknown step type")

// ─── Step types ─────────────────────────────────────────────────────────────

type StepType int

const (
	StepForwards StepType = iota
	StepBackwards
	StepTurnLeft
	StepTurnRight
	StepLateralLeft
	StepLateralRight
	StepLateralLeftBackwards
	StepLateralRightBackwards
	StepStartJump
	StepGoProne
	StepGetUp
	StepCarefulStand
	StepClimbModeOn
	StepClimbModeOff
	StepUp
	StepDown
	StepLoad
	StepUnload
	StepEject
	StepLaunch
	StepUndock
	StepRecover
	StepVTakeoff
	StepLand
	StepVLand
	StepRam
	StepReturn
	StepOff
	StepFlee
	StepRoll
	StepManeuver
	StepHover
	StepAccelerate
	StepDecelerate
)

var stepNames = [...]string{
	StepForwards:              "forwards",
	StepBackwards:             "backwards",
	StepTurnLeft:              "turn_left",
	StepTurnRight:             "turn_right",
	StepLateralLeft:           "lateral_left",
	StepLateralRight:          "lateral_right",
	StepLateralLeftBackwards:  "lateral_left_backwards",
	StepLateralRightBackwards: "lateral_right_backwards",
	StepStartJump:             "start_jump",
	StepGoProne:               "go_prone",
	StepGetUp:                 "get_up",
	StepCarefulStand:          "careful_stand",
	StepClimbModeOn:           "climb_mode_on",
	StepClimbModeOff:          "climb_mode_off",
	StepUp:                    "up",
	StepDown:                  "down",
	StepLoad:                  "load",
	StepUnload:                "unload",
	StepEject:                 "eject",
	StepLaunch:                "launch",
	StepUndock:                "undock",
	StepRecover:               "recover",
	StepVTakeoff:              "vertical_takeoff",
	StepLand:                  "land",
	StepVLand:                 "vertical_land",
	StepRam:                   "ram",
	StepReturn:                "return",
	StepOff:                   "off",
	StepFlee:                  "flee",
	StepRoll:                  "roll",
	StepManeuver:              "maneuver",
	StepHover:                 "hover",
	StepAccelerate:            "accelerate",
	StepDecelerate:            "decelerate",
}

func (t StepType) String() string {
	if int(t) < 0 || int(t) >= len(stepNames) {
		return fmt.Sprintf("step(%d)", int(t))
	}
	return stepNames[t]
}

func (t StepType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *StepType) UnmarshalText(text []byte) error {
	v, err := ParseStepType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseStepType maps a step name to its type.
func ParseStepType(s string) (StepType, error) {
	for i, n := range stepNames {
		if n == s {
			return StepType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Translates reports step types that move the unit into another hex.
func (t StepType) Translates() bool {
	switch t {
	case StepForwards, StepBackwards, StepLateralLeft, StepLateralRight,
		StepLateralLeftBackwards, StepLateralRightBackwards:
		return true
	}
	return false
}

// IsBackwards reports the reversing step types.
func (t StepType) IsBackwards() bool {
	switch t {
	case StepBackwards, StepLateralLeftBackwards, StepLateralRightBackwards:
		return true
	}
	return false
}

// LeavesMap reports the terminal steps that take a unit off the board.
func (t StepType) LeavesMap() bool {
	return t == StepReturn || t == StepOff || t == StepFlee
}

// direction is the hexside a translating step moves through.
func (t StepType) direction(facing int) int {
	switch t {
	case StepBackwards:
		return facing + 3
	case StepLateralRight:
		return facing + 1
	case StepLateralLeft:
		return facing + 5
	case StepLateralRightBackwards:
		return facing + 2
	case StepLateralLeftBackwards:
		return facing + 4
	}
	return facing
}

// ─── Movement types ─────────────────────────────────────────────────────────

type MovementType int

const (
	MoveNone MovementType = iota
	MoveWalk
	MoveRun
	MoveJump
	MoveSprint
	MoveVTOLWalk
	MoveVTOLRun
	MoveVTOLSprint
	MoveSafeThrust
	MoveOverThrust
	MoveIllegal
)

var movementNames = [...]string{
	MoveNone:       "none",
	MoveWalk:       "walk",
	MoveRun:        "run",
	MoveJump:       "jump",
	MoveSprint:     "sprint",
	MoveVTOLWalk:   "vtol_walk",
	MoveVTOLRun:    "vtol_run",
	MoveVTOLSprint: "vtol_sprint",
	MoveSafeThrust: "safe_thrust",
	MoveOverThrust: "over_thrust",
	MoveIllegal:    "illegal",
}

func (m MovementType) String() string {
	if int(m) < 0 || int(m) >= len(movementNames) {
		return fmt.Sprintf("movement(%d)", int(m))
	}
	return movementNames[m]
}

func (m MovementType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MovementType) UnmarshalText(text []byte) error {
	for i, n := range movementNames {
		if n == string(text) {
			*m = MovementType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown movement type %q", string(text))
}

// IsRun covers running and flank speed for VTOLs.
func (m MovementType) IsRun() bool { return m == MoveRun || m == MoveVTOLRun }

// IsSprint covers sprinting for every motive type.
func (m MovementType) IsSprint() bool { return m == MoveSprint || m == MoveVTOLSprint }

// IsWalk covers cruising for every motive type.
func (m MovementType) IsWalk() bool { return m == MoveWalk || m == MoveVTOLWalk }

// ─── Maneuvers ──────────────────────────────────────────────────────────────

// Maneuver is an aerospace control maneuver.
type Maneuver int

const (
	ManeuverNone Maneuver = iota
	ManeuverLoop
	ManeuverImmelman
	ManeuverSplitS
	ManeuverHammerhead
	ManeuverHalfRoll
	ManeuverBarrelRoll
	ManeuverSideSlipLeft
	ManeuverSideSlipRight
	ManeuverViff
)

var maneuverNames = [...]string{
	ManeuverNone:          "none",
	ManeuverLoop:          "loop",
	ManeuverImmelman:      "immelman",
	ManeuverSplitS:        "split_s",
	ManeuverHammerhead:    "hammerhead",
	ManeuverHalfRoll:      "half_roll",
	ManeuverBarrelRoll:    "barrel_roll",
	ManeuverSideSlipLeft:  "side_slip_left",
	ManeuverSideSlipRight: "side_slip_right",
	ManeuverViff:          "viff",
}

func (m Maneuver) String() string {
	if int(m) < 0 || int(m) >= len(maneuverNames) {
		return fmt.Sprintf("maneuver(%d)", int(m))
	}
	return maneuverNames[m]
}

func (m Maneuver) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Maneuver) UnmarshalText(text []byte) error {
	for i, n := range maneuverNames {
		if n == string(text) {
			*m = Maneuver(i)
			return nil
		}
	}
	return fmt.Errorf("unknown maneuver %q", string(text))
}

// Cost is the thrust a maneuver spends at the given velocity.
func (m Maneuver) Cost(velocity int) int {
	switch m {
	case ManeuverLoop, ManeuverImmelman:
		return 4
	case ManeuverSplitS, ManeuverBarrelRoll:
		return 2
	case ManeuverHammerhead:
		return velocity
	case ManeuverHalfRoll, ManeuverSideSlipLeft, ManeuverSideSlipRight:
		return 1
	case ManeuverViff:
		return velocity + 2
	}
	return 0
}

// Modifier is the control roll modifier for the maneuver.
func (m Maneuver) Modifier(vstol bool) int {
	switch m {
	case ManeuverLoop, ManeuverImmelman, ManeuverBarrelRoll:
		return 1
	case ManeuverSplitS, ManeuverViff:
		return 2
	case ManeuverHammerhead:
		return 3
	case ManeuverHalfRoll:
		return -1
	case ManeuverSideSlipLeft, ManeuverSideSlipRight:
		if vstol {
			return -1
		}
	}
	return 0
}

// ─── Step ───────────────────────────────────────────────────────────────────

// Step is one action and the state the unit is in after it. Elevation is
// relative to the hex level (negative when submerged). MPUsed and Distance
// are running totals for the path.
type Step struct {
	Type         StepType       `json:"type"`
	Position     hexgrid.Coords `json:"position"`
	Facing       int            `json:"facing"`
	Elevation    int            `json:"elevation"`
	MovementType MovementType   `json:"movement_type"`
	MPUsed       int            `json:"mp_used"`
	Distance     int            `json:"distance"`

	OnlyPavement             bool `json:"only_pavement,omitempty"`
	PavementStep             bool `json:"pavement_step,omitempty"`
	Danger                   bool `json:"danger,omitempty"`
	PastDanger               bool `json:"past_danger,omitempty"`
	UsesMASC                 bool `json:"uses_masc,omitempty"`
	UsesSupercharger         bool `json:"uses_supercharger,omitempty"`
	DangerousElevationChange bool `json:"dangerous_elevation_change,omitempty"`
	JustStood                bool `json:"just_stood,omitempty"`
	ClimbMode                bool `json:"climb_mode,omitempty"`

	// aerospace
	Velocity int           `json:"velocity,omitempty"`
	NRolls   int           `json:"n_rolls,omitempty"`
	NDown    int           `json:"n_down,omitempty"`
	Maneuver Maneuver      `json:"maneuver,omitempty"`
	Launched map[int][]int `json:"launched,omitempty"`
}
