// Package unit holds the read-only snapshot of a unit that movement checks
// inspect: capabilities, damage, crew and aerospace state.
package unit

import (
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
)

// ─── Unit categories ────────────────────────────────────────────────────────

type Kind int

const (
	KindMech Kind = iota
	KindProtoMech
	KindTank
	KindVTOL
	KindInfantry
	KindBattleArmor
	KindFighter
	KindSmallCraft
	KindDropShip
)

var kindNames = map[Kind]string{
	KindMech:        "mech",
	KindProtoMech:   "protomech",
	KindTank:        "tank",
	KindVTOL:        "vtol",
	KindInfantry:    "infantry",
	KindBattleArmor: "battle_armor",
	KindFighter:     "fighter",
	KindSmallCraft:  "small_craft",
	KindDropShip:    "dropship",
}

func (k Kind) String() string { return kindNames[k] }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown unit kind %q", string(text))
	}
	*k = v
	return nil
}

// ParseKind maps a name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, n := range kindNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// MoveMode is the motive system.
type MoveMode int

const (
	ModeBiped MoveMode = iota
	ModeQuad
	ModeTracked
	ModeWheeled
	ModeHover
	ModeVTOL
	ModeNaval
	ModeWiGE
	ModeLeg
	ModeAerodyne
	ModeSpheroid
)

var modeNames = map[MoveMode]string{
	ModeBiped:    "biped",
	ModeQuad:     "quad",
	ModeTracked:  "tracked",
	ModeWheeled:  "wheeled",
	ModeHover:    "hover",
	ModeVTOL:     "vtol",
	ModeNaval:    "naval",
	ModeWiGE:     "wige",
	ModeLeg:      "leg",
	ModeAerodyne: "aerodyne",
	ModeSpheroid: "spheroid",
}

func (m MoveMode) String() string { return modeNames[m] }

func (m MoveMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MoveMode) UnmarshalText(text []byte) error {
	v, ok := ParseMoveMode(string(text))
	if !ok {
		return fmt.Errorf("unknown movement mode %q", string(text))
	}
	*m = v
	return nil
}

// ParseMoveMode maps a name back to a MoveMode.
func ParseMoveMode(s string) (MoveMode, bool) {
	for m, n := range modeNames {
		if n == s {
			return m, true
		}
	}
	return 0, false
}

// ─── Entity ─────────────────────────────────────────────────────────────────

type Crew struct {
	Piloting    int  `json:"piloting"`
	Hits        int  `json:"hits"`
	Unconscious bool `json:"unconscious"`
	Dead        bool `json:"dead"`
}

type Leg struct {
	Destroyed    bool `json:"destroyed"`
	HipHit       bool `json:"hip_hit"`
	ActuatorHits int  `json:"actuator_hits"`
}

type Damage struct {
	GyroHits      int   `json:"gyro_hits"`
	HeavyDutyGyro bool  `json:"heavy_duty_gyro"`
	Legs          []Leg `json:"legs"`
	HeadIS        int   `json:"head_is"`
	HeadMaxIS     int   `json:"head_max_is"`
}

// HeadDamage is the internal structure missing from the head.
func (d Damage) HeadDamage() int {
	if d.HeadMaxIS <= 0 {
		return 0
	}
	return d.HeadMaxIS - d.HeadIS
}

// Bay is a transport bay that can launch fighters through its doors.
type Bay struct {
	Doors int `json:"doors"`
}

// Aero is the aerospace-only state.
type Aero struct {
	Airborne     bool   `json:"airborne"`
	Spaceborne   bool   `json:"spaceborne"`
	Velocity     int    `json:"velocity"`
	Vectors      [6]int `json:"vectors"`
	SI           int    `json:"si"`
	SafeThrust   int    `json:"safe_thrust"`
	AvionicsHits int    `json:"avionics_hits"`
	GearHit      bool   `json:"gear_hit"`
	OutOfControl bool   `json:"out_of_control"`
	VSTOL        bool   `json:"vstol"`
	Bays         []Bay  `json:"bays"`
	Collars      int    `json:"docking_collars"`
}

// Entity is a snapshot of one unit for the duration of a movement check.
type Entity struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Kind      Kind           `json:"kind"`
	Mode      MoveMode       `json:"mode"`
	Tonnage   int            `json:"tonnage"`
	Position  hexgrid.Coords `json:"position"`
	Facing    int            `json:"facing"`
	Elevation int            `json:"elevation"`

	Crew   Crew   `json:"crew"`
	Damage Damage `json:"damage"`

	Prone    bool `json:"prone"`
	ShutDown bool `json:"shut_down"`
	Swarmed  bool `json:"swarmed"`

	WalkMP   int `json:"walk_mp"`
	RunMP    int `json:"run_mp"`
	JumpMP   int `json:"jump_mp"`
	SprintMP int `json:"sprint_mp"`

	MASC              bool `json:"masc"`
	Supercharger      bool `json:"supercharger"`
	JumpBooster       bool `json:"jump_booster"`
	PrototypeJumpJets bool `json:"prototype_jump_jets"`

	Aero *Aero `json:"aero,omitempty"`
}

func (e *Entity) IsMech() bool { return e.Kind == KindMech }

// CanFall reports units that fall over on a failed piloting roll.
func (e *Entity) CanFall() bool {
	return e.Kind == KindMech || e.Kind == KindProtoMech
}

func (e *Entity) IsInfantry() bool {
	return e.Kind == KindInfantry || e.Kind == KindBattleArmor
}

func (e *Entity) IsAero() bool { return e.Aero != nil }

// IsAirborne reports an aerospace unit off the ground.
func (e *Entity) IsAirborne() bool {
	return e.Aero != nil && (e.Aero.Airborne || e.Aero.Spaceborne)
}

func (e *Entity) IsSpaceborne() bool {
	return e.Aero != nil && e.Aero.Spaceborne
}

// IsAirborneVTOLOrWiGE reports a VTOL or WiGE flying above the ground.
func (e *Entity) IsAirborneVTOLOrWiGE() bool {
	return (e.Mode == ModeVTOL || e.Mode == ModeWiGE) && e.Elevation > 0
}

// Hovers reports units that skim over water and swamp.
func (e *Entity) Hovers() bool {
	return e.Mode == ModeHover || e.Mode == ModeWiGE || e.Mode == ModeVTOL
}

// CanVerticalLand reports VSTOL fighters and spheroid craft.
func (e *Entity) CanVerticalLand() bool {
	return e.Mode == ModeSpheroid || (e.Aero != nil && e.Aero.VSTOL)
}

// EligibleForPavementBonus reports units that gain an MP on an all-pavement move.
func (e *Entity) EligibleForPavementBonus() bool {
	switch e.Kind {
	case KindMech:
		return true
	case KindTank:
		return e.Mode == ModeWheeled || e.Mode == ModeTracked
	}
	return false
}

// MASCRunMP is the run rating with MASC or a supercharger engaged.
func (e *Entity) MASCRunMP() int {
	return e.WalkMP * 2
}

// SprintLimit is the sprint rating, derived from walk when not set.
func (e *Entity) SprintLimit() int {
	if e.SprintMP > 0 {
		return e.SprintMP
	}
	return e.WalkMP * 2
}

// LandingLength is the number of hexes a horizontal landing rolls out over.
func (e *Entity) LandingLength() int {
	switch e.Kind {
	case KindSmallCraft, KindDropShip:
		return 15
	}
	return 8
}

// Clone returns a copy that shares nothing with e.
func (e *Entity) Clone() *Entity {
	c := *e
	c.Damage.Legs = append([]Leg(nil), e.Damage.Legs...)
	if e.Aero != nil {
		a := *e.Aero
		a.Bays = append([]Bay(nil), e.Aero.Bays...)
		c.Aero = &a
	}
	return &c
}
