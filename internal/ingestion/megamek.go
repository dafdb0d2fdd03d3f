package ingestion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// ErrNoChassis is returned for files without a chassis line.
var ErrNoChassis = errors.New("missing chassis field")

// headInternal is the internal structure of every mech head.
const headInternal = 3

// Profile holds the movement-relevant data of a MegaMek .mtf file.
type Profile struct {
	Chassis  string `json:"chassis"`
	Model    string `json:"model"`
	MulID    int    `json:"mul_id,omitempty"`
	Config   string `json:"config"`
	TechBase string `json:"tech_base"`

	Mass         int    `json:"mass"`
	EngineRating int    `json:"engine_rating"`
	EngineType   string `json:"engine_type"`
	Gyro         string `json:"gyro"`
	Cockpit      string `json:"cockpit"`
	Myomer       string `json:"myomer"`

	WalkMP int `json:"walk_mp"`
	JumpMP int `json:"jump_mp"`

	Quirks []string `json:"quirks,omitempty"`

	// Per-location equipment slots
	LocationEquipment map[string][]string `json:"equipment"`
}

// ParseMTF reads a MegaMek .mtf file.
func ParseMTF(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtf: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads .mtf content from r.
func Parse(r io.Reader) (*Profile, error) {
	data := &Profile{LocationEquipment: make(map[string][]string)}

	scanner := bufio.NewScanner(r)
	// Increase buffer for files with long lore lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentLocation string
	var inWeapons bool

	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lower := strings.ToLower(trimmed)

		if loc := matchLocationHeader(trimmed); loc != "" {
			currentLocation = loc
			inWeapons = false
			continue
		}
		if strings.HasPrefix(lower, "weapons:") {
			inWeapons = true
			currentLocation = ""
			continue
		}
		if currentLocation != "" {
			if trimmed != "-Empty-" {
				data.LocationEquipment[currentLocation] = append(data.LocationEquipment[currentLocation], trimmed)
			}
			continue
		}
		// the weapons summary repeats the location blocks
		if inWeapons && !strings.Contains(trimmed, ":") {
			continue
		}
		inWeapons = false

		idx := strings.Index(trimmed, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		val := strings.TrimSpace(trimmed[idx+1:])

		switch key {
		case "chassis":
			data.Chassis = val
		case "model":
			data.Model = val
		case "mul id":
			data.MulID, _ = strconv.Atoi(val)
		case "config":
			data.Config = val
		case "techbase":
			data.TechBase = val
		case "quirk":
			if val != "" {
				data.Quirks = append(data.Quirks, val)
			}
		case "mass":
			data.Mass, _ = strconv.Atoi(val)
		case "engine":
			data.EngineRating, data.EngineType = parseEngine(val)
		case "myomer":
			data.Myomer = val
		case "cockpit":
			data.Cockpit = val
		case "gyro":
			data.Gyro = val
		case "walk mp":
			data.WalkMP, _ = strconv.Atoi(val)
		case "jump mp":
			data.JumpMP, _ = strconv.Atoi(val)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtf: %w", err)
	}
	if data.Chassis == "" {
		return nil, ErrNoChassis
	}
	return data, nil
}

// matchLocationHeader checks if a line is a location header like "Left Arm:" or "Front Left Leg:"
func matchLocationHeader(line string) string {
	locations := []string{
		"Left Arm:",
		"Right Arm:",
		"Left Torso:",
		"Right Torso:",
		"Center Torso:",
		"Head:",
		"Left Leg:",
		"Right Leg:",
		// Quad mech locations
		"Front Left Leg:",
		"Front Right Leg:",
		"Rear Left Leg:",
		"Rear Right Leg:",
		// Tripod
		"Center Leg:",
	}
	for _, loc := range locations {
		if line == loc {
			return strings.TrimSuffix(loc, ":")
		}
	}
	return ""
}

// parseEngine parses "300 Fusion Engine(IS)" -> (300, "Fusion Engine(IS)")
func parseEngine(val string) (int, string) {
	parts := strings.SplitN(val, " ", 2)
	if len(parts) < 2 {
		rating, _ := strconv.Atoi(val)
		return rating, ""
	}
	rating, _ := strconv.Atoi(parts[0])
	return rating, parts[1]
}

// ─── Derived movement data ──────────────────────────────────────────────────

// FullName returns "Chassis Model" or just "Chassis" if model is empty.
func (d *Profile) FullName() string {
	if d.Model == "" {
		return d.Chassis
	}
	return d.Chassis + " " + d.Model
}

// RunMP is walk MP x1.5 rounded up.
func (d *Profile) RunMP() int {
	return int(math.Ceil(float64(d.WalkMP) * 1.5))
}

// HasEquipment reports any critical slot whose name contains name,
// ignoring case.
func (d *Profile) HasEquipment(name string) bool {
	name = strings.ToLower(name)
	for _, slots := range d.LocationEquipment {
		for _, s := range slots {
			if strings.Contains(strings.ToLower(s), name) {
				return true
			}
		}
	}
	return false
}

// Mode returns the movement mode implied by the config line.
func (d *Profile) Mode() unit.MoveMode {
	if strings.Contains(strings.ToLower(d.Config), "quad") {
		return unit.ModeQuad
	}
	return unit.ModeBiped
}

func (d *Profile) legs() int {
	switch {
	case d.Mode() == unit.ModeQuad:
		return 4
	case strings.Contains(strings.ToLower(d.Config), "tripod"):
		return 3
	}
	return 2
}

// Entity builds an undamaged unit snapshot with the given id and piloting
// skill.
func (d *Profile) Entity(id, piloting int) *unit.Entity {
	return &unit.Entity{
		ID:      id,
		Name:    d.FullName(),
		Kind:    unit.KindMech,
		Mode:    d.Mode(),
		Tonnage: d.Mass,
		Crew:    unit.Crew{Piloting: piloting},
		Damage: unit.Damage{
			HeavyDutyGyro: strings.Contains(strings.ToLower(d.Gyro), "heavy duty"),
			Legs:          make([]unit.Leg, d.legs()),
			HeadIS:        headInternal,
			HeadMaxIS:     headInternal,
		},
		WalkMP:            d.WalkMP,
		RunMP:             d.RunMP(),
		JumpMP:            d.JumpMP,
		MASC:              d.HasEquipment("MASC"),
		Supercharger:      d.HasEquipment("Supercharger"),
		JumpBooster:       d.HasEquipment("Jump Booster"),
		PrototypeJumpJets: d.HasEquipment("Prototype Jump Jet") || d.HasEquipment("PrototypeJumpJet"),
	}
}
