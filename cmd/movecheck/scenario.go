package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

// scenario is the move to check. The unit comes from Unit when given,
// otherwise from a stored profile or an .mtf file placed at Position.
//
//	{
//	  "profile": "Wolverine WVR-6R", "piloting": 4,
//	  "position": "0508", "facing": 0,
//	  "steps": ["forwards", "turn_right", {"type": "maneuver", "maneuver": "loop"}]
//	}
type scenario struct {
	Unit     *unit.Entity    `json:"unit"`
	Profile  string          `json:"profile"`
	Piloting int             `json:"piloting"`
	Position *hexgrid.Coords `json:"position"`
	Facing   int             `json:"facing"`

	Environment *game.Environment `json:"environment"`
	Rules       *game.RulesConfig `json:"rules"`

	Steps []stepSpec `json:"steps"`
}

// stepSpec is one requested step: a bare step name or an object.
type stepSpec struct {
	Type     movepath.StepType `json:"type"`
	Maneuver movepath.Maneuver `json:"maneuver"`
	Launched map[int][]int     `json:"launched"`
}

func (s *stepSpec) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		t, err := movepath.ParseStepType(name)
		if err != nil {
			return err
		}
		*s = stepSpec{Type: t}
		return nil
	}
	type plain stepSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = stepSpec(p)
	return nil
}

func loadScenario(path string) (*scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	sc, err := parseScenario(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func parseScenario(r io.Reader) (*scenario, error) {
	var sc scenario
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		return nil, err
	}
	if sc.Piloting == 0 {
		sc.Piloting = 5
	}
	return &sc, nil
}

// place puts e where the scenario starts it.
func (sc *scenario) place(e *unit.Entity) {
	if sc.Position != nil {
		e.Position = *sc.Position
		e.Facing = sc.Facing
	}
}

// build compiles the requested steps for e.
func (sc *scenario) build(c *movepath.Compiler, e *unit.Entity) movepath.Path {
	p := movepath.New(e)
	for _, s := range sc.Steps {
		p = c.AddStep(p, movepath.Step{Type: s.Type, Maneuver: s.Maneuver, Launched: s.Launched})
	}
	return p
}
