// Package game holds the battlefield conditions and optional rules that
// movement checks read. Both are plain values passed to the evaluator.
package game

import (
	"fmt"
	"strings"

	"github.com/sc68cal/megamek-sub000/internal/config"
)

// ─── Planetary conditions ───────────────────────────────────────────────────

type Atmosphere int

const (
	AtmosphereStandard Atmosphere = iota
	AtmosphereVacuum
	AtmosphereTrace
	AtmosphereThin
	AtmosphereHigh
	AtmosphereVeryHigh
)

var atmosphereNames = []string{"standard", "vacuum", "trace", "thin", "high", "very_high"}

func (a Atmosphere) String() string { return nameOf(atmosphereNames, int(a)) }

func (a Atmosphere) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Atmosphere) UnmarshalText(text []byte) error {
	v, err := parseName("atmosphere", atmosphereNames, text)
	*a = Atmosphere(v)
	return err
}

type Weather int

const (
	WeatherClear Weather = iota
	WeatherLightRain
	WeatherModerateRain
	WeatherHeavyRain
	WeatherDownpour
	WeatherLightSnow
	WeatherModerateSnow
	WeatherHeavySnow
	WeatherSleet
	WeatherIceStorm
	WeatherLightHail
	WeatherHeavyHail
)

var weatherNames = []string{
	"clear", "light_rain", "moderate_rain", "heavy_rain", "downpour",
	"light_snow", "moderate_snow", "heavy_snow", "sleet", "ice_storm",
	"light_hail", "heavy_hail",
}

func (w Weather) String() string { return nameOf(weatherNames, int(w)) }

func (w Weather) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *Weather) UnmarshalText(text []byte) error {
	v, err := parseName("weather", weatherNames, text)
	*w = Weather(v)
	return err
}

type Wind int

const (
	WindCalm Wind = iota
	WindLightGale
	WindModerateGale
	WindStrongGale
	WindStorm
	WindTornadoF13
	WindTornadoF4
)

var windNames = []string{"calm", "light_gale", "moderate_gale", "strong_gale", "storm", "tornado_f13", "tornado_f4"}

func (w Wind) String() string { return nameOf(windNames, int(w)) }

func (w Wind) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *Wind) UnmarshalText(text []byte) error {
	v, err := parseName("wind", windNames, text)
	*w = Wind(v)
	return err
}

type Light int

const (
	LightDay Light = iota
	LightDusk
	LightFullMoon
	LightMoonless
	LightPitchBlack
)

var lightNames = []string{"day", "dusk", "full_moon", "moonless", "pitch_black"}

func (l Light) String() string { return nameOf(lightNames, int(l)) }

func (l Light) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Light) UnmarshalText(text []byte) error {
	v, err := parseName("light", lightNames, text)
	*l = Light(v)
	return err
}

type Fog int

const (
	FogNone Fog = iota
	FogLight
	FogHeavy
)

var fogNames = []string{"none", "light", "heavy"}

func (f Fog) String() string { return nameOf(fogNames, int(f)) }

func (f Fog) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Fog) UnmarshalText(text []byte) error {
	v, err := parseName("fog", fogNames, text)
	*f = Fog(v)
	return err
}

func nameOf(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func parseName(kind string, names []string, text []byte) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, string(text))
}

// Environment is the set of battlefield conditions for one evaluation.
type Environment struct {
	Gravity    float64    `env:"MOVECHECK_GRAVITY" envDefault:"1.0" json:"gravity"`
	Atmosphere Atmosphere `env:"MOVECHECK_ATMOSPHERE" envDefault:"standard" json:"atmosphere"`
	Weather    Weather    `env:"MOVECHECK_WEATHER" envDefault:"clear" json:"weather"`
	Wind       Wind       `env:"MOVECHECK_WIND" envDefault:"calm" json:"wind"`
	Light      Light      `env:"MOVECHECK_LIGHT" envDefault:"day" json:"light"`
	Fog        Fog        `env:"MOVECHECK_FOG" envDefault:"none" json:"fog"`
	BlackIce   bool       `env:"MOVECHECK_BLACK_ICE" json:"black_ice"`
}

// DefaultEnvironment is standard gravity and atmosphere on a clear day.
func DefaultEnvironment() Environment {
	return Environment{Gravity: 1.0}
}

// LoadEnvironment reads conditions from MOVECHECK_* variables.
func LoadEnvironment() (Environment, error) {
	e := DefaultEnvironment()
	if err := config.ParseEnv(&e); err != nil {
		return Environment{}, fmt.Errorf("environment: %w", err)
	}
	return e, nil
}

// LightPenalty is the piloting modifier for poor light.
func (e Environment) LightPenalty() int {
	switch e.Light {
	case LightFullMoon:
		return 1
	case LightMoonless:
		return 2
	case LightPitchBlack:
		return 3
	}
	return 0
}

// RecklessConditions reports visibility poor enough that running is reckless.
func (e Environment) RecklessConditions() bool {
	return e.Fog == FogHeavy || e.Light >= LightFullMoon
}

// BadWeather is the lower ejection weather tier.
func (e Environment) BadWeather() bool {
	switch e.Weather {
	case WeatherHeavySnow, WeatherIceStorm, WeatherDownpour, WeatherHeavyHail:
		return true
	}
	return e.Wind == WindStrongGale
}

// ReallyBadWeather is the upper ejection weather tier.
func (e Environment) ReallyBadWeather() bool {
	if e.Wind >= WindStorm {
		return true
	}
	return e.Weather == WeatherHeavySnow && e.Wind >= WindStrongGale
}

// ─── Optional rules ─────────────────────────────────────────────────────────

// RulesConfig lists the optional rules the move checks consult.
type RulesConfig struct {
	// Leaping: mechs may drop more than 2 levels at a piloting roll.
	Leaping bool `env:"MOVECHECK_LEAPING" json:"leaping"`
	// JumpHeavyWoodsPSR: landing a jump in heavy woods or jungle needs a roll.
	JumpHeavyWoodsPSR bool `env:"MOVECHECK_JUMP_HEAVY_WOODS" json:"jump_heavy_woods"`
	// ReturnFlyover: aerospace units leaving the map may return next turn.
	ReturnFlyover bool `env:"MOVECHECK_RETURN_FLYOVER" envDefault:"true" json:"return_flyover"`
	// VectorMovement: advanced space movement with velocity vectors.
	VectorMovement bool `env:"MOVECHECK_VECTOR_MOVEMENT" json:"vector_movement"`
	// Sprint: allows sprinting as a movement mode.
	Sprint bool `env:"MOVECHECK_SPRINT" json:"sprint"`
}

// DefaultRules matches a standard game.
func DefaultRules() RulesConfig {
	return RulesConfig{ReturnFlyover: true}
}

// LoadRules reads optional rules from MOVECHECK_* variables.
func LoadRules() (RulesConfig, error) {
	r := DefaultRules()
	if err := config.ParseEnv(&r); err != nil {
		return RulesConfig{}, fmt.Errorf("rules: %w", err)
	}
	return r, nil
}
