package hexgrid

// ─── Terrain ────────────────────────────────────────────────────────────────

type TerrainType int

const (
	TerrainWoods    TerrainType = iota // level 1=light, 2=heavy, 3=ultra
	TerrainWater                       // level = depth
	TerrainRough                       // level 1 or 2 (ultra)
	TerrainPavement
	TerrainRoad
	TerrainBuilding // level = building class (1-4)
	TerrainSand
	TerrainSwamp // level 1=swamp, 2=deep, 3=quicksand
	TerrainMud
	TerrainIce
	TerrainJungle // level 1=light, 2=heavy, 3=ultra
	TerrainRubble // level 2+ = ultra
	TerrainFire
	TerrainMagma // level 1=crust, 2=liquid
	TerrainBridge
	TerrainBridgeElev
	TerrainBldgElev // building height in levels
	TerrainBldgCF
	TerrainSnow // level 2 = deep snow
)

var terrainNames = map[string]TerrainType{
	"woods":       TerrainWoods,
	"water":       TerrainWater,
	"rough":       TerrainRough,
	"pavement":    TerrainPavement,
	"road":        TerrainRoad,
	"building":    TerrainBuilding,
	"sand":        TerrainSand,
	"swamp":       TerrainSwamp,
	"mud":         TerrainMud,
	"ice":         TerrainIce,
	"jungle":      TerrainJungle,
	"rubble":      TerrainRubble,
	"fire":        TerrainFire,
	"magma":       TerrainMagma,
	"bridge":      TerrainBridge,
	"bridge_elev": TerrainBridgeElev,
	"bldg_elev":   TerrainBldgElev,
	"bldg_cf":     TerrainBldgCF,
	"snow":        TerrainSnow,
}

type TerrainFeature struct {
	Type  TerrainType
	Level int
}

// Hex is one board hex. Level is the ground (or water surface) height.
type Hex struct {
	Coord   Coords
	Level   int
	Terrain []TerrainFeature
}

func (h *Hex) HasTerrain(t TerrainType) (bool, int) {
	for _, f := range h.Terrain {
		if f.Type == t {
			return true, f.Level
		}
	}
	return false, 0
}

// Contains reports whether the hex has terrain t.
func (h *Hex) Contains(t TerrainType) bool {
	ok, _ := h.HasTerrain(t)
	return ok
}

// TerrainLevel returns the level of terrain t, or 0 when absent.
func (h *Hex) TerrainLevel(t TerrainType) int {
	_, lvl := h.HasTerrain(t)
	return lvl
}

// Depth is the water depth of the hex.
func (h *Hex) Depth() int {
	return h.TerrainLevel(TerrainWater)
}

// IsPaved reports pavement or road.
func (h *Hex) IsPaved() bool {
	return h.Contains(TerrainPavement) || h.Contains(TerrainRoad)
}

// BuildingHeight returns the height of a building in the hex, 0 if none.
func (h *Hex) BuildingHeight() int {
	if !h.Contains(TerrainBuilding) {
		return 0
	}
	if lvl := h.TerrainLevel(TerrainBldgElev); lvl > 0 {
		return lvl
	}
	return 1
}

// BridgeSurface returns the absolute level of a bridge deck, and false when
// the hex has no bridge.
func (h *Hex) BridgeSurface() (int, bool) {
	if !h.Contains(TerrainBridge) {
		return 0, false
	}
	return h.Level + h.TerrainLevel(TerrainBridgeElev), true
}

// IsBurning reports fire in the hex.
func (h *Hex) IsBurning() bool {
	return h.Contains(TerrainFire)
}
