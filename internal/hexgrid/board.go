package hexgrid

import "fmt"

// ─── Board ──────────────────────────────────────────────────────────────────

// MapKind is the scale of the board.
type MapKind int

const (
	MapGround MapKind = iota
	MapLowAtmosphere
	MapSpace
)

// BuildingClass follows the building type codes of MegaMek boards.
type BuildingClass int

const (
	BuildingLight BuildingClass = iota + 1
	BuildingMedium
	BuildingHeavy
	BuildingHardened
)

func (c BuildingClass) String() string {
	switch c {
	case BuildingLight:
		return "light"
	case BuildingMedium:
		return "medium"
	case BuildingHeavy:
		return "heavy"
	case BuildingHardened:
		return "hardened"
	default:
		return "unknown"
	}
}

// Building is a set of connected building hexes.
type Building struct {
	ID    int
	Name  string
	Class BuildingClass
	Hexes []Coords
	CF    map[Coords]int // current construction factor per hex
}

// CurrentCF returns the construction factor left at c.
func (b *Building) CurrentCF(c Coords) int {
	return b.CF[c]
}

type Board struct {
	Width, Height int
	Kind          MapKind
	Hexes         map[Coords]*Hex // kept for parsing compatibility
	Grid          []Hex           // flat 2D grid: x*Height + y
	Buildings     []*Building

	bldgAt map[Coords]*Building
}

func NewBoard(w, h int) *Board {
	return &Board{
		Width:  w,
		Height: h,
		Hexes:  make(map[Coords]*Hex, w*h),
	}
}

// Set stores a hex; call Finalize once all hexes are in.
func (b *Board) Set(hex *Hex) {
	b.Hexes[hex.Coord] = hex
	b.Grid = nil
}

// Finalize converts the map-based Hexes into a flat slice for O(1) lookups
// and groups building hexes into buildings.
func (b *Board) Finalize() {
	b.Grid = make([]Hex, b.Width*b.Height)
	// Initialize all hexes (so Get never returns nil for in-bounds coords)
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			b.Grid[x*b.Height+y] = Hex{Coord: Coords{X: x, Y: y}}
		}
	}
	for _, hex := range b.Hexes {
		if b.Contains(hex.Coord) {
			b.Grid[hex.Coord.X*b.Height+hex.Coord.Y] = *hex
		}
	}
	b.Hexes = nil // free map; all lookups use flat Grid from here
	b.groupBuildings()
}

func (b *Board) Contains(c Coords) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// Get returns the hex at c, or nil when c is off the board.
func (b *Board) Get(c Coords) *Hex {
	if b.Grid != nil {
		if b.Contains(c) {
			return &b.Grid[c.X*b.Height+c.Y]
		}
		return nil
	}
	return b.Hexes[c]
}

// BuildingAt returns the building covering c, or nil.
func (b *Board) BuildingAt(c Coords) *Building {
	return b.bldgAt[c]
}

func (b *Board) InSpace() bool  { return b.Kind == MapSpace }
func (b *Board) OnGround() bool { return b.Kind == MapGround }

// groupBuildings flood-fills connected building hexes into Building values.
func (b *Board) groupBuildings() {
	b.Buildings = nil
	b.bldgAt = make(map[Coords]*Building)
	for i := range b.Grid {
		start := &b.Grid[i]
		if !start.Contains(TerrainBuilding) || b.bldgAt[start.Coord] != nil {
			continue
		}
		bldg := &Building{
			ID:    len(b.Buildings) + 1,
			Class: BuildingClass(start.TerrainLevel(TerrainBuilding)),
			CF:    make(map[Coords]int),
		}
		bldg.Name = fmt.Sprintf("%s building #%d", bldg.Class, bldg.ID)
		queue := []Coords{start.Coord}
		b.bldgAt[start.Coord] = bldg
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			hex := b.Get(c)
			bldg.Hexes = append(bldg.Hexes, c)
			bldg.CF[c] = hex.TerrainLevel(TerrainBldgCF)
			for _, n := range c.Adjacent() {
				nh := b.Get(n)
				if nh == nil || b.bldgAt[n] != nil || !nh.Contains(TerrainBuilding) {
					continue
				}
				if BuildingClass(nh.TerrainLevel(TerrainBuilding)) != bldg.Class {
					continue
				}
				b.bldgAt[n] = bldg
				queue = append(queue, n)
			}
		}
		b.Buildings = append(b.Buildings, bldg)
	}
}
