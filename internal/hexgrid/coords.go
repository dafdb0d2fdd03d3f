package hexgrid

import (
	"fmt"
	"math"
)

// ─── Hex Coordinates ────────────────────────────────────────────────────────
// Board coordinates are 0-indexed offset coords with odd columns shifted half
// a hex down (MegaMek layout). Board files and reports use the 1-indexed XXYY
// notation. Distance, direction and lines go through cube coordinates.

// Coords is one hex on the board.
type Coords struct {
	X, Y int
}

// Cube is the cube-coordinate form of a hex: Q+R+S == 0.
type Cube struct {
	Q, R, S int
}

// Facing 0-5: 0=N, 1=NE, 2=SE, 3=S, 4=SW, 5=NW (clockwise from top)
const (
	North = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest
)

// cube direction vectors per facing
var cubeDirs = [6]Cube{
	{0, 1, -1}, {1, 0, -1}, {1, -1, 0},
	{0, -1, 1}, {-1, 0, 1}, {-1, 1, 0},
}

// String returns the hex in XXYY board notation.
func (c Coords) String() string {
	return fmt.Sprintf("%02d%02d", c.X+1, c.Y+1)
}

// ParseCoords parses XXYY (or XXXYYY) board notation.
func ParseCoords(s string) (Coords, error) {
	if len(s) != 4 && len(s) != 6 {
		return Coords{}, fmt.Errorf("hex %q: want XXYY notation", s)
	}
	half := len(s) / 2
	var col, row int
	if _, err := fmt.Sscanf(s[:half], "%d", &col); err != nil {
		return Coords{}, fmt.Errorf("hex %q column: %w", s, err)
	}
	if _, err := fmt.Sscanf(s[half:], "%d", &row); err != nil {
		return Coords{}, fmt.Errorf("hex %q row: %w", s, err)
	}
	return Coords{X: col - 1, Y: row - 1}, nil
}

func (c Coords) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Coords) UnmarshalText(text []byte) error {
	v, err := ParseCoords(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Cube converts offset coords (odd-q layout) to cube coords.
func (c Coords) Cube() Cube {
	q := c.X
	s := c.Y - (c.X-(c.X&1))/2
	return Cube{Q: q, R: -q - s, S: s}
}

// Coords converts cube coords back to offset coords.
func (c Cube) Coords() Coords {
	return Coords{X: c.Q, Y: c.S + (c.Q-(c.Q&1))/2}
}

func (c Cube) add(o Cube) Cube {
	return Cube{Q: c.Q + o.Q, R: c.R + o.R, S: c.S + o.S}
}

func (c Cube) sub(o Cube) Cube {
	return Cube{Q: c.Q - o.Q, R: c.R - o.R, S: c.S - o.S}
}

// Translated returns the neighbor in direction dir.
func (c Coords) Translated(dir int) Coords {
	return c.Cube().add(cubeDirs[normalize(dir)]).Coords()
}

// TranslatedN returns the hex n steps away in direction dir.
func (c Coords) TranslatedN(dir, n int) Coords {
	d := cubeDirs[normalize(dir)]
	cc := c.Cube()
	return Cube{Q: cc.Q + d.Q*n, R: cc.R + d.R*n, S: cc.S + d.S*n}.Coords()
}

// Adjacent returns the 6 neighbors indexed by direction.
func (c Coords) Adjacent() [6]Coords {
	var out [6]Coords
	for dir := range out {
		out[dir] = c.Translated(dir)
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func (c Coords) Distance(o Coords) int {
	d := c.Cube().sub(o.Cube())
	return (abs(d.Q) + abs(d.R) + abs(d.S)) / 2
}

// Direction returns which of the 6 hex directions o lies in from c.
// Exact for neighbors; for farther hexes it picks the best-aligned facing
// using integer dot products against the cube direction vectors.
func (c Coords) Direction(o Coords) int {
	if c == o {
		return North
	}
	d := o.Cube().sub(c.Cube())
	best, bestDot := 0, math.MinInt
	for i, v := range cubeDirs {
		dot := d.Q*v.Q + d.R*v.R + d.S*v.S
		if dot > bestDot {
			best, bestDot = i, dot
		}
	}
	return best
}

// IsSplitLine reports whether the line from c to o runs exactly along hex
// edges (30° off every facing), so every other intervening point is shared
// by two hexes.
func (c Coords) IsSplitLine(o Coords) bool {
	d := o.Cube().sub(c.Cube())
	if d.Q == 0 || d.R == 0 || d.S == 0 {
		return false
	}
	return d.Q == d.R || d.R == d.S || d.Q == d.S
}

// Intervening returns the hexes on the line from a to b, both ends included.
// With split set, both hexes of each split point are returned back to back,
// the "left" one first.
func Intervening(a, b Coords, split bool) []Coords {
	dist := a.Distance(b)
	if dist == 0 {
		return []Coords{a}
	}
	ac := a.Cube()
	bc := b.Cube()
	out := make([]Coords, 0, dist*2+1)
	for i := 0; i <= dist; i++ {
		t := float64(i) / float64(dist)
		left := lineHex(ac, bc, t, 1)
		if !split {
			out = append(out, left)
			continue
		}
		right := lineHex(ac, bc, t, -1)
		out = append(out, left)
		if right != left {
			out = append(out, right)
		}
	}
	return out
}

// lineHex samples the cube line at t with a tiny nudge so ties on hex edges
// resolve consistently to one side.
func lineHex(a, b Cube, t float64, side float64) Coords {
	const eps = 1e-6
	q := lerp(float64(a.Q), float64(b.Q), t) + side*eps
	r := lerp(float64(a.R), float64(b.R), t) + side*2*eps
	s := lerp(float64(a.S), float64(b.S), t) - side*3*eps
	return cubeRound(q, r, s).Coords()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func cubeRound(q, r, s float64) Cube {
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	} else {
		rs = -rq - rr
	}

	return Cube{Q: int(rq), R: int(rr), S: int(rs)}
}

func normalize(dir int) int {
	return ((dir % 6) + 6) % 6
}

// TurnLeft returns the facing one hexside counterclockwise.
func TurnLeft(facing int) int { return normalize(facing - 1) }

// TurnRight returns the facing one hexside clockwise.
func TurnRight(facing int) int { return normalize(facing + 1) }

// Opposite returns the facing directly behind.
func Opposite(facing int) int { return normalize(facing + 3) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
