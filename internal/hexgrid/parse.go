package hexgrid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ─── Board Parser ───────────────────────────────────────────────────────────

// LoadBoard reads a MegaMek .board file from disk.
func LoadBoard(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board: %w", err)
	}
	defer f.Close()
	b, err := ParseBoard(f)
	if err != nil {
		return nil, fmt.Errorf("parse board %s: %w", path, err)
	}
	return b, nil
}

// ParseBoard reads the MegaMek board format:
//
//	size 16 17
//	hex 0101 0 "woods:1;foliage_elev:2" ""
//	end
func ParseBoard(r io.Reader) (*Board, error) {
	var board *Board
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line == "end" {
			continue
		}

		if strings.HasPrefix(line, "size ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				return nil, fmt.Errorf("bad size line %q", line)
			}
			w, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("board width: %w", err)
			}
			h, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("board height: %w", err)
			}
			board = NewBoard(w, h)
			continue
		}

		if strings.HasPrefix(line, "kind ") {
			if board == nil {
				continue
			}
			switch strings.TrimSpace(strings.TrimPrefix(line, "kind ")) {
			case "space":
				board.Kind = MapSpace
			case "atmosphere", "low_atmosphere":
				board.Kind = MapLowAtmosphere
			default:
				board.Kind = MapGround
			}
			continue
		}

		if strings.HasPrefix(line, "hex ") {
			if board == nil {
				continue
			}
			hex, err := parseHexLine(line)
			if err != nil {
				return nil, err
			}
			board.Set(hex)
		}
		// tag, option, background lines are cosmetic
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan board: %w", err)
	}
	if board == nil {
		return nil, fmt.Errorf("missing size line")
	}
	board.Finalize()
	return board, nil
}

func parseHexLine(line string) (*Hex, error) {
	// Format: hex XXYY elevation "terrain;terrain" "theme"
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil, fmt.Errorf("bad hex line %q", line)
	}

	coord, err := ParseCoords(parts[1])
	if err != nil {
		return nil, err
	}
	elev, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("hex %s elevation: %w", parts[1], err)
	}

	hex := &Hex{Coord: coord, Level: elev}

	// Parse terrain string (in quotes)
	if len(parts) >= 4 {
		terrainStr := strings.Trim(parts[3], "\"")
		for _, feat := range strings.Split(terrainStr, ";") {
			feat = strings.TrimSpace(feat)
			if feat == "" {
				continue
			}
			if tf, ok := parseTerrainFeature(feat); ok {
				hex.Terrain = append(hex.Terrain, tf)
			}
		}
	}
	return hex, nil
}

func parseTerrainFeature(s string) (TerrainFeature, bool) {
	// Format: "type:level:extra" or "type:level"
	parts := strings.Split(s, ":")
	t, ok := terrainNames[strings.ToLower(parts[0])]
	if !ok {
		// ground_fluff, foliage_elev and friends are cosmetic
		return TerrainFeature{}, false
	}
	level := 1
	if len(parts) >= 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			level = n
		}
	}
	return TerrainFeature{Type: t, Level: level}, true
}
