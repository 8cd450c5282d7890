// Terrain generation using simplex noise over a square grid.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Pos is a position on the square grid.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dist returns the Chebyshev distance between two positions. Interaction
// range for all action primitives is Dist <= 1.
func (p Pos) Dist(q Pos) int {
	dx := abs(p.X - q.X)
	dy := abs(p.Y - q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Terrain types for grid cells.
type Terrain uint8

const (
	TerrainPlain Terrain = iota // open ground
	TerrainSwamp                // passable but slow
	TerrainWall                 // blocks movement and placement
)

var terrainNames = [...]string{"plain", "swamp", "wall"}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return "unknown"
}

// Grid holds the immutable terrain layer.
type Grid struct {
	Width  int
	Height int
	cells  []Terrain
}

// GenConfig holds terrain generation parameters.
type GenConfig struct {
	Width  int
	Height int
	Seed   int64 // 0 = random
}

// DefaultGenConfig returns a map size suitable for a single colony.
func DefaultGenConfig() GenConfig {
	return GenConfig{Width: 50, Height: 50, Seed: 0}
}

// GenerateGrid creates the terrain layer from layered simplex noise.
func GenerateGrid(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	rockNoise := opensimplex.NewNormalized(seed)
	bogNoise := opensimplex.NewNormalized(seed + 1)

	g := &Grid{
		Width:  cfg.Width,
		Height: cfg.Height,
		cells:  make([]Terrain, cfg.Width*cfg.Height),
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x), float64(y)

			t := TerrainPlain
			if rockNoise.Eval2(fx*0.12, fy*0.12) > 0.72 {
				t = TerrainWall
			} else if bogNoise.Eval2(fx*0.08, fy*0.08) > 0.78 {
				t = TerrainSwamp
			}

			// Map border is always rock.
			if x == 0 || y == 0 || x == cfg.Width-1 || y == cfg.Height-1 {
				t = TerrainWall
			}

			g.cells[y*cfg.Width+x] = t
		}
	}

	return g
}

// EmptyGrid returns an all-plain grid, for tests and tools that stage
// objects by hand.
func EmptyGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Terrain, width*height),
	}
}

// In reports whether the position lies on the grid.
func (g *Grid) In(p Pos) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At returns the terrain at a position. Off-grid positions read as wall.
func (g *Grid) At(p Pos) Terrain {
	if !g.In(p) {
		return TerrainWall
	}
	return g.cells[p.Y*g.Width+p.X]
}

// Walkable reports whether terrain allows a creature to stand at p.
func (g *Grid) Walkable(p Pos) bool {
	return g.At(p) != TerrainWall
}
