// Package imageio decodes raster images into numeric sample grids.
package imageio

import "fmt"

// Grid is a rectangular array of samples stored row-major, channels interleaved
type Grid struct {
	Width    int
	Height   int
	Channels int
	Samples  []float64
}

// SameShape reports whether both grids have identical dimensions
func (g *Grid) SameShape(other *Grid) bool {
	return g.Width == other.Width && g.Height == other.Height && g.Channels == other.Channels
}

// Max returns the largest sample value, or 0 for an empty grid
func (g *Grid) Max() float64 {
	if len(g.Samples) == 0 {
		return 0
	}
	max := g.Samples[0]
	for _, s := range g.Samples[1:] {
		if s > max {
			max = s
		}
	}
	return max
}

func (g *Grid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.Width, g.Height, g.Channels)
}
