/*
	livemap, live tile renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package render

import (
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/primitives"
)

// Column is what renderers know about one block column.
type Column struct {
	X, Z  int // absolute block coordinates
	Empty bool

	Y     int
	Top   chunkStorage.BlockState
	Biome string

	// Ground is Top unless column is covered by fluid
	// and fluids are translucent.
	Fluid      chunkStorage.Fluid
	FluidDepth int
	Ground     chunkStorage.BlockState
	GroundY    int

	North, West       int
	HasNorth, HasWest bool

	Inhabited int64
}

func coveringFluid(b chunkStorage.BlockState) chunkStorage.Fluid {
	f := b.Fluid()
	if f != chunkStorage.FluidNone && b.Waterlogged && !b.IsFluidBlock() {
		return chunkStorage.FluidNone
	}
	return f
}

func scanColumn(c *chunkStorage.Chunk, x, z int, pal *palette.Palette, translucent bool, col *Column) {
	*col = Column{
		X:         primitives.ChunkToBlock(c.X) + x,
		Z:         primitives.ChunkToBlock(c.Z) + z,
		Empty:     true,
		Inhabited: c.InhabitedTime,
	}
	minY := c.MinY()
	y := c.MaxY()
	var b chunkStorage.BlockState
	for ; y >= minY; y-- {
		b = c.Block(x, y, z)
		if !b.IsAir() && !pal.IsInvisible(b.Name) {
			break
		}
	}
	if y < minY {
		return
	}
	col.Empty = false
	col.Y = y
	col.Top = b
	col.Biome = c.Biome(x, y, z)
	col.Ground = b
	col.GroundY = y
	col.Fluid = coveringFluid(b)
	if !translucent || col.Fluid == chunkStorage.FluidNone {
		return
	}
	for y--; y >= minY; y-- {
		b = c.Block(x, y, z)
		if b.Fluid() == col.Fluid {
			col.FluidDepth++
			continue
		}
		if b.IsAir() || pal.IsInvisible(b.Name) {
			continue
		}
		col.Ground = b
		col.GroundY = y
		return
	}
}

// RegionScanner computes columns chunk by chunk and carries heights
// of the last scanned row and column over to neighboring chunks.
// Chunks must be passed in row-major order, north-west first.
type RegionScanner struct {
	pal         *palette.Palette
	translucent bool
	north       [primitives.RegionSize]int
	hasNorth    [primitives.RegionSize]bool
	west        [primitives.ChunkSize]int
	hasWest     [primitives.ChunkSize]bool
	edgeWest    [primitives.ChunkSize]int
	hasEdgeWest [primitives.ChunkSize]bool
	cols        [primitives.ChunkSize * primitives.ChunkSize]Column
	edge        Column
}

func NewRegionScanner(pal *palette.Palette, translucent bool) *RegionScanner {
	return &RegionScanner{pal: pal, translucent: translucent}
}

// SeedNorth takes heights of the southern row of chunk c that lies
// north of region-local chunk column lx. Must be called before row 0.
func (s *RegionScanner) SeedNorth(c *chunkStorage.Chunk, lx int) {
	const cs = primitives.ChunkSize
	for x := 0; x < cs; x++ {
		i := lx*cs + x
		if c == nil {
			s.north[i], s.hasNorth[i] = 0, false
			continue
		}
		scanColumn(c, x, cs-1, s.pal, s.translucent, &s.edge)
		s.north[i], s.hasNorth[i] = s.edge.Y, !s.edge.Empty
	}
}

// SeedWest takes heights of the eastern column of chunk c that lies
// west of the next row. Seed is consumed by the chunk at lx 0.
func (s *RegionScanner) SeedWest(c *chunkStorage.Chunk) {
	const cs = primitives.ChunkSize
	for z := 0; z < cs; z++ {
		if c == nil {
			s.edgeWest[z], s.hasEdgeWest[z] = 0, false
			continue
		}
		scanColumn(c, cs-1, z, s.pal, s.translucent, &s.edge)
		s.edgeWest[z], s.hasEdgeWest[z] = s.edge.Y, !s.edge.Empty
	}
}

// Chunk scans chunk at region-local position, nil chunk only resets
// neighbor data. Returned slice is reused by next call.
func (s *RegionScanner) Chunk(c *chunkStorage.Chunk, lx, lz int) []Column {
	const cs = primitives.ChunkSize
	if lx == 0 {
		s.west, s.hasWest = s.edgeWest, s.hasEdgeWest
		s.hasEdgeWest = [cs]bool{}
	}
	if c == nil {
		s.hasWest = [cs]bool{}
		for i := 0; i < cs; i++ {
			s.hasNorth[lx*cs+i] = false
		}
		return nil
	}
	for z := 0; z < cs; z++ {
		for x := 0; x < cs; x++ {
			col := &s.cols[z*cs+x]
			scanColumn(c, x, z, s.pal, s.translucent, col)
			if x == 0 {
				col.West, col.HasWest = s.west[z], s.hasWest[z]
			} else {
				w := &s.cols[z*cs+x-1]
				col.West, col.HasWest = w.Y, !w.Empty
			}
			if z == 0 {
				col.North, col.HasNorth = s.north[lx*cs+x], s.hasNorth[lx*cs+x]
			} else {
				n := &s.cols[(z-1)*cs+x]
				col.North, col.HasNorth = n.Y, !n.Empty
			}
		}
	}
	for z := 0; z < cs; z++ {
		e := &s.cols[z*cs+cs-1]
		s.west[z], s.hasWest[z] = e.Y, !e.Empty
	}
	for x := 0; x < cs; x++ {
		e := &s.cols[(cs-1)*cs+x]
		s.north[lx*cs+x], s.hasNorth[lx*cs+x] = e.Y, !e.Empty
	}
	return s.cols[:]
}
