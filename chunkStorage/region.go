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

package chunkStorage

import (
	"context"

	"github.com/maxsupermanhd/livemap/primitives"
)

// Region is 32x32 chunks, missing chunks are nil
type Region struct {
	Pos    primitives.Coord
	Chunks [primitives.RegionChunkCount]*Chunk
}

func NewRegion(rx, rz int) *Region {
	return &Region{Pos: primitives.RegionCoord(rx, rz)}
}

// Chunk returns chunk by region-local position 0..31
func (r *Region) Chunk(lx, lz int) *Chunk {
	if lx < 0 || lz < 0 || lx >= primitives.RegionChunks || lz >= primitives.RegionChunks {
		return nil
	}
	return r.Chunks[lz*primitives.RegionChunks+lx]
}

// ChunkAt returns chunk by its absolute chunk coordinates
func (r *Region) ChunkAt(cx, cz int) *Chunk {
	if primitives.ChunkToRegion(cx) != r.Pos.X || primitives.ChunkToRegion(cz) != r.Pos.Z {
		return nil
	}
	return r.Chunk(cx&(primitives.RegionChunks-1), cz&(primitives.RegionChunks-1))
}

// SetChunk places chunk by its own absolute position, chunks
// outside of the region are ignored.
func (r *Region) SetChunk(c *Chunk) bool {
	if c == nil || primitives.ChunkToRegion(c.X) != r.Pos.X || primitives.ChunkToRegion(c.Z) != r.Pos.Z {
		return false
	}
	r.Chunks[(c.Z&(primitives.RegionChunks-1))*primitives.RegionChunks+c.X&(primitives.RegionChunks-1)] = c
	return true
}

func (r *Region) ChunkCount() int {
	n := 0
	for _, c := range r.Chunks {
		if c != nil {
			n++
		}
	}
	return n
}

func (r *Region) blockChunk(x, z int) *Chunk {
	return r.ChunkAt(primitives.BlockToChunk(x), primitives.BlockToChunk(z))
}

// BlockState takes absolute block coordinates
func (r *Region) BlockState(x, y, z int) BlockState {
	c := r.blockChunk(x, z)
	if c == nil {
		return AirState
	}
	return c.Block(x, y, z)
}

func (r *Region) Biome(x, y, z int) string {
	c := r.blockChunk(x, z)
	if c == nil {
		return ""
	}
	return c.Biome(x, y, z)
}

func (r *Region) FluidState(x, y, z int) Fluid {
	return r.BlockState(x, y, z).Fluid()
}

// RegionEdges are chunks bordering a region from the north and the west,
// indexed by region-local chunk position along the border.
type RegionEdges struct {
	North [primitives.RegionChunks]*Chunk
	West  [primitives.RegionChunks]*Chunk
}

// LoadRegionEdges fetches chunk row north of the region and chunk column
// west of it. Chunks that fail to load are left nil.
func LoadRegionEdges(ctx context.Context, s ChunkStorage, wname string, pos primitives.Coord) (*RegionEdges, error) {
	pos = pos.Region()
	cx0, cz0 := primitives.RegionToChunk(pos.X), primitives.RegionToChunk(pos.Z)
	ret := &RegionEdges{}
	var lastErr error
	for i := 0; i < primitives.RegionChunks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := s.LoadChunk(ctx, wname, primitives.ChunkCoord(cx0+i, cz0-1))
		if err != nil {
			lastErr = err
		}
		ret.North[i] = c
		c, err = s.LoadChunk(ctx, wname, primitives.ChunkCoord(cx0-1, cz0+i))
		if err != nil {
			lastErr = err
		}
		ret.West[i] = c
	}
	return ret, lastErr
}
