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

package primitives

import "fmt"

// Space tells what unit coordinate values are measured in.
type Space int

const (
	SpaceBlock Space = iota
	SpaceChunk
	SpaceRegion
)

const (
	ChunkShift       = 4
	RegionShift      = 9
	RegionChunkShift = RegionShift - ChunkShift

	ChunkSize        = 1 << ChunkShift       // blocks in chunk side
	RegionSize       = 1 << RegionShift      // blocks in region side
	RegionChunks     = 1 << RegionChunkShift // chunks in region side
	RegionChunkCount = RegionChunks * RegionChunks
)

func (s Space) String() string {
	switch s {
	case SpaceBlock:
		return "block"
	case SpaceChunk:
		return "chunk"
	case SpaceRegion:
		return "region"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// shift returns how many bits one unit of the space spans in blocks
func (s Space) shift() int {
	switch s {
	case SpaceChunk:
		return ChunkShift
	case SpaceRegion:
		return RegionShift
	default:
		return 0
	}
}

// Coord is an immutable x/z pair in one of the coordinate spaces.
// Conversions are plain shifts, values are expected to stay within
// 32-bit world bounds.
type Coord struct {
	X, Z  int
	Space Space
}

func BlockCoord(x, z int) Coord  { return Coord{X: x, Z: z, Space: SpaceBlock} }
func ChunkCoord(x, z int) Coord  { return Coord{X: x, Z: z, Space: SpaceChunk} }
func RegionCoord(x, z int) Coord { return Coord{X: x, Z: z, Space: SpaceRegion} }

func BlockToChunk(v int) int  { return v >> ChunkShift }
func ChunkToBlock(v int) int  { return v << ChunkShift }
func BlockToRegion(v int) int { return v >> RegionShift }
func RegionToBlock(v int) int { return v << RegionShift }
func ChunkToRegion(v int) int { return v >> RegionChunkShift }
func RegionToChunk(v int) int { return v << RegionChunkShift }

// To converts coordinate into target space. Converting to a larger
// space floors, converting to a smaller one yields the north-west corner.
func (c Coord) To(s Space) Coord {
	from, to := c.Space.shift(), s.shift()
	switch {
	case from == to:
		return Coord{X: c.X, Z: c.Z, Space: s}
	case from < to:
		return Coord{X: c.X >> (to - from), Z: c.Z >> (to - from), Space: s}
	default:
		return Coord{X: c.X << (from - to), Z: c.Z << (from - to), Space: s}
	}
}

func (c Coord) Block() Coord  { return c.To(SpaceBlock) }
func (c Coord) Chunk() Coord  { return c.To(SpaceChunk) }
func (c Coord) Region() Coord { return c.To(SpaceRegion) }

func (c Coord) East() Coord  { return Coord{X: c.X + 1, Z: c.Z, Space: c.Space} }
func (c Coord) West() Coord  { return Coord{X: c.X - 1, Z: c.Z, Space: c.Space} }
func (c Coord) North() Coord { return Coord{X: c.X, Z: c.Z - 1, Space: c.Space} }
func (c Coord) South() Coord { return Coord{X: c.X, Z: c.Z + 1, Space: c.Space} }

// Offset moves coordinate by dx/dz units of its own space
func (c Coord) Offset(dx, dz int) Coord {
	return Coord{X: c.X + dx, Z: c.Z + dz, Space: c.Space}
}

// Local returns position inside of the containing parent unit,
// e.g. chunk index inside of region for chunk coordinates.
func (c Coord) Local(parent Space) (int, int) {
	d := parent.shift() - c.Space.shift()
	if d <= 0 {
		return 0, 0
	}
	m := 1<<d - 1
	return c.X & m, c.Z & m
}

func (c Coord) String() string {
	return fmt.Sprintf("%s[%d %d]", c.Space, c.X, c.Z)
}
