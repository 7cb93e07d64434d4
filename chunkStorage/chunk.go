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
	"sort"
	"strings"

	"github.com/maxsupermanhd/livemap/primitives"
)

type BlockState struct {
	Name        string
	Waterlogged bool
}

var AirState = BlockState{Name: "air"}

type Fluid int

const (
	FluidNone Fluid = iota
	FluidWater
	FluidLava
)

func (f Fluid) String() string {
	switch f {
	case FluidWater:
		return "water"
	case FluidLava:
		return "lava"
	default:
		return "none"
	}
}

// blocks that are always submerged
var alwaysWaterlogged = map[string]bool{
	"water":         true,
	"bubble_column": true,
	"seagrass":      true,
	"tall_seagrass": true,
	"kelp":          true,
	"kelp_plant":    true,
}

func (b BlockState) Fluid() Fluid {
	if b.Name == "lava" {
		return FluidLava
	}
	if b.Waterlogged || alwaysWaterlogged[b.Name] {
		return FluidWater
	}
	return FluidNone
}

// IsFluidBlock reports block that is the fluid itself rather than
// a block submerged in it.
func (b BlockState) IsFluidBlock() bool {
	return b.Name == "water" || b.Name == "lava" || b.Name == "bubble_column"
}

func (b BlockState) IsAir() bool {
	switch b.Name {
	case "", "air", "cave_air", "void_air":
		return true
	}
	return false
}

// Section is 16x16x16 cube of palette-indexed blocks and 4x4x4 biomes.
// Index order is y*256 + z*16 + x, same as in region files.
type Section struct {
	Y            int
	Palette      []BlockState
	Blocks       []uint16 // nil when palette has single entry
	BiomePalette []string
	Biomes       []uint8 // nil when biome palette has single entry
}

func (s *Section) Block(x, y, z int) BlockState {
	if len(s.Palette) == 0 {
		return AirState
	}
	if s.Blocks == nil {
		return s.Palette[0]
	}
	i := int(s.Blocks[(y&15)<<8|(z&15)<<4|(x&15)])
	if i >= len(s.Palette) {
		return AirState
	}
	return s.Palette[i]
}

func (s *Section) Biome(x, y, z int) string {
	if len(s.BiomePalette) == 0 {
		return ""
	}
	if s.Biomes == nil {
		return s.BiomePalette[0]
	}
	i := int(s.Biomes[((y&15)>>2)<<4|((z&15)>>2)<<2|(x&15)>>2])
	if i >= len(s.BiomePalette) {
		return ""
	}
	return s.BiomePalette[i]
}

func (s *Section) setBlock(x, y, z int, b BlockState) {
	idx := -1
	for i, p := range s.Palette {
		if p == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.Palette = append(s.Palette, b)
		idx = len(s.Palette) - 1
	}
	if s.Blocks == nil {
		if idx == 0 && len(s.Palette) == 1 {
			return
		}
		s.Blocks = make([]uint16, 16*16*16)
	}
	s.Blocks[(y&15)<<8|(z&15)<<4|(x&15)] = uint16(idx)
}

func (s *Section) setBiome(x, y, z int, b string) {
	idx := -1
	for i, p := range s.BiomePalette {
		if p == b {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.BiomePalette = append(s.BiomePalette, b)
		idx = len(s.BiomePalette) - 1
	}
	if s.Biomes == nil {
		if idx == 0 && len(s.BiomePalette) == 1 {
			return
		}
		s.Biomes = make([]uint8, 4*4*4)
	}
	s.Biomes[((y&15)>>2)<<4|((z&15)>>2)<<2|(x&15)>>2] = uint8(idx)
}

// Chunk is a 16 block wide column of sections. Block accessors
// take world or local coordinates, only low 4 bits of x and z are used.
type Chunk struct {
	X, Z          int
	Sections      []Section // sorted by Y ascending
	InhabitedTime int64
}

func NewChunk(cx, cz int) *Chunk {
	return &Chunk{X: cx, Z: cz}
}

func (c *Chunk) Pos() primitives.Coord {
	return primitives.ChunkCoord(c.X, c.Z)
}

func (c *Chunk) section(y int) *Section {
	sy := y >> 4
	n := len(c.Sections)
	if n == 0 {
		return nil
	}
	// sections are usually contiguous
	if i := sy - c.Sections[0].Y; i >= 0 && i < n && c.Sections[i].Y == sy {
		return &c.Sections[i]
	}
	i := sort.Search(n, func(i int) bool { return c.Sections[i].Y >= sy })
	if i < n && c.Sections[i].Y == sy {
		return &c.Sections[i]
	}
	return nil
}

func (c *Chunk) sectionForWrite(y int) *Section {
	if s := c.section(y); s != nil {
		return s
	}
	sy := y >> 4
	i := sort.Search(len(c.Sections), func(i int) bool { return c.Sections[i].Y >= sy })
	c.Sections = append(c.Sections, Section{})
	copy(c.Sections[i+1:], c.Sections[i:])
	c.Sections[i] = Section{Y: sy, Palette: []BlockState{AirState}}
	return &c.Sections[i]
}

// MinY is lowest block y covered by sections
func (c *Chunk) MinY() int {
	if len(c.Sections) == 0 {
		return 0
	}
	return c.Sections[0].Y << 4
}

// MaxY is highest block y covered by sections
func (c *Chunk) MaxY() int {
	if len(c.Sections) == 0 {
		return -1
	}
	return c.Sections[len(c.Sections)-1].Y<<4 + 15
}

func (c *Chunk) Block(x, y, z int) BlockState {
	s := c.section(y)
	if s == nil {
		return AirState
	}
	return s.Block(x, y, z)
}

func (c *Chunk) Biome(x, y, z int) string {
	s := c.section(y)
	if s == nil {
		return ""
	}
	return s.Biome(x, y, z)
}

func (c *Chunk) Fluid(x, y, z int) Fluid {
	return c.Block(x, y, z).Fluid()
}

func (c *Chunk) SetBlock(x, y, z int, b BlockState) {
	b.Name = strings.TrimPrefix(b.Name, "minecraft:")
	c.sectionForWrite(y).setBlock(x, y, z, b)
}

func (c *Chunk) SetBiome(x, y, z int, biome string) {
	c.sectionForWrite(y).setBiome(x, y, z, strings.TrimPrefix(biome, "minecraft:"))
}

// FillBiome sets biome for every section present in the chunk
func (c *Chunk) FillBiome(biome string) {
	biome = strings.TrimPrefix(biome, "minecraft:")
	for i := range c.Sections {
		c.Sections[i].BiomePalette = []string{biome}
		c.Sections[i].Biomes = nil
	}
}

func sortSections(s []Section) {
	sort.Slice(s, func(i, j int) bool { return s[i].Y < s[j].Y })
}
