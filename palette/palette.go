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

// Package palette maps block, biome and flower names to ARGB colors.
package palette

import (
	"strings"
	"sync/atomic"

	"github.com/maxsupermanhd/livemap/colors"
)

type BiomeColors struct {
	Grass   uint32
	Foliage uint32
	Water   uint32
	Map     uint32 // flat color used by biome renderer
}

type Tint int

const (
	TintNone Tint = iota
	TintGrass
	TintFoliage
	TintWater
)

// Palette is read-only after construction and safe to share between
// render workers. Use Holder to swap palettes at runtime.
type Palette struct {
	Blocks       map[string]uint32
	Biomes       map[string]BiomeColors
	Flowers      map[string]uint32
	Tints        map[string]Tint
	Invisible    map[string]bool
	DefaultBiome BiomeColors
	Water        uint32
	Lava         uint32
	Unknown      uint32
}

// Normalize strips namespace used by the game from block and biome ids
func Normalize(name string) string {
	return strings.TrimPrefix(name, "minecraft:")
}

func (p *Palette) IsInvisible(block string) bool {
	return p.Invisible[Normalize(block)]
}

// Block returns base color of the block without biome tint.
func (p *Palette) Block(block string) (uint32, bool) {
	c, ok := p.Blocks[Normalize(block)]
	return c, ok
}

func (p *Palette) Biome(biome string) BiomeColors {
	b, ok := p.Biomes[Normalize(biome)]
	if !ok {
		return p.DefaultBiome
	}
	return b
}

func (p *Palette) TintOf(block string) Tint {
	return p.Tints[Normalize(block)]
}

// BlockInBiome resolves final opaque block color with biome tint applied,
// blocks absent from the palette get Unknown color.
func (p *Palette) BlockInBiome(block, biome string) uint32 {
	name := Normalize(block)
	base, ok := p.Blocks[name]
	if !ok {
		base = p.Unknown
	}
	var tint uint32
	switch p.Tints[name] {
	case TintGrass:
		tint = p.Biome(biome).Grass
	case TintFoliage:
		tint = p.Biome(biome).Foliage
	case TintWater:
		tint = p.Biome(biome).Water
	default:
		return base
	}
	if !ok {
		return tint
	}
	return colors.Tint(base, tint)
}

// WaterColor is water tint of the biome
func (p *Palette) WaterColor(biome string) uint32 {
	w := p.Biome(biome).Water
	if w == 0 {
		return p.Water
	}
	return w
}

func (p *Palette) Flower(block string) (uint32, bool) {
	c, ok := p.Flowers[Normalize(block)]
	return c, ok
}

// Clone makes a deep copy so it can be amended without affecting readers
func (p *Palette) Clone() *Palette {
	n := *p
	n.Blocks = make(map[string]uint32, len(p.Blocks))
	for k, v := range p.Blocks {
		n.Blocks[k] = v
	}
	n.Biomes = make(map[string]BiomeColors, len(p.Biomes))
	for k, v := range p.Biomes {
		n.Biomes[k] = v
	}
	n.Flowers = make(map[string]uint32, len(p.Flowers))
	for k, v := range p.Flowers {
		n.Flowers[k] = v
	}
	n.Tints = make(map[string]Tint, len(p.Tints))
	for k, v := range p.Tints {
		n.Tints[k] = v
	}
	n.Invisible = make(map[string]bool, len(p.Invisible))
	for k, v := range p.Invisible {
		n.Invisible[k] = v
	}
	return &n
}

// Holder allows palette replacement while renders are running,
// each render picks the palette once when it starts.
type Holder struct {
	p atomic.Pointer[Palette]
}

func NewHolder(p *Palette) *Holder {
	h := &Holder{}
	h.p.Store(p)
	return h
}

func (h *Holder) Get() *Palette {
	return h.p.Load()
}

func (h *Holder) Set(p *Palette) {
	h.p.Store(p)
}
