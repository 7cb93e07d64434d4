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

package imagecache

import (
	"github.com/maxsupermanhd/livemap/primitives"
)

const (
	TileSize = primitives.RegionSize
	tileMask = TileSize - 1
)

// TileImage is a zoom 0 tile of one region for one renderer. It is owned
// by a single scan until Save.
type TileImage struct {
	World    string
	Renderer string
	Region   primitives.Coord
	pixels   []uint32
	written  bool
}

func NewTileImage(world, renderer string, region primitives.Coord) *TileImage {
	return &TileImage{
		World:    world,
		Renderer: renderer,
		Region:   region.Region(),
		pixels:   make([]uint32, TileSize*TileSize),
	}
}

// SetPixel takes tile-local or absolute block coordinates. Zero is reserved
// as "not drawn" and is skipped when merging into existing tiles.
func (t *TileImage) SetPixel(x, z int, argb uint32) {
	t.pixels[(z&tileMask)*TileSize+(x&tileMask)] = argb
	t.written = true
}

func (t *TileImage) GetPixel(x, z int) uint32 {
	return t.pixels[(z&tileMask)*TileSize+(x&tileMask)]
}

func (t *TileImage) Written() bool {
	return t.written
}

// downsampled returns color of the 2^zoom block starting at x z or 0
// when the block corner is not drawn.
func (t *TileImage) downsampled(x, z, zoom int) uint32 {
	p := t.pixels[z*TileSize+x]
	if zoom == 0 || p == 0 {
		return p
	}
	step := 1 << zoom
	var a, r, g, b, n uint32
	for dz := 0; dz < step; dz++ {
		row := (z + dz) * TileSize
		for dx := 0; dx < step; dx++ {
			c := t.pixels[row+x+dx]
			a += c >> 24
			r += (c >> 16) & 0xFF
			g += (c >> 8) & 0xFF
			b += c & 0xFF
			n++
		}
	}
	return (a/n)<<24 | (r/n)<<16 | (g/n)<<8 | b/n
}
