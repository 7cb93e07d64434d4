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

package renderers

import (
	"math"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/colors"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
)

// apparent depth added by every fluid block
const fluidDepthStep = 0.025

type basicRenderer struct {
	tile *imagecache.TileImage
	pal  *palette.Palette
	opts render.Options
}

func NewBasicRenderer(s *render.Scan) render.Renderer {
	return &basicRenderer{
		tile: s.Tile(Basic),
		pal:  s.Palette,
		opts: s.Options,
	}
}

func (r *basicRenderer) Name() string {
	return Basic
}

func (r *basicRenderer) fluidColor(c *render.Column) uint32 {
	if c.Fluid == chunkStorage.FluidLava {
		return r.pal.Lava
	}
	return r.pal.WaterColor(c.Biome)
}

// blendFluid makes shallow fluid see-through and deep one dark
func blendFluid(ground, fluid uint32, layers int, lava bool) uint32 {
	depth := math.Min(1, float64(layers+1)*fluidDepthStep)
	if lava {
		depth = math.Min(1, depth*4)
	}
	ret := colors.LerpARGB(ground, fluid, colors.CubicOut(depth))
	return colors.LerpARGB(ret, colors.Shade(fluid, 0.5), colors.QuinticOut(depth)*0.5)
}

func (r *basicRenderer) RenderColumn(c *render.Column) {
	color := r.pal.BlockInBiome(c.Ground.Name, c.Biome)
	if r.opts.TranslucentFluids && c.Fluid != chunkStorage.FluidNone && c.Ground != c.Top {
		color = blendFluid(color, r.fluidColor(c), c.FluidDepth, c.Fluid == chunkStorage.FluidLava)
	}
	color = colors.Mix(colors.SetAlpha(0xFF, color), r.opts.Heightmap.Shade(c))
	r.tile.SetPixel(c.X, c.Z, color)
}
