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
	"github.com/maxsupermanhd/livemap/colors"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
)

type biomeRenderer struct {
	overlay
	pal *palette.Palette
}

func NewBiomeRenderer(s *render.Scan) render.Renderer {
	return &biomeRenderer{overlay: newOverlay(s, Biome), pal: s.Palette}
}

func (r *biomeRenderer) RenderColumn(c *render.Column) {
	base := r.basePixel(c)
	if base == 0 {
		return
	}
	b := r.pal.Biome(c.Biome).Map
	if b == 0 {
		r.tile.SetPixel(c.X, c.Z, base)
		return
	}
	r.tile.SetPixel(c.X, c.Z, colors.Mix(base, colors.SetAlpha(0xAA, b)))
}
