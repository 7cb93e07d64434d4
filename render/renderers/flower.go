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

const flowerBackdrop = 0x66000000

type flowerRenderer struct {
	overlay
	pal *palette.Palette
}

// NewFlowerRenderer highlights flowers over dimmed terrain
func NewFlowerRenderer(s *render.Scan) render.Renderer {
	return &flowerRenderer{overlay: newOverlay(s, Flower), pal: s.Palette}
}

func (r *flowerRenderer) RenderColumn(c *render.Column) {
	if f, ok := r.pal.Flower(c.Top.Name); ok {
		r.tile.SetPixel(c.X, c.Z, colors.SetAlpha(0xFF, f))
		return
	}
	base := r.basePixel(c)
	if base == 0 {
		return
	}
	r.tile.SetPixel(c.X, c.Z, colors.Mix(colors.Grayscale(base), flowerBackdrop))
}
