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
	"github.com/maxsupermanhd/livemap/render"
)

const (
	inhabitedCold = 0xFF0000FF
	inhabitedHot  = 0xFFFF0000
)

type inhabitedRenderer struct {
	overlay
	limit int64
}

// NewInhabitedRenderer paints time players spent in chunks as a heat map
func NewInhabitedRenderer(s *render.Scan) render.Renderer {
	return &inhabitedRenderer{overlay: newOverlay(s, Inhabited), limit: s.Options.InhabitedLimit}
}

func (r *inhabitedRenderer) RenderColumn(c *render.Column) {
	base := r.basePixel(c)
	if base == 0 {
		return
	}
	if c.Inhabited <= 0 {
		r.tile.SetPixel(c.X, c.Z, base)
		return
	}
	ratio := float64(c.Inhabited) / float64(r.limit)
	heat := colors.LerpHSB(inhabitedCold, inhabitedHot, colors.CubicOut(ratio), false)
	r.tile.SetPixel(c.X, c.Z, colors.Mix(base, colors.SetAlpha(0xAA, heat)))
}
