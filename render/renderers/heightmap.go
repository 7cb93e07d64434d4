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
	heightLow  = 0xFF0000FF
	heightHigh = 0xFFFF0000
	// y range mapped from heightLow to heightHigh
	heightFloor   = -64
	heightCeiling = 320
)

type heightmapRenderer struct {
	overlay
}

// NewHeightmapRenderer paints elevation over terrain
func NewHeightmapRenderer(s *render.Scan) render.Renderer {
	return &heightmapRenderer{overlay: newOverlay(s, Heightmap)}
}

func (r *heightmapRenderer) RenderColumn(c *render.Column) {
	base := r.basePixel(c)
	if base == 0 {
		return
	}
	ratio := float64(c.Y-heightFloor) / float64(heightCeiling-heightFloor)
	elevation := colors.LerpHSB(heightLow, heightHigh, ratio, false)
	r.tile.SetPixel(c.X, c.Z, colors.Mix(base, colors.SetAlpha(0xB0, elevation)))
}
