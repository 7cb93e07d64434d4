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

package colors

import "math"

// RGBToHSB converts rgb channels into hue, saturation and brightness in [0, 1].
func RGBToHSB(r, g, b int) (h, s, v float64) {
	cmax := max(r, g, b)
	cmin := min(r, g, b)
	v = float64(cmax) / 255
	if cmax != 0 {
		s = float64(cmax-cmin) / float64(cmax)
	}
	if s == 0 {
		return 0, s, v
	}
	d := float64(cmax - cmin)
	rc := float64(cmax-r) / d
	gc := float64(cmax-g) / d
	bc := float64(cmax-b) / d
	switch {
	case r == cmax:
		h = bc - gc
	case g == cmax:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h /= 6
	if h < 0 {
		h++
	}
	return h, s, v
}

// HSBToRGB converts hue, saturation and brightness back to rgb channels.
// Hue wraps around, saturation and brightness are clamped.
func HSBToRGB(h, s, v float64) (r, g, b int) {
	s = clamp01(s)
	v = clamp01(v)
	if s == 0 {
		c := int(v*255 + 0.5)
		return c, c, c
	}
	h = (h - math.Floor(h)) * 6
	f := h - math.Floor(h)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var rf, gf, bf float64
	switch int(h) {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	default:
		rf, gf, bf = v, p, q
	}
	return int(rf*255 + 0.5), int(gf*255 + 0.5), int(bf*255 + 0.5)
}

// LerpHSB interpolates two colors in hue/saturation/brightness space.
// With shortWay hue takes the shorter arc around the color wheel,
// otherwise it moves linearly between the two hue values.
func LerpHSB(from, to uint32, ratio float64, shortWay bool) uint32 {
	ratio = clamp01(ratio)
	h1, s1, v1 := RGBToHSB(Red(from), Green(from), Blue(from))
	h2, s2, v2 := RGBToHSB(Red(to), Green(to), Blue(to))
	if shortWay {
		if h2-h1 > 0.5 {
			h1++
		} else if h1-h2 > 0.5 {
			h2++
		}
	}
	h := h1 + (h2-h1)*ratio
	s := s1 + (s2-s1)*ratio
	v := v1 + (v2-v1)*ratio
	r, g, b := HSBToRGB(h, s, v)
	return ARGB(lerpChannel(Alpha(from), Alpha(to), ratio), r, g, b)
}
