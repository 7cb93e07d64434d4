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

// Package colors holds packed 32-bit ARGB helpers used by renderers
// and tile storage. Everything here is pure.
package colors

import "image/color"

// ARGB channels are not premultiplied.
const (
	Transparent uint32 = 0
	Black       uint32 = 0xFF000000
	White       uint32 = 0xFFFFFFFF
)

func Alpha(argb uint32) int { return int(argb>>24) & 0xFF }
func Red(argb uint32) int   { return int(argb>>16) & 0xFF }
func Green(argb uint32) int { return int(argb>>8) & 0xFF }
func Blue(argb uint32) int  { return int(argb) & 0xFF }

// ARGB packs channels, values are expected to be in [0, 255].
func ARGB(a, r, g, b int) uint32 {
	return uint32(a&0xFF)<<24 | uint32(r&0xFF)<<16 | uint32(g&0xFF)<<8 | uint32(b&0xFF)
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// SetAlpha replaces alpha channel of rgb
func SetAlpha(alpha int, rgb uint32) uint32 {
	return uint32(clamp255(alpha))<<24 | rgb&0x00FFFFFF
}

// Mix composites overlay over base.
func Mix(base, overlay uint32) uint32 {
	oa := Alpha(overlay)
	if oa == 0 {
		return base
	}
	if oa == 255 {
		return overlay
	}
	ba := Alpha(base)
	inv := 255 - oa
	a := oa + (ba*inv+127)/255
	ch := func(o, b int) int {
		return clamp255((o*oa + b*inv + 127) / 255)
	}
	return ARGB(a,
		ch(Red(overlay), Red(base)),
		ch(Green(overlay), Green(base)),
		ch(Blue(overlay), Blue(base)))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpChannel(a, b int, t float64) int {
	return clamp255(int(float64(a) + (float64(b)-float64(a))*t + 0.5))
}

// LerpARGB interpolates every channel, t is clamped to [0, 1].
func LerpARGB(from, to uint32, t float64) uint32 {
	t = clamp01(t)
	return ARGB(
		lerpChannel(Alpha(from), Alpha(to), t),
		lerpChannel(Red(from), Red(to), t),
		lerpChannel(Green(from), Green(to), t),
		lerpChannel(Blue(from), Blue(to), t))
}

// Shade multiplies rgb channels by factor keeping alpha
func Shade(argb uint32, factor float64) uint32 {
	return ARGB(Alpha(argb),
		clamp255(int(float64(Red(argb))*factor)),
		clamp255(int(float64(Green(argb))*factor)),
		clamp255(int(float64(Blue(argb))*factor)))
}

// Tint multiplies rgb channels of two colors, alpha is taken from argb.
func Tint(argb, tint uint32) uint32 {
	return ARGB(Alpha(argb),
		Red(argb)*Red(tint)/255,
		Green(argb)*Green(tint)/255,
		Blue(argb)*Blue(tint)/255)
}

// Grayscale keeps alpha and replaces rgb with luma
func Grayscale(argb uint32) uint32 {
	l := (Red(argb)*299 + Green(argb)*587 + Blue(argb)*114) / 1000
	return ARGB(Alpha(argb), l, l, l)
}

func ToNRGBA(argb uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(Red(argb)),
		G: uint8(Green(argb)),
		B: uint8(Blue(argb)),
		A: uint8(Alpha(argb)),
	}
}

func FromNRGBA(c color.NRGBA) uint32 {
	return ARGB(int(c.A), int(c.R), int(c.G), int(c.B))
}

// FromColor converts any color into non-premultiplied ARGB
func FromColor(c color.Color) uint32 {
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}
