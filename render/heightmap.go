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

package render

import (
	"fmt"
	"strings"
)

// Heightmap selects which neighbors shade a column.
type Heightmap int

const (
	HeightmapNone Heightmap = iota
	HeightmapEvenOdd
	HeightmapOldSchool
	HeightmapModern
)

const (
	ShadeBaseline = 0x22
	ShadeMax      = 0x44
)

var heightmapNames = map[Heightmap]string{
	HeightmapNone:      "none",
	HeightmapEvenOdd:   "even-odd",
	HeightmapOldSchool: "old-school",
	HeightmapModern:    "modern",
}

func (h Heightmap) String() string {
	if n, ok := heightmapNames[h]; ok {
		return n
	}
	return fmt.Sprintf("Heightmap(%d)", int(h))
}

func ParseHeightmap(s string) (Heightmap, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return HeightmapModern, nil
	}
	for k, v := range heightmapNames {
		if v == s {
			return k, nil
		}
	}
	return HeightmapNone, fmt.Errorf("unknown heightmap %q", s)
}

// ShadeStep darkens column that is lower than its neighbor and
// lightens one that is higher, result stays in [0, ShadeMax].
func ShadeStep(y, neighborY, shade, step int) int {
	if y < neighborY {
		shade += step
	} else if y > neighborY {
		shade -= step
	}
	if shade < 0 {
		return 0
	}
	if shade > ShadeMax {
		return ShadeMax
	}
	return shade
}

// Shade returns black color with shade in alpha, meant to be
// mixed over column color.
func (h Heightmap) Shade(c *Column) uint32 {
	shade := ShadeBaseline
	switch h {
	case HeightmapNone:
		return 0
	case HeightmapOldSchool:
		if c.HasWest {
			shade = ShadeStep(c.Y, c.West, shade, 0x22)
		}
	case HeightmapModern:
		if c.HasWest {
			shade = ShadeStep(c.Y, c.West, shade, 0x11)
		}
		if c.HasNorth {
			shade = ShadeStep(c.Y, c.North, shade, 0x11)
		}
	case HeightmapEvenOdd:
		if c.HasWest {
			shade = ShadeStep(c.Y, c.West, shade, 0x11)
		}
		if c.Y&1 == 1 {
			shade = ShadeStep(0, 1, shade, 0x11)
		}
	}
	return uint32(shade) << 24
}
