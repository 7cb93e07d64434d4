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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadHex = errors.New("bad hex color")

// ParseHex accepts RRGGBB and AARRGGBB with optional "#" or "0x" prefix,
// colors without alpha are treated as opaque.
func ParseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	switch len(s) {
	case 6, 8:
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrBadHex, s, err)
	}
	if len(s) == 6 {
		v |= 0xFF000000
	}
	return uint32(v), nil
}

// MustParseHex is ParseHex for compile-time constants
func MustParseHex(s string) uint32 {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func Hex(argb uint32) string {
	if Alpha(argb) == 0xFF {
		return fmt.Sprintf("#%06x", argb&0xFFFFFF)
	}
	return fmt.Sprintf("#%08x", argb)
}
