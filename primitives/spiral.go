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

package primitives

type direction int

const (
	dirEast direction = iota
	dirSouth
	dirWest
	dirNorth
)

func (d direction) clockwise() direction {
	return (d + 1) % 4
}

// Spiral walks coordinates clockwise outwards from the center,
// visiting exactly (2R+1)^2 positions. It is not safe for
// concurrent use and can not be restarted.
type Spiral struct {
	cur     Coord
	dir     direction
	legLen  int
	legLeft int
	turns   int
	emitted int
	total   int
	started bool
}

func NewSpiral(center Coord, radius int) *Spiral {
	if radius < 0 {
		radius = 0
	}
	side := 2*radius + 1
	return &Spiral{
		cur:     center,
		dir:     dirWest,
		legLen:  1,
		legLeft: 1,
		total:   side * side,
	}
}

// Remaining reports how many coordinates are left to be yielded
func (s *Spiral) Remaining() int {
	return s.total - s.emitted
}

// Next returns next coordinate of the spiral, false when exhausted.
func (s *Spiral) Next() (Coord, bool) {
	if s.emitted >= s.total {
		return Coord{}, false
	}
	if !s.started {
		s.started = true
		s.emitted++
		return s.cur, true
	}
	switch s.dir {
	case dirEast:
		s.cur = s.cur.East()
	case dirSouth:
		s.cur = s.cur.South()
	case dirWest:
		s.cur = s.cur.West()
	case dirNorth:
		s.cur = s.cur.North()
	}
	s.legLeft--
	if s.legLeft == 0 {
		s.dir = s.dir.clockwise()
		s.turns++
		if s.turns%2 == 0 {
			s.legLen++
		}
		s.legLeft = s.legLen
	}
	s.emitted++
	return s.cur, true
}
