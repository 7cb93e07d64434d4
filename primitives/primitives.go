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

import "fmt"

// TileLocation addresses one persisted tile file.
type TileLocation struct {
	World, Renderer string
	Zoom, X, Z      int
}

func (i TileLocation) String() string {
	return fmt.Sprintf("{%s:%s at %dz %dx %dz}", i.World, i.Renderer, i.Zoom, i.X, i.Z)
}

// TileOf returns location of zoom-out tile that covers given region.
func TileOf(world, renderer string, region Coord, zoom int) TileLocation {
	r := region.Region()
	return TileLocation{
		World:    world,
		Renderer: renderer,
		Zoom:     zoom,
		X:        r.X >> zoom,
		Z:        r.Z >> zoom,
	}
}
