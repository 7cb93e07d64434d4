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
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/render"
)

const (
	Basic     = "basic"
	Heightmap = "heightmap"
	Biome     = "biome"
	Flower    = "flower"
	Inhabited = "inhabited"
)

// RegisterDefaults installs built-in renderers
func RegisterDefaults(reg *render.Registry) error {
	for _, r := range []struct {
		name, depends string
		f             render.Factory
	}{
		{Basic, "", NewBasicRenderer},
		{Heightmap, Basic, NewHeightmapRenderer},
		{Biome, Basic, NewBiomeRenderer},
		{Flower, Basic, NewFlowerRenderer},
		{Inhabited, Basic, NewInhabitedRenderer},
	} {
		if err := reg.Register(r.name, r.depends, r.f); err != nil {
			return err
		}
	}
	return nil
}

// overlay is shared part of renderers that paint over basic tile
type overlay struct {
	name string
	tile *imagecache.TileImage
	base *imagecache.TileImage
}

func newOverlay(s *render.Scan, name string) overlay {
	return overlay{
		name: name,
		tile: s.Tile(name),
		base: s.Tile(Basic),
	}
}

func (o *overlay) Name() string {
	return o.name
}

// basePixel is 0 when basic renderer drew nothing there
func (o *overlay) basePixel(c *render.Column) uint32 {
	return o.base.GetPixel(c.X, c.Z)
}
