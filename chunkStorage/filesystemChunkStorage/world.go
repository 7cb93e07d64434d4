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

package filesystemChunkStorage

import (
	"os"
	"path"
	"sort"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
)

var dimensionFolders = map[string]string{
	"overworld":  "region",
	"the_nether": path.Join("DIM-1", "region"),
	"the_end":    path.Join("DIM1", "region"),
}

func dirExists(p string) bool {
	fi, err := os.Stat(p)
	if err == nil {
		return fi.IsDir()
	} else {
		return false
	}
}

func (s *FilesystemChunkStorage) ListWorlds() ([]string, error) {
	e, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}
	worlds := []string{}
	for _, f := range e {
		if !f.IsDir() {
			continue
		}
		wpath := path.Join(s.Root, f.Name())
		if !checkValidWorld(wpath) {
			continue
		}
		worlds = append(worlds, f.Name())
		for _, dim := range []string{"the_nether", "the_end"} {
			if dirExists(path.Join(wpath, dimensionFolders[dim])) {
				worlds = append(worlds, f.Name()+"@"+dim)
			}
		}
	}
	sort.Strings(worlds)
	return worlds, nil
}

// Spawn reads spawn point from level.dat, world without one spawns at 0 0
func (s *FilesystemChunkStorage) Spawn(wname string) (primitives.Coord, error) {
	world, _ := chunkStorage.SplitWorldName(wname)
	wpath := path.Join(s.Root, world)
	if !dirExists(wpath) {
		return primitives.BlockCoord(0, 0), chunkStorage.ErrNoWorld
	}
	l, err := readSaveLevel(path.Join(wpath, "level.dat"))
	if err != nil {
		if os.IsNotExist(err) {
			return primitives.BlockCoord(0, 0), nil
		}
		return primitives.BlockCoord(0, 0), err
	}
	return primitives.BlockCoord(int(l.SpawnX), int(l.SpawnZ)), nil
}
