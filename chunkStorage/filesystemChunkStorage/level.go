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
	"compress/gzip"
	"os"

	"github.com/Tnze/go-mc/save"
)

// reads level data from file
func readSaveLevel(path string) (*save.LevelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gf, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gf.Close()
	d, err := save.ReadLevel(gf)
	if err != nil {
		return nil, err
	}
	return &d.Data, err
}

// checks that directory is a valid world directory
func checkValidWorld(path string) bool {
	dir, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, k := range dir {
		if k.Name() == "level.dat" && k.Type().IsRegular() {
			return true
		}
		if k.Name() == "region" && k.IsDir() {
			return true
		}
	}
	return false
}
