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
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"strconv"

	"github.com/Tnze/go-mc/save/region"
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
)

var (
	regionFnameRegexp = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)
)

func ExtractRegionPath(fname string, xx, zz *int) bool {
	r := regionFnameRegexp.FindAllStringSubmatch(fname, -1)
	if len(r) != 1 {
		return false
	}
	if len(r[0]) != 3 {
		return false
	}
	var err error
	var x, z int
	x, err = strconv.Atoi(r[0][1])
	if err != nil {
		return false
	}
	z, err = strconv.Atoi(r[0][2])
	if err != nil {
		return false
	}
	if xx != nil {
		*xx = x
	}
	if zz != nil {
		*zz = z
	}
	return true
}

func (s *FilesystemChunkStorage) getRegionFolder(wname string) string {
	world, dim := chunkStorage.SplitWorldName(wname)
	if f, ok := dimensionFolders[dim]; ok {
		return path.Join(s.Root, world, f)
	}
	return path.Join(s.Root, world, "dimensions", "minecraft", dim, "region")
}

func (s *FilesystemChunkStorage) getRegionPath(wname string, rx, rz int) string {
	return path.Join(s.getRegionFolder(wname), fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

func (s *FilesystemChunkStorage) ListRegions(wname string) ([]primitives.Coord, error) {
	world, _ := chunkStorage.SplitWorldName(wname)
	if !dirExists(path.Join(s.Root, world)) {
		return nil, chunkStorage.ErrNoWorld
	}
	e, err := os.ReadDir(s.getRegionFolder(wname))
	if err != nil {
		if os.IsNotExist(err) {
			return []primitives.Coord{}, nil
		}
		return nil, err
	}
	ret := []primitives.Coord{}
	for _, f := range e {
		if !f.Type().IsRegular() {
			continue
		}
		var x, z int
		if !ExtractRegionPath(f.Name(), &x, &z) {
			continue
		}
		if i, err := f.Info(); err == nil && i.Size() == 0 {
			continue
		}
		ret = append(ret, primitives.RegionCoord(x, z))
	}
	return ret, nil
}

func (s *FilesystemChunkStorage) LoadRegion(ctx context.Context, wname string, pos primitives.Coord) (*chunkStorage.Region, error) {
	pos = pos.Region()
	ret := chunkStorage.NewRegion(pos.X, pos.Z)
	fpath := s.getRegionPath(wname, pos.X, pos.Z)
	if _, err := os.Stat(fpath); os.IsNotExist(err) {
		return ret, nil
	}
	r, err := region.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	for z := 0; z < primitives.RegionChunks; z++ {
		for x := 0; x < primitives.RegionChunks; x++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !r.ExistSector(x, z) {
				continue
			}
			d, err := r.ReadSector(x, z)
			if err != nil {
				log.Printf("Failed to read chunk %d:%d of %s: %v", x, z, fpath, err)
				continue
			}
			c, err := chunkStorage.LoadChunk(d)
			if err != nil {
				log.Printf("Failed to load chunk %d:%d of %s: %v", x, z, fpath, err)
				if c == nil {
					continue
				}
			}
			if !ret.SetChunk(c) {
				log.Printf("Chunk %d:%d stored in wrong region file %s", c.X, c.Z, fpath)
			}
		}
	}
	return ret, nil
}

func (s *FilesystemChunkStorage) LoadChunk(ctx context.Context, wname string, pos primitives.Coord) (*chunkStorage.Chunk, error) {
	pos = pos.Chunk()
	rpos := pos.Region()
	fpath := s.getRegionPath(wname, rpos.X, rpos.Z)
	if _, err := os.Stat(fpath); os.IsNotExist(err) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := region.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	lx, lz := pos.Local(primitives.SpaceRegion)
	if !r.ExistSector(lx, lz) {
		return nil, nil
	}
	d, err := r.ReadSector(lx, lz)
	if err != nil {
		return nil, err
	}
	c, err := chunkStorage.LoadChunk(d)
	if c == nil {
		return nil, err
	}
	return c, nil
}
