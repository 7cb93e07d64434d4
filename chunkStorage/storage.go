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

package chunkStorage

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/livemap/primitives"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoWorld        = errors.New("world not found")
	ErrNoRegion       = errors.New("region not found")
)

// ChunkStorage is a read-only source of terrain. Renderer never writes terrain.
//
// World names may carry a dimension suffix separated by "@",
// for example "survival@the_nether".
type ChunkStorage interface {
	GetStatus() (string, error)
	ListWorlds() ([]string, error)
	// Regions that have at least some data stored
	ListRegions(wname string) ([]primitives.Coord, error)
	// Missing chunks are left nil, region without any chunks
	// is returned as empty region, not an error.
	LoadRegion(ctx context.Context, wname string, pos primitives.Coord) (*Region, error)
	// Single chunk by chunk coordinates, missing chunk is nil without error
	LoadChunk(ctx context.Context, wname string, pos primitives.Coord) (*Chunk, error)
	// Spawn point in block coordinates
	Spawn(wname string) (primitives.Coord, error)
	Close() error
}

type Storage struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Address string       `json:"addr"`
	Driver  ChunkStorage `json:"-"`
}

// SplitWorldName separates dimension from world name, dimension
// defaults to overworld.
func SplitWorldName(wname string) (world, dim string) {
	world, dim, ok := strings.Cut(wname, "@")
	if !ok || dim == "" {
		dim = "overworld"
	}
	return world, strings.TrimPrefix(dim, "minecraft:")
}

func CloseStorages(s map[string]Storage) error {
	var ret error
	for k, c := range s {
		if c.Driver == nil {
			continue
		}
		err := c.Driver.Close()
		if err != nil {
			log.Printf("Error closing storage [%v] of type %v: %v", c.Name, c.Type, err)
			ret = multierror.Append(ret, err)
		}
		c.Driver = nil
		s[k] = c
	}
	return ret
}

func ListWorlds(storages map[string]Storage) []string {
	worlds := []string{}
	for _, s := range storages {
		if s.Driver == nil {
			continue
		}
		w, err := s.Driver.ListWorlds()
		if err != nil {
			log.Printf("Failed to list worlds on storage %s: %s", s.Name, err.Error())
		}
		worlds = append(worlds, w...)
	}
	return worlds
}

// GetWorldStorage finds first initialized storage that has the world
func GetWorldStorage(storages map[string]Storage, wname string) (ChunkStorage, error) {
	world, _ := SplitWorldName(wname)
	for _, s := range storages {
		if s.Driver == nil {
			continue
		}
		worlds, err := s.Driver.ListWorlds()
		if err != nil {
			return nil, err
		}
		for _, w := range worlds {
			if w == wname || w == world {
				return s.Driver, nil
			}
		}
	}
	return nil, ErrNoWorld
}
