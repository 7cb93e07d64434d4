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
	"sort"
	"sync"
	"time"

	"github.com/maxsupermanhd/livemap/primitives"
)

// MemoryChunkStorage keeps synthetic worlds in memory
type MemoryChunkStorage struct {
	lock   sync.RWMutex
	worlds map[string]*memoryWorld
	// LoadDelay slows down every LoadRegion call
	LoadDelay time.Duration
}

type memoryWorld struct {
	spawn   primitives.Coord
	regions map[primitives.Coord]*Region
}

func NewMemoryChunkStorage() *MemoryChunkStorage {
	return &MemoryChunkStorage{
		worlds: map[string]*memoryWorld{},
	}
}

func (s *MemoryChunkStorage) world(wname string) *memoryWorld {
	w, ok := s.worlds[wname]
	if !ok {
		w = &memoryWorld{
			spawn:   primitives.BlockCoord(0, 0),
			regions: map[primitives.Coord]*Region{},
		}
		s.worlds[wname] = w
	}
	return w
}

// AddWorld creates empty world if it does not exist yet
func (s *MemoryChunkStorage) AddWorld(wname string) {
	s.lock.Lock()
	s.world(wname)
	s.lock.Unlock()
}

func (s *MemoryChunkStorage) AddChunk(wname string, c *Chunk) {
	s.lock.Lock()
	defer s.lock.Unlock()
	w := s.world(wname)
	rpos := c.Pos().Region()
	r, ok := w.regions[rpos]
	if !ok {
		r = NewRegion(rpos.X, rpos.Z)
		w.regions[rpos] = r
	}
	r.SetChunk(c)
}

func (s *MemoryChunkStorage) SetSpawn(wname string, pos primitives.Coord) {
	s.lock.Lock()
	s.world(wname).spawn = pos.Block()
	s.lock.Unlock()
}

func (s *MemoryChunkStorage) GetStatus() (string, error) {
	return "memory", nil
}

func (s *MemoryChunkStorage) ListWorlds() ([]string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	ret := make([]string, 0, len(s.worlds))
	for k := range s.worlds {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret, nil
}

func (s *MemoryChunkStorage) ListRegions(wname string) ([]primitives.Coord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	w, ok := s.worlds[wname]
	if !ok {
		return nil, ErrNoWorld
	}
	ret := make([]primitives.Coord, 0, len(w.regions))
	for k := range w.regions {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Z != ret[j].Z {
			return ret[i].Z < ret[j].Z
		}
		return ret[i].X < ret[j].X
	})
	return ret, nil
}

func (s *MemoryChunkStorage) LoadRegion(ctx context.Context, wname string, pos primitives.Coord) (*Region, error) {
	if s.LoadDelay > 0 {
		t := time.NewTimer(s.LoadDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	pos = pos.Region()
	s.lock.RLock()
	defer s.lock.RUnlock()
	w, ok := s.worlds[wname]
	if !ok {
		return nil, ErrNoWorld
	}
	r, ok := w.regions[pos]
	if !ok {
		return NewRegion(pos.X, pos.Z), nil
	}
	ret := *r
	return &ret, nil
}

func (s *MemoryChunkStorage) LoadChunk(ctx context.Context, wname string, pos primitives.Coord) (*Chunk, error) {
	pos = pos.Chunk()
	s.lock.RLock()
	defer s.lock.RUnlock()
	w, ok := s.worlds[wname]
	if !ok {
		return nil, ErrNoWorld
	}
	r, ok := w.regions[pos.Region()]
	if !ok {
		return nil, nil
	}
	return r.ChunkAt(pos.X, pos.Z), nil
}

func (s *MemoryChunkStorage) Spawn(wname string) (primitives.Coord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	w, ok := s.worlds[wname]
	if !ok {
		return primitives.BlockCoord(0, 0), ErrNoWorld
	}
	return w.spawn, nil
}

func (s *MemoryChunkStorage) Close() error {
	return nil
}

// NewFlatChunk builds chunk filled with layers of blocks starting at minY,
// first layer is the lowest.
func NewFlatChunk(cx, cz, minY int, biome string, layers ...BlockState) *Chunk {
	c := NewChunk(cx, cz)
	for i, b := range layers {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				c.SetBlock(x, minY+i, z, b)
			}
		}
	}
	if len(c.Sections) == 0 {
		c.sectionForWrite(minY)
	}
	if biome != "" {
		c.FillBiome(biome)
	}
	return c
}
