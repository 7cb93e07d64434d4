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

// Package render turns loaded regions into tile pixels.
package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/primitives"
)

var (
	ErrUnknownRenderer     = errors.New("unknown renderer")
	ErrDuplicateRenderer   = errors.New("renderer already registered")
	ErrMissingBaseRenderer = errors.New("base renderer is not active")
)

// Renderer paints columns of one region into its own tile.
// Instances are built per region and are not shared between goroutines.
type Renderer interface {
	Name() string
	RenderColumn(c *Column)
}

type Factory func(s *Scan) Renderer

type Options struct {
	Heightmap         Heightmap
	TranslucentFluids bool
	// inhabited time in ticks that is painted with the hottest color
	InhabitedLimit int64
}

const DefaultInhabitedLimit = 20 * 60 * 60 * 20 // 20 hours

// Scan holds everything renderers of a single region scan share.
type Scan struct {
	World   string
	Region  primitives.Coord
	Palette *palette.Palette
	Options Options
	tiles   map[string]*imagecache.TileImage
	order   []string
}

func NewScan(world string, region primitives.Coord, pal *palette.Palette, opts Options) *Scan {
	if opts.InhabitedLimit <= 0 {
		opts.InhabitedLimit = DefaultInhabitedLimit
	}
	return &Scan{
		World:   world,
		Region:  region.Region(),
		Palette: pal,
		Options: opts,
		tiles:   map[string]*imagecache.TileImage{},
	}
}

// Tile returns tile of named renderer, overlays use it to read
// pixels of their base.
func (s *Scan) Tile(renderer string) *imagecache.TileImage {
	t, ok := s.tiles[renderer]
	if !ok {
		t = imagecache.NewTileImage(s.World, renderer, s.Region)
		s.tiles[renderer] = t
		s.order = append(s.order, renderer)
	}
	return t
}

// Tiles in order they were first requested
func (s *Scan) Tiles() []*imagecache.TileImage {
	ret := make([]*imagecache.TileImage, 0, len(s.order))
	for _, n := range s.order {
		ret = append(ret, s.tiles[n])
	}
	return ret
}

type registered struct {
	depends string
	factory Factory
}

// Registry of known renderers, owned by whoever starts renders.
type Registry struct {
	lock      sync.RWMutex
	renderers map[string]registered
}

func NewRegistry() *Registry {
	return &Registry{renderers: map[string]registered{}}
}

// Register adds renderer, depends names renderer whose tile is read back
// or is empty.
func (r *Registry) Register(name, depends string, f Factory) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.renderers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, name)
	}
	r.renderers[name] = registered{depends: depends, factory: f}
	return nil
}

func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ret := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (r *Registry) Depends(name string) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.renderers[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRenderer, name)
	}
	return v.depends, nil
}

// Resolve validates set of active renderers and orders it so
// every base goes before renderers that read it.
func (r *Registry) Resolve(names []string) ([]string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	active := map[string]bool{}
	for _, n := range names {
		if _, ok := r.renderers[n]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, n)
		}
		active[n] = true
	}
	ret := []string{}
	placed := map[string]bool{}
	var place func(n string, depth int) error
	place = func(n string, depth int) error {
		if placed[n] {
			return nil
		}
		if depth > len(r.renderers) {
			return fmt.Errorf("renderer %s depends on itself", n)
		}
		d := r.renderers[n].depends
		if d != "" {
			if !active[d] {
				return fmt.Errorf("%w: %s needs %s", ErrMissingBaseRenderer, n, d)
			}
			if err := place(d, depth+1); err != nil {
				return err
			}
		}
		placed[n] = true
		ret = append(ret, n)
		return nil
	}
	for _, n := range names {
		if err := place(n, 0); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// New builds renderers for one region scan in given order
func (r *Registry) New(names []string, s *Scan) ([]Renderer, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	ret := make([]Renderer, 0, len(names))
	for _, n := range names {
		v, ok := r.renderers[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRenderer, n)
		}
		ret = append(ret, v.factory(s))
	}
	return ret, nil
}
