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

package imagecache

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/livemap/primitives"
)

const (
	DefaultMaxZoom = 3
	// more than that makes single region smaller than a pixel
	MaxZoomLimit = 9
)

type Options struct {
	Root    string
	Format  string
	MaxZoom int
}

// ImageCache persists tiles on disk, merging every write into zoom
// levels 0..MaxZoom.
type ImageCache struct {
	logger  *log.Logger
	root    string
	codec   Codec
	maxZoom int
	locks   sync.Map // file path -> *sync.RWMutex

	statSaved  atomic.Int64
	statFailed atomic.Int64
}

func NewImageCache(logger *log.Logger, opts Options) (*ImageCache, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	codec, err := CodecByName(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, opts.Format)
	}
	if opts.MaxZoom < 0 || opts.MaxZoom > MaxZoomLimit {
		logger.Printf("Max zoom %d out of range, defaulting to %d!", opts.MaxZoom, DefaultMaxZoom)
		opts.MaxZoom = DefaultMaxZoom
	}
	if opts.Root == "" {
		opts.Root = "tiles"
	}
	return &ImageCache{
		logger:  logger,
		root:    opts.Root,
		codec:   codec,
		maxZoom: opts.MaxZoom,
	}, nil
}

func (c *ImageCache) Root() string {
	return c.root
}

func (c *ImageCache) MaxZoom() int {
	return c.maxZoom
}

func (c *ImageCache) Ext() string {
	return c.codec.Ext
}

func (c *ImageCache) lock(fp string) *sync.RWMutex {
	l, _ := c.locks.LoadOrStore(fp, &sync.RWMutex{})
	return l.(*sync.RWMutex)
}

// Save merges tile into every zoom level. Failure of one level does not
// stop the others, all of them are returned together.
func (c *ImageCache) Save(t *TileImage) error {
	if !t.Written() {
		return nil
	}
	var ret error
	for zoom := 0; zoom <= c.maxZoom; zoom++ {
		loc := primitives.TileOf(t.World, t.Renderer, t.Region, zoom)
		err := c.saveZoom(t, loc)
		if err != nil {
			c.statFailed.Add(1)
			c.logger.Printf("Failed to save tile %s (%s): %v", loc.String(), c.TilePath(loc), err)
			ret = multierror.Append(ret, err)
			continue
		}
		c.statSaved.Add(1)
	}
	return ret
}

func (c *ImageCache) saveZoom(t *TileImage, loc primitives.TileLocation) error {
	fp := c.TilePath(loc)
	l := c.lock(fp)
	l.Lock()
	defer l.Unlock()

	img, err := c.readTile(fp)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Printf("Replacing unreadable tile %s: %v", fp, err)
		}
		img = image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	}

	step := 1 << loc.Zoom
	size := TileSize >> loc.Zoom
	mask := step - 1
	baseX := (t.Region.X & mask) * size
	baseZ := (t.Region.Z & mask) * size
	for z := 0; z < TileSize; z += step {
		for x := 0; x < TileSize; x += step {
			p := t.downsampled(x, z, loc.Zoom)
			if p == 0 {
				continue
			}
			setNRGBA(img, baseX+x/step, baseZ+z/step, p)
		}
	}
	return c.writeTile(fp, img)
}

// TileModTime returns zero time for tiles that were never saved
func (c *ImageCache) TileModTime(loc primitives.TileLocation) time.Time {
	info, err := os.Stat(c.TilePath(loc))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// LoadTile reads persisted tile, holding shared lock on it
func (c *ImageCache) LoadTile(loc primitives.TileLocation) (*image.NRGBA, error) {
	fp := c.TilePath(loc)
	l := c.lock(fp)
	l.RLock()
	defer l.RUnlock()
	return c.readTile(fp)
}

func (c *ImageCache) TilePath(loc primitives.TileLocation) string {
	return path.Join(c.root, loc.World, loc.Renderer, strconv.Itoa(loc.Zoom),
		strconv.Itoa(loc.X)+"_"+strconv.Itoa(loc.Z)+"."+c.codec.Ext)
}

func (c *ImageCache) GetStats() map[string]any {
	return map[string]any{
		"root":         c.root,
		"format":       c.codec.Ext,
		"max zoom":     c.maxZoom,
		"tiles saved":  c.statSaved.Load(),
		"failed saves": c.statFailed.Load(),
	}
}
