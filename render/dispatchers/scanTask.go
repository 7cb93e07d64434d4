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

package dispatchers

import (
	"context"
	"fmt"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/primitives"
	"github.com/maxsupermanhd/livemap/render"
)

type rendererFailure struct {
	count int
	first any
}

func renderColumn(r render.Renderer, c *render.Column) (failure any) {
	defer func() {
		if err := recover(); err != nil {
			failure = err
		}
	}()
	r.RenderColumn(c)
	return nil
}

// scanRegion renders one region with every active renderer and saves
// the tiles. Cancelled scan saves nothing.
func (j *WorldRender) scanRegion(ctx context.Context, pos primitives.Coord) (chunks int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scan crashed: %v", r)
		}
	}()
	if err := j.gate.Wait(ctx); err != nil {
		return 0, err
	}
	region, err := j.storage.LoadRegion(ctx, j.world, pos)
	if err != nil {
		return 0, fmt.Errorf("loading region: %w", err)
	}
	edges, err := chunkStorage.LoadRegionEdges(ctx, j.storage, j.world, pos)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		j.logger.Printf("Region %s of %s has unreadable neighbors, borders are shaded flat: %v", pos, j.world, err)
	}
	scan := render.NewScan(j.world, pos, j.palette, j.cfg.Render)
	rends, err := j.registry.New(j.renderers, scan)
	if err != nil {
		return 0, err
	}
	failures := make([]rendererFailure, len(rends))
	scanner := render.NewRegionScanner(j.palette, j.cfg.Render.TranslucentFluids)
	for lx := 0; lx < primitives.RegionChunks; lx++ {
		scanner.SeedNorth(edges.North[lx], lx)
	}
	for lz := 0; lz < primitives.RegionChunks; lz++ {
		scanner.SeedWest(edges.West[lz])
		for lx := 0; lx < primitives.RegionChunks; lx++ {
			if err := j.gate.Wait(ctx); err != nil {
				return 0, err
			}
			cols := scanner.Chunk(region.Chunk(lx, lz), lx, lz)
			if cols == nil {
				continue
			}
			chunks++
			for ri, r := range rends {
				for ci := range cols {
					if cols[ci].Empty {
						continue
					}
					if f := renderColumn(r, &cols[ci]); f != nil {
						if failures[ri].count == 0 {
							failures[ri].first = f
						}
						failures[ri].count++
					}
				}
			}
		}
	}
	for ri, f := range failures {
		if f.count > 0 {
			j.logger.Printf("Renderer %s failed on %d columns of region %s in %s, first: %v",
				rends[ri].Name(), f.count, pos, j.world, f.first)
		}
	}
	for _, t := range scan.Tiles() {
		// errors are logged by the cache, other zoom levels are still written
		_ = j.cache.Save(t)
	}
	return chunks, nil
}

// processRegion counts every region exactly once unless job was cancelled
func (j *WorldRender) processRegion(ctx context.Context, pos primitives.Coord) {
	chunks, err := j.scanRegion(ctx, pos)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.logger.Printf("Failed to render region %s of %s: %v", pos, j.world, err)
		j.progress.regionDone(0)
		return
	}
	j.progress.regionDone(chunks)
	j.events.Emit(events.Event{
		Kind:   events.RegionRendered,
		World:  j.world,
		Region: pos,
		Chunks: chunks,
	})
}
