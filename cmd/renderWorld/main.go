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

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/maxsupermanhd/livemap/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
	"github.com/maxsupermanhd/livemap/render/renderers"
)

var (
	fspath      = flag.String("path", "./worlds", "Path to folder with world saves")
	worldName   = flag.String("world", "world", "World to render, dimension can be set with world@the_nether")
	tilesPath   = flag.String("tiles", "./tiles", "Tiles output folder")
	tileFormat  = flag.String("format", "png", "Tile image format (png, jpg, gif, bmp, webp)")
	maxZoom     = flag.Int("zoom", imagecache.DefaultMaxZoom, "Number of zoomed out levels")
	threads     = flag.Int("threads", dispatchers.DefaultThreads(), "Region render threads")
	rendererSet = flag.String("renderers", "basic,heightmap,biome", "Comma separated renderers")
	heightmap   = flag.String("heightmap", "modern", "Shading of basic renderer (none, even-odd, old-school, modern)")
	opaque      = flag.Bool("opaque-fluids", false, "Draw fluid surface without depth blending")
	palettePath = flag.String("palette", "", "Palette overrides yaml file")
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	hm, err := render.ParseHeightmap(*heightmap)
	must(err)
	pal := palette.Default()
	if *palettePath != "" {
		pal, err = palette.LoadFile(*palettePath)
		must(err)
	}
	storage, err := filesystemChunkStorage.NewFilesystemChunkStorage(*fspath)
	must(err)
	defer storage.Close()
	cache, err := imagecache.NewImageCache(log.Default(), imagecache.Options{
		Root:    *tilesPath,
		Format:  *tileFormat,
		MaxZoom: *maxZoom,
	})
	must(err)
	reg := render.NewRegistry()
	must(renderers.RegisterDefaults(reg))

	ev := events.NewRegistry()
	ev.On(events.RenderFailed, func(e events.Event) {
		log.Printf("Render of %s failed: %v", e.World, e.Err)
	})

	job, err := dispatchers.NewWorldRender(*worldName, dispatchers.Deps{
		Storage:  storage,
		Cache:    cache,
		Registry: reg,
		Palette:  pal,
		Events:   ev,
		Logger:   log.Default(),
	}, dispatchers.Config{
		Threads:   *threads,
		Renderers: strings.Split(*rendererSet, ","),
		Render: render.Options{
			Heightmap:         hm,
			TranslucentFluids: !*opaque,
			InhabitedLimit:    render.DefaultInhabitedLimit,
		},
	})
	must(err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	must(job.Start(ctx))

	s := make(chan os.Signal, 1)
	signal.Notify(s, os.Interrupt, syscall.SIGTERM)
	select {
	case <-s:
		log.Println("got signal, shutting down")
		cancel()
		log.Println("waiting for exit")
		<-job.Done()
	case <-job.Done():
	}
	st := job.Status()
	log.Printf("%s: %s regions, %s chunks, state %s", st.World,
		humanize.Comma(st.Progress.RegionsDone), humanize.Comma(st.Progress.ChunksDone), st.State)
	for k, v := range cache.GetStats() {
		log.Printf("%s: %v", k, v)
	}
	if !st.Finished {
		os.Exit(1)
	}
}
