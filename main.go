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
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
	"github.com/maxsupermanhd/livemap/render/renderers"
)

var (
	BuildTime  = "00000000.000000"
	CommitHash = "0000000"
	GoVersion  = "0.0"
	GitTag     = "0.0"
)

var (
	tileCache         *imagecache.ImageCache
	rendererRegistry  *render.Registry
	renderManager     *dispatchers.Manager
	palettes          *palette.Holder
	renderEvents      *events.Registry
	globalEventRouter = newMapEventRouter()
)

func loadPalette(ctx context.Context) error {
	palettes = palette.NewHolder(palette.Default())
	path := cfg.GetDSString("", "palette", "path")
	if path == "" {
		log.Println("Using built-in palette")
		return nil
	}
	p, err := palette.LoadFile(path)
	if err != nil {
		return err
	}
	palettes.Set(p)
	log.Printf("Palette loaded from %s", path)
	if cfg.GetDSBool(false, "palette", "watch") {
		return palette.Watch(ctx, palettes, path, componentLogger("palette"))
	}
	return nil
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if buildinfo, ok := debug.ReadBuildInfo(); ok {
		GoVersion = buildinfo.GoVersion
	}
	if err := loadConfig(); err != nil {
		log.Fatalf("Error loading config file %s: %v", configPath(), err)
	}
	logs := setupLogging(cfg.GetDSString("./logs/livemap.log", "logs_path"))
	defer logs.Close()
	log.Println()
	log.Println("livemap is starting up...")
	log.Printf("Built %s, Ver %s (%s) with %s", BuildTime, GitTag, CommitHash, GoVersion)
	log.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loadPalette(ctx); err != nil {
		log.Fatalf("Failed to load palette: %v", err)
	}

	var err error
	tileCache, err = imagecache.NewImageCache(componentLogger("tiles"), tilesOptions(cfg.SubTree("tiles")))
	if err != nil {
		log.Fatalf("Failed to set up tile cache: %v", err)
	}

	rendererRegistry = render.NewRegistry()
	if err := renderers.RegisterDefaults(rendererRegistry); err != nil {
		log.Fatalf("Failed to register renderers: %v", err)
	}
	rcfg, err := renderConfig(cfg.SubTree("render"))
	if err != nil {
		log.Fatalf("Bad render config: %v", err)
	}
	if _, err := rendererRegistry.Resolve(rcfg.Renderers); err != nil {
		log.Fatalf("Bad renderers list %v: %v", rcfg.Renderers, err)
	}

	if err := initStorages(ctx); err != nil {
		log.Fatalf("Failed to initialize storages: %v", err)
	}
	defer closeStorages()

	renderEvents = events.NewRegistry()
	globalEventRouter.Attach(renderEvents)
	renderManager = dispatchers.NewManager(ctx, dispatchers.ManagerOptions{
		Storages: resolveWorldStorage,
		Cache:    tileCache,
		Registry: rendererRegistry,
		Palettes: palettes,
		Events:   renderEvents,
		Logger:   componentLogger("render"),
		Config:   rcfg,
	})

	stopRouter := startBackgroundRoutine("event router", globalEventRouter.Run)
	defer stopRouter()

	gcfg, err := loadGuardConfig()
	if err != nil {
		log.Fatal(err)
	}
	if gcfg.Enabled {
		perfGuard = newPerformanceGuard(gcfg, renderManager)
		stopGuard := startBackgroundRoutine("performance guard", perfGuard.Run)
		defer stopGuard()
	}

	for _, wname := range autostartWorlds() {
		if _, err := renderManager.Start(wname); err != nil {
			log.Printf("Failed to start render of %s: %v", wname, err)
		}
	}

	stopWeb := startBackgroundRoutine("web server", runWeb)
	defer stopWeb()

	<-ctx.Done()
	log.Println("Shutting down")
	stopWeb()
	renderManager.Close()
}
