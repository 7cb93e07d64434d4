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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/render"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
	"github.com/maxsupermanhd/livemap/render/renderers"
)

var cfg *lac.Conf

func configPath() string {
	path := os.Getenv("LIVEMAP_CONFIG")
	if path == "" {
		path = "config.json"
	}
	return path
}

func loadConfig() error {
	// .env is optional
	_ = godotenv.Load()
	var err error
	cfg, err = lac.FromFileJSON(configPath())
	return err
}

func splitList(s string) []string {
	ret := []string{}
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			ret = append(ret, n)
		}
	}
	return ret
}

// worlds rendered right after startup
func autostartWorlds() []string {
	return splitList(cfg.GetDSString("", "render", "autostart"))
}

func renderConfig(c *lac.ConfSubtree) (dispatchers.Config, error) {
	hm, err := render.ParseHeightmap(c.GetDSString("modern", "heightmap"))
	if err != nil {
		return dispatchers.Config{}, err
	}
	names := splitList(c.GetDSString(renderers.Basic, "renderers"))
	return dispatchers.Config{
		Threads:   c.GetDSInt(dispatchers.DefaultThreads(), "threads"),
		Renderers: names,
		Render: render.Options{
			Heightmap:         hm,
			TranslucentFluids: c.GetDSBool(true, "translucent_fluids"),
			InhabitedLimit:    int64(c.GetDSInt(render.DefaultInhabitedLimit, "inhabited_limit")),
		},
		SkipThreshold:    c.GetDSInt(dispatchers.DefaultSkipThreshold, "skip_threshold"),
		GCAfterRender:    c.GetDSBool(false, "gc_after_render"),
		ProgressInterval: time.Duration(c.GetDSInt(1000, "progress_interval_ms")) * time.Millisecond,
	}, nil
}

func tilesOptions(c *lac.ConfSubtree) imagecache.Options {
	return imagecache.Options{
		Root:    c.GetDSString("tiles", "root"),
		Format:  c.GetDSString("png", "format"),
		MaxZoom: c.GetDSInt(imagecache.DefaultMaxZoom, "max_zoom"),
	}
}

type guardConfig struct {
	Enabled bool    `json:"enabled"`
	MaxLoad float64 `json:"max_load1"`
	// percent of memory that must stay available
	MinFreeMem float64 `json:"min_free_mem"`
	Interval   int     `json:"interval"`
}

func loadGuardConfig() (guardConfig, error) {
	g := guardConfig{
		MaxLoad:    0,
		MinFreeMem: 5,
		Interval:   5,
	}
	err := cfg.GetToStruct(&g, "guard")
	if err != nil && !errors.Is(err, lac.ErrNoKey) {
		return g, fmt.Errorf("guard config: %w", err)
	}
	if g.Interval <= 0 {
		g.Interval = 5
	}
	return g, nil
}
