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

package palette

import (
	"context"
	"io"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads palette file into holder every time it is written
// until context is done. Broken files are logged and ignored.
func Watch(ctx context.Context, h *Holder, path string, l *log.Logger) error {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// editors replace files instead of writing them, watch the directory
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		watcher.Close()
		return err
	}
	go func() {
		defer watcher.Close()
		want := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				l.Println("Palette watcher stopped")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != want {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				p, err := LoadFile(path)
				if err != nil {
					l.Printf("Failed to reload palette %s: %v", path, err)
					continue
				}
				h.Set(p)
				l.Printf("Palette reloaded from %s (%d blocks, %d biomes)", path, len(p.Blocks), len(p.Biomes))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.Println("Palette watcher error:", err)
			}
		}
	}()
	return nil
}
