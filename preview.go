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
	"image/png"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/livemap/primitives"
	"github.com/nfnt/resize"
)

const (
	previewDefaultSize = 256
	previewMinSize     = 16
)

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// previewHandler scales most zoomed out tile around spawn (or given region)
func previewHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	wname := params["world"]
	rname := params["renderer"]
	if _, err := rendererRegistry.Depends(rname); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	size, err := queryInt(r, "size", previewDefaultSize)
	if err != nil {
		http.Error(w, "bad size: "+err.Error(), http.StatusBadRequest)
		return
	}
	if size < previewMinSize {
		size = previewMinSize
	}
	if size > 512 {
		size = 512
	}
	center := primitives.RegionCoord(0, 0)
	if s, err := resolveWorldStorage(wname); err == nil {
		if sp, err := s.Spawn(wname); err == nil {
			center = sp.Region()
		}
	}
	rx, err := queryInt(r, "x", center.X)
	if err != nil {
		http.Error(w, "bad x: "+err.Error(), http.StatusBadRequest)
		return
	}
	rz, err := queryInt(r, "z", center.Z)
	if err != nil {
		http.Error(w, "bad z: "+err.Error(), http.StatusBadRequest)
		return
	}
	loc := primitives.TileOf(wname, rname, primitives.RegionCoord(rx, rz), tileCache.MaxZoom())
	img, err := tileCache.LoadTile(loc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "tile "+loc.String()+" is not rendered", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	scaled := resize.Resize(uint(size), uint(size), img, resize.Bilinear)
	w.Header().Set("Content-Type", "image/png")
	if mt := tileCache.TileModTime(loc); !mt.IsZero() {
		w.Header().Set("Last-Modified", mt.UTC().Format(http.TimeFormat))
	}
	if err := png.Encode(w, scaled); err != nil {
		log.Printf("Failed to encode preview of %s: %v", loc.String(), err)
	}
}
