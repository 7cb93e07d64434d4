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
	"net/http"
	"sort"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
)

type regionSummary struct {
	Pos        primitives.Coord
	Chunks     int
	MinY, MaxY int
	Sections   int
	Inhabited  int64
	// non-air palette entries over all sections, most used first
	Palette []paletteUse
}

type paletteUse struct {
	Block    string
	Sections int
}

func summarizeRegion(r *chunkStorage.Region) regionSummary {
	s := regionSummary{Pos: r.Pos, Chunks: r.ChunkCount()}
	uses := map[string]int{}
	first := true
	for _, c := range r.Chunks {
		if c == nil {
			continue
		}
		if first || c.MinY() < s.MinY {
			s.MinY = c.MinY()
		}
		if first || c.MaxY() > s.MaxY {
			s.MaxY = c.MaxY()
		}
		first = false
		s.Sections += len(c.Sections)
		s.Inhabited += c.InhabitedTime
		for _, sec := range c.Sections {
			for _, b := range sec.Palette {
				if b.IsAir() {
					continue
				}
				uses[b.Name]++
			}
		}
	}
	for k, v := range uses {
		s.Palette = append(s.Palette, paletteUse{Block: k, Sections: v})
	}
	sort.Slice(s.Palette, func(i, j int) bool {
		if s.Palette[i].Sections != s.Palette[j].Sections {
			return s.Palette[i].Sections > s.Palette[j].Sections
		}
		return s.Palette[i].Block < s.Palette[j].Block
	})
	return s
}

func regionInfoHandler(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	wname := params["world"]
	rx, err := strconv.Atoi(params["rx"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rz, err := strconv.Atoi(params["rz"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := resolveWorldStorage(wname)
	if err != nil {
		http.Error(w, err.Error(), errorCode(err))
		return
	}
	reg, err := s.LoadRegion(r.Context(), wname, primitives.RegionCoord(rx, rz))
	if err != nil {
		http.Error(w, err.Error(), errorCode(err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	spew.Fdump(w, summarizeRegion(reg))
}
