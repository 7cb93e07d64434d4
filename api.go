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

	"github.com/gorilla/mux"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
)

func apiListRenderers(w http.ResponseWriter, _ *http.Request) (int, string) {
	type rendererInfo struct {
		Name    string `json:"name"`
		Depends string `json:"depends,omitempty"`
		Enabled bool   `json:"enabled"`
	}
	enabled := map[string]bool{}
	for _, n := range renderManager.Config().Renderers {
		enabled[n] = true
	}
	ret := []rendererInfo{}
	for _, n := range rendererRegistry.Names() {
		d, _ := rendererRegistry.Depends(n)
		ret = append(ret, rendererInfo{Name: n, Depends: d, Enabled: enabled[n]})
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, ret)
}

func apiListWorlds(w http.ResponseWriter, _ *http.Request) (int, string) {
	type worldInfo struct {
		Name   string              `json:"name"`
		Render *dispatchers.Status `json:"render,omitempty"`
	}
	ret := []worldInfo{}
	for _, wname := range listWorlds() {
		i := worldInfo{Name: wname}
		if s, err := renderManager.Status(wname); err == nil {
			i.Render = &s
		}
		ret = append(ret, i)
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, ret)
}

func apiStoragesGET(w http.ResponseWriter, _ *http.Request) (int, string) {
	type storageInfo struct {
		Name    string `json:"name"`
		Type    string `json:"type"`
		Address string `json:"addr"`
		Online  bool   `json:"online"`
		Status  string `json:"status,omitempty"`
	}
	ret := []storageInfo{}
	for _, s := range storageList() {
		i := storageInfo{Name: s.Name, Type: s.Type, Address: s.Address}
		if s.Driver != nil {
			st, err := s.Driver.GetStatus()
			if err != nil {
				i.Status = err.Error()
			} else {
				i.Online = true
				i.Status = st
			}
		}
		ret = append(ret, i)
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, ret)
}

func apiListRenders(w http.ResponseWriter, _ *http.Request) (int, string) {
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, renderManager.List())
}

func apiRenderStatus(w http.ResponseWriter, r *http.Request) (int, string) {
	s, err := renderManager.Status(mux.Vars(r)["world"])
	if err != nil {
		setContentTypeJson(w)
		return marshalOrFail(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, s)
}

func apiRenderStart(w http.ResponseWriter, r *http.Request) (int, string) {
	j, err := renderManager.Start(mux.Vars(r)["world"])
	if err != nil {
		return apiError(w, err)
	}
	setContentTypeJson(w)
	return marshalOrFail(http.StatusAccepted, j.Status())
}

func apiRenderControl(action func(string) error) func(http.ResponseWriter, *http.Request) (int, string) {
	return func(w http.ResponseWriter, r *http.Request) (int, string) {
		wname := mux.Vars(r)["world"]
		if err := action(wname); err != nil {
			return apiError(w, err)
		}
		s, err := renderManager.Status(wname)
		if err != nil {
			return apiError(w, err)
		}
		setContentTypeJson(w)
		return marshalOrFail(http.StatusOK, s)
	}
}

func apiStats(w http.ResponseWriter, _ *http.Request) (int, string) {
	setContentTypeJson(w)
	return marshalOrFail(http.StatusOK, map[string]any{
		"tiles":  tileCache.GetStats(),
		"guard":  perfGuard.Stats(),
		"build":  map[string]string{"time": BuildTime, "commit": CommitHash, "tag": GitTag, "go": GoVersion},
		"paused": renderManager.Paused(),
	})
}
