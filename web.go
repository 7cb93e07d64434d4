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
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// hiddenFileSystem does not serve dotfiles, in-progress tile writes included
type hiddenFileSystem struct {
	http.FileSystem
}

func (h hiddenFileSystem) Open(name string) (http.File, error) {
	for _, p := range strings.Split(name, "/") {
		if strings.HasPrefix(p, ".") {
			return nil, fs.ErrNotExist
		}
	}
	return h.FileSystem.Open(name)
}

func robotsHandler(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "User-agent: *\nDisallow: /\n\n\n")
}

func createRouter(exitchan <-chan struct{}) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/robots.txt", robotsHandler).Methods("GET")
	router.PathPrefix("/tiles/").Handler(http.StripPrefix("/tiles/", http.FileServer(hiddenFileSystem{http.Dir(tileCache.Root())}))).Methods("GET")
	router.HandleFunc("/worlds/{world}/{renderer}/preview.png", previewHandler).Methods("GET")

	router.HandleFunc("/api/v1/renderers", apiHandle(apiListRenderers)).Methods("GET")
	router.HandleFunc("/api/v1/storages", apiHandle(apiStoragesGET)).Methods("GET")
	router.HandleFunc("/api/v1/worlds", apiHandle(apiListWorlds)).Methods("GET")
	router.HandleFunc("/api/v1/stats", apiHandle(apiStats)).Methods("GET")

	router.HandleFunc("/api/v1/render", apiHandle(apiListRenders)).Methods("GET")
	router.HandleFunc("/api/v1/render/{world}", apiHandle(apiRenderStatus)).Methods("GET")
	router.HandleFunc("/api/v1/render/{world}/start", apiHandle(apiRenderStart)).Methods("POST")
	router.HandleFunc("/api/v1/render/{world}/cancel", apiHandle(apiRenderControl(renderManager.Cancel))).Methods("POST")
	router.HandleFunc("/api/v1/render/{world}/pause", apiHandle(apiRenderControl(renderManager.Pause))).Methods("POST")
	router.HandleFunc("/api/v1/render/{world}/resume", apiHandle(apiRenderControl(renderManager.Resume))).Methods("POST")

	router.HandleFunc("/api/v1/ws", wsClientHandlerWrapper(globalEventRouter, exitchan))

	router.HandleFunc("/debug/region/{world}/{rx:-?[0-9]+}/{rz:-?[0-9]+}", regionInfoHandler).Methods("GET")
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	router.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	router.Handle("/debug/pprof/allocs", pprof.Handler("allocs"))
	router.HandleFunc("/debug/gc", func(w http.ResponseWriter, r *http.Request) {
		runtime.GC()
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	})

	router1 := handlers.ProxyHeaders(router)
	router2 := handlers.CompressHandler(router1)
	router3 := handlers.CustomLoggingHandler(os.Stdout, router2, customLogger)
	router4 := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(router3)
	return router4
}

func runWeb(exitchan <-chan struct{}) {
	addr := cfg.GetDSString("0.0.0.0:3002", "web", "listen_addr")
	if addr == "" {
		log.Println("Not starting web server because listen address is empty")
		return
	}
	websrv := http.Server{
		Addr:    addr,
		Handler: createRouter(exitchan),
	}
	log.Println("Web server listens on " + addr)
	go func() {
		if err := websrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Web server returned an error: %s\n", err)
		}
	}()
	<-exitchan
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := websrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Web server shutdown failed: %v", err)
	}
}
