package main

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
	"github.com/maxsupermanhd/livemap/render/renderers"
)

func setupTestService(t *testing.T) http.Handler {
	t.Helper()
	ms := chunkStorage.NewMemoryChunkStorage()
	for cz := 0; cz < 4; cz++ {
		for cx := 0; cx < 4; cx++ {
			ms.AddChunk("w", chunkStorage.NewFlatChunk(cx, cz, 64, "plains", chunkStorage.BlockState{Name: "stone"}))
		}
	}
	storages = map[string]chunkStorage.Storage{
		"mem": {Name: "mem", Type: "memory", Driver: ms},
	}
	var err error
	tileCache, err = imagecache.NewImageCache(nil, imagecache.Options{Root: t.TempDir(), Format: "png", MaxZoom: 2})
	if err != nil {
		t.Fatal(err)
	}
	rendererRegistry = render.NewRegistry()
	if err := renderers.RegisterDefaults(rendererRegistry); err != nil {
		t.Fatal(err)
	}
	palettes = palette.NewHolder(palette.Default())
	renderEvents = events.NewRegistry()
	renderManager = dispatchers.NewManager(t.Context(), dispatchers.ManagerOptions{
		Storages: resolveWorldStorage,
		Cache:    tileCache,
		Registry: rendererRegistry,
		Palettes: palettes,
		Events:   renderEvents,
		Config:   dispatchers.Config{Threads: 2, Renderers: []string{renderers.Basic, renderers.Biome}},
	})
	t.Cleanup(renderManager.Close)
	exit := make(chan struct{})
	t.Cleanup(func() { close(exit) })
	return createRouter(exit)
}

func doRequest(h http.Handler, method, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, url, nil))
	return rec
}

func TestRenderAPI(t *testing.T) {
	h := setupTestService(t)

	if rec := doRequest(h, "POST", "/api/v1/render/nowhere/start"); rec.Code != http.StatusNotFound {
		t.Errorf("start of unknown world: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doRequest(h, "POST", "/api/v1/render/w/pause"); rec.Code != http.StatusConflict {
		t.Errorf("pause of idle world: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doRequest(h, "POST", "/api/v1/render/w/start"); rec.Code != http.StatusAccepted {
		t.Fatalf("start: %d %s", rec.Code, rec.Body.String())
	}

	deadline := time.Now().Add(20 * time.Second)
	var st dispatchers.Status
	for {
		rec := doRequest(h, "GET", "/api/v1/render/w")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatal(err)
		}
		if st.Finished {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("render did not finish: %+v", st)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if st.Progress.ChunksDone != 16 {
		t.Errorf("rendered %d chunks", st.Progress.ChunksDone)
	}

	rec := doRequest(h, "GET", "/tiles/w/basic/0/0_0.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("tile: %d", rec.Code)
	}
	if _, err := png.Decode(rec.Body); err != nil {
		t.Errorf("tile is not png: %v", err)
	}
	if rec := doRequest(h, "GET", "/tiles/w/biome/2/0_0.png"); rec.Code != http.StatusOK {
		t.Errorf("zoomed out overlay tile: %d", rec.Code)
	}

	rec = doRequest(h, "GET", "/worlds/w/basic/preview.png?size=64")
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: %d %s", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("preview size %v", b)
	}
	if rec := doRequest(h, "GET", "/worlds/w/sepia/preview.png"); rec.Code != http.StatusNotFound {
		t.Errorf("preview of unknown renderer: %d", rec.Code)
	}

	var worlds []struct {
		Name   string
		Render *dispatchers.Status
	}
	rec = doRequest(h, "GET", "/api/v1/worlds")
	if err := json.Unmarshal(rec.Body.Bytes(), &worlds); err != nil {
		t.Fatal(err)
	}
	if len(worlds) != 1 || worlds[0].Name != "w" || worlds[0].Render == nil {
		t.Errorf("worlds %s", rec.Body.String())
	}
}

func TestRenderersAPI(t *testing.T) {
	h := setupTestService(t)
	var list []struct {
		Name    string
		Depends string
		Enabled bool
	}
	rec := doRequest(h, "GET", "/api/v1/renderers")
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 5 {
		t.Fatalf("renderers %s", rec.Body.String())
	}
	for _, r := range list {
		if r.Name == renderers.Basic && (!r.Enabled || r.Depends != "") {
			t.Errorf("basic %+v", r)
		}
		if r.Name == renderers.Flower && (r.Enabled || r.Depends != renderers.Basic) {
			t.Errorf("flower %+v", r)
		}
	}
}

func TestHiddenTiles(t *testing.T) {
	h := setupTestService(t)
	dir := filepath.Join(tileCache.Root(), "w", "basic", "0")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, n := range []string{"1_1.png", ".1_1.png.123.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if rec := doRequest(h, "GET", "/tiles/w/basic/0/1_1.png"); rec.Code != http.StatusOK {
		t.Errorf("tile: %d", rec.Code)
	}
	if rec := doRequest(h, "GET", "/tiles/w/basic/0/.1_1.png.123.tmp"); rec.Code != http.StatusNotFound {
		t.Errorf("temp file served: %d", rec.Code)
	}
}

func TestRegionInfo(t *testing.T) {
	h := setupTestService(t)
	rec := doRequest(h, "GET", "/debug/region/w/0/0")
	if rec.Code != http.StatusOK {
		t.Fatalf("%d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "stone") {
		t.Errorf("summary does not mention stone:\n%s", rec.Body.String())
	}
	if rec := doRequest(h, "GET", "/debug/region/nowhere/0/0"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown world: %d", rec.Code)
	}
}

func TestSummarizeRegion(t *testing.T) {
	r := chunkStorage.NewRegion(0, 0)
	a := chunkStorage.NewFlatChunk(0, 0, 64, "plains", chunkStorage.BlockState{Name: "stone"})
	a.InhabitedTime = 10
	b := chunkStorage.NewFlatChunk(1, 0, -10, "plains", chunkStorage.BlockState{Name: "stone"}, chunkStorage.BlockState{Name: "dirt"})
	b.InhabitedTime = 5
	r.SetChunk(a)
	r.SetChunk(b)
	s := summarizeRegion(r)
	if s.Chunks != 2 || s.Inhabited != 15 {
		t.Errorf("summary %+v", s)
	}
	if s.MinY != b.MinY() || s.MaxY != a.MaxY() {
		t.Errorf("height range %d..%d", s.MinY, s.MaxY)
	}
	if len(s.Palette) == 0 || s.Palette[0].Block != "stone" {
		t.Errorf("palette %+v", s.Palette)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" basic, ,biome,")
	if len(got) != 2 || got[0] != "basic" || got[1] != "biome" {
		t.Errorf("%q", got)
	}
}
