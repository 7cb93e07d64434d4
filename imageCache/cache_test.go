package imagecache

import (
	"os"
	"path"
	"sync"
	"testing"

	"github.com/maxsupermanhd/livemap/primitives"
)

func newTestCache(t *testing.T, maxZoom int) *ImageCache {
	t.Helper()
	c, err := NewImageCache(nil, Options{Root: t.TempDir(), Format: "png", MaxZoom: maxZoom})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func pixelAt(t *testing.T, c *ImageCache, loc primitives.TileLocation, x, y int) uint32 {
	t.Helper()
	img, err := c.LoadTile(loc)
	if err != nil {
		t.Fatalf("load %s: %v", loc, err)
	}
	p := img.NRGBAAt(x, y)
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

func TestSaveUnwrittenIsNoop(t *testing.T) {
	c := newTestCache(t, 2)
	tile := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	if err := c.Save(tile); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(c.Root() + "/w"); !os.IsNotExist(err) {
		t.Fatalf("something was written: %v", err)
	}
}

func TestDownsampleAveraging(t *testing.T) {
	c := newTestCache(t, 1)
	tile := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	tile.SetPixel(0, 0, 0xFF102030)
	tile.SetPixel(1, 0, 0xFF203040)
	tile.SetPixel(0, 1, 0xFF304050)
	tile.SetPixel(1, 1, 0xFF405060)
	if err := c.Save(tile); err != nil {
		t.Fatal(err)
	}
	z0 := primitives.TileOf("w", "basic", tile.Region, 0)
	if got := pixelAt(t, c, z0, 1, 1); got != 0xFF405060 {
		t.Errorf("zoom 0 pixel %08x", got)
	}
	z1 := primitives.TileOf("w", "basic", tile.Region, 1)
	if got := pixelAt(t, c, z1, 0, 0); got != 0xFF283848 {
		t.Errorf("zoom 1 pixel %08x, want average ff283848", got)
	}
	if got := pixelAt(t, c, z1, 1, 0); got != 0 {
		t.Errorf("untouched zoom 1 pixel %08x", got)
	}
}

func TestMergePreservesSentinel(t *testing.T) {
	c := newTestCache(t, 1)
	first := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	for z := 0; z < 2; z++ {
		for x := 0; x < 2; x++ {
			first.SetPixel(x, z, 0xFF0000FF)
		}
	}
	if err := c.Save(first); err != nil {
		t.Fatal(err)
	}
	second := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	second.SetPixel(1, 1, 0xFF00FF00)
	if err := c.Save(second); err != nil {
		t.Fatal(err)
	}
	loc := primitives.TileOf("w", "basic", first.Region, 0)
	want := map[[2]int]uint32{
		{0, 0}: 0xFF0000FF,
		{1, 0}: 0xFF0000FF,
		{0, 1}: 0xFF0000FF,
		{1, 1}: 0xFF00FF00,
	}
	for p, w := range want {
		if got := pixelAt(t, c, loc, p[0], p[1]); got != w {
			t.Errorf("pixel %v = %08x, want %08x", p, got, w)
		}
	}
}

func TestNeighborRegionsShareZoomTile(t *testing.T) {
	c := newTestCache(t, 1)
	a := NewTileImage("w", "basic", primitives.RegionCoord(-2, 0))
	a.SetPixel(0, 0, 0xFFAA0000)
	b := NewTileImage("w", "basic", primitives.RegionCoord(-1, 0))
	b.SetPixel(0, 0, 0xFF00BB00)
	if err := c.Save(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(b); err != nil {
		t.Fatal(err)
	}
	loc := primitives.TileOf("w", "basic", a.Region, 1)
	if loc.X != -1 {
		t.Fatalf("zoom 1 tile x %d", loc.X)
	}
	if got := pixelAt(t, c, loc, 0, 0); got != 0xFFAA0000 {
		t.Errorf("left half %08x", got)
	}
	if got := pixelAt(t, c, loc, 256, 0); got != 0xFF00BB00 {
		t.Errorf("right half %08x", got)
	}
}

func TestCorruptTileReplaced(t *testing.T) {
	c := newTestCache(t, 0)
	tile := NewTileImage("w", "basic", primitives.RegionCoord(3, 4))
	tile.SetPixel(5, 5, 0xFF123456)
	loc := primitives.TileOf("w", "basic", tile.Region, 0)
	fp := c.TilePath(loc)
	if err := os.MkdirAll(fp[:len(fp)-len("3_4.png")], 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fp, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(tile); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(t, c, loc, 5, 5); got != 0xFF123456 {
		t.Errorf("pixel %08x", got)
	}
}

func TestTilePathLayout(t *testing.T) {
	c, err := NewImageCache(nil, Options{Root: "out", Format: "webp", MaxZoom: 2})
	if err != nil {
		t.Fatal(err)
	}
	got := c.TilePath(primitives.TileOf("w", "biome", primitives.RegionCoord(-3, 5), 2))
	if got != "out/w/biome/2/-1_1.webp" {
		t.Errorf("path %q", got)
	}
	if _, err := NewImageCache(nil, Options{Format: "tga"}); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestParallelSavesShareZoomTile(t *testing.T) {
	c := newTestCache(t, 2)
	fill := func(rx, rz int) uint32 {
		return 0xFF000000 | uint32(rx+1)<<16 | uint32(rz+1)<<8 | 0x40
	}
	var wg sync.WaitGroup
	for rz := 0; rz < 4; rz++ {
		for rx := 0; rx < 4; rx++ {
			tile := NewTileImage("w", "basic", primitives.RegionCoord(rx, rz))
			for z := 0; z < TileSize; z++ {
				for x := 0; x < TileSize; x++ {
					tile.SetPixel(x, z, fill(rx, rz))
				}
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := c.Save(tile); err != nil {
					t.Error(err)
				}
			}()
		}
	}
	wg.Wait()
	loc := primitives.TileOf("w", "basic", primitives.RegionCoord(0, 0), 2)
	img, err := c.LoadTile(loc)
	if err != nil {
		t.Fatal(err)
	}
	for rz := 0; rz < 4; rz++ {
		for rx := 0; rx < 4; rx++ {
			for _, p := range [][2]int{{0, 0}, {127, 127}} {
				px := img.NRGBAAt(rx*128+p[0], rz*128+p[1])
				got := uint32(px.A)<<24 | uint32(px.R)<<16 | uint32(px.G)<<8 | uint32(px.B)
				if got != fill(rx, rz) {
					t.Errorf("region %d:%d lost in zoom 2 tile, pixel %v = %08x", rx, rz, p, got)
				}
			}
		}
	}
	quads := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for _, r := range quads {
		z1 := primitives.TileOf("w", "basic", primitives.RegionCoord(r[0]*2, r[1]*2), 1)
		for _, q := range quads {
			rx, rz := r[0]*2+q[0], r[1]*2+q[1]
			if got := pixelAt(t, c, z1, q[0]*256+10, q[1]*256+10); got != fill(rx, rz) {
				t.Errorf("region %d:%d lost in zoom 1 tile, %08x", rx, rz, got)
			}
		}
	}
}

func TestGIFKeepsUnwrittenPixels(t *testing.T) {
	c, err := NewImageCache(nil, Options{Root: t.TempDir(), Format: "gif", MaxZoom: 0})
	if err != nil {
		t.Fatal(err)
	}
	first := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	first.SetPixel(0, 0, 0xFF3A7F2C)
	if err := c.Save(first); err != nil {
		t.Fatal(err)
	}
	loc := primitives.TileOf("w", "basic", first.Region, 0)
	drawn := pixelAt(t, c, loc, 0, 0)
	if drawn>>24 != 0xFF {
		t.Fatalf("drawn pixel %08x is not opaque", drawn)
	}
	if got := pixelAt(t, c, loc, 1, 1); got>>24 != 0 {
		t.Errorf("unwritten pixel %08x is not transparent", got)
	}
	second := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	second.SetPixel(5, 5, drawn)
	if err := c.Save(second); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(t, c, loc, 0, 0); got != drawn {
		t.Errorf("pixel drifted on merge from %08x to %08x", drawn, got)
	}
	if got := pixelAt(t, c, loc, 5, 5); got != drawn {
		t.Errorf("palette color %08x came back as %08x", drawn, got)
	}
	if got := pixelAt(t, c, loc, 1, 1); got>>24 != 0 {
		t.Errorf("unwritten pixel %08x after merge", got)
	}
}

func TestTileFileMode(t *testing.T) {
	c := newTestCache(t, 0)
	tile := NewTileImage("w", "basic", primitives.RegionCoord(0, 0))
	tile.SetPixel(0, 0, 0xFF102030)
	if err := c.Save(tile); err != nil {
		t.Fatal(err)
	}
	fp := c.TilePath(primitives.TileOf("w", "basic", tile.Region, 0))
	st, err := os.Stat(fp)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0644 {
		t.Errorf("tile mode %v", st.Mode().Perm())
	}
	dst, err := os.Stat(path.Dir(fp))
	if err != nil {
		t.Fatal(err)
	}
	if dst.Mode().Perm()&0100 == 0 {
		t.Errorf("tile directory mode %v is not searchable", dst.Mode().Perm())
	}
	left, err := os.ReadDir(path.Dir(fp))
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 {
		t.Errorf("%d files next to the tile, temp file left behind", len(left))
	}
}
