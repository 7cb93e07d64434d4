package renderers

import (
	"testing"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/colors"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/primitives"
	"github.com/maxsupermanhd/livemap/render"
)

func renderRegion(t *testing.T, r *chunkStorage.Region, opts render.Options, names ...string) *render.Scan {
	t.Helper()
	reg := render.NewRegistry()
	if err := RegisterDefaults(reg); err != nil {
		t.Fatal(err)
	}
	order, err := reg.Resolve(names)
	if err != nil {
		t.Fatal(err)
	}
	pal := palette.Default()
	s := render.NewScan("w", r.Pos, pal, opts)
	rends, err := reg.New(order, s)
	if err != nil {
		t.Fatal(err)
	}
	sc := render.NewRegionScanner(pal, opts.TranslucentFluids)
	for lz := 0; lz < primitives.RegionChunks; lz++ {
		for lx := 0; lx < primitives.RegionChunks; lx++ {
			cols := sc.Chunk(r.Chunk(lx, lz), lx, lz)
			for _, rend := range rends {
				for i := range cols {
					if !cols[i].Empty {
						rend.RenderColumn(&cols[i])
					}
				}
			}
		}
	}
	return s
}

func TestFlatPlane(t *testing.T) {
	r := chunkStorage.NewRegion(0, 0)
	for cz := 0; cz < 2; cz++ {
		for cx := 0; cx < 3; cx++ {
			r.SetChunk(chunkStorage.NewFlatChunk(cx, cz, 64, "plains", chunkStorage.BlockState{Name: "stone"}))
		}
	}
	s := renderRegion(t, r, render.Options{Heightmap: render.HeightmapModern}, Basic)
	stone, _ := palette.Default().Block("stone")
	want := colors.Mix(stone, render.ShadeBaseline<<24)
	tile := s.Tile(Basic)
	for z := 0; z < primitives.RegionSize; z++ {
		for x := 0; x < primitives.RegionSize; x++ {
			got := tile.GetPixel(x, z)
			if x < 48 && z < 32 {
				if got != want {
					t.Fatalf("pixel %d:%d = %08x, want %08x", x, z, got, want)
				}
			} else if got != 0 {
				t.Fatalf("pixel %d:%d outside of terrain = %08x", x, z, got)
			}
		}
	}
}

func TestOverlaysReadBase(t *testing.T) {
	r := chunkStorage.NewRegion(-1, 0)
	c := chunkStorage.NewFlatChunk(-1, 0, 64, "desert", chunkStorage.BlockState{Name: "sand"})
	c.SetBlock(15, 65, 0, chunkStorage.BlockState{Name: "dandelion"})
	c.InhabitedTime = render.DefaultInhabitedLimit
	r.SetChunk(c)
	s := renderRegion(t, r, render.Options{Heightmap: render.HeightmapNone},
		Inhabited, Flower, Biome, Heightmap, Basic)
	x, z := -1, 0
	base := s.Tile(Basic).GetPixel(x, z)
	if base == 0 {
		t.Fatal("basic did not draw")
	}
	dandelion, _ := palette.Default().Flower("dandelion")
	if got := s.Tile(Flower).GetPixel(x, z); got != dandelion {
		t.Errorf("flower pixel %08x, want %08x", got, dandelion)
	}
	for _, n := range []string{Biome, Heightmap, Inhabited} {
		got := s.Tile(n).GetPixel(x, z)
		if got == 0 || got == base {
			t.Errorf("%s pixel %08x over base %08x", n, got, base)
		}
		if s.Tile(n).GetPixel(0, 0) != 0 {
			t.Errorf("%s drew where base is empty", n)
		}
	}
}

func TestTranslucentWater(t *testing.T) {
	r := chunkStorage.NewRegion(0, 0)
	shallow := chunkStorage.NewFlatChunk(0, 0, 60, "ocean",
		chunkStorage.BlockState{Name: "sand"}, chunkStorage.BlockState{Name: "water"})
	deep := chunkStorage.NewChunk(1, 0)
	for y := 10; y < 100; y++ {
		name := "water"
		if y == 10 {
			name = "sand"
		}
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				deep.SetBlock(x, y, z, chunkStorage.BlockState{Name: name})
			}
		}
	}
	deep.FillBiome("ocean")
	r.SetChunk(shallow)
	r.SetChunk(deep)
	s := renderRegion(t, r, render.Options{TranslucentFluids: true}, Basic)
	pal := palette.Default()
	sand := pal.BlockInBiome("sand", "ocean")
	water := pal.WaterColor("ocean")
	tile := s.Tile(Basic)
	dist := func(a, b uint32) int {
		d := 0
		for _, f := range []func(uint32) int{colors.Red, colors.Green, colors.Blue} {
			v := f(a) - f(b)
			if v < 0 {
				v = -v
			}
			d += v
		}
		return d
	}
	sh := tile.GetPixel(5, 5)
	dp := tile.GetPixel(20, 5)
	if dist(sh, sand) >= dist(sh, water) {
		t.Errorf("shallow water %08x is closer to water %08x than sand %08x", sh, water, sand)
	}
	if dist(dp, water) >= dist(dp, sand) {
		t.Errorf("deep water %08x is closer to sand", dp)
	}
}
