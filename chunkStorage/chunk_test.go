package chunkStorage

import (
	"context"
	"testing"

	"github.com/Tnze/go-mc/save"
	"github.com/maxsupermanhd/livemap/primitives"
)

func TestChunkSetGet(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(1, 70, 2, BlockState{Name: "minecraft:stone"})
	c.SetBlock(1, -5, 2, BlockState{Name: "dirt"})
	c.SetBiome(1, 70, 2, "minecraft:desert")
	if got := c.Block(1, 70, 2).Name; got != "stone" {
		t.Errorf("block at 1 70 2 = %q", got)
	}
	if got := c.Block(17, -5, 18).Name; got != "dirt" {
		t.Errorf("block at 17 -5 18 = %q", got)
	}
	if !c.Block(0, 70, 0).IsAir() {
		t.Errorf("unset block is not air")
	}
	if !c.Block(0, 500, 0).IsAir() {
		t.Errorf("block above sections is not air")
	}
	if got := c.Biome(0, 70, 0); got != "desert" {
		t.Errorf("biome = %q", got)
	}
	if c.MinY() != -16 || c.MaxY() != 79 {
		t.Errorf("bounds %d..%d", c.MinY(), c.MaxY())
	}
	for i := 1; i < len(c.Sections); i++ {
		if c.Sections[i-1].Y >= c.Sections[i].Y {
			t.Fatalf("sections not sorted: %d then %d", c.Sections[i-1].Y, c.Sections[i].Y)
		}
	}
}

func TestFluids(t *testing.T) {
	cases := []struct {
		b    BlockState
		want Fluid
	}{
		{BlockState{Name: "water"}, FluidWater},
		{BlockState{Name: "lava"}, FluidLava},
		{BlockState{Name: "kelp"}, FluidWater},
		{BlockState{Name: "oak_stairs", Waterlogged: true}, FluidWater},
		{BlockState{Name: "oak_stairs"}, FluidNone},
	}
	for _, c := range cases {
		if got := c.b.Fluid(); got != c.want {
			t.Errorf("%+v fluid = %v, want %v", c.b, got, c.want)
		}
	}
}

func TestRegionChunkPlacement(t *testing.T) {
	r := NewRegion(-1, 2)
	c := NewChunk(-1, 64)
	if !r.SetChunk(c) {
		t.Fatal("chunk -1:64 rejected by region -1:2")
	}
	if r.SetChunk(NewChunk(0, 64)) {
		t.Fatal("chunk 0:64 accepted by region -1:2")
	}
	if r.Chunk(31, 0) != c || r.ChunkAt(-1, 64) != c {
		t.Fatal("chunk not found at its local position")
	}
	if r.ChunkCount() != 1 {
		t.Fatalf("chunk count %d", r.ChunkCount())
	}
	c.SetBlock(0, 10, 0, BlockState{Name: "gold_block"})
	if got := r.BlockState(-16, 10, 1024).Name; got != "gold_block" {
		t.Fatalf("block by world coords = %q", got)
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryChunkStorage()
	s.AddChunk("w", NewFlatChunk(0, 0, 0, "plains", BlockState{Name: "stone"}))
	s.AddChunk("w", NewFlatChunk(33, -1, 0, "plains", BlockState{Name: "stone"}))
	s.SetSpawn("w", primitives.ChunkCoord(2, 3))
	regions, err := s.ListRegions("w")
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 2 {
		t.Fatalf("regions %v", regions)
	}
	r, err := s.LoadRegion(context.Background(), "w", primitives.RegionCoord(1, -1))
	if err != nil {
		t.Fatal(err)
	}
	if r.ChunkCount() != 1 || r.ChunkAt(33, -1) == nil {
		t.Fatalf("region 1:-1 has %d chunks", r.ChunkCount())
	}
	empty, err := s.LoadRegion(context.Background(), "w", primitives.RegionCoord(5, 5))
	if err != nil || empty.ChunkCount() != 0 {
		t.Fatalf("missing region: %v %v", empty, err)
	}
	if _, err := s.LoadRegion(context.Background(), "nope", primitives.RegionCoord(0, 0)); err != ErrNoWorld {
		t.Fatalf("unknown world err = %v", err)
	}
	sp, _ := s.Spawn("w")
	if sp != primitives.BlockCoord(32, 48) {
		t.Fatalf("spawn %v", sp)
	}
}

func TestLoadRegionEdges(t *testing.T) {
	s := NewMemoryChunkStorage()
	stone := BlockState{Name: "stone"}
	s.AddChunk("w", NewFlatChunk(35, 31, 0, "plains", stone))
	s.AddChunk("w", NewFlatChunk(31, 40, 0, "plains", stone))
	s.AddChunk("w", NewFlatChunk(40, 40, 0, "plains", stone))

	c, err := s.LoadChunk(context.Background(), "w", primitives.ChunkCoord(35, 31))
	if err != nil || c == nil || c.X != 35 || c.Z != 31 {
		t.Fatalf("load chunk: %v %v", c, err)
	}
	if c, err := s.LoadChunk(context.Background(), "w", primitives.ChunkCoord(0, 0)); c != nil || err != nil {
		t.Fatalf("missing chunk: %v %v", c, err)
	}

	e, err := LoadRegionEdges(context.Background(), s, "w", primitives.RegionCoord(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < primitives.RegionChunks; i++ {
		if (e.North[i] != nil) != (i == 3) {
			t.Errorf("north edge %d: %v", i, e.North[i])
		}
		if (e.West[i] != nil) != (i == 8) {
			t.Errorf("west edge %d: %v", i, e.West[i])
		}
	}
	if _, err := LoadRegionEdges(context.Background(), s, "nope", primitives.RegionCoord(1, 1)); err != ErrNoWorld {
		t.Errorf("unknown world err = %v", err)
	}
}

func TestSplitWorldName(t *testing.T) {
	w, d := SplitWorldName("survival@minecraft:the_nether")
	if w != "survival" || d != "the_nether" {
		t.Errorf("got %q %q", w, d)
	}
	w, d = SplitWorldName("survival")
	if w != "survival" || d != "overworld" {
		t.Errorf("got %q %q", w, d)
	}
}

func pack4(vals []int) []uint64 {
	ret := make([]uint64, len(vals)/16)
	for i, v := range vals {
		ret[i/16] |= uint64(v) << (4 * (i % 16))
	}
	return ret
}

func TestConvertSaveChunk(t *testing.T) {
	vals := make([]int, 4096)
	// y=3 layer is stone, y=4 layer is water
	for i := 3 * 256; i < 4*256; i++ {
		vals[i] = 1
	}
	for i := 4 * 256; i < 5*256; i++ {
		vals[i] = 2
	}
	sc := &save.Chunk{
		XPos:          3,
		ZPos:          -2,
		InhabitedTime: 1200,
	}
	sc.Sections = []save.Section{{Y: 4}, {Y: -1}}
	sc.Sections[0].BlockStates.Palette = []save.BlockState{
		{Name: "minecraft:air"}, {Name: "minecraft:stone"}, {Name: "minecraft:water"},
	}
	sc.Sections[0].BlockStates.Data = pack4(vals)
	sc.Sections[0].Biomes.Palette = []save.BiomeState{"minecraft:ocean"}
	sc.Sections[1].BlockStates.Palette = []save.BlockState{{Name: "minecraft:deepslate"}}

	c, err := ConvertSaveChunk(sc)
	if err != nil {
		t.Fatal(err)
	}
	if c.X != 3 || c.Z != -2 || c.InhabitedTime != 1200 {
		t.Fatalf("header %d %d %d", c.X, c.Z, c.InhabitedTime)
	}
	if c.Sections[0].Y != -1 {
		t.Fatalf("sections are not sorted")
	}
	if got := c.Block(5, 67, 9).Name; got != "stone" {
		t.Errorf("y=67 %q", got)
	}
	if got := c.Fluid(5, 68, 9); got != FluidWater {
		t.Errorf("y=68 fluid %v", got)
	}
	if got := c.Block(0, -10, 0).Name; got != "deepslate" {
		t.Errorf("y=-10 %q", got)
	}
	if got := c.Biome(0, 70, 0); got != "ocean" {
		t.Errorf("biome %q", got)
	}
}

func TestConvertBrokenSection(t *testing.T) {
	sc := &save.Chunk{}
	sc.Sections = []save.Section{{Y: 0}}
	sc.Sections[0].BlockStates.Palette = []save.BlockState{{Name: "air"}, {Name: "stone"}}
	sc.Sections[0].BlockStates.Data = []uint64{1, 2, 3}
	c, err := ConvertSaveChunk(sc)
	if err == nil {
		t.Fatal("no error for truncated block data")
	}
	if c == nil || len(c.Sections) != 0 {
		t.Fatal("broken section was not skipped")
	}
}
