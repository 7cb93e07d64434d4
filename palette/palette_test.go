package palette

import (
	"strings"
	"testing"

	"github.com/maxsupermanhd/livemap/colors"
)

func TestBlockInBiome(t *testing.T) {
	p := Default()
	if got := p.BlockInBiome("minecraft:stone", "plains"); got != 0xFF707070 {
		t.Errorf("stone %s", colors.Hex(got))
	}
	if got := p.BlockInBiome("grass_block", "minecraft:plains"); got != p.Biomes["plains"].Grass {
		t.Errorf("grass in plains %s", colors.Hex(got))
	}
	if got := p.BlockInBiome("grass_block", "made_up_biome"); got != p.DefaultBiome.Grass {
		t.Errorf("grass in unknown biome %s", colors.Hex(got))
	}
	if got := p.BlockInBiome("minecraft:what_is_this", "plains"); got != p.Unknown {
		t.Errorf("unknown block %s", colors.Hex(got))
	}
	if !p.IsInvisible("minecraft:cave_air") || p.IsInvisible("stone") {
		t.Errorf("invisibility is wrong")
	}
}

func TestLoadOverrides(t *testing.T) {
	src := `
blocks:
  minecraft:stone: "#010203"
  shiny_block: "80FFFFFF"
biomes:
  plains:
    grass: "#00FF00"
flowers:
  poppy: "#FF0000"
invisible: [glass]
grass_tinted: [shiny_block]
lava: "#FF8800"
`
	base := Default()
	p, err := Load(strings.NewReader(src), base)
	if err != nil {
		t.Fatal(err)
	}
	if p.Blocks["stone"] != 0xFF010203 {
		t.Errorf("stone override %s", colors.Hex(p.Blocks["stone"]))
	}
	if base.Blocks["stone"] == 0xFF010203 {
		t.Errorf("base palette was modified")
	}
	if p.Biomes["plains"].Grass != 0xFF00FF00 || p.Biomes["plains"].Water != base.Biomes["plains"].Water {
		t.Errorf("plains override %+v", p.Biomes["plains"])
	}
	if c, ok := p.Flower("minecraft:poppy"); !ok || c != 0xFFFF0000 {
		t.Errorf("poppy %s", colors.Hex(c))
	}
	if !p.IsInvisible("glass") || p.TintOf("shiny_block") != TintGrass || p.Lava != 0xFFFF8800 {
		t.Errorf("lists or lava not applied")
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	_, err := Load(strings.NewReader("blocks:\n  stone: nope\n"), Default())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestHolderSwap(t *testing.T) {
	a, b := Default(), Default()
	h := NewHolder(a)
	if h.Get() != a {
		t.Fatal("holder lost palette")
	}
	h.Set(b)
	if h.Get() != b {
		t.Fatal("holder did not swap")
	}
}
