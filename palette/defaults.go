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

// Default returns built-in palette covering common overworld, nether and end blocks.
func Default() *Palette {
	p := &Palette{
		Blocks:  map[string]uint32{},
		Biomes:  map[string]BiomeColors{},
		Flowers: map[string]uint32{},
		Tints:   map[string]Tint{},
		Invisible: map[string]bool{
			"air":            true,
			"cave_air":       true,
			"void_air":       true,
			"barrier":        true,
			"light":          true,
			"structure_void": true,
		},
		DefaultBiome: BiomeColors{Grass: 0xFF91BD59, Foliage: 0xFF77AB2F, Water: 0xFF3F76E4, Map: 0xFF8DB360},
		Water:        0xFF3F76E4,
		Lava:         0xFFEA5C0F,
		Unknown:      0xFFFF00FF,
	}
	for k, v := range defaultBlocks {
		p.Blocks[k] = v
	}
	for k, v := range defaultBiomes {
		p.Biomes[k] = v
	}
	for k, v := range defaultFlowers {
		p.Flowers[k] = v
		if _, ok := p.Blocks[k]; !ok {
			p.Blocks[k] = v
		}
	}
	for _, b := range []string{"grass_block", "grass", "short_grass", "tall_grass", "fern", "large_fern", "sugar_cane", "vine"} {
		p.Tints[b] = TintGrass
	}
	for _, b := range []string{"oak_leaves", "jungle_leaves", "acacia_leaves", "dark_oak_leaves", "mangrove_leaves"} {
		p.Tints[b] = TintFoliage
	}
	for _, b := range []string{"water", "bubble_column", "water_cauldron"} {
		p.Tints[b] = TintWater
	}
	return p
}

var defaultBlocks = map[string]uint32{
	"grass_block":          0xFFFFFFFF,
	"grass":                0xFFFFFFFF,
	"short_grass":          0xFFFFFFFF,
	"tall_grass":           0xFFFFFFFF,
	"fern":                 0xFFE0E0E0,
	"large_fern":           0xFFE0E0E0,
	"sugar_cane":           0xFFE0E0E0,
	"vine":                 0xFFD0D0D0,
	"oak_leaves":           0xFFFFFFFF,
	"jungle_leaves":        0xFFFFFFFF,
	"acacia_leaves":        0xFFFFFFFF,
	"dark_oak_leaves":      0xFFFFFFFF,
	"mangrove_leaves":      0xFFFFFFFF,
	"birch_leaves":         0xFF80A755,
	"spruce_leaves":        0xFF619961,
	"azalea_leaves":        0xFF5A7430,
	"cherry_leaves":        0xFFE5ADC2,
	"water":                0xFFFFFFFF,
	"bubble_column":        0xFFFFFFFF,
	"water_cauldron":       0xFFFFFFFF,
	"lava":                 0xFFEA5C0F,
	"stone":                0xFF707070,
	"granite":              0xFF956756,
	"diorite":              0xFFBCBCBC,
	"andesite":             0xFF888888,
	"deepslate":            0xFF505050,
	"tuff":                 0xFF6C6D66,
	"calcite":              0xFFDDDFDA,
	"bedrock":              0xFF565656,
	"cobblestone":          0xFF7F7F7F,
	"mossy_cobblestone":    0xFF6E775F,
	"dirt":                 0xFF976D4D,
	"coarse_dirt":          0xFF77553B,
	"rooted_dirt":          0xFF90674C,
	"podzol":               0xFF5B3F18,
	"mycelium":             0xFF6F6265,
	"mud":                  0xFF3C3A3D,
	"dirt_path":            0xFF94794A,
	"farmland":             0xFF8F6646,
	"clay":                 0xFFA4A8B8,
	"gravel":               0xFF857F7E,
	"sand":                 0xFFF7E9A3,
	"red_sand":             0xFFBE6621,
	"sandstone":            0xFFD8CB9B,
	"red_sandstone":        0xFFB8621F,
	"terracotta":           0xFF985E43,
	"snow":                 0xFFFFFFFF,
	"snow_block":           0xFFFFFFFF,
	"powder_snow":          0xFFF8FDFD,
	"ice":                  0xFFA0A0FF,
	"packed_ice":           0xFF8DB4FA,
	"blue_ice":             0xFF74A8FD,
	"oak_log":              0xFF6B5433,
	"spruce_log":           0xFF3A2615,
	"birch_log":            0xFFD7D3C8,
	"jungle_log":           0xFF564019,
	"acacia_log":           0xFF676159,
	"dark_oak_log":         0xFF3C2E1A,
	"oak_planks":           0xFFA2834F,
	"spruce_planks":        0xFF735531,
	"cactus":               0xFF0C7C1C,
	"pumpkin":              0xFFC57618,
	"melon":                0xFF6F9123,
	"moss_block":           0xFF596D2D,
	"lily_pad":             0xFF208030,
	"seagrass":             0xFF1A6E24,
	"tall_seagrass":        0xFF1A6E24,
	"kelp":                 0xFF4C8A31,
	"kelp_plant":           0xFF4C8A31,
	"obsidian":             0xFF0F0B19,
	"netherrack":           0xFF6F3634,
	"nether_bricks":        0xFF2C1519,
	"soul_sand":            0xFF514030,
	"soul_soil":            0xFF4B3A2E,
	"basalt":               0xFF49484D,
	"blackstone":           0xFF2A2328,
	"crimson_nylium":       0xFF831E1E,
	"warped_nylium":        0xFF2B7265,
	"glowstone":            0xFFAB8654,
	"magma_block":          0xFF8E3F1F,
	"end_stone":            0xFFDBDE9E,
	"purpur_block":         0xFFA97DA9,
	"bricks":               0xFF966153,
	"stone_bricks":         0xFF7A7A7A,
	"glass":                0xFFC0F5FE,
	"white_wool":           0xFFE9ECEC,
	"coal_ore":             0xFF696969,
	"iron_ore":             0xFF887E77,
	"gold_ore":             0xFF8F8B74,
	"diamond_ore":          0xFF798D8D,
	"torch":                0xFFFFD800,
	"rail":                 0xFF7D6B50,
	"hay_block":            0xFFA68B0C,
	"mangrove_roots":       0xFF4A3B26,
	"muddy_mangrove_roots": 0xFF443A30,
}

var defaultBiomes = map[string]BiomeColors{
	"plains":           {Grass: 0xFF91BD59, Foliage: 0xFF77AB2F, Water: 0xFF3F76E4, Map: 0xFF8DB360},
	"sunflower_plains": {Grass: 0xFF91BD59, Foliage: 0xFF77AB2F, Water: 0xFF3F76E4, Map: 0xFFB5DB88},
	"forest":           {Grass: 0xFF79C05A, Foliage: 0xFF59AE30, Water: 0xFF3F76E4, Map: 0xFF056621},
	"flower_forest":    {Grass: 0xFF79C05A, Foliage: 0xFF59AE30, Water: 0xFF3F76E4, Map: 0xFF2D8E49},
	"birch_forest":     {Grass: 0xFF88BB67, Foliage: 0xFF6BA941, Water: 0xFF3F76E4, Map: 0xFF307444},
	"dark_forest":      {Grass: 0xFF507A32, Foliage: 0xFF59AE30, Water: 0xFF3F76E4, Map: 0xFF40511A},
	"taiga":            {Grass: 0xFF86B783, Foliage: 0xFF68A464, Water: 0xFF287082, Map: 0xFF0B6659},
	"snowy_taiga":      {Grass: 0xFF80B497, Foliage: 0xFF60A17B, Water: 0xFF205E83, Map: 0xFF31554A},
	"snowy_plains":     {Grass: 0xFF80B497, Foliage: 0xFF60A17B, Water: 0xFF3D57D6, Map: 0xFFFFFFFF},
	"jungle":           {Grass: 0xFF59C93C, Foliage: 0xFF30BB0B, Water: 0xFF14A2C5, Map: 0xFF537B09},
	"savanna":          {Grass: 0xFFBFB755, Foliage: 0xFFAEA42A, Water: 0xFF2C8B9C, Map: 0xFFBDB25F},
	"desert":           {Grass: 0xFFBFB755, Foliage: 0xFFAEA42A, Water: 0xFF32A598, Map: 0xFFFA9418},
	"badlands":         {Grass: 0xFF90814D, Foliage: 0xFF9E814D, Water: 0xFF4E7F81, Map: 0xFFD94515},
	"swamp":            {Grass: 0xFF6A7039, Foliage: 0xFF6A7039, Water: 0xFF617B64, Map: 0xFF07F9B2},
	"mangrove_swamp":   {Grass: 0xFF6A7039, Foliage: 0xFF8DB127, Water: 0xFF3A7A6A, Map: 0xFF2CCC8E},
	"river":            {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF3F76E4, Map: 0xFF0000FF},
	"beach":            {Grass: 0xFF91BD59, Foliage: 0xFF77AB2F, Water: 0xFF157CAB, Map: 0xFFFADE55},
	"ocean":            {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF1787D4, Map: 0xFF000070},
	"deep_ocean":       {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF1787D4, Map: 0xFF000030},
	"warm_ocean":       {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF02B0E5, Map: 0xFF0000AC},
	"cold_ocean":       {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF2080C9, Map: 0xFF202070},
	"frozen_ocean":     {Grass: 0xFF80B497, Foliage: 0xFF60A17B, Water: 0xFF2570B5, Map: 0xFF7070D6},
	"windswept_hills":  {Grass: 0xFF8AB689, Foliage: 0xFF6DA36B, Water: 0xFF007BF7, Map: 0xFF606060},
	"meadow":           {Grass: 0xFF83BB6D, Foliage: 0xFF63A948, Water: 0xFF0E4ECF, Map: 0xFF2C8E49},
	"mushroom_fields":  {Grass: 0xFF55C93F, Foliage: 0xFF2BBB0F, Water: 0xFF8A8997, Map: 0xFFFF00FF},
	"nether_wastes":    {Grass: 0xFFBFB755, Foliage: 0xFFAEA42A, Water: 0xFF905957, Map: 0xFFBF3B3B},
	"the_end":          {Grass: 0xFF8EB971, Foliage: 0xFF71A74D, Water: 0xFF62529E, Map: 0xFF8080FF},
}

var defaultFlowers = map[string]uint32{
	"dandelion":          0xFFFFEC4F,
	"poppy":              0xFFED302C,
	"blue_orchid":        0xFF2ABFFD,
	"allium":             0xFFB878ED,
	"azure_bluet":        0xFFF7F7F7,
	"red_tulip":          0xFF9B221A,
	"orange_tulip":       0xFFBD6A22,
	"white_tulip":        0xFFD6E8E8,
	"pink_tulip":         0xFFEBC5FD,
	"oxeye_daisy":        0xFFD6E8E8,
	"cornflower":         0xFF466AEB,
	"lily_of_the_valley": 0xFFFFFFFF,
	"wither_rose":        0xFF211A16,
	"sunflower":          0xFFFFEC4F,
	"lilac":              0xFFB66BB2,
	"rose_bush":          0xFF9B221A,
	"peony":              0xFFEBC5FD,
	"torchflower":        0xFFE4A43B,
	"pitcher_plant":      0xFF6F8CC8,
	"pink_petals":        0xFFF3A6C8,
}
