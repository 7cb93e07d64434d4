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

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxsupermanhd/livemap/colors"
)

type yamlBiome struct {
	Grass   string `yaml:"grass"`
	Foliage string `yaml:"foliage"`
	Water   string `yaml:"water"`
	Color   string `yaml:"color"`
}

type yamlPalette struct {
	Blocks        map[string]string    `yaml:"blocks"`
	Biomes        map[string]yamlBiome `yaml:"biomes"`
	Flowers       map[string]string    `yaml:"flowers"`
	Invisible     []string             `yaml:"invisible"`
	GrassTinted   []string             `yaml:"grass_tinted"`
	FoliageTinted []string             `yaml:"foliage_tinted"`
	WaterTinted   []string             `yaml:"water_tinted"`
	Water         string               `yaml:"water"`
	Lava          string               `yaml:"lava"`
	Unknown       string               `yaml:"unknown"`
}

// LoadFile reads palette overrides from YAML file on top of Default.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, Default())
}

// Load decodes YAML overrides and applies them to a copy of base.
func Load(r io.Reader, base *Palette) (*Palette, error) {
	var y yamlPalette
	if err := yaml.NewDecoder(r).Decode(&y); err != nil && err != io.EOF {
		return nil, err
	}
	p := base.Clone()
	for k, v := range y.Blocks {
		c, err := colors.ParseHex(v)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", k, err)
		}
		p.Blocks[Normalize(k)] = c
	}
	for k, v := range y.Biomes {
		b := p.Biome(k)
		for _, f := range []struct {
			s string
			d *uint32
		}{{v.Grass, &b.Grass}, {v.Foliage, &b.Foliage}, {v.Water, &b.Water}, {v.Color, &b.Map}} {
			if f.s == "" {
				continue
			}
			c, err := colors.ParseHex(f.s)
			if err != nil {
				return nil, fmt.Errorf("biome %q: %w", k, err)
			}
			*f.d = c
		}
		p.Biomes[Normalize(k)] = b
	}
	for k, v := range y.Flowers {
		c, err := colors.ParseHex(v)
		if err != nil {
			return nil, fmt.Errorf("flower %q: %w", k, err)
		}
		p.Flowers[Normalize(k)] = c
	}
	for _, k := range y.Invisible {
		p.Invisible[Normalize(k)] = true
	}
	for _, k := range y.GrassTinted {
		p.Tints[Normalize(k)] = TintGrass
	}
	for _, k := range y.FoliageTinted {
		p.Tints[Normalize(k)] = TintFoliage
	}
	for _, k := range y.WaterTinted {
		p.Tints[Normalize(k)] = TintWater
	}
	for _, f := range []struct {
		s string
		d *uint32
	}{{y.Water, &p.Water}, {y.Lava, &p.Lava}, {y.Unknown, &p.Unknown}} {
		if f.s == "" {
			continue
		}
		c, err := colors.ParseHex(f.s)
		if err != nil {
			return nil, err
		}
		*f.d = c
	}
	return p, nil
}
