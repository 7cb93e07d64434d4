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

package chunkStorage

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/save"
)

// ConvFlexibleNBTtoSave parses compression-prefixed chunk NBT
func ConvFlexibleNBTtoSave(d []byte) (*save.Chunk, error) {
	ret := &save.Chunk{}
	err := ret.Load(d)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func normalizeName(n string) string {
	return strings.TrimPrefix(n, "minecraft:")
}

func isWaterlogged(s save.BlockState) bool {
	if s.Properties.Data == nil {
		return false
	}
	props := map[string]string{}
	if err := s.Properties.Unmarshal(&props); err != nil {
		return false
	}
	return props["waterlogged"] == "true"
}

func paletteBits(n, min int) int {
	b := bits.Len(uint(n - 1))
	if b < min {
		b = min
	}
	return b
}

func unpackIndices(bitsPerEntry, length int, data []uint64) (ret []uint16, err error) {
	defer func() {
		if r := recover(); r != nil {
			ret = nil
			err = fmt.Errorf("malformed packed array: %v", r)
		}
	}()
	st := level.NewBitStorage(bitsPerEntry, length, data)
	ret = make([]uint16, length)
	for i := range ret {
		ret[i] = uint16(st.Get(i))
	}
	return ret, nil
}

// ConvertSaveChunk turns go-mc chunk into renderable chunk.
// Broken sections are skipped and reported with the returned error
// alongside of still usable chunk.
func ConvertSaveChunk(c *save.Chunk) (*Chunk, error) {
	ret := &Chunk{
		X:             int(c.XPos),
		Z:             int(c.ZPos),
		InhabitedTime: c.InhabitedTime,
	}
	var errs []string
	for _, s := range c.Sections {
		if len(s.BlockStates.Palette) == 0 {
			continue
		}
		sec := Section{
			Y:       int(s.Y),
			Palette: make([]BlockState, len(s.BlockStates.Palette)),
		}
		for i, v := range s.BlockStates.Palette {
			sec.Palette[i] = BlockState{
				Name:        normalizeName(v.Name),
				Waterlogged: isWaterlogged(v),
			}
		}
		if len(sec.Palette) > 1 && len(s.BlockStates.Data) > 0 {
			ind, err := unpackIndices(paletteBits(len(sec.Palette), 4), 16*16*16, s.BlockStates.Data)
			if err != nil {
				errs = append(errs, fmt.Sprintf("section %d blocks: %v", s.Y, err))
				continue
			}
			sec.Blocks = ind
		}
		if len(s.Biomes.Palette) > 0 {
			sec.BiomePalette = make([]string, len(s.Biomes.Palette))
			for i, v := range s.Biomes.Palette {
				sec.BiomePalette[i] = normalizeName(string(v))
			}
			if len(sec.BiomePalette) > 1 && len(s.Biomes.Data) > 0 {
				ind, err := unpackIndices(paletteBits(len(sec.BiomePalette), 1), 4*4*4, s.Biomes.Data)
				if err != nil {
					errs = append(errs, fmt.Sprintf("section %d biomes: %v", s.Y, err))
				} else {
					sec.Biomes = make([]uint8, len(ind))
					for i, v := range ind {
						sec.Biomes[i] = uint8(v)
					}
				}
			}
		}
		ret.Sections = append(ret.Sections, sec)
	}
	sortSections(ret.Sections)
	if len(errs) > 0 {
		return ret, fmt.Errorf("chunk %d:%d: %s", ret.X, ret.Z, strings.Join(errs, "; "))
	}
	return ret, nil
}

// LoadChunk decodes compression-prefixed chunk data
func LoadChunk(d []byte) (*Chunk, error) {
	sc, err := ConvFlexibleNBTtoSave(d)
	if err != nil {
		return nil, err
	}
	return ConvertSaveChunk(sc)
}
