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

package imagecache

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sort"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var ErrUnknownFormat = errors.New("unknown tile format")

type Codec struct {
	Ext    string
	Encode func(w io.Writer, img image.Image) error
	Decode func(r io.Reader) (image.Image, error)
}

var codecs = map[string]Codec{
	"png": {
		Ext:    "png",
		Encode: png.Encode,
		Decode: png.Decode,
	},
	"jpg": {
		Ext: "jpg",
		Encode: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
		},
		Decode: jpeg.Decode,
	},
	"gif": {
		Ext:    "gif",
		Encode: encodeGIF,
		Decode: gif.Decode,
	},
	"bmp": {
		Ext:    "bmp",
		Encode: bmp.Encode,
		Decode: bmp.Decode,
	},
	"webp": {
		Ext: "webp",
		Encode: func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		},
		Decode: webp.Decode,
	},
}

// gifPalette is Plan9 with index 0 taken by transparent, so unwritten
// pixels survive and colors already on the palette map to themselves.
var gifPalette = append(color.Palette{color.Transparent}, palette.Plan9[:255]...)

func encodeGIF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	p := image.NewPaletted(b, gifPalette)
	opaque := gifPalette[1:]
	seen := map[color.NRGBA]uint8{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			c.A = 0xFF
			i, ok := seen[c]
			if !ok {
				i = uint8(opaque.Index(c) + 1)
				seen[c] = i
			}
			p.SetColorIndex(x, y, i)
		}
	}
	return gif.Encode(w, p, nil)
}

func init() {
	codecs["jpeg"] = codecs["jpg"]
}

func CodecByName(name string) (Codec, error) {
	if name == "" {
		name = "png"
	}
	c, ok := codecs[name]
	if !ok {
		return Codec{}, ErrUnknownFormat
	}
	return c, nil
}

func Formats() []string {
	ret := []string{}
	for k, v := range codecs {
		if k == v.Ext {
			ret = append(ret, k)
		}
	}
	sort.Strings(ret)
	return ret
}
