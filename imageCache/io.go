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
	"os"
	"path"
)

var errBadTileSize = errors.New("tile has wrong dimensions")

func setNRGBA(img *image.NRGBA, x, y int, argb uint32) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = uint8(argb >> 16)
	img.Pix[i+1] = uint8(argb >> 8)
	img.Pix[i+2] = uint8(argb)
	img.Pix[i+3] = uint8(argb >> 24)
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetNRGBA(x, y, color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA))
		}
	}
	return dst
}

func (c *ImageCache) readTile(fp string) (*image.NRGBA, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := c.codec.Decode(f)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() != TileSize || img.Bounds().Dy() != TileSize {
		return nil, errBadTileSize
	}
	return toNRGBA(img), nil
}

// writeTile never leaves half-written file at fp
func (c *ImageCache) writeTile(fp string, img image.Image) error {
	dir := path.Dir(fp)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+path.Base(fp)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	err = f.Chmod(0644)
	if err == nil {
		err = c.codec.Encode(f, img)
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	err = f.Close()
	if err != nil {
		os.Remove(tmp)
		return err
	}
	err = os.Rename(tmp, fp)
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
