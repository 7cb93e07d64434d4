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

package colors

// CubicOut eases t in [0, 1], fast at start and slow near 1.
func CubicOut(t float64) float64 {
	t--
	return 1 + t*t*t
}

// QuinticOut is a steeper variant of CubicOut.
func QuinticOut(t float64) float64 {
	t--
	return 1 + t*t*t*t*t
}

func Linear(t float64) float64 {
	return t
}
