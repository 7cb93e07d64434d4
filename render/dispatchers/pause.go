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

package dispatchers

import (
	"context"
	"sync"
)

// pauseGate blocks scans while paused without spinning
type pauseGate struct {
	lock   sync.Mutex
	paused bool
	resume chan struct{}
}

func (g *pauseGate) Pause() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.paused {
		return false
	}
	g.paused = true
	g.resume = make(chan struct{})
	return true
}

func (g *pauseGate) Resume() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if !g.paused {
		return false
	}
	g.paused = false
	close(g.resume)
	return true
}

func (g *pauseGate) Paused() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.paused
}

// Wait returns context error if it is done before or while paused
func (g *pauseGate) Wait(ctx context.Context) error {
	g.lock.Lock()
	if !g.paused {
		g.lock.Unlock()
		return ctx.Err()
	}
	ch := g.resume
	g.lock.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return ctx.Err()
	}
}
