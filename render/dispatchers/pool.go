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

	"github.com/maxsupermanhd/livemap/primitives"
)

// regionPool runs region scans on fixed number of workers
type regionPool struct {
	queue   chan primitives.Coord
	wg      sync.WaitGroup
	closeFn func()
}

func newRegionPool(threads int, work func(primitives.Coord)) *regionPool {
	if threads < 1 {
		threads = 1
	}
	p := &regionPool{
		queue: make(chan primitives.Coord),
	}
	p.closeFn = sync.OnceFunc(func() {
		close(p.queue)
	})
	p.wg.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer p.wg.Done()
			for r := range p.queue {
				work(r)
			}
		}()
	}
	return p
}

// Submit blocks until some worker takes the region
func (p *regionPool) Submit(ctx context.Context, r primitives.Coord) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.queue <- r:
		return true
	}
}

// stops and waits
func (p *regionPool) Close() {
	p.closeFn()
	p.wg.Wait()
}
