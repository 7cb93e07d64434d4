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

package main

import (
	"log"

	"github.com/maxsupermanhd/livemap/events"
)

type mapEvent struct {
	Action string `json:"action"`
	World  string `json:"world"`
	Data   any    `json:"data,omitempty"`
}

// mapEventRouter fans render events out to websocket clients. Clients
// that connect late get last known event of every world first.
type mapEventRouter struct {
	connect    chan chan mapEvent
	disconnect chan chan mapEvent
	events     chan mapEvent
	done       chan struct{}
}

func newMapEventRouter() *mapEventRouter {
	return &mapEventRouter{
		connect:    make(chan chan mapEvent, 16),
		disconnect: make(chan chan mapEvent, 16),
		events:     make(chan mapEvent, 256),
		done:       make(chan struct{}),
	}
}

func toMapEvent(e events.Event) mapEvent {
	m := mapEvent{
		Action: e.Kind.String(),
		World:  e.World,
		Data:   e.Data,
	}
	switch e.Kind {
	case events.RegionRendered:
		m.Data = map[string]int{"x": e.Region.X, "z": e.Region.Z, "chunks": e.Chunks}
	case events.RenderFailed:
		if e.Err != nil {
			m.Data = e.Err.Error()
		}
	}
	return m
}

// Attach subscribes router to every kind of render events
func (router *mapEventRouter) Attach(r *events.Registry) {
	r.OnAll(func(e events.Event) {
		router.Broadcast(toMapEvent(e))
	})
}

func (router *mapEventRouter) Run(exitchan <-chan struct{}) {
	defer close(router.done)
	clients := map[chan mapEvent]bool{}
	last := map[string]mapEvent{}
	for {
		select {
		case <-exitchan:
			for c := range clients {
				close(c)
			}
			return
		case c := <-router.connect:
			clients[c] = true
			for _, e := range last {
				select {
				case c <- e:
				default:
				}
			}
		case c := <-router.disconnect:
			if clients[c] {
				delete(clients, c)
				close(c)
			}
		case e := <-router.events:
			if e.Action != events.RegionRendered.String() {
				last[e.World] = e
			}
			for c := range clients {
				select {
				case c <- e:
				default:
					log.Printf("Event %v dropped!", e.Action)
				}
			}
		}
	}
}

func (router *mapEventRouter) Connect() chan mapEvent {
	c := make(chan mapEvent, 256)
	select {
	case router.connect <- c:
	case <-router.done:
		close(c)
	}
	return c
}

func (router *mapEventRouter) Disconnect(c chan mapEvent) {
	select {
	case router.disconnect <- c:
	case <-router.done:
	}
}

// Broadcast never blocks, events are dropped when router is full
func (router *mapEventRouter) Broadcast(e mapEvent) {
	select {
	case router.events <- e:
	default:
		log.Printf("Event router is full, %v of %s dropped", e.Action, e.World)
	}
}
