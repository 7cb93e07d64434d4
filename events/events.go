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

// Package events is a synchronous typed observer registry.
package events

import (
	"fmt"
	"sync"

	"github.com/maxsupermanhd/livemap/primitives"
)

type Kind int

const (
	RenderStarted Kind = iota
	RenderProgress
	RegionRendered
	RenderFinished
	RenderCancelled
	RenderFailed
	RenderPaused
	RenderResumed
	kindCount
)

var kindNames = [kindCount]string{
	"render-started",
	"render-progress",
	"region-rendered",
	"render-finished",
	"render-cancelled",
	"render-failed",
	"render-paused",
	"render-resumed",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Event struct {
	Kind   Kind             `json:"kind"`
	World  string           `json:"world"`
	Region primitives.Coord `json:"region,omitempty"`
	Chunks int              `json:"chunks,omitempty"`
	Err    error            `json:"-"`
	// progress snapshot of the job
	Data any `json:"data,omitempty"`
}

type Handler func(Event)

type Registry struct {
	lock     sync.RWMutex
	handlers [kindCount][]Handler
}

func NewRegistry() *Registry {
	return &Registry{}
}

// On registers handler for one kind of events. Handlers are called
// in the emitting goroutine in order of registration.
func (r *Registry) On(k Kind, h Handler) {
	if k < 0 || k >= kindCount {
		panic("unknown event kind " + k.String())
	}
	r.lock.Lock()
	r.handlers[k] = append(r.handlers[k], h)
	r.lock.Unlock()
}

func (r *Registry) OnAll(h Handler) {
	for k := Kind(0); k < kindCount; k++ {
		r.On(k, h)
	}
}

// Emit is a no-op on nil registry
func (r *Registry) Emit(e Event) {
	if r == nil || e.Kind < 0 || e.Kind >= kindCount {
		return
	}
	r.lock.RLock()
	hs := r.handlers[e.Kind]
	r.lock.RUnlock()
	for _, h := range hs {
		h(e)
	}
}
