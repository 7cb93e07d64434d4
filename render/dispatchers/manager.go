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
	"io"
	"log"
	"sort"
	"sync"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/render"
)

// StorageResolver finds storage that holds the world
type StorageResolver func(world string) (chunkStorage.ChunkStorage, error)

// Manager is the control surface, one job per world at a time.
type Manager struct {
	ctx      context.Context
	lock     sync.Mutex
	jobs     map[string]*WorldRender
	starting map[string]bool
	storages StorageResolver
	cache    *imagecache.ImageCache
	registry *render.Registry
	palettes *palette.Holder
	events   *events.Registry
	logger   *log.Logger
	cfg      Config
	paused   bool
	// jobs paused by PauseAll, user pauses are not listed
	held map[*WorldRender]bool
}

type ManagerOptions struct {
	Storages StorageResolver
	Cache    *imagecache.ImageCache
	Registry *render.Registry
	Palettes *palette.Holder
	Events   *events.Registry
	Logger   *log.Logger
	Config   Config
}

func NewManager(ctx context.Context, o ManagerOptions) *Manager {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Palettes == nil {
		o.Palettes = palette.NewHolder(palette.Default())
	}
	return &Manager{
		ctx:      ctx,
		jobs:     map[string]*WorldRender{},
		starting: map[string]bool{},
		held:     map[*WorldRender]bool{},
		storages: o.Storages,
		cache:    o.Cache,
		registry: o.Registry,
		palettes: o.Palettes,
		events:   o.Events,
		logger:   o.Logger,
		cfg:      o.Config,
	}
}

func (m *Manager) Config() Config {
	return m.cfg.withDefaults()
}

// Start begins rendering of the world with palette that is current now
func (m *Manager) Start(world string) (*WorldRender, error) {
	m.lock.Lock()
	if j, ok := m.jobs[world]; ok && (j.State().Active() || m.starting[world]) {
		m.lock.Unlock()
		return nil, ErrAlreadyRunning
	}
	s, err := m.storages(world)
	if err != nil {
		m.lock.Unlock()
		return nil, err
	}
	j, err := NewWorldRender(world, Deps{
		Storage:  s,
		Cache:    m.cache,
		Registry: m.registry,
		Palette:  m.palettes.Get(),
		Events:   m.events,
		Logger:   m.logger,
	}, m.cfg)
	if err != nil {
		m.lock.Unlock()
		return nil, err
	}
	if m.paused {
		j.gate.Pause()
		m.held[j] = true
	}
	m.jobs[world] = j
	m.starting[world] = true
	m.lock.Unlock()

	err = j.Start(m.ctx)

	m.lock.Lock()
	delete(m.starting, world)
	m.lock.Unlock()
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (m *Manager) job(world string) (*WorldRender, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	j, ok := m.jobs[world]
	if !ok {
		return nil, ErrNotRunning
	}
	return j, nil
}

func (m *Manager) Cancel(world string) error {
	j, err := m.job(world)
	if err != nil {
		return err
	}
	return j.Cancel()
}

func (m *Manager) Pause(world string) error {
	j, err := m.job(world)
	if err != nil {
		return err
	}
	return j.Pause()
}

func (m *Manager) Resume(world string) error {
	j, err := m.job(world)
	if err != nil {
		return err
	}
	return j.Resume()
}

func (m *Manager) Status(world string) (Status, error) {
	j, err := m.job(world)
	if err != nil {
		return Status{}, err
	}
	return j.Status(), nil
}

func (m *Manager) List() []Status {
	m.lock.Lock()
	jobs := m.snapshot()
	m.lock.Unlock()
	ret := make([]Status, 0, len(jobs))
	for _, j := range jobs {
		ret = append(ret, j.Status())
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].World < ret[j].World })
	return ret
}

func (m *Manager) snapshot() []*WorldRender {
	ret := make([]*WorldRender, 0, len(m.jobs))
	for _, j := range m.jobs {
		ret = append(ret, j)
	}
	return ret
}

// PauseAll holds every active job and jobs started until ResumeAll
func (m *Manager) PauseAll() {
	m.lock.Lock()
	m.paused = true
	jobs := m.snapshot()
	m.lock.Unlock()
	for _, j := range jobs {
		err := j.Pause()
		m.lock.Lock()
		if err == nil {
			m.held[j] = true
		} else if m.starting[j.World()] && m.jobs[j.World()] == j {
			// not started yet, Start picks the closed gate up
			j.gate.Pause()
			m.held[j] = true
		}
		m.lock.Unlock()
	}
}

// ResumeAll releases only jobs held by PauseAll
func (m *Manager) ResumeAll() {
	m.lock.Lock()
	m.paused = false
	held := make([]*WorldRender, 0, len(m.held))
	for j := range m.held {
		held = append(held, j)
	}
	m.held = map[*WorldRender]bool{}
	m.lock.Unlock()
	for _, j := range held {
		_ = j.Resume()
	}
}

func (m *Manager) Paused() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.paused
}

// Close cancels all jobs and waits for them to stop
func (m *Manager) Close() {
	m.lock.Lock()
	jobs := m.snapshot()
	m.lock.Unlock()
	for _, j := range jobs {
		if j.Cancel() == nil {
			<-j.Done()
		}
	}
}
