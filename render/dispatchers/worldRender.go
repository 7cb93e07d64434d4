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
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/imageCache"
	"github.com/maxsupermanhd/livemap/palette"
	"github.com/maxsupermanhd/livemap/primitives"
	"github.com/maxsupermanhd/livemap/render"
)

var (
	ErrAlreadyRunning = errors.New("render is already running")
	ErrNotRunning     = errors.New("render is not running")
	ErrNoRenderers    = errors.New("no renderers enabled")
)

const DefaultSkipThreshold = 500000

type State int

const (
	StateIdle State = iota
	StateEnumerating
	StateScanning
	StatePaused
	StateFinalizing
	StateCancelled
)

var stateNames = []string{"idle", "enumerating", "scanning", "paused", "finalizing", "cancelled"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for i, n := range stateNames {
		if n == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown render state %q", b)
}

// Active states hold workers or are about to
func (s State) Active() bool {
	return s == StateEnumerating || s == StateScanning || s == StatePaused || s == StateFinalizing
}

type Config struct {
	Threads   int
	Renderers []string
	Render    render.Options
	// consecutive spiral steps without existing region before the
	// rest of regions is appended in listing order
	SkipThreshold    int
	GCAfterRender    bool
	ProgressInterval time.Duration
}

func DefaultThreads() int {
	t := runtime.NumCPU() / 2
	if t < 1 {
		return 1
	}
	return t
}

func (c Config) withDefaults() Config {
	if c.Threads <= 0 {
		c.Threads = DefaultThreads()
	}
	if c.SkipThreshold <= 0 {
		c.SkipThreshold = DefaultSkipThreshold
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = time.Second
	}
	return c
}

type Status struct {
	ID        string    `json:"id"`
	World     string    `json:"world"`
	State     State     `json:"state"`
	Finished  bool      `json:"finished"`
	Renderers []string  `json:"renderers"`
	Started   time.Time `json:"started"`
	Progress  Report    `json:"progress"`
	Error     string    `json:"error,omitempty"`
}

// WorldRender renders every region of one world once.
type WorldRender struct {
	ID        uuid.UUID
	world     string
	storage   chunkStorage.ChunkStorage
	cache     *imagecache.ImageCache
	registry  *render.Registry
	palette   *palette.Palette
	cfg       Config
	renderers []string
	events    *events.Registry
	logger    *log.Logger

	lock     sync.Mutex
	state    State
	finished bool
	err      error
	started  time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	gate     pauseGate
	progress *Progress
	done     chan struct{}
}

type Deps struct {
	Storage  chunkStorage.ChunkStorage
	Cache    *imagecache.ImageCache
	Registry *render.Registry
	Palette  *palette.Palette
	Events   *events.Registry
	Logger   *log.Logger
}

func NewWorldRender(world string, d Deps, cfg Config) (*WorldRender, error) {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard, "", 0)
	}
	if d.Palette == nil {
		d.Palette = palette.Default()
	}
	if len(cfg.Renderers) == 0 {
		return nil, ErrNoRenderers
	}
	order, err := d.Registry.Resolve(cfg.Renderers)
	if err != nil {
		return nil, err
	}
	return &WorldRender{
		ID:        uuid.New(),
		world:     world,
		storage:   d.Storage,
		cache:     d.Cache,
		registry:  d.Registry,
		palette:   d.Palette,
		cfg:       cfg.withDefaults(),
		renderers: order,
		events:    d.Events,
		logger:    d.Logger,
		state:     StateIdle,
		done:      make(chan struct{}),
	}, nil
}

func (j *WorldRender) World() string {
	return j.world
}

func (j *WorldRender) setState(s State) {
	j.lock.Lock()
	j.state = s
	j.lock.Unlock()
}

func (j *WorldRender) State() State {
	j.lock.Lock()
	defer j.lock.Unlock()
	return j.state
}

// Start enumerates regions and starts scanning in background.
// Enumeration failure leaves job idle.
func (j *WorldRender) Start(ctx context.Context) error {
	j.lock.Lock()
	if j.state != StateIdle || j.ctx != nil {
		j.lock.Unlock()
		return ErrAlreadyRunning
	}
	j.state = StateEnumerating
	j.ctx, j.cancel = context.WithCancel(ctx)
	j.started = time.Now()
	j.lock.Unlock()

	order, err := j.enumerate()
	if err != nil {
		j.lock.Lock()
		j.state = StateIdle
		j.err = err
		j.cancel()
		j.lock.Unlock()
		close(j.done)
		j.events.Emit(events.Event{Kind: events.RenderFailed, World: j.world, Err: err})
		return err
	}
	j.lock.Lock()
	j.progress = newProgress(len(order), time.Now())
	if j.ctx.Err() != nil {
		j.state = StateCancelled
		j.lock.Unlock()
		close(j.done)
		j.events.Emit(events.Event{Kind: events.RenderCancelled, World: j.world})
		return nil
	}
	if j.gate.Paused() {
		j.state = StatePaused
	} else {
		j.state = StateScanning
	}
	j.lock.Unlock()
	j.logger.Printf("Rendering %s: %d regions with %v on %d threads", j.world, len(order), j.renderers, j.cfg.Threads)
	j.events.Emit(events.Event{Kind: events.RenderStarted, World: j.world, Data: j.Status()})
	go j.run(order)
	return nil
}

func (j *WorldRender) enumerate() ([]primitives.Coord, error) {
	regions, err := j.storage.ListRegions(j.world)
	if err != nil {
		return nil, err
	}
	spawn, err := j.storage.Spawn(j.world)
	if err != nil {
		j.logger.Printf("Failed to get spawn of %s, starting from origin: %v", j.world, err)
		spawn = primitives.BlockCoord(0, 0)
	}
	return SpiralOrder(spawn.Region(), regions, j.cfg.SkipThreshold), nil
}

// SpiralOrder orders regions outwards from center. After threshold
// consecutive misses remaining regions are appended as listed.
func SpiralOrder(center primitives.Coord, regions []primitives.Coord, threshold int) []primitives.Coord {
	center = center.Region()
	left := make(map[primitives.Coord]bool, len(regions))
	radius := 0
	for _, r := range regions {
		r = r.Region()
		left[r] = true
		if d := abs(r.X - center.X); d > radius {
			radius = d
		}
		if d := abs(r.Z - center.Z); d > radius {
			radius = d
		}
	}
	ret := make([]primitives.Coord, 0, len(left))
	misses := 0
	sp := primitives.NewSpiral(center, radius)
	for len(left) > 0 {
		c, ok := sp.Next()
		if !ok {
			break
		}
		if left[c] {
			ret = append(ret, c)
			delete(left, c)
			misses = 0
			continue
		}
		misses++
		if misses > threshold {
			break
		}
	}
	for _, r := range regions {
		r = r.Region()
		if left[r] {
			ret = append(ret, r)
			delete(left, r)
		}
	}
	return ret
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (j *WorldRender) run(order []primitives.Coord) {
	defer close(j.done)
	tickerDone := make(chan struct{})
	tickerExited := make(chan struct{})
	go j.progressTicker(tickerDone, tickerExited)

	pool := newRegionPool(j.cfg.Threads, func(r primitives.Coord) {
		j.processRegion(j.ctx, r)
	})
	for _, r := range order {
		if !pool.Submit(j.ctx, r) {
			break
		}
	}
	pool.Close()
	close(tickerDone)
	<-tickerExited

	if j.ctx.Err() != nil {
		j.setState(StateCancelled)
		r := j.progress.tick(time.Now())
		j.logger.Printf("Render of %s cancelled after %s regions (%s chunks)", j.world,
			humanize.Comma(r.RegionsDone), humanize.Comma(r.ChunksDone))
		j.events.Emit(events.Event{Kind: events.RenderCancelled, World: j.world, Data: j.Status()})
		return
	}
	j.setState(StateFinalizing)
	r := j.progress.tick(time.Now())
	if j.cfg.GCAfterRender {
		go debug.FreeOSMemory()
	}
	j.lock.Lock()
	j.state = StateIdle
	j.finished = true
	j.lock.Unlock()
	j.cancel()
	j.logger.Printf("Rendered %s: %s regions, %s chunks in %s", j.world,
		humanize.Comma(r.RegionsDone), humanize.Comma(r.ChunksDone), r.Elapsed)
	j.events.Emit(events.Event{Kind: events.RenderFinished, World: j.world, Data: j.Status()})
}

func (j *WorldRender) progressTicker(stop <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	t := time.NewTicker(j.cfg.ProgressInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-t.C:
			r := j.progress.tick(now)
			j.logger.Printf("Render %s: %s/%s chunks (%06.2f%%) (%6.0f chunks/s) (%s ETA)", j.world,
				humanize.Comma(r.ChunksDone), humanize.Comma(r.ChunksTotal), r.Percent, r.CPS, r.ETA)
			j.events.Emit(events.Event{Kind: events.RenderProgress, World: j.world, Data: j.Status()})
		}
	}
}

// Cancel stops the job, tiles written so far stay on disk
func (j *WorldRender) Cancel() error {
	j.lock.Lock()
	defer j.lock.Unlock()
	if !j.state.Active() || j.cancel == nil {
		return ErrNotRunning
	}
	j.cancel()
	return nil
}

func (j *WorldRender) Pause() error {
	j.lock.Lock()
	if j.state != StateScanning && j.state != StateEnumerating {
		j.lock.Unlock()
		return ErrNotRunning
	}
	j.gate.Pause()
	if j.state == StateScanning {
		j.state = StatePaused
	}
	j.lock.Unlock()
	j.events.Emit(events.Event{Kind: events.RenderPaused, World: j.world})
	return nil
}

func (j *WorldRender) Resume() error {
	j.lock.Lock()
	if !j.gate.Paused() {
		j.lock.Unlock()
		return ErrNotRunning
	}
	j.gate.Resume()
	if j.state == StatePaused {
		j.state = StateScanning
	}
	j.lock.Unlock()
	j.events.Emit(events.Event{Kind: events.RenderResumed, World: j.world})
	return nil
}

// Done is closed once job reaches idle or cancelled state after Start
func (j *WorldRender) Done() <-chan struct{} {
	return j.done
}

func (j *WorldRender) Status() Status {
	j.lock.Lock()
	s := Status{
		ID:        j.ID.String(),
		World:     j.world,
		State:     j.state,
		Finished:  j.finished,
		Renderers: append([]string(nil), j.renderers...),
		Started:   j.started,
	}
	if j.err != nil {
		s.Error = j.err.Error()
	}
	p := j.progress
	j.lock.Unlock()
	if p != nil {
		s.Progress = p.Last()
	}
	return s
}
