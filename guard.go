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
	"sync"
	"time"

	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
)

type pauser interface {
	PauseAll()
	ResumeAll()
}

type hostSample struct {
	Load1    float64 `json:"load1"`
	FreeMem  float64 `json:"freeMemPercent"`
	Overload bool    `json:"overload"`
}

func sampleHost() (hostSample, error) {
	l, err := load.Avg()
	if err != nil {
		return hostSample{}, err
	}
	v, err := mem.VirtualMemory()
	if err != nil {
		return hostSample{}, err
	}
	free := 100.0
	if v.Total > 0 {
		free = float64(v.Available) / float64(v.Total) * 100
	}
	return hostSample{Load1: l.Load1, FreeMem: free}, nil
}

// performanceGuard holds renders while host is overloaded. Limits are
// left with 10% margin before renders are resumed.
type performanceGuard struct {
	cfg    guardConfig
	target pauser
	sample func() (hostSample, error)

	lock    sync.Mutex
	last    hostSample
	holding bool
}

var perfGuard *performanceGuard

func newPerformanceGuard(c guardConfig, target pauser) *performanceGuard {
	return &performanceGuard{
		cfg:    c,
		target: target,
		sample: sampleHost,
	}
}

func (g *performanceGuard) overloaded(s hostSample, margin float64) bool {
	if g.cfg.MaxLoad > 0 && s.Load1 > g.cfg.MaxLoad*margin {
		return true
	}
	if g.cfg.MinFreeMem > 0 && s.FreeMem < g.cfg.MinFreeMem/margin {
		return true
	}
	return false
}

func (g *performanceGuard) check() {
	s, err := g.sample()
	if err != nil {
		log.Printf("Performance guard failed to sample host: %v", err)
		return
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.holding {
		s.Overload = g.overloaded(s, 0.9)
		if !s.Overload {
			log.Printf("Host load %.2f, %.1f%% memory free, resuming renders", s.Load1, s.FreeMem)
			g.holding = false
			g.target.ResumeAll()
		}
	} else {
		s.Overload = g.overloaded(s, 1)
		if s.Overload {
			log.Printf("Host load %.2f, %.1f%% memory free, pausing renders", s.Load1, s.FreeMem)
			g.holding = true
			g.target.PauseAll()
		}
	}
	g.last = s
}

func (g *performanceGuard) Run(exitchan <-chan struct{}) {
	t := time.NewTicker(time.Duration(g.cfg.Interval) * time.Second)
	defer t.Stop()
	for {
		select {
		case <-exitchan:
			return
		case <-t.C:
			g.check()
		}
	}
}

func (g *performanceGuard) Stats() map[string]any {
	if g == nil {
		return map[string]any{"enabled": false}
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	return map[string]any{
		"enabled": true,
		"holding": g.holding,
		"last":    g.last,
	}
}
