package main

import (
	"testing"
)

type countingPauser struct {
	paused, resumed int
}

func (p *countingPauser) PauseAll()  { p.paused++ }
func (p *countingPauser) ResumeAll() { p.resumed++ }

func TestPerformanceGuard(t *testing.T) {
	p := &countingPauser{}
	g := newPerformanceGuard(guardConfig{Enabled: true, MaxLoad: 4, MinFreeMem: 10, Interval: 1}, p)
	steps := []struct {
		load, free      float64
		paused, resumed int
	}{
		{1, 50, 0, 0},
		{5, 50, 1, 0},
		{6, 50, 1, 0},
		{3.8, 50, 1, 0}, // within margin
		{3.5, 50, 1, 1},
		{1, 8, 2, 1},
		{1, 10.5, 2, 1},
		{1, 12, 2, 2},
	}
	for i, s := range steps {
		g.sample = func() (hostSample, error) {
			return hostSample{Load1: s.load, FreeMem: s.free}, nil
		}
		g.check()
		if p.paused != s.paused || p.resumed != s.resumed {
			t.Fatalf("step %d: paused %d resumed %d, want %d %d", i, p.paused, p.resumed, s.paused, s.resumed)
		}
	}
	if st := g.Stats(); st["holding"] != false {
		t.Errorf("stats %v", st)
	}
}

func TestDisabledGuardStats(t *testing.T) {
	var g *performanceGuard
	if g.Stats()["enabled"] != false {
		t.Error("nil guard reports enabled")
	}
}
