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
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

const cpsSamples = 10

// Progress counters are updated by scan workers, everything else
// belongs to the ticker goroutine.
type Progress struct {
	regionsTotal atomic.Int64
	regionsDone  atomic.Int64
	chunksTotal  atomic.Int64
	chunksDone   atomic.Int64

	samples    [cpsSamples]float64
	sampleN    int
	sampleI    int
	lastChunks int64
	lastTick   time.Time
	started    time.Time

	report atomic.Pointer[Report]
}

type Report struct {
	Percent      float64 `json:"percent"`
	CPS          float64 `json:"cps"`
	ETA          string  `json:"eta"`
	Elapsed      string  `json:"elapsed"`
	RegionsDone  int64   `json:"regionsDone"`
	RegionsTotal int64   `json:"regionsTotal"`
	ChunksDone   int64   `json:"chunksDone"`
	ChunksTotal  int64   `json:"chunksTotal"`
}

func newProgress(regions int, now time.Time) *Progress {
	p := &Progress{
		started:  now,
		lastTick: now,
	}
	p.regionsTotal.Store(int64(regions))
	// every region is assumed full until it is loaded
	p.chunksTotal.Store(int64(regions) * 32 * 32)
	p.report.Store(&Report{ETA: FormatETA(-1), Elapsed: "0s"})
	return p
}

// regionDone is called exactly once per dispatched region,
// chunks is number of chunks present in it.
func (p *Progress) regionDone(chunks int) {
	p.chunksTotal.Add(int64(chunks) - 32*32)
	p.chunksDone.Add(int64(chunks))
	p.regionsDone.Add(1)
}

func (p *Progress) ChunksDone() int64 {
	return p.chunksDone.Load()
}

func (p *Progress) ChunksTotal() int64 {
	return p.chunksTotal.Load()
}

func (p *Progress) tick(now time.Time) *Report {
	done := p.chunksDone.Load()
	total := p.chunksTotal.Load()
	dt := now.Sub(p.lastTick).Seconds()
	if dt > 0 {
		p.samples[p.sampleI] = float64(done-p.lastChunks) / dt
		p.sampleI = (p.sampleI + 1) % cpsSamples
		if p.sampleN < cpsSamples {
			p.sampleN++
		}
	}
	p.lastChunks = done
	p.lastTick = now
	cps := 0.0
	for i := 0; i < p.sampleN; i++ {
		cps += p.samples[i]
	}
	if p.sampleN > 0 {
		cps /= float64(p.sampleN)
	}
	r := &Report{
		CPS:          cps,
		Elapsed:      now.Sub(p.started).Round(time.Second).String(),
		RegionsDone:  p.regionsDone.Load(),
		RegionsTotal: p.regionsTotal.Load(),
		ChunksDone:   done,
		ChunksTotal:  total,
	}
	if total > 0 {
		r.Percent = math.Min(100, float64(done)/float64(total)*100)
	} else {
		r.Percent = 100
	}
	if cps > 0 {
		r.ETA = FormatETA(float64(total-done) / cps)
	} else {
		r.ETA = FormatETA(-1)
	}
	p.report.Store(r)
	return r
}

// Last returns report computed by the latest tick
func (p *Progress) Last() Report {
	return *p.report.Load()
}

// FormatETA formats seconds as "1h 2m 3s", "2m 3s" or "3s",
// negative value means unknown.
func FormatETA(seconds float64) string {
	if seconds < 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return "unknown"
	}
	s := int64(math.Round(seconds))
	h := s / 3600
	m := s % 3600 / 60
	s %= 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
