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
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/maxsupermanhd/livemap/chunkStorage"
	"github.com/maxsupermanhd/livemap/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/livemap/chunkStorage/postgresChunkStorage"
	"github.com/maxsupermanhd/livemap/primitives"
	"github.com/maxsupermanhd/livemap/render/dispatchers"
)

var (
	dbstr      = flag.String("db", "", "Database connection string, filesystem path is used when empty")
	fspath     = flag.String("path", "./worlds", "Path to folder with world saves")
	wname      = flag.String("world", "world@the_nether", "World name")
	needle     = flag.String("block", "portal", "Part of block name to look for")
	outfname   = flag.String("out", "out.txt", "Filename for writing results to")
	threadsnum = flag.Int("threads", 3, "Thread count")
)

func must(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

func searchRegion(r *chunkStorage.Region, results chan<- string) {
	for _, c := range r.Chunks {
		if c == nil {
			continue
		}
		for _, s := range c.Sections {
			for _, b := range s.Palette {
				if strings.Contains(b.Name, *needle) {
					results <- fmt.Sprintf("CHUNK x%d z%d section %d palette match %s", c.X, c.Z, s.Y, b.Name)
				}
			}
		}
	}
}

func worker(ctx context.Context, wid int, cs chunkStorage.ChunkStorage, jobs <-chan primitives.Coord, results chan<- string, chunks *int64, lock *sync.Mutex, wg *sync.WaitGroup) {
	defer wg.Done()
	regioncount := 0
	for j := range jobs {
		r, err := cs.LoadRegion(ctx, *wname, j)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Worker %d failed to load region %s: %v", wid, j, err)
			continue
		}
		regioncount++
		searchRegion(r, results)
		lock.Lock()
		*chunks += int64(r.ChunkCount())
		lock.Unlock()
	}
	log.Printf("Worker %d exits, processed %d regions", wid, regioncount)
}

func filewriter(results <-chan string, done chan<- struct{}) {
	defer close(done)
	file, err := os.OpenFile(*outfname, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	must(err)
	defer file.Close()
	linecount := 0
	for r := range results {
		linecount++
		log.Print(r)
		file.WriteString(r + "\n")
	}
	log.Printf("File writer exits, wrote %d lines", linecount)
}

func main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	var cs chunkStorage.ChunkStorage
	var err error
	if *dbstr != "" {
		cs, err = postgresChunkStorage.NewPostgresChunkStorage(ctx, *dbstr)
	} else {
		cs, err = filesystemChunkStorage.NewFilesystemChunkStorage(*fspath)
	}
	must(err)
	defer cs.Close()
	regions, err := cs.ListRegions(*wname)
	must(err)

	jobs := make(chan primitives.Coord)
	results := make(chan string, 64)
	written := make(chan struct{})
	go filewriter(results, written)
	var chunks int64
	var lock sync.Mutex
	wg := new(sync.WaitGroup)
	for w := 0; w < *threadsnum; w++ {
		wg.Add(1)
		go worker(ctx, w, cs, jobs, results, &chunks, &lock, wg)
	}
	starttime := time.Now()
	prevtime := time.Now()
	for i, r := range regions {
		select {
		case jobs <- r:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		if time.Since(prevtime) > time.Second {
			elapsed := time.Since(starttime).Seconds()
			eta := float64(len(regions)-i) / (float64(i) / elapsed)
			log.Printf("Dispatched %d of %d regions (%06.2f%%) (%s ETA)",
				i, len(regions), float32(i)/float32(len(regions))*100, dispatchers.FormatETA(eta))
			prevtime = time.Now()
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	<-written
	log.Printf("Processed %d chunks of %d regions in %s", chunks, len(regions), time.Since(starttime).Round(time.Second))
}
