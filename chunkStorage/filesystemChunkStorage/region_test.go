package filesystemChunkStorage

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/maxsupermanhd/livemap/primitives"
)

func TestExtractRegionPath(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
		x, z int
	}{
		{"r.0.0.mca", true, 0, 0},
		{"r.-3.12.mca", true, -3, 12},
		{"r.1.2.mcc", false, 0, 0},
		{"r.a.2.mca", false, 0, 0},
	}
	for _, c := range cases {
		var x, z int
		ok := ExtractRegionPath(c.name, &x, &z)
		if ok != c.ok || (ok && (x != c.x || z != c.z)) {
			t.Errorf("%s: %v %d %d", c.name, ok, x, z)
		}
	}
}

func TestListRegions(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"w/region", "w/DIM-1/region"} {
		if err := os.MkdirAll(path.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		"w/region/r.0.0.mca":       "x",
		"w/region/r.-1.2.mca":      "x",
		"w/region/r.5.5.mca":       "",
		"w/region/notes.txt":       "x",
		"w/DIM-1/region/r.1.1.mca": "x",
	}
	for f, c := range files {
		if err := os.WriteFile(path.Join(root, f), []byte(c), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := NewFilesystemChunkStorage(root)
	if err != nil {
		t.Fatal(err)
	}
	worlds, err := s.ListWorlds()
	if err != nil {
		t.Fatal(err)
	}
	if len(worlds) != 2 || worlds[0] != "w" || worlds[1] != "w@the_nether" {
		t.Fatalf("worlds %v", worlds)
	}
	regs, err := s.ListRegions("w")
	if err != nil {
		t.Fatal(err)
	}
	if len(regs) != 2 {
		t.Fatalf("regions %v", regs)
	}
	regs, err = s.ListRegions("w@the_nether")
	if err != nil || len(regs) != 1 || regs[0] != primitives.RegionCoord(1, 1) {
		t.Fatalf("nether regions %v %v", regs, err)
	}
	r, err := s.LoadRegion(context.Background(), "w", primitives.RegionCoord(9, 9))
	if err != nil || r.ChunkCount() != 0 {
		t.Fatalf("missing region file: %v", err)
	}
	c, err := s.LoadChunk(context.Background(), "w", primitives.ChunkCoord(9*32+3, 9*32))
	if err != nil || c != nil {
		t.Fatalf("chunk of missing region file: %v %v", c, err)
	}
	sp, err := s.Spawn("w")
	if err != nil || sp != primitives.BlockCoord(0, 0) {
		t.Fatalf("spawn without level.dat %v %v", sp, err)
	}
}
