package main

import (
	"errors"
	"testing"
	"time"

	"github.com/maxsupermanhd/livemap/events"
	"github.com/maxsupermanhd/livemap/primitives"
)

func receive(t *testing.T, c chan mapEvent) mapEvent {
	t.Helper()
	select {
	case e := <-c:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
	return mapEvent{}
}

func TestMapEventRouter(t *testing.T) {
	router := newMapEventRouter()
	stop := startBackgroundRoutine("test router", router.Run)
	reg := events.NewRegistry()
	router.Attach(reg)

	first := router.Connect()
	reg.Emit(events.Event{Kind: events.RenderProgress, World: "w", Data: 42})
	if e := receive(t, first); e.Action != "render-progress" || e.World != "w" || e.Data != 42 {
		t.Errorf("got %+v", e)
	}

	late := router.Connect()
	if e := receive(t, late); e.Action != "render-progress" {
		t.Errorf("late client got %+v", e)
	}

	reg.Emit(events.Event{Kind: events.RegionRendered, World: "w", Region: primitives.RegionCoord(1, -2), Chunks: 7})
	for _, c := range []chan mapEvent{first, late} {
		e := receive(t, c)
		d, ok := e.Data.(map[string]int)
		if !ok || d["x"] != 1 || d["z"] != -2 || d["chunks"] != 7 {
			t.Errorf("region event %+v", e)
		}
	}
	router.Disconnect(late)

	stop()
	if _, ok := <-first; ok {
		t.Error("client channel is open after router stopped")
	}
	// must not block after stop
	router.Disconnect(first)
	router.Broadcast(mapEvent{Action: "x"})
}

func TestToMapEventFailure(t *testing.T) {
	e := toMapEvent(events.Event{Kind: events.RenderFailed, World: "w", Err: errors.New("boom")})
	if e.Data != "boom" {
		t.Errorf("%+v", e)
	}
}
