// Package sim embeds the push model manager the way a game server would: a
// world of replicated actors whose generated setters mark properties dirty, a
// garbage collector that triggers the sweep, and net drivers that replicate
// by comparing against per-driver shadow state.
package sim

import (
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/pushmodel/pushmodel"
)

// KeyFor derives an object key from an actor name and the serial that makes
// it unique within a world.
func KeyFor(name string, serial uint32) pushmodel.ObjectKey {
	return pushmodel.ObjectKey{
		Index:  uint32(xxhash.Sum64String(name)),
		Serial: serial,
	}
}

// World owns actors and plays the role of the garbage collector.
type World struct {
	m      *pushmodel.Manager
	actors map[pushmodel.ObjectKey]*Actor
	live   mapset.Set[pushmodel.ObjectKey]
	serial uint32

	hooks    map[int]func()
	nextHook int
}

func NewWorld(m *pushmodel.Manager) *World {
	return &World{
		m:      m,
		actors: map[pushmodel.ObjectKey]*Actor{},
		live:   mapset.NewThreadUnsafeSet[pushmodel.ObjectKey](),
		hooks:  map[int]func(){},
	}
}

func (w *World) Spawn(name string) *Actor {
	w.serial++
	a := NewActor(w.m, KeyFor(name, w.serial))
	w.actors[a.Key()] = a
	w.live.Add(a.Key())
	return a
}

// Destroy makes the actor unreachable. Its memory, and the key, go away at
// the next CollectGarbage.
func (w *World) Destroy(a *Actor) {
	w.live.Remove(a.Key())
}

func (w *World) IsAlive(key pushmodel.ObjectKey) bool {
	return w.live.Contains(key)
}

func (w *World) Actor(key pushmodel.ObjectKey) (*Actor, bool) {
	if !w.live.Contains(key) {
		return nil, false
	}
	a, ok := w.actors[key]
	return a, ok
}

// Actors returns the live actors ordered by key.
func (w *World) Actors() []*Actor {
	keys := w.live.ToSlice()
	slices.SortFunc(keys, pushmodel.ObjectKey.Compare)
	out := make([]*Actor, len(keys))
	for i, k := range keys {
		out[i] = w.actors[k]
	}
	return out
}

func (w *World) Len() int {
	return w.live.Cardinality()
}

// CollectGarbage drops destroyed actors and then runs every post collect
// hook. It returns how many actors were collected.
func (w *World) CollectGarbage() int {
	collected := 0
	for k := range w.actors {
		if !w.live.Contains(k) {
			delete(w.actors, k)
			collected++
		}
	}
	for _, id := range slices.Sorted(maps.Keys(w.hooks)) {
		w.hooks[id]()
	}
	return collected
}

// OnPostCollect implements pushmodel.CollectHook.
func (w *World) OnPostCollect(fn func()) (cancel func()) {
	id := w.nextHook
	w.nextHook++
	w.hooks[id] = fn
	return func() {
		delete(w.hooks, id)
	}
}
