package sim

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/pushmodel/pushmodel"
)

// Replicated is what a net driver needs from a generated type.
type Replicated interface {
	Key() pushmodel.ObjectKey
	NumProperties() int
	Property(idx pushmodel.PropertyIndex) any
	IsAuthored(idx pushmodel.PropertyIndex) bool
}

type channel struct {
	obj    Replicated
	handle pushmodel.NetDriverHandle
	shadow []any
	primed bool
}

// NetDriver replicates objects by comparing their properties against the last
// values it sent. With push model on it only compares properties the manager
// reports dirty, plus properties that are not push based.
type NetDriver struct {
	Name string

	// CompareBudget caps dirty property comparisons per tick. Full scans and
	// properties that are not push based are not counted. Zero means no cap.
	// Properties left over stay dirty, and the next tick starts with the object
	// the budget ran out on.
	CompareBudget int

	m          *pushmodel.Manager
	channels   map[pushmodel.ObjectKey]*channel
	replicated mapset.Set[pushmodel.ObjectKey]

	resume   pushmodel.ObjectKey
	resuming bool
}

type TickStats struct {
	Objects     int
	Compared    int
	Sent        int
	FullScans   int
	Deferred    int
	Revalidated int
}

func (s *TickStats) Add(o TickStats) {
	s.Objects += o.Objects
	s.Compared += o.Compared
	s.Sent += o.Sent
	s.FullScans += o.FullScans
	s.Deferred += o.Deferred
	s.Revalidated += o.Revalidated
}

func NewNetDriver(name string, m *pushmodel.Manager) *NetDriver {
	return &NetDriver{
		Name:       name,
		m:          m,
		channels:   map[pushmodel.ObjectKey]*channel{},
		replicated: mapset.NewThreadUnsafeSet[pushmodel.ObjectKey](),
	}
}

// Open starts replicating obj. With push model disabled the channel is still
// opened and falls back to comparing every property.
func (d *NetDriver) Open(obj Replicated) error {
	key := obj.Key()
	if d.replicated.Contains(key) {
		return nil
	}

	h, err := d.m.AddNetworkObject(key, obj.NumProperties())
	if err != nil && !errors.Is(err, pushmodel.ErrDisabled) {
		return fmt.Errorf("%s: open %s: %w", d.Name, key, err)
	}

	d.channels[key] = &channel{
		obj:    obj,
		handle: h,
		shadow: make([]any, obj.NumProperties()),
	}
	d.replicated.Add(key)
	return nil
}

// Close stops replicating key and releases its handle.
func (d *NetDriver) Close(key pushmodel.ObjectKey) {
	ch, ok := d.channels[key]
	if !ok {
		return
	}
	d.m.RemoveNetworkObject(ch.handle)
	delete(d.channels, key)
	d.replicated.Remove(key)
}

func (d *NetDriver) CloseAll() {
	for _, key := range d.replicated.ToSlice() {
		d.Close(key)
	}
}

func (d *NetDriver) Replicating(key pushmodel.ObjectKey) bool {
	return d.replicated.Contains(key)
}

func (d *NetDriver) Len() int {
	return d.replicated.Cardinality()
}

// Shadow is the value this driver last sent for idx of key.
func (d *NetDriver) Shadow(key pushmodel.ObjectKey, idx pushmodel.PropertyIndex) (any, bool) {
	ch, ok := d.channels[key]
	if !ok || !ch.primed {
		return nil, false
	}
	return ch.shadow[idx], true
}

// Tick runs one replication pass over every open channel in key order,
// starting where the previous tick's budget ran out.
func (d *NetDriver) Tick() TickStats {
	var stats TickStats
	keys := d.replicated.ToSlice()
	slices.SortFunc(keys, pushmodel.ObjectKey.Compare)

	start := 0
	if d.resuming {
		start, _ = slices.BinarySearchFunc(keys, d.resume, pushmodel.ObjectKey.Compare)
	}
	d.resuming = false

	spent := 0
	for i := range keys {
		key := keys[(start+i)%len(keys)]
		if d.replicate(d.channels[key], &spent, &stats) && !d.resuming {
			d.resume, d.resuming = key, true
		}
	}
	return stats
}

// replicate reports whether any dirty property was left for a later tick.
func (d *NetDriver) replicate(ch *channel, spent *int, stats *TickStats) (deferred bool) {
	stats.Objects++
	n := ch.obj.NumProperties()

	state, ok := d.m.GetDriverState(ch.handle)
	if !ok || !ch.primed {
		for idx := 0; idx < n; idx++ {
			d.compare(ch, pushmodel.PropertyIndex(idx), stats)
		}
		if ok {
			state.ClearAll()
			state.ClearRecentlyCollected()
		}
		ch.primed = true
		stats.FullScans++
		return false
	}

	if state.RecentlyCollected() {
		// nothing in this schema holds object references
		state.ClearRecentlyCollected()
		stats.Revalidated++
	}

	for idx := 0; idx < n; idx++ {
		pi := pushmodel.PropertyIndex(idx)
		if !d.m.IsPushBased(ch.obj.IsAuthored(pi)) {
			d.compare(ch, pi, stats)
			continue
		}
		if !state.IsPropertyDirty(pi) {
			continue
		}
		if d.CompareBudget > 0 && *spent >= d.CompareBudget {
			stats.Deferred++
			deferred = true
			continue
		}
		*spent++
		d.compare(ch, pi, stats)
		state.ClearProperty(pi)
	}
	return deferred
}

func (d *NetDriver) compare(ch *channel, idx pushmodel.PropertyIndex, stats *TickStats) {
	stats.Compared++
	v := ch.obj.Property(idx)
	if ch.shadow[idx] == v && ch.primed {
		return
	}
	ch.shadow[idx] = v
	stats.Sent++
}
