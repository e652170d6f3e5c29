package entity

import "fmt"

// ID is a stable handle to a registry slot. A slot's generation changes
// when it is freed, so an ID held across a removal no longer resolves.
type ID struct {
	Index uint32
	Gen   uint32
}

// String formats the ID for logs and panics.
func (id ID) String() string {
	return fmt.Sprintf("%d#%d", id.Index, id.Gen)
}

type slot struct {
	actor   Actor
	gen     uint32
	alive   bool
	pending bool
}

// Registry owns every actor of a level. Slot 0 always holds the player.
// Removals are deferred: MarkRemoved queues a slot and Flush frees it.
type Registry struct {
	slots   []slot
	free    []uint32
	pending []uint32
	alive   int
}

// PlayerID is the handle of the player slot.
var PlayerID = ID{Index: 0, Gen: 0}

// NewRegistry creates a registry with the player in slot 0.
func NewRegistry(player Actor) (*Registry, error) {
	if err := player.validate(); err != nil {
		return nil, err
	}
	if player.Kind != KindPlayer {
		return nil, fmt.Errorf("%w: slot 0 must hold the player, got %s", ErrInvalidSpawn, player.Kind)
	}
	r := &Registry{}
	r.slots = append(r.slots, slot{actor: player, alive: true})
	r.alive = 1
	return r, nil
}

// Player returns the player actor.
func (r *Registry) Player() *Actor {
	return &r.slots[0].actor
}

// Add places a non-player actor in a free slot and returns its handle.
func (r *Registry) Add(a Actor) (ID, error) {
	if err := a.validate(); err != nil {
		return ID{}, err
	}
	if a.Kind == KindPlayer {
		return ID{}, fmt.Errorf("%w: only one player per registry", ErrInvalidSpawn)
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots)) //#nosec G115 -- slot count is bounded by level size
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.actor = a
	s.alive = true
	s.pending = false
	r.alive++
	return ID{Index: idx, Gen: s.gen}, nil
}

// Get resolves a handle. ok is false for freed or foreign handles.
func (r *Registry) Get(id ID) (*Actor, bool) {
	if int(id.Index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[id.Index]
	if !s.alive || s.gen != id.Gen {
		return nil, false
	}
	return &s.actor, true
}

// MustGet resolves a handle and panics on a stale reference.
func (r *Registry) MustGet(id ID) *Actor {
	a, ok := r.Get(id)
	if !ok {
		panic(fmt.Sprintf("entity: stale reference %s", id))
	}
	return a
}

// Each calls fn for every live non-player actor in slot order, including
// actors already marked for removal this tick. Returning false stops the walk.
func (r *Registry) Each(fn func(ID, *Actor) bool) {
	for i := 1; i < len(r.slots); i++ {
		s := &r.slots[i]
		if !s.alive {
			continue
		}
		if !fn(ID{Index: uint32(i), Gen: s.gen}, &s.actor) { //#nosec G115 -- bounded by slot count
			return
		}
	}
}

// MarkRemoved queues an actor for removal at the next Flush. Marking the same
// actor twice is a no-op. It reports whether the actor is now pending.
func (r *Registry) MarkRemoved(id ID) bool {
	if id.Index == 0 {
		return false
	}
	if _, ok := r.Get(id); !ok {
		return false
	}
	s := &r.slots[id.Index]
	if !s.pending {
		s.pending = true
		r.pending = append(r.pending, id.Index)
	}
	return true
}

// IsPending reports whether the actor is queued for removal.
func (r *Registry) IsPending(id ID) bool {
	if _, ok := r.Get(id); !ok {
		return false
	}
	return r.slots[id.Index].pending
}

// Pending returns the number of queued removals.
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Flush frees every queued slot and returns how many were removed.
func (r *Registry) Flush() int {
	n := len(r.pending)
	for _, idx := range r.pending {
		s := &r.slots[idx]
		s.alive = false
		s.pending = false
		s.actor = Actor{}
		s.gen++
		r.free = append(r.free, idx)
	}
	r.pending = r.pending[:0]
	r.alive -= n
	return n
}

// Len returns the number of live actors, player included.
func (r *Registry) Len() int {
	return r.alive
}

// Count returns the number of live actors of the given kind.
func (r *Registry) Count(kind Kind) int {
	n := 0
	r.Each(func(_ ID, a *Actor) bool {
		if a.Kind == kind {
			n++
		}
		return true
	})
	return n
}
