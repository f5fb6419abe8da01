package loop

import (
	"github.com/solarlune/resolv"

	"github.com/tomz197/meteors/internal/loop/config"
	"github.com/tomz197/meteors/internal/object"
)

// resolv tags for the broad phase.
const (
	tagPlayer = "player"
	tagLaser  = "laser"
	tagMeteor = "meteor"
)

type entry struct {
	id     object.ID
	entity object.Entity
}

// Registry owns a session's entities. It keeps insertion order for drawing,
// narrower laser and meteor lists for collision queries, and a resolv space
// mirroring every collider's bounds.
type Registry struct {
	nextID  object.ID
	entries []entry
	byID    map[object.ID]object.Entity
	lasers  []*object.Laser
	meteors []*object.Meteor

	space  *resolv.Space
	bodies map[object.Entity]*resolv.Object
}

// NewRegistry creates an empty registry for field.
func NewRegistry(field object.Field) *Registry {
	w := int(field.Width) + 2*config.SpaceMargin
	h := int(field.Height) + 2*config.SpaceMargin
	return &Registry{
		byID:   make(map[object.ID]object.Entity),
		space:  resolv.NewSpace(w, h, config.SpaceCellSize, config.SpaceCellSize),
		bodies: make(map[object.Entity]*resolv.Object),
	}
}

// Add stores e and returns its id.
func (r *Registry) Add(e object.Entity) object.ID {
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, entry{id: id, entity: e})
	r.byID[id] = e

	var tag string
	switch o := e.(type) {
	case *object.Player:
		tag = tagPlayer
	case *object.Laser:
		r.lasers = append(r.lasers, o)
		tag = tagLaser
	case *object.Meteor:
		r.meteors = append(r.meteors, o)
		tag = tagMeteor
	}
	if tag != "" {
		b := e.Bounds()
		body := resolv.NewObject(b.X+config.SpaceMargin, b.Y+config.SpaceMargin, b.W, b.H, tag)
		body.Data = e
		r.space.Add(body)
		r.bodies[e] = body
	}
	return id
}

// Get returns the entity with the given id.
func (r *Registry) Get(id object.ID) (object.Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Each calls fn for every entity in insertion order. Entities added while
// iterating are not visited.
func (r *Registry) Each(fn func(object.Entity)) {
	n := len(r.entries)
	for i := 0; i < n; i++ {
		fn(r.entries[i].entity)
	}
}

// Lasers returns the live lasers in insertion order.
func (r *Registry) Lasers() []*object.Laser { return r.lasers }

// Meteors returns the live meteors in insertion order.
func (r *Registry) Meteors() []*object.Meteor { return r.meteors }

// Sync moves every collider's broad-phase body to its current bounds.
func (r *Registry) Sync() {
	for e, body := range r.bodies {
		b := e.Bounds()
		body.X = b.X + config.SpaceMargin
		body.Y = b.Y + config.SpaceMargin
		body.W = b.W
		body.H = b.H
		body.Update()
	}
}

// Near returns the entities tagged tag whose broad-phase cells touch e's.
func (r *Registry) Near(e object.Entity, tag string) map[object.Entity]struct{} {
	body, ok := r.bodies[e]
	if !ok {
		return nil
	}
	check := body.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	near := make(map[object.Entity]struct{})
	for _, o := range check.ObjectsByTags(tag) {
		if other, ok := o.Data.(object.Entity); ok {
			near[other] = struct{}{}
		}
	}
	return near
}

// Sweep removes every dead entity and returns how many were removed.
func (r *Registry) Sweep() int {
	kept := r.entries[:0] // reuse backing array
	removed := 0
	for _, en := range r.entries {
		if en.entity.Alive() {
			kept = append(kept, en)
			continue
		}
		removed++
		delete(r.byID, en.id)
		if body, ok := r.bodies[en.entity]; ok {
			r.space.Remove(body)
			delete(r.bodies, en.entity)
		}
	}
	clear(r.entries[len(kept):])
	r.entries = kept

	if removed > 0 {
		r.lasers = sweepDead(r.lasers)
		r.meteors = sweepDead(r.meteors)
	}
	return removed
}

func sweepDead[T object.Entity](list []T) []T {
	kept := list[:0]
	for _, e := range list {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	clear(list[len(kept):])
	return kept
}
