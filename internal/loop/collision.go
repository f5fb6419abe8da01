package loop

import (
	"math"

	"github.com/tomz197/meteors/internal/object"
)

// checkCollisions resolves the frame's collisions. The player is checked
// first; if the player is hit the session ends and no laser hits are applied
// this frame. Returns true if the player died.
func (g *Game) checkCollisions() bool {
	s := g.session

	if checkPlayerCollisions(s) {
		g.enterGameOver()
		return true // Player died, skip remaining checks
	}

	checkLaserMeteorCollisions(s)
	return false
}

// checkPlayerCollisions spawns an explosion at the ship if any meteor
// touches it. Nothing is destroyed.
func checkPlayerCollisions(s *Session) bool {
	p := s.Player
	near := s.Registry.Near(p, tagMeteor)
	for _, m := range s.Registry.Meteors() {
		if _, ok := near[m]; !ok || !m.Alive() {
			continue
		}
		if collides(p, m) {
			s.Spawn(object.NewExplosion(p.Position()))
			return true
		}
	}
	return false
}

// checkLaserMeteorCollisions destroys each laser that hits something along
// with every meteor it hits, leaving one explosion per meteor.
func checkLaserMeteorCollisions(s *Session) {
	var hits []*object.Meteor
	for _, l := range s.Registry.Lasers() {
		if !l.Alive() {
			continue
		}
		near := s.Registry.Near(l, tagMeteor)
		if len(near) == 0 {
			continue
		}

		hits = hits[:0]
		for _, m := range s.Registry.Meteors() {
			if _, ok := near[m]; !ok || !m.Alive() {
				continue
			}
			if collides(l, m) {
				hits = append(hits, m)
			}
		}
		if len(hits) == 0 {
			continue
		}

		l.Kill()
		for _, m := range hits {
			m.Kill()
			s.Spawn(object.NewExplosion(m.Position()))
		}
	}
}

// collides reports whether two colliders overlap: bounding boxes first,
// then their pixel masks.
func collides(a, b object.Collider) bool {
	ra, rb := a.Bounds(), b.Bounds()
	if !ra.Overlaps(rb) {
		return false
	}
	dx := int(math.Round(rb.X) - math.Round(ra.X))
	dy := int(math.Round(rb.Y) - math.Round(ra.Y))
	return a.Mask().Overlap(b.Mask(), dx, dy)
}
