package engine

import (
	"math"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

// tickUnitAI runs the per-unit needs update and action decision for every
// unit of every non-eliminated player. Settlers standing on a valid founding
// tile convert into a settlement here; builders standing on their build tile
// place an improvement here.
func tickUnitAI(s *game.State) []Event {
	var events []Event

	for _, p := range s.PlayersInOrder() {
		if p.Eliminated {
			continue
		}
		faction, err := defs.FactionByID(p.FactionID)
		if err != nil {
			continue
		}

		for _, u := range s.UnitsOf(p.UserID) {
			if u.Hunger < 100 {
				u.Hunger++
			}

			hostiles := hostilesInVision(s, u)
			u.Safety = computeSafety(u, hostiles)

			// Needs override the per-type behaviour.
			if u.Hunger > 80 {
				if st := nearestOwnSettlement(s, p.UserID, u.Q, u.R); st != nil {
					u.SetTarget(game.UnitReturning, st.Q, st.R)
				} else {
					u.ClearTarget()
				}
				continue
			}
			threshold := 20 * faction.AIModifiers.Safety * (1 - float64(p.Policies.Aggression)/200)
			if float64(u.Safety) < threshold && len(hostiles) > 0 {
				if tq, tr, ok := retreatTarget(s, u, hostiles); ok {
					u.SetTarget(game.UnitMoving, tq, tr)
				} else {
					u.ClearTarget()
				}
				continue
			}

			switch u.Type {
			case defs.UnitScout:
				if tq, tr, ok := nearestUnexplored(s, p, u.Q, u.R); ok {
					u.SetTarget(game.UnitMoving, tq, tr)
				} else {
					u.ClearTarget()
				}

			case defs.UnitGatherer:
				if tq, tr, ok := gatherTarget(s, p.UserID, u.Q, u.R); ok {
					u.SetTarget(game.UnitGathering, tq, tr)
				} else {
					u.ClearTarget()
				}

			case defs.UnitWarrior:
				if h := closestHostile(u, hostiles); h != nil {
					u.SetTarget(game.UnitFighting, h.Q, h.R)
				} else if tq, tr, ok := patrolTarget(s, p.UserID, u.Q, u.R); ok {
					u.SetTarget(game.UnitMoving, tq, tr)
				} else {
					u.ClearTarget()
				}

			case defs.UnitSettler:
				tq, tr, ok := settleTarget(s, u.Q, u.R)
				if !ok {
					u.ClearTarget()
					break
				}
				if tq == u.Q && tr == u.R {
					// Arrived on a founding tile: consume the settler.
					if st := foundSettlement(s, p.UserID, u.Q, u.R); st != nil {
						s.RemoveUnit(u.ID)
						events = append(events, Event{Type: EventSettlementFounded, Data: SettlementFounded{
							SettlementID: st.ID,
							PlayerID:     p.UserID,
							Name:         st.Name,
							Q:            st.Q,
							R:            st.R,
						}})
					} else {
						u.ClearTarget()
					}
					break
				}
				u.SetTarget(game.UnitMoving, tq, tr)

			case defs.UnitBuilder:
				if u.State == game.UnitBuilding && u.AtTarget() {
					placeImprovement(s, u)
					break
				}
				if tq, tr, ok := buildTarget(s, p.UserID, u.Q, u.R); ok {
					u.SetTarget(game.UnitBuilding, tq, tr)
				} else {
					u.ClearTarget()
				}
			}
		}
	}

	return events
}

// hostilesInVision collects every unit hostile to u within u's vision range
// by axial distance.
func hostilesInVision(s *game.State, u *game.Unit) []*game.Unit {
	var out []*game.Unit
	for _, other := range s.AllUnits() {
		if other.ID == u.ID || !s.Hostile(u.OwnerID, other.OwnerID) {
			continue
		}
		if world.AxialDistance(u.Q, u.R, other.Q, other.R) <= u.VisionRange {
			out = append(out, other)
		}
	}
	return out
}

// computeSafety starts at 100 and subtracts a strength- and
// proximity-weighted penalty per visible hostile, each rounded to the
// nearest point before it is applied.
func computeSafety(u *game.Unit, hostiles []*game.Unit) int {
	safety := 100
	selfStr := u.Strength
	if selfStr < 1 {
		selfStr = 1
	}
	for _, h := range hostiles {
		dist := world.AxialDistance(u.Q, u.R, h.Q, h.R)
		prox := float64(u.VisionRange-dist+1) / float64(u.VisionRange)
		safety -= int(math.Round(float64(h.Strength) / float64(selfStr) * 20 * prox))
	}
	if safety < 0 {
		safety = 0
	}
	if safety > 100 {
		safety = 100
	}
	return safety
}

// retreatTarget moves one moveSpeed-scaled hop along the vector away from the
// mean hostile position, clamped to map bounds. Reports false when the
// clamped target is the unit's own tile.
func retreatTarget(s *game.State, u *game.Unit, hostiles []*game.Unit) (int, int, bool) {
	var mq, mr float64
	for _, h := range hostiles {
		mq += float64(h.Q)
		mr += float64(h.R)
	}
	mq /= float64(len(hostiles))
	mr /= float64(len(hostiles))

	vq := float64(u.Q) - mq
	vr := float64(u.R) - mr
	norm := math.Hypot(vq, vr)
	if norm == 0 {
		return 0, 0, false
	}
	tq := u.Q + int(math.Round(vq/norm*float64(u.MoveSpeed)))
	tr := u.R + int(math.Round(vr/norm*float64(u.MoveSpeed)))
	tq = clampInt(tq, 0, s.Grid.Width-1)
	tr = clampInt(tr, 0, s.Grid.Height-1)
	if tq == u.Q && tr == u.R {
		return 0, 0, false
	}
	return tq, tr, true
}

// nearestUnexplored scans the player's fog map for the closest tile still at
// fog 0.
func nearestUnexplored(s *game.State, p *game.Player, q, r int) (int, int, bool) {
	bestQ, bestR, bestD := 0, 0, -1
	for tr := 0; tr < s.Grid.Height; tr++ {
		for tq := 0; tq < s.Grid.Width; tq++ {
			if p.FogMap[s.Grid.Index(tq, tr)] != game.FogUnexplored {
				continue
			}
			d := world.AxialDistance(q, r, tq, tr)
			if bestD == -1 || d < bestD {
				bestQ, bestR, bestD = tq, tr, d
			}
		}
	}
	return bestQ, bestR, bestD != -1
}

// gatherTarget picks the nearest forest tile inside any own settlement's
// gather radius, falling back to any non-origin land tile in that radius.
func gatherTarget(s *game.State, userID string, q, r int) (int, int, bool) {
	bestQ, bestR, bestD := 0, 0, -1
	fbQ, fbR, fbD := 0, 0, -1
	for _, st := range s.SettlementsOf(userID) {
		rad := st.GatherRadius
		for dr := -rad; dr <= rad; dr++ {
			for dq := -rad; dq <= rad; dq++ {
				tq, tr := st.Q+dq, st.R+dr
				if !s.Grid.InBounds(tq, tr) || game.EuclidSq(tq, tr, st.Q, st.R) > rad*rad {
					continue
				}
				t := s.Grid.Terrain[s.Grid.Index(tq, tr)]
				d := world.AxialDistance(q, r, tq, tr)
				if t == world.CoarseForest {
					if bestD == -1 || d < bestD {
						bestQ, bestR, bestD = tq, tr, d
					}
				} else if world.IsLand(t) && !(tq == st.Q && tr == st.R) {
					if fbD == -1 || d < fbD {
						fbQ, fbR, fbD = tq, tr, d
					}
				}
			}
		}
	}
	if bestD != -1 {
		return bestQ, bestR, true
	}
	return fbQ, fbR, fbD != -1
}

// closestHostile returns the nearest hostile by axial distance, or nil.
func closestHostile(u *game.Unit, hostiles []*game.Unit) *game.Unit {
	var best *game.Unit
	bestD := -1
	for _, h := range hostiles {
		d := world.AxialDistance(u.Q, u.R, h.Q, h.R)
		if bestD == -1 || d < bestD {
			best, bestD = h, d
		}
	}
	return best
}

// patrolTarget picks the closest land tile at exactly patrol radius 3 around
// the nearest own settlement.
func patrolTarget(s *game.State, userID string, q, r int) (int, int, bool) {
	st := nearestOwnSettlement(s, userID, q, r)
	if st == nil {
		return 0, 0, false
	}
	const patrolRadius = 3
	bestQ, bestR, bestD := 0, 0, -1
	for dr := -patrolRadius; dr <= patrolRadius; dr++ {
		for dq := -patrolRadius; dq <= patrolRadius; dq++ {
			tq, tr := st.Q+dq, st.R+dr
			if !s.Grid.InBounds(tq, tr) {
				continue
			}
			if world.AxialDistance(st.Q, st.R, tq, tr) != patrolRadius {
				continue
			}
			if !world.IsLand(s.Grid.Terrain[s.Grid.Index(tq, tr)]) {
				continue
			}
			d := world.AxialDistance(q, r, tq, tr)
			if bestD == -1 || d < bestD {
				bestQ, bestR, bestD = tq, tr, d
			}
		}
	}
	return bestQ, bestR, bestD != -1
}

// settleTarget picks the closest land tile at axial distance >= 5 from every
// existing settlement.
func settleTarget(s *game.State, q, r int) (int, int, bool) {
	bestQ, bestR, bestD := 0, 0, -1
	for tr := 0; tr < s.Grid.Height; tr++ {
		for tq := 0; tq < s.Grid.Width; tq++ {
			if !world.IsLand(s.Grid.Terrain[s.Grid.Index(tq, tr)]) {
				continue
			}
			tooClose := false
			for _, st := range s.Settlements {
				if world.AxialDistance(tq, tr, st.Q, st.R) < 5 {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			d := world.AxialDistance(q, r, tq, tr)
			if bestD == -1 || d < bestD {
				bestQ, bestR, bestD = tq, tr, d
			}
		}
	}
	return bestQ, bestR, bestD != -1
}

// buildTarget picks the closest unimproved land tile inside any own gather
// radius, excluding settlement tiles.
func buildTarget(s *game.State, userID string, q, r int) (int, int, bool) {
	bestQ, bestR, bestD := 0, 0, -1
	for _, st := range s.SettlementsOf(userID) {
		rad := st.GatherRadius
		for dr := -rad; dr <= rad; dr++ {
			for dq := -rad; dq <= rad; dq++ {
				tq, tr := st.Q+dq, st.R+dr
				if !s.Grid.InBounds(tq, tr) || game.EuclidSq(tq, tr, st.Q, st.R) > rad*rad {
					continue
				}
				if tq == st.Q && tr == st.R {
					continue
				}
				if !world.IsLand(s.Grid.Terrain[s.Grid.Index(tq, tr)]) {
					continue
				}
				if _, exists := s.Improvements[game.ImprovementKey(tq, tr)]; exists {
					continue
				}
				d := world.AxialDistance(q, r, tq, tr)
				if bestD == -1 || d < bestD {
					bestQ, bestR, bestD = tq, tr, d
				}
			}
		}
	}
	return bestQ, bestR, bestD != -1
}

// placeImprovement writes the terrain-appropriate improvement under a builder
// standing on its build tile and idles the unit. An already-improved tile
// just idles the unit.
func placeImprovement(s *game.State, u *game.Unit) {
	key := game.ImprovementKey(u.Q, u.R)
	if _, exists := s.Improvements[key]; !exists {
		switch s.Grid.Terrain[s.Grid.Index(u.Q, u.R)] {
		case world.CoarseForest:
			s.Improvements[key] = game.ImprovementFarm
		case world.CoarseHills:
			s.Improvements[key] = game.ImprovementMine
		default:
			s.Improvements[key] = game.ImprovementRoad
		}
	}
	u.ClearTarget()
}

// nearestOwnSettlement returns the player's closest settlement by axial
// distance, or nil.
func nearestOwnSettlement(s *game.State, userID string, q, r int) *game.Settlement {
	var best *game.Settlement
	bestD := -1
	for _, st := range s.SettlementsOf(userID) {
		d := world.AxialDistance(q, r, st.Q, st.R)
		if bestD == -1 || d < bestD {
			best, bestD = st, d
		}
	}
	return best
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
