package engine

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/hexdominion/internal/defs"
	"github.com/talgya/hexdominion/internal/game"
	"github.com/talgya/hexdominion/internal/world"
)

const (
	animalStrength    = 3
	animalHP          = 15
	animalVision      = 2
	barbarianStrength = 8
	barbarianHP       = 30
	barbarianVision   = 3

	campPatrolRadius    = 5
	campSpawnInterval   = 50
	maxBarbarianCamps   = 5
	campSettlementGap   = 8
	campCampGap         = 8
	initialCampDistance = 10
)

// spawnInitialNeutrals seeds the map with wild animals on forest tiles and
// two or three barbarian camps away from player settlements. The placement
// RNG is seeded from the map area plus the current tick, so identical
// configurations reproduce identical spawns.
func spawnInitialNeutrals(s *game.State) {
	rng := rand.New(rand.NewSource(int64(s.Grid.Width*s.Grid.Height) + int64(s.Tick)))

	var forests [][2]int
	for r := 0; r < s.Grid.Height; r++ {
		for q := 0; q < s.Grid.Width; q++ {
			if s.Grid.Terrain[s.Grid.Index(q, r)] == world.CoarseForest {
				forests = append(forests, [2]int{q, r})
			}
		}
	}
	rng.Shuffle(len(forests), func(i, j int) {
		forests[i], forests[j] = forests[j], forests[i]
	})
	animals := 5 + rng.Intn(6)
	if animals > len(forests) {
		animals = len(forests)
	}
	for i := 0; i < animals; i++ {
		spawnNeutral(s, game.NeutralAnimal, defs.UnitGatherer, forests[i][0], forests[i][1],
			animalStrength, animalHP, animalVision)
	}

	var candidates [][2]int
	for r := 0; r < s.Grid.Height; r++ {
		for q := 0; q < s.Grid.Width; q++ {
			if !world.IsLand(s.Grid.Terrain[s.Grid.Index(q, r)]) {
				continue
			}
			farEnough := true
			for _, st := range s.Settlements {
				if world.AxialDistance(q, r, st.Q, st.R) < initialCampDistance {
					farEnough = false
					break
				}
			}
			if farEnough {
				candidates = append(candidates, [2]int{q, r})
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	want := 2 + rng.Intn(2)
	for _, c := range candidates {
		if len(s.BarbarianCamps) >= want {
			break
		}
		tooClose := false
		for _, camp := range s.BarbarianCamps {
			if world.AxialDistance(c[0], c[1], camp[0], camp[1]) < campCampGap {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		placeCamp(s, c[0], c[1])
	}
}

// placeCamp records the camp tile and spawns two barbarian warriors on the
// camp and its axial neighbours, skipping non-land tiles.
func placeCamp(s *game.State, q, r int) {
	s.BarbarianCamps = append(s.BarbarianCamps, [2]int{q, r})

	tiles := [][2]int{{q, r}}
	for _, n := range world.AxialNeighbors(q, r) {
		tiles = append(tiles, n)
	}
	placed := 0
	for _, t := range tiles {
		if placed >= 2 {
			break
		}
		if !s.Grid.InBounds(t[0], t[1]) || !world.IsLand(s.Grid.Terrain[s.Grid.Index(t[0], t[1])]) {
			continue
		}
		spawnNeutral(s, game.NeutralBarbarian, defs.UnitWarrior, t[0], t[1],
			barbarianStrength, barbarianHP, barbarianVision)
		placed++
	}
}

func spawnNeutral(s *game.State, owner string, unitType defs.UnitType, q, r, strength, hp, vision int) {
	u := &game.Unit{
		ID:          uuid.NewString(),
		Type:        unitType,
		OwnerID:     owner,
		Q:           q,
		R:           r,
		HP:          hp,
		MaxHP:       hp,
		Safety:      100,
		Strength:    strength,
		VisionRange: vision,
		MoveSpeed:   1,
		State:       game.UnitIdle,
	}
	s.NeutralUnits[u.ID] = u
}

// tickNeutrals drives the neutral behaviour: wounded animals chase their
// nearest neighbour, barbarians fight, raid, return to camp, or patrol
// around it. Neutral movement happens here directly, one tile per tick.
func tickNeutrals(s *game.State) []Event {
	var events []Event

	for _, id := range sortedKeys(s.NeutralUnits) {
		u, ok := s.NeutralUnits[id]
		if !ok {
			continue
		}
		switch u.OwnerID {
		case game.NeutralAnimal:
			events = append(events, tickAnimal(s, u)...)
		case game.NeutralBarbarian:
			events = append(events, tickBarbarian(s, u)...)
		}
	}

	return events
}

func tickAnimal(s *game.State, u *game.Unit) []Event {
	if u.HP >= u.MaxHP {
		u.ClearTarget()
		return nil
	}
	target := nearestForeignUnit(s, u)
	if target == nil {
		u.ClearTarget()
		return nil
	}
	u.SetTarget(game.UnitFighting, target.Q, target.R)
	return stepNeutral(s, u, target.Q, target.R)
}

func tickBarbarian(s *game.State, u *game.Unit) []Event {
	// Raid whatever is visible first.
	if target := nearestForeignUnit(s, u); target != nil {
		u.SetTarget(game.UnitFighting, target.Q, target.R)
		return stepNeutral(s, u, target.Q, target.R)
	}
	if st := nearestVisibleSettlement(s, u); st != nil {
		u.SetTarget(game.UnitMoving, st.Q, st.R)
		return stepNeutral(s, u, st.Q, st.R)
	}

	campQ, campR, hasCamp := nearestCamp(s, u.Q, u.R)
	if hasCamp && world.AxialDistance(u.Q, u.R, campQ, campR) >= campPatrolRadius {
		u.SetTarget(game.UnitReturning, campQ, campR)
		return stepNeutral(s, u, campQ, campR)
	}

	// Patrol: a position-keyed pick keeps wandering stable within the tick.
	dirs := world.AxialNeighborDirections
	d := dirs[(int(s.Tick)+u.Q*7+u.R*13)%len(dirs)]
	nq, nr := u.Q+d[0], u.R+d[1]
	if s.Grid.InBounds(nq, nr) && world.IsLand(s.Grid.Terrain[s.Grid.Index(nq, nr)]) &&
		(!hasCamp || world.AxialDistance(nq, nr, campQ, campR) <= campPatrolRadius) {
		u.ClearTarget()
		u.Q, u.R = nq, nr
		return []Event{{Type: EventUnitMoved, Data: UnitMoved{UnitID: u.ID, Q: nq, R: nr}}}
	}
	u.ClearTarget()
	return nil
}

// stepNeutral moves a neutral one tile toward (tq, tr) via the in-bounds
// land neighbour that shrinks axial distance the most. Already-adjacent
// units hold position for combat.
func stepNeutral(s *game.State, u *game.Unit, tq, tr int) []Event {
	if world.AxialDistance(u.Q, u.R, tq, tr) <= 1 {
		return nil
	}
	bestQ, bestR := u.Q, u.R
	bestD := world.AxialDistance(u.Q, u.R, tq, tr)
	for _, n := range world.AxialNeighbors(u.Q, u.R) {
		if !s.Grid.InBounds(n[0], n[1]) || !world.IsLand(s.Grid.Terrain[s.Grid.Index(n[0], n[1])]) {
			continue
		}
		if d := world.AxialDistance(n[0], n[1], tq, tr); d < bestD {
			bestQ, bestR, bestD = n[0], n[1], d
		}
	}
	if bestQ == u.Q && bestR == u.R {
		return nil
	}
	u.Q, u.R = bestQ, bestR
	return []Event{{Type: EventUnitMoved, Data: UnitMoved{UnitID: u.ID, Q: bestQ, R: bestR}}}
}

// nearestForeignUnit finds the closest unit of any other owner within the
// neutral's vision range.
func nearestForeignUnit(s *game.State, u *game.Unit) *game.Unit {
	var best *game.Unit
	bestD := -1
	for _, other := range s.AllUnits() {
		if other.ID == u.ID || other.OwnerID == u.OwnerID {
			continue
		}
		d := world.AxialDistance(u.Q, u.R, other.Q, other.R)
		if d > u.VisionRange {
			continue
		}
		if bestD == -1 || d < bestD {
			best, bestD = other, d
		}
	}
	return best
}

func nearestVisibleSettlement(s *game.State, u *game.Unit) *game.Settlement {
	var best *game.Settlement
	bestD := -1
	for _, id := range sortedKeys(s.Settlements) {
		st := s.Settlements[id]
		d := world.AxialDistance(u.Q, u.R, st.Q, st.R)
		if d > u.VisionRange {
			continue
		}
		if bestD == -1 || d < bestD {
			best, bestD = st, d
		}
	}
	return best
}

func nearestCamp(s *game.State, q, r int) (int, int, bool) {
	bestQ, bestR, bestD := 0, 0, -1
	for _, c := range s.BarbarianCamps {
		d := world.AxialDistance(q, r, c[0], c[1])
		if bestD == -1 || d < bestD {
			bestQ, bestR, bestD = c[0], c[1], d
		}
	}
	return bestQ, bestR, bestD != -1
}

// tickBarbarianCamps periodically founds a new camp on the land tile
// farthest from the existing camps, keeping clear of every settlement.
func tickBarbarianCamps(s *game.State) []Event {
	if s.Tick == 0 || s.Tick%campSpawnInterval != 0 {
		return nil
	}
	if len(s.BarbarianCamps) >= maxBarbarianCamps {
		return nil
	}

	bestQ, bestR, bestScore := 0, 0, -1
	for r := 0; r < s.Grid.Height; r++ {
		for q := 0; q < s.Grid.Width; q++ {
			if !world.IsLand(s.Grid.Terrain[s.Grid.Index(q, r)]) {
				continue
			}
			ok := true
			for _, id := range sortedKeys(s.Settlements) {
				st := s.Settlements[id]
				if world.AxialDistance(q, r, st.Q, st.R) < campSettlementGap {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			minCamp := -1
			for _, c := range s.BarbarianCamps {
				d := world.AxialDistance(q, r, c[0], c[1])
				if minCamp == -1 || d < minCamp {
					minCamp = d
				}
			}
			if minCamp != -1 && minCamp < campCampGap {
				continue
			}
			score := minCamp
			if score == -1 {
				score = s.Grid.Width + s.Grid.Height
			}
			if score > bestScore {
				bestQ, bestR, bestScore = q, r, score
			}
		}
	}
	if bestScore == -1 {
		return nil
	}
	placeCamp(s, bestQ, bestR)
	return nil
}
