package world

// Grid is the immutable terrain layer of one game: a W×H rectangle of axial
// hexes stored as flat arrays indexed r*W + q.
type Grid struct {
	Width     int
	Height    int
	Terrain   []byte
	Elevation []byte
}

// Index returns the flat array index for (q, r).
func (g *Grid) Index(q, r int) int {
	return r*g.Width + q
}

// InBounds reports whether (q, r) lies on the grid.
func (g *Grid) InBounds(q, r int) bool {
	return q >= 0 && q < g.Width && r >= 0 && r < g.Height
}

// TerrainAt returns the terrain byte at (q, r). Out-of-bounds reads return
// plains under the coarse taxonomy (1.0 defense, passable), matching the
// combat system's out-of-bounds default.
func (g *Grid) TerrainAt(q, r int) byte {
	if !g.InBounds(q, r) {
		return TerrainPlains
	}
	return g.Terrain[g.Index(q, r)]
}

// Passable reports whether the movement system may enter (q, r): in bounds
// and not water/mountain under the coarse taxonomy.
func (g *Grid) Passable(q, r int) bool {
	return g.InBounds(q, r) && CoarsePassable(g.Terrain[g.Index(q, r)])
}

// FindPath runs a breadth-first search from (fromQ, fromR) to (toQ, toR)
// over passable tiles using the offset-coordinate neighbour set. It returns
// the path inclusive of both endpoints, or nil if either endpoint is out of
// bounds or the goal is unreachable. BFS yields a shortest hop-count path;
// ties break by neighbour-enumeration order.
func (g *Grid) FindPath(fromQ, fromR, toQ, toR int) [][2]int {
	if !g.InBounds(fromQ, fromR) || !g.InBounds(toQ, toR) {
		return nil
	}
	if fromQ == toQ && fromR == toR {
		return [][2]int{{fromQ, fromR}}
	}

	start := g.Index(fromQ, fromR)
	goal := g.Index(toQ, toR)

	cameFrom := make(map[int]int, 64)
	cameFrom[start] = -1
	queue := [][2]int{{fromQ, fromR}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range OffsetNeighbors(cur[0], cur[1]) {
			nq, nr := n[0], n[1]
			if !g.Passable(nq, nr) {
				continue
			}
			ni := g.Index(nq, nr)
			if _, seen := cameFrom[ni]; seen {
				continue
			}
			cameFrom[ni] = g.Index(cur[0], cur[1])
			if ni == goal {
				return g.reconstruct(cameFrom, goal)
			}
			queue = append(queue, [2]int{nq, nr})
		}
	}

	return nil
}

// reconstruct walks the cameFrom chain backwards from goal to start.
func (g *Grid) reconstruct(cameFrom map[int]int, goal int) [][2]int {
	var rev []int
	for i := goal; i != -1; i = cameFrom[i] {
		rev = append(rev, i)
	}
	path := make([][2]int, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = [2]int{idx % g.Width, idx / g.Width}
	}
	return path
}
