// Package world provides the hex grid, terrain taxonomies, and pathfinding.
// Game logic uses axial coordinates (q, r); the movement BFS historically
// uses offset-coordinate neighbours and keeps them (see grid.go).
package world

// AxialNeighborDirections defines the six neighbour offsets in axial
// coordinates, used by all gameplay logic (AI, combat adjacency, spawning).
var AxialNeighborDirections = [6][2]int{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{1, -1},
	{-1, 1},
}

// AxialDistance returns the hex distance between two axial coordinates:
// max(|dq|, |dr|, |dq+dr|).
func AxialDistance(q1, r1, q2, r2 int) int {
	dq := absInt(q1 - q2)
	dr := absInt(r1 - r2)
	ds := absInt((q1 - q2) + (r1 - r2))
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// AxialNeighbors returns the six axial neighbours of (q, r). Bounds are the
// caller's concern.
func AxialNeighbors(q, r int) [6][2]int {
	var out [6][2]int
	for i, d := range AxialNeighborDirections {
		out[i] = [2]int{q + d[0], r + d[1]}
	}
	return out
}

// OffsetNeighbors returns the six neighbours of (q, r) under the even/odd-row
// offset convention the movement BFS uses. The two conventions yield equal
// shortest-path lengths under the movement passability mask; they must not be
// mixed within one system.
func OffsetNeighbors(q, r int) [6][2]int {
	if r%2 == 0 {
		return [6][2]int{
			{q + 1, r}, {q - 1, r},
			{q, r - 1}, {q, r + 1},
			{q - 1, r - 1}, {q - 1, r + 1},
		}
	}
	return [6][2]int{
		{q + 1, r}, {q - 1, r},
		{q, r - 1}, {q, r + 1},
		{q + 1, r - 1}, {q + 1, r + 1},
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
