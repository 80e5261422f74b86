package world

import "testing"

func TestAxialDistance(t *testing.T) {
	tests := []struct {
		name                   string
		q1, r1, q2, r2, expect int
	}{
		{"same tile", 3, 3, 3, 3, 0},
		{"east neighbour", 0, 0, 1, 0, 1},
		{"diagonal neighbour", 0, 0, 1, -1, 1},
		{"straight line", 0, 0, 4, 0, 4},
		{"mixed axes", 0, 0, 2, 3, 5},
		{"negative direction", 5, 5, 2, 5, 3},
		{"cancelling axes", 0, 0, 3, -3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AxialDistance(tt.q1, tt.r1, tt.q2, tt.r2); got != tt.expect {
				t.Errorf("AxialDistance(%d,%d,%d,%d) = %d, want %d",
					tt.q1, tt.r1, tt.q2, tt.r2, got, tt.expect)
			}
			// Distance is symmetric.
			if got := AxialDistance(tt.q2, tt.r2, tt.q1, tt.r1); got != tt.expect {
				t.Errorf("reverse distance = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestAxialNeighborsAreDistanceOne(t *testing.T) {
	for _, n := range AxialNeighbors(7, 4) {
		if d := AxialDistance(7, 4, n[0], n[1]); d != 1 {
			t.Errorf("neighbour (%d,%d) at distance %d", n[0], n[1], d)
		}
	}
}

func TestOffsetNeighborsParity(t *testing.T) {
	even := OffsetNeighbors(5, 4)
	odd := OffsetNeighbors(5, 5)

	wantEven := [6][2]int{{6, 4}, {4, 4}, {5, 3}, {5, 5}, {4, 3}, {4, 5}}
	wantOdd := [6][2]int{{6, 5}, {4, 5}, {5, 4}, {5, 6}, {6, 4}, {6, 6}}

	if even != wantEven {
		t.Errorf("even-row neighbours = %v, want %v", even, wantEven)
	}
	if odd != wantOdd {
		t.Errorf("odd-row neighbours = %v, want %v", odd, wantOdd)
	}
}

func TestCoarseTaxonomy(t *testing.T) {
	if CoarsePassable(CoarseWater) || CoarsePassable(CoarseMountain) {
		t.Error("water and mountain must be impassable")
	}
	if !CoarsePassable(CoarseForest) || !CoarsePassable(CoarseHills) {
		t.Error("forest and hills must be passable")
	}
	if CoarseDefense(CoarseForest) != 1.2 {
		t.Errorf("forest defense = %v, want 1.2", CoarseDefense(CoarseForest))
	}
	if CoarseDefense(CoarseMountain) != 1.3 {
		t.Errorf("mountain defense = %v, want 1.3", CoarseDefense(CoarseMountain))
	}
	if CoarseDefense(TerrainPlains) != 1.0 {
		t.Errorf("plains defense = %v, want 1.0", CoarseDefense(TerrainPlains))
	}
}

func TestIsLand(t *testing.T) {
	for _, tt := range []struct {
		terrain byte
		land    bool
	}{
		{TerrainDeepWater, false},
		{TerrainShallowWater, false},
		{TerrainMountain, false},
		{TerrainPlains, true},
		{TerrainForest, true},
		{TerrainSnow, true},
	} {
		if got := IsLand(tt.terrain); got != tt.land {
			t.Errorf("IsLand(%d) = %v, want %v", tt.terrain, got, tt.land)
		}
	}
}

func flatGrid(w, h int, terrain byte) *Grid {
	tiles := make([]byte, w*h)
	for i := range tiles {
		tiles[i] = terrain
	}
	return &Grid{Width: w, Height: h, Terrain: tiles, Elevation: make([]byte, w*h)}
}

func TestFindPathStraight(t *testing.T) {
	g := flatGrid(10, 10, TerrainPlains)
	path := g.FindPath(1, 1, 5, 1)
	if path == nil {
		t.Fatal("expected a path")
	}
	if path[0] != [2]int{1, 1} || path[len(path)-1] != [2]int{5, 1} {
		t.Errorf("path endpoints = %v .. %v", path[0], path[len(path)-1])
	}
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5", len(path))
	}
}

func TestFindPathAroundWall(t *testing.T) {
	g := flatGrid(10, 10, TerrainPlains)
	// Water wall on column 4, with a gap at row 8.
	for r := 0; r < 8; r++ {
		g.Terrain[g.Index(4, r)] = CoarseWater
	}

	path := g.FindPath(1, 1, 8, 1)
	if path == nil {
		t.Fatal("expected a path through the gap")
	}
	for _, p := range path {
		if !g.Passable(p[0], p[1]) {
			t.Errorf("path crosses impassable tile (%d,%d)", p[0], p[1])
		}
	}
}

func TestFindPathUnreachable(t *testing.T) {
	g := flatGrid(10, 10, TerrainPlains)
	for r := 0; r < 10; r++ {
		g.Terrain[g.Index(4, r)] = CoarseWater
	}
	if path := g.FindPath(1, 1, 8, 1); path != nil {
		t.Errorf("expected nil path across full wall, got %v", path)
	}
}

func TestFindPathSameTile(t *testing.T) {
	g := flatGrid(5, 5, TerrainPlains)
	path := g.FindPath(2, 2, 2, 2)
	if len(path) != 1 || path[0] != [2]int{2, 2} {
		t.Errorf("same-tile path = %v", path)
	}
}

func TestTerrainAtOutOfBounds(t *testing.T) {
	g := flatGrid(5, 5, TerrainForest)
	if got := g.TerrainAt(-1, 0); got != TerrainPlains {
		t.Errorf("out-of-bounds terrain = %d, want plains", got)
	}
	if got := g.TerrainAt(2, 2); got != TerrainForest {
		t.Errorf("in-bounds terrain = %d, want forest", got)
	}
}
