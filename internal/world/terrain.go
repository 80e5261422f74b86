package world

// Terrain is the 10-value taxonomy used by the map generator and stored in
// GameState. Values are stable wire bytes.
type Terrain = byte

const (
	TerrainDeepWater    Terrain = 0
	TerrainShallowWater Terrain = 1
	TerrainBeach        Terrain = 2
	TerrainDesert       Terrain = 3
	TerrainPlains       Terrain = 4
	TerrainGrassland    Terrain = 5
	TerrainForest       Terrain = 6
	TerrainHills        Terrain = 7
	TerrainMountain     Terrain = 8
	TerrainSnow         Terrain = 9
)

// IsLand reports whether a 10-value terrain byte is land: not water (0, 1)
// and not mountain (8).
func IsLand(t byte) bool {
	return t != TerrainDeepWater && t != TerrainShallowWater && t != TerrainMountain
}

// Legacy coarse taxonomy values. Combat and movement interpret the stored
// terrain byte under this 0..5 scheme: 0 water, 2 hills, 3 forest,
// 5 mountain. The overlap with the 10-value scheme is historical and the
// passability/defense tables below are kept exactly as the systems expect.
const (
	CoarseWater    byte = 0
	CoarseHills    byte = 2
	CoarseForest   byte = 3
	CoarseMountain byte = 5
)

// CoarsePassable reports whether the movement system may enter a tile:
// water (0) and mountain (5) are impassable under the coarse taxonomy.
func CoarsePassable(t byte) bool {
	return t != CoarseWater && t != CoarseMountain
}

// CoarseDefense returns the defender terrain defense used by combat:
// forest 1.2, mountain 1.3, everything else (water/desert/steppe/plains) 1.0.
func CoarseDefense(t byte) float64 {
	switch t {
	case CoarseForest:
		return 1.2
	case CoarseMountain:
		return 1.3
	default:
		return 1.0
	}
}

// TerrainName returns a human-readable name for a 10-value terrain byte.
func TerrainName(t byte) string {
	switch t {
	case TerrainDeepWater:
		return "Deep Water"
	case TerrainShallowWater:
		return "Shallow Water"
	case TerrainBeach:
		return "Beach"
	case TerrainDesert:
		return "Desert"
	case TerrainPlains:
		return "Plains"
	case TerrainGrassland:
		return "Grassland"
	case TerrainForest:
		return "Forest"
	case TerrainHills:
		return "Hills"
	case TerrainMountain:
		return "Mountain"
	case TerrainSnow:
		return "Snow"
	default:
		return "Unknown"
	}
}
