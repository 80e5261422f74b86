// Package mapgen produces rectangular terrain and elevation arrays from
// layered simplex noise. The simulation consumes the output as opaque bytes;
// only the generator knows how terrain was derived.
package mapgen

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexdominion/internal/world"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width       int
	Height      int
	Seed        int64   // 0 = random
	SeaLevel    float64 // elevation threshold for water (0.0-1.0)
	MountainLvl float64 // elevation threshold for mountains (0.0-1.0)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig(width, height int) GenConfig {
	return GenConfig{
		Width:       width,
		Height:      height,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// Generate creates terrain and elevation arrays of Width*Height bytes,
// indexed r*Width+q.
func Generate(cfg GenConfig) (terrain, elevation []byte) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers for elevation, rainfall, and temperature.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	size := cfg.Width * cfg.Height
	terrain = make([]byte, size)
	elevation = make([]byte, size)

	halfW := float64(cfg.Width) / 2
	halfH := float64(cfg.Height) / 2

	for r := 0; r < cfg.Height; r++ {
		for q := 0; q < cfg.Width; q++ {
			// Hex axial to cartesian for smooth noise sampling.
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

			// Push elevation down toward the map edges so the landmass
			// sits inside a water border.
			nx := (float64(q) - halfW) / halfW
			ny := (float64(r) - halfH) / halfH
			edge := math.Sqrt(nx*nx + ny*ny)
			falloff := 1.0 - math.Pow(edge, 3.5)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			// Colder at altitude and toward the map poles.
			temp = temp*0.6 + (1.0-math.Abs(ny))*0.3 + (1.0-elev)*0.1

			i := r*cfg.Width + q
			terrain[i] = deriveTerrain(elev, rain, temp, cfg)
			elevation[i] = byte(math.Min(elev, 1) * 255)
		}
	}

	return terrain, elevation
}

// deriveTerrain maps environmental parameters onto the ten terrain values.
func deriveTerrain(elev, rain, temp float64, cfg GenConfig) byte {
	switch {
	case elev < cfg.SeaLevel*0.6:
		return world.TerrainDeepWater
	case elev < cfg.SeaLevel:
		return world.TerrainShallowWater
	case elev < cfg.SeaLevel+0.03:
		return world.TerrainBeach
	case elev > cfg.MountainLvl+0.12:
		return world.TerrainSnow
	case elev > cfg.MountainLvl:
		return world.TerrainMountain
	case elev > cfg.MountainLvl-0.12:
		return world.TerrainHills
	case rain < 0.25 && temp > 0.5:
		return world.TerrainDesert
	case rain > 0.45 && elev > 0.45:
		return world.TerrainForest
	case rain > 0.35:
		return world.TerrainGrassland
	default:
		return world.TerrainPlains
	}
}

// octaveNoise layers multiple noise frequencies into fractal noise.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// TerrainCounts summarizes the terrain distribution of a generated map.
func TerrainCounts(terrain []byte) map[byte]int {
	counts := make(map[byte]int)
	for _, t := range terrain {
		counts[t]++
	}
	return counts
}
