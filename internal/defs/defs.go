// Package defs holds the static game definitions: factions, units,
// buildings, settlement tiers, the tech tree and the law tree. All tables
// are read-only after process start and safe to share across games.
package defs

import "errors"

// ErrUnknownID is returned by every lookup given an id that is not in its
// table.
var ErrUnknownID = errors.New("unknown definition id")

// Resource identifies one of the five player resources.
type Resource string

const (
	ResourceFood       Resource = "food"
	ResourceProduction Resource = "production"
	ResourceGold       Resource = "gold"
	ResourceScience    Resource = "science"
	ResourceCulture    Resource = "culture"
)

// AllResources lists every resource in a fixed order for deterministic
// iteration.
var AllResources = []Resource{
	ResourceFood,
	ResourceProduction,
	ResourceGold,
	ResourceScience,
	ResourceCulture,
}
