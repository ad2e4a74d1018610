package mapvalues

import (
	"fmt"

	"leaguestats/pkg/apperrors"
)

// Placeholder for maps missing on the table.
const UnknownMap = "Unknown map"

var mapNames = map[int]string{
	11: "Summoner's Rift",
	12: "Howling Abyss",
	21: "Nexus Blitz",
	22: "Convergence",
	30: "Rings of Wrath",
}

// MapName returns the display name of the map.
// Unknown maps return the placeholder with a ErrUnknownLookupCode.
func MapName(mapId int) (string, error) {
	if name, ok := mapNames[mapId]; ok {
		return name, nil
	}

	return UnknownMap, fmt.Errorf("map %d: %w", mapId, apperrors.ErrUnknownLookupCode)
}
