package tiervalues

import (
	"slices"
	"strings"
)

// Pre-sorted slices for better lookup.
var tierNames = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}

var rankNumbers = map[string]string{
	"I":   "1",
	"II":  "2",
	"III": "3",
	"IV":  "4",
}

// Tiers without division.
var highElo = []string{"MASTER", "GRANDMASTER", "CHALLENGER"}

// Normalize the tier entry.
func normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsValidTier verifies if the tier exists.
func IsValidTier(tier string) bool {
	return slices.Contains(tierNames, normalize(tier))
}

// IsHighElo verifies if the tier has no divisions.
func IsHighElo(tier string) bool {
	return slices.Contains(highElo, normalize(tier))
}

// ShortName creates the compact display of a rank, like "G2", "E4", "M", "GM" or "C".
func ShortName(tier string, rank string) string {
	tier = normalize(tier)
	if !IsValidTier(tier) {
		return ""
	}

	switch tier {
	case "GRANDMASTER":
		return "GM"
	case "MASTER", "CHALLENGER":
		return tier[:1]
	}

	return tier[:1] + rankNumbers[normalize(rank)]
}
