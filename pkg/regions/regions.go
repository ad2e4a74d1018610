package regions

import (
	"fmt"
	"strconv"
	"strings"
)

// Simple package containing the region list.
// Separated from the region manager to avoid import cycles.
// Create the types for clarity.
type (
	MainRegion string
	SubRegion  string
)

// List of regions.
var RegionList = map[MainRegion][]SubRegion{
	"AMERICAS": {"BR1", "LA1", "LA2", "NA1"},
	"EUROPE":   {"EUN1", "EUW1", "TR1", "ME1", "RU"},
	"ASIA":     {"KR", "JP1"},
	"SEA":      {"OC1", "SG2", "TW2", "VN2"},
}

// Short names used by the website and older match ids.
var shortNames = map[string]SubRegion{
	"BR":   "BR1",
	"LAN":  "LA1",
	"LAS":  "LA2",
	"NA":   "NA1",
	"EUNE": "EUN1",
	"EUW":  "EUW1",
	"TR":   "TR1",
	"ME":   "ME1",
	"RU":   "RU",
	"KR":   "KR",
	"JP":   "JP1",
	"OCE":  "OC1",
	"SG":   "SG2",
	"TW":   "TW2",
	"VN":   "VN2",
}

var subToMain = func() map[SubRegion]MainRegion {
	m := make(map[SubRegion]MainRegion)
	for main, subs := range RegionList {
		for _, sub := range subs {
			m[sub] = main
		}
	}
	return m
}()

// ParseSubRegion accepts a platform code or it's short name, in any case.
func ParseSubRegion(region string) (SubRegion, error) {
	region = strings.ToUpper(strings.TrimSpace(region))

	if _, ok := subToMain[SubRegion(region)]; ok {
		return SubRegion(region), nil
	}

	if sub, ok := shortNames[region]; ok {
		return sub, nil
	}

	return "", fmt.Errorf("unknown region %q", region)
}

// GetMainRegion returns the routing region that serves the given platform.
func GetMainRegion(region string) (MainRegion, error) {
	sub, err := ParseSubRegion(region)
	if err != nil {
		return "", err
	}

	return subToMain[sub], nil
}

// Normalize returns the platform code of the region, or the upper-cased input when it's unknown.
func Normalize(region string) string {
	sub, err := ParseSubRegion(region)
	if err != nil {
		return strings.ToUpper(region)
	}
	return string(sub)
}

// IsValid verifies if the region is known.
func IsValid(region string) bool {
	_, err := ParseSubRegion(region)
	return err == nil
}

// MatchIdRegion returns the region prefix of a match id ("EUW1_123" -> "EUW1").
func MatchIdRegion(matchId string) string {
	prefix, _, _ := strings.Cut(matchId, "_")
	return prefix
}

// CanonicalMatchId upper-cases the region prefix of a "{REGION}_{gameId}" match id.
// Ids that don't have that shape are returned unchanged.
func CanonicalMatchId(matchId string) string {
	prefix, rawGameId, found := strings.Cut(strings.TrimSpace(matchId), "_")
	if !found || prefix == "" {
		return matchId
	}

	gameId, err := strconv.ParseInt(rawGameId, 10, 64)
	if err != nil {
		return matchId
	}

	return fmt.Sprintf("%s_%d", strings.ToUpper(prefix), gameId)
}

// SameRegion compares two region codes case-insensitively.
// Short names and platform codes of the same platform are considered equal.
func SameRegion(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}

	subA, errA := ParseSubRegion(a)
	subB, errB := ParseSubRegion(b)
	if errA != nil || errB != nil {
		return false
	}

	return subA == subB
}
