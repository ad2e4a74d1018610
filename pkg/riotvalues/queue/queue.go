package queuevalues

import (
	"fmt"

	"leaguestats/pkg/apperrors"
)

// Placeholder for queues missing on the table.
const UnknownGameMode = "Unknown gamemode"

var RankedQueueValue = map[int]string{
	420: "RANKED_SOLO_5x5",
	440: "RANKED_FLEX_SR",
}

// Queue type of the solo queue league entries.
const SoloQueue = "RANKED_SOLO_5x5"

// Display names of the queues.
var gameModes = map[int]string{
	0:    "Custom",
	400:  "Normal Draft",
	420:  "Ranked Solo/Duo",
	430:  "Normal Blind",
	440:  "Ranked Flex",
	450:  "ARAM",
	490:  "Quickplay",
	700:  "Clash",
	720:  "ARAM Clash",
	830:  "Co-op vs AI Intro",
	840:  "Co-op vs AI Beginner",
	850:  "Co-op vs AI Intermediate",
	900:  "ARURF",
	1020: "One for All",
	1300: "Nexus Blitz",
	1400: "Ultimate Spellbook",
	1700: "Arena",
	1710: "Arena",
	1900: "URF",
}

// GameMode returns the display name of the queue.
// Unknown queues return the placeholder with a ErrUnknownLookupCode.
func GameMode(queueId int) (string, error) {
	if name, ok := gameModes[queueId]; ok {
		return name, nil
	}

	return UnknownGameMode, fmt.Errorf("queue %d: %w", queueId, apperrors.ErrUnknownLookupCode)
}
