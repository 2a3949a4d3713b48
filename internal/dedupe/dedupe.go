package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent reads. Using a centralized singleflight.Group ensures that only
// one database round-trip runs for a given key while other callers wait for
// the result.

import (
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"
)

// TrainerGroup deduplicates trainer loads keyed by TrainerKey.
var TrainerGroup singleflight.Group

// LeaderboardGroup deduplicates leaderboard queries keyed by limit.
var LeaderboardGroup singleflight.Group

// TrainerKey canonicalizes a trainer name for TrainerGroup.
func TrainerKey(name string) string {
	return "trainer:" + strings.TrimSpace(name)
}

// LeaderboardKey identifies a leaderboard query for LeaderboardGroup.
func LeaderboardKey(limit int) string {
	return "leaderboard:" + strconv.Itoa(limit)
}
