// Package gamification derives the achievement panel, unlock toasts and the
// activity streak from backend data.
package gamification

import (
	"math"

	"apex-client/api"
)

// Filter selects which achievements the panel shows
type Filter string

const (
	FilterAll      Filter = "all"
	FilterUnlocked Filter = "unlocked"
	FilterLocked   Filter = "locked"
)

// Filters lists the filter options in display order
var Filters = []Filter{FilterAll, FilterUnlocked, FilterLocked}

// TierOrder is the display order of tier groups
var TierOrder = []api.Tier{api.TierPlatinum, api.TierGold, api.TierSilver, api.TierBronze}

// TierGroup is one non-empty tier section of the panel
type TierGroup struct {
	Tier         api.Tier
	Achievements []api.Achievement
}

// Stats summarises unlock progress
type Stats struct {
	Unlocked   int
	Total      int
	Completion int
}

// FilterAchievements keeps the achievements matching f, in input order.
// Unknown filters behave like FilterAll.
func FilterAchievements(list []api.Achievement, f Filter) []api.Achievement {
	out := make([]api.Achievement, 0, len(list))
	for _, a := range list {
		switch f {
		case FilterUnlocked:
			if !a.Unlocked {
				continue
			}
		case FilterLocked:
			if a.Unlocked {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// GroupByTier buckets achievements in TierOrder and omits empty buckets.
// Achievements with an unknown tier are dropped.
func GroupByTier(list []api.Achievement) []TierGroup {
	buckets := make(map[api.Tier][]api.Achievement)
	for _, a := range list {
		buckets[a.Tier] = append(buckets[a.Tier], a)
	}

	var groups []TierGroup
	for _, tier := range TierOrder {
		if items := buckets[tier]; len(items) > 0 {
			groups = append(groups, TierGroup{Tier: tier, Achievements: items})
		}
	}
	return groups
}

// CompletionPercentage rounds unlocked/total to a whole percent; 0 when total is 0
func CompletionPercentage(unlocked, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(unlocked) / float64(total) * 100))
}

// Summarize counts unlocked achievements
func Summarize(list []api.Achievement) Stats {
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	return Stats{
		Unlocked:   unlocked,
		Total:      len(list),
		Completion: CompletionPercentage(unlocked, len(list)),
	}
}

// ProgressOf returns the achievement progress and whether it is present
func ProgressOf(a api.Achievement) (int, bool) {
	if a.Progress == nil {
		return 0, false
	}
	return *a.Progress, true
}
