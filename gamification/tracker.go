package gamification

import (
	"fmt"

	"apex-client/api"
)

// SeenStore persists the ids of achievements already announced
type SeenStore interface {
	SeenAchievements() (map[string]bool, error)
	MarkAchievementsSeen(ids []string) error
	AchievementsSeeded() (bool, error)
	MarkAchievementsSeeded() error
}

// Tracker finds achievements that became unlocked since the last check
type Tracker struct {
	store SeenStore
}

// NewTracker creates a tracker over store
func NewTracker(store SeenStore) *Tracker {
	return &Tracker{store: store}
}

// NewlyUnlocked returns the unlocked achievements not seen before and marks
// them seen. The first batch ever checked only seeds the store, even when
// it holds no unlocked achievement, and nothing is returned.
func (t *Tracker) NewlyUnlocked(list []api.Achievement) ([]api.Achievement, error) {
	seen, err := t.store.SeenAchievements()
	if err != nil {
		return nil, fmt.Errorf("failed to read seen achievements: %w", err)
	}
	seeded, err := t.store.AchievementsSeeded()
	if err != nil {
		return nil, fmt.Errorf("failed to read seed marker: %w", err)
	}

	var fresh []api.Achievement
	var ids []string
	for _, a := range list {
		if !a.Unlocked || seen[a.UUID] {
			continue
		}
		fresh = append(fresh, a)
		ids = append(ids, a.UUID)
	}

	if len(ids) > 0 {
		if err := t.store.MarkAchievementsSeen(ids); err != nil {
			return nil, fmt.Errorf("failed to mark achievements seen: %w", err)
		}
	}
	if !seeded {
		if err := t.store.MarkAchievementsSeeded(); err != nil {
			return nil, fmt.Errorf("failed to mark achievements seeded: %w", err)
		}
		return nil, nil
	}
	return fresh, nil
}
