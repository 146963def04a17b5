package gamification

import (
	"context"
	"fmt"
	"sync"

	"apex-client/api"
	"apex-client/utils"
)

// Backend is the subset of the API the panel talks to
type Backend interface {
	Achievements(ctx context.Context) (*api.AchievementsResponse, error)
	ClaimAchievement(ctx context.Context, id string) (*api.Achievement, error)
}

// PanelState is a snapshot of the achievements panel
type PanelState struct {
	Achievements []api.Achievement
	Streak       *api.Streak
	Filter       Filter
	Loading      bool
}

// Stats summarises all achievements regardless of filter
func (s PanelState) Stats() Stats {
	return Summarize(s.Achievements)
}

// Groups returns the filtered achievements grouped by tier
func (s PanelState) Groups() []TierGroup {
	return GroupByTier(FilterAchievements(s.Achievements, s.Filter))
}

// Panel holds the achievements fetched for the signed-in user
type Panel struct {
	backend Backend
	tracker *Tracker
	logger  *utils.Logger

	mu    sync.Mutex
	state PanelState

	// OnChange is called after every state change
	OnChange func(PanelState)
	// OnUnlock receives achievements unlocked since the last load
	OnUnlock func([]api.Achievement)
}

// NewPanel creates a panel. tracker may be nil to disable unlock detection.
func NewPanel(backend Backend, tracker *Tracker, logger *utils.Logger) *Panel {
	return &Panel{
		backend: backend,
		tracker: tracker,
		logger:  logger,
		state:   PanelState{Filter: FilterAll},
	}
}

// Snapshot returns a copy of the panel state
func (p *Panel) Snapshot() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Panel) snapshotLocked() PanelState {
	s := p.state
	s.Achievements = append([]api.Achievement(nil), p.state.Achievements...)
	if p.state.Streak != nil {
		st := *p.state.Streak
		s.Streak = &st
	}
	return s
}

func (p *Panel) update(fn func(s *PanelState)) {
	p.mu.Lock()
	fn(&p.state)
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if p.OnChange != nil {
		p.OnChange(snap)
	}
}

// SetFilter changes the active filter
func (p *Panel) SetFilter(f Filter) {
	p.update(func(s *PanelState) { s.Filter = f })
}

// Load fetches achievements and the streak. On failure the list is left empty.
func (p *Panel) Load(ctx context.Context) {
	p.update(func(s *PanelState) { s.Loading = true })

	resp, err := p.backend.Achievements(ctx)
	if err != nil {
		p.logger.Error("Failed to load achievements: %v", err)
		p.update(func(s *PanelState) {
			s.Achievements = nil
			s.Streak = nil
			s.Loading = false
		})
		return
	}

	p.update(func(s *PanelState) {
		s.Achievements = resp.Achievements
		s.Streak = resp.Streak
		s.Loading = false
	})
	p.announce(resp.Achievements)
}

// Claim claims an achievement and replaces it with the server copy
func (p *Panel) Claim(ctx context.Context, id string) error {
	updated, err := p.backend.ClaimAchievement(ctx, id)
	if err != nil {
		p.logger.Error("Failed to claim achievement %s: %v", id, err)
		return err
	}

	found := false
	p.update(func(s *PanelState) {
		for i := range s.Achievements {
			if s.Achievements[i].UUID == updated.UUID {
				s.Achievements[i] = *updated
				found = true
				return
			}
		}
	})
	if !found {
		return fmt.Errorf("claimed achievement %s is not in the panel", id)
	}

	p.announce([]api.Achievement{*updated})
	return nil
}

func (p *Panel) announce(list []api.Achievement) {
	if p.tracker == nil {
		return
	}
	fresh, err := p.tracker.NewlyUnlocked(list)
	if err != nil {
		p.logger.Warn("Unlock detection failed: %v", err)
		return
	}
	if len(fresh) > 0 && p.OnUnlock != nil {
		p.OnUnlock(fresh)
	}
}
