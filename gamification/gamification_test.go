package gamification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"apex-client/api"
	"apex-client/utils"
)

func intPtr(v int) *int { return &v }

func TestFilterAndGroup(t *testing.T) {
	list := []api.Achievement{
		{UUID: "a1", Tier: api.TierGold, Unlocked: true},
		{UUID: "a2", Tier: api.TierBronze, Unlocked: false},
	}

	unlocked := FilterAchievements(list, FilterUnlocked)
	if len(unlocked) != 1 || unlocked[0].UUID != "a1" {
		t.Errorf("Expected only a1 for unlocked filter, got %+v", unlocked)
	}
	locked := FilterAchievements(list, FilterLocked)
	if len(locked) != 1 || locked[0].UUID != "a2" {
		t.Errorf("Expected only a2 for locked filter, got %+v", locked)
	}
	if all := FilterAchievements(list, FilterAll); len(all) != 2 {
		t.Errorf("Expected 2 for all filter, got %d", len(all))
	}

	groups := GroupByTier(list)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Tier != api.TierGold || groups[1].Tier != api.TierBronze {
		t.Errorf("Expected gold then bronze, got %s then %s", groups[0].Tier, groups[1].Tier)
	}
}

func TestGroupByTier_KeepsOrderWithinTier(t *testing.T) {
	list := []api.Achievement{
		{UUID: "s1", Tier: api.TierSilver},
		{UUID: "p1", Tier: api.TierPlatinum},
		{UUID: "s2", Tier: api.TierSilver},
		{UUID: "x", Tier: "diamond"},
	}
	groups := GroupByTier(list)
	if len(groups) != 2 || groups[0].Tier != api.TierPlatinum {
		t.Fatalf("Unexpected groups: %+v", groups)
	}
	silver := groups[1].Achievements
	if len(silver) != 2 || silver[0].UUID != "s1" || silver[1].UUID != "s2" {
		t.Errorf("Expected input order within tier, got %+v", silver)
	}
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		unlocked, total, want int
	}{
		{3, 4, 75},
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := CompletionPercentage(tt.unlocked, tt.total); got != tt.want {
			t.Errorf("CompletionPercentage(%d, %d) = %d, want %d", tt.unlocked, tt.total, got, tt.want)
		}
	}
}

func TestSummarizeAndProgress(t *testing.T) {
	list := []api.Achievement{
		{UUID: "a", Unlocked: true, Progress: intPtr(40)},
		{UUID: "b"},
		{UUID: "c", Unlocked: true},
		{UUID: "d"},
	}
	stats := Summarize(list)
	if stats.Unlocked != 2 || stats.Total != 4 || stats.Completion != 50 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if p, ok := ProgressOf(list[0]); !ok || p != 40 {
		t.Errorf("Expected progress 40, got %d %v", p, ok)
	}
	if _, ok := ProgressOf(list[1]); ok {
		t.Errorf("Expected no progress for b")
	}
}

func TestStyleTables(t *testing.T) {
	if IconName("flame") != "flame" {
		t.Errorf("Known icon should be kept")
	}
	if IconName("rocket") != DefaultIcon {
		t.Errorf("Unknown icon should fall back to %s", DefaultIcon)
	}
	if StyleFor("diamond") != StyleFor(api.TierBronze) {
		t.Errorf("Unknown tier should use bronze style")
	}
	if StyleFor(api.TierGold) == StyleFor(api.TierSilver) {
		t.Errorf("Tiers should have distinct styles")
	}
	if MetricsFor(BadgeLarge).Container <= MetricsFor(BadgeSmall).Container {
		t.Errorf("Large badge should be bigger than small")
	}
	if MetricsFor("xl") != MetricsFor(BadgeMedium) {
		t.Errorf("Unknown size should use medium")
	}
}

func TestStreakView(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   string
		days   int
		active bool
	}{
		{"today", "2024-05-10", 0, true},
		{"yesterday", "2024-05-09", 1, true},
		{"lapsed", "2024-05-07", 3, false},
		{"timestamp", "2024-05-09T20:00:00Z", 0, true},
		{"garbage", "last tuesday", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewStreakView(api.Streak{CurrentStreak: 1, LongestStreak: 9, LastActivityDate: tt.date}, now)
			if v.DaysSince != tt.days || v.Active != tt.active {
				t.Errorf("Expected days=%d active=%v, got days=%d active=%v", tt.days, tt.active, v.DaysSince, v.Active)
			}
		})
	}

	v := StreakView{Current: 1, Longest: 9}
	if v.CurrentLabel() != "day streak" || v.LongestLabel() != "9 days" {
		t.Errorf("Unexpected labels %q %q", v.CurrentLabel(), v.LongestLabel())
	}
	if DayLabel(0) != "days" || DayLabel(2) != "days" {
		t.Errorf("Expected plural label")
	}
}

func TestNewToast_Defaults(t *testing.T) {
	tests := []struct {
		name          string
		duration      time.Duration
		exitDelay     time.Duration
		wantDuration  time.Duration
		wantExitDelay time.Duration
	}{
		{"zero duration, negative delay", 0, -1, DefaultToastDuration, DefaultExitDelay},
		{"negative duration", -time.Second, 0, DefaultToastDuration, 0},
		{"explicit", 2 * time.Second, 50 * time.Millisecond, 2 * time.Second, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast := NewToast(api.Achievement{}, tt.duration, tt.exitDelay, nil, nil)
			if toast.duration != tt.wantDuration {
				t.Errorf("Expected duration %v, got %v", tt.wantDuration, toast.duration)
			}
			if toast.exitDelay != tt.wantExitDelay {
				t.Errorf("Expected exit delay %v, got %v", tt.wantExitDelay, toast.exitDelay)
			}
		})
	}
	if DefaultToastDuration != 5*time.Second || DefaultExitDelay != 300*time.Millisecond {
		t.Errorf("Expected 5s/300ms defaults, got %v/%v", DefaultToastDuration, DefaultExitDelay)
	}
}

func TestToast_AutoDismiss(t *testing.T) {
	hidden := make(chan struct{}, 1)
	dismissed := make(chan struct{}, 1)

	toast := NewToast(api.Achievement{UUID: "a1"}, 20*time.Millisecond, 10*time.Millisecond,
		func() { hidden <- struct{}{} },
		func() { dismissed <- struct{}{} })
	toast.Start()

	select {
	case <-dismissed:
	case <-time.After(time.Second):
		t.Fatalf("Expected dismissal callback within duration plus exit delay")
	}
	select {
	case <-hidden:
	default:
		t.Errorf("Expected hide before dismissal")
	}
}

func TestToast_DismissOnce(t *testing.T) {
	var mu sync.Mutex
	count := 0
	done := make(chan struct{}, 2)

	toast := NewToast(api.Achievement{}, time.Hour, 5*time.Millisecond, nil, func() {
		mu.Lock()
		count++
		mu.Unlock()
		done <- struct{}{}
	})
	toast.Start()
	toast.Dismiss()
	toast.Dismiss()

	<-done
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("Expected one dismissal, got %d", count)
	}
}

func TestToast_StopCancels(t *testing.T) {
	called := make(chan struct{}, 1)
	toast := NewToast(api.Achievement{}, 10*time.Millisecond, 5*time.Millisecond, nil, func() {
		called <- struct{}{}
	})
	toast.Start()
	toast.Stop()

	select {
	case <-called:
		t.Errorf("Stopped toast should not dismiss")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestToastQueue_OneAtATime(t *testing.T) {
	q := NewToastQueue(10*time.Millisecond, 5*time.Millisecond)
	shown := make(chan string, 4)
	q.OnShow = func(toast *Toast) { shown <- toast.Achievement.UUID }

	q.Push(api.Achievement{UUID: "a1"}, api.Achievement{UUID: "a2"})

	if first := <-shown; first != "a1" {
		t.Errorf("Expected a1 first, got %s", first)
	}
	if q.Len() != 1 {
		t.Errorf("Expected one waiting toast, got %d", q.Len())
	}

	select {
	case second := <-shown:
		if second != "a2" {
			t.Errorf("Expected a2 second, got %s", second)
		}
	case <-time.After(time.Second):
		t.Fatalf("Expected second toast after the first dismissed")
	}
	q.Stop()
}

func TestToastQueue_SetTiming(t *testing.T) {
	q := NewToastQueue(time.Hour, time.Hour)
	shown := make(chan *Toast, 1)
	q.OnShow = func(toast *Toast) { shown <- toast }
	q.SetTiming(0, 5*time.Millisecond)

	q.Push(api.Achievement{UUID: "a1"})
	toast := <-shown
	if toast.duration != DefaultToastDuration || toast.exitDelay != 5*time.Millisecond {
		t.Errorf("Expected new timing applied, got %v/%v", toast.duration, toast.exitDelay)
	}
	q.Stop()
}

type memSeen struct {
	seen   map[string]bool
	seeded bool
	failed bool
}

func (m *memSeen) AchievementsSeeded() (bool, error) {
	if m.failed {
		return false, errors.New("db closed")
	}
	return m.seeded, nil
}

func (m *memSeen) MarkAchievementsSeeded() error {
	m.seeded = true
	return nil
}

func (m *memSeen) SeenAchievements() (map[string]bool, error) {
	if m.failed {
		return nil, errors.New("db closed")
	}
	out := make(map[string]bool, len(m.seen))
	for k := range m.seen {
		out[k] = true
	}
	return out, nil
}

func (m *memSeen) MarkAchievementsSeen(ids []string) error {
	for _, id := range ids {
		m.seen[id] = true
	}
	return nil
}

func TestTracker_NewlyUnlocked(t *testing.T) {
	store := &memSeen{seen: map[string]bool{}}
	tracker := NewTracker(store)

	first := []api.Achievement{{UUID: "a1", Unlocked: true}, {UUID: "a2"}}
	fresh, err := tracker.NewlyUnlocked(first)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("First batch should only seed, got %+v", fresh)
	}

	second := []api.Achievement{{UUID: "a1", Unlocked: true}, {UUID: "a2", Unlocked: true}}
	fresh, err = tracker.NewlyUnlocked(second)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fresh) != 1 || fresh[0].UUID != "a2" {
		t.Errorf("Expected a2 newly unlocked, got %+v", fresh)
	}

	fresh, _ = tracker.NewlyUnlocked(second)
	if len(fresh) != 0 {
		t.Errorf("Already seen achievements should not repeat")
	}

	store.failed = true
	if _, err := tracker.NewlyUnlocked(second); err == nil {
		t.Errorf("Expected store error")
	}
}

func TestTracker_FirstUnlockAfterEmptySeed(t *testing.T) {
	store := &memSeen{seen: map[string]bool{}}
	tracker := NewTracker(store)

	locked := []api.Achievement{{UUID: "a1"}, {UUID: "a2"}}
	fresh, err := tracker.NewlyUnlocked(locked)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fresh) != 0 || !store.seeded {
		t.Fatalf("Expected a silent seed, got fresh=%+v seeded=%v", fresh, store.seeded)
	}

	fresh, err = tracker.NewlyUnlocked([]api.Achievement{{UUID: "a1", Unlocked: true}, {UUID: "a2"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fresh) != 1 || fresh[0].UUID != "a1" {
		t.Errorf("Expected first unlock a1 announced, got %+v", fresh)
	}
}

func TestPanel_ClaimAnnouncesFirstUnlock(t *testing.T) {
	backend := &fakeAchievements{
		resp: &api.AchievementsResponse{
			Achievements: []api.Achievement{
				{UUID: "a1", Tier: api.TierBronze, Progress: intPtr(100)},
				{UUID: "a2", Tier: api.TierSilver},
			},
		},
		claimed: &api.Achievement{UUID: "a1", Tier: api.TierBronze, Unlocked: true, Progress: intPtr(100)},
	}
	store := &memSeen{seen: map[string]bool{}}
	panel := NewPanel(backend, NewTracker(store), utils.NewNopLogger())

	var unlocked []api.Achievement
	panel.OnUnlock = func(list []api.Achievement) { unlocked = append(unlocked, list...) }

	panel.Load(context.Background())
	if err := panel.Claim(context.Background(), "a1"); err != nil {
		t.Fatalf("Unexpected claim error: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].UUID != "a1" {
		t.Errorf("Expected one unlock toast for a1, got %+v", unlocked)
	}
}

type fakeAchievements struct {
	resp     *api.AchievementsResponse
	err      error
	claimed  *api.Achievement
	claimErr error
}

func (f *fakeAchievements) Achievements(ctx context.Context) (*api.AchievementsResponse, error) {
	return f.resp, f.err
}

func (f *fakeAchievements) ClaimAchievement(ctx context.Context, id string) (*api.Achievement, error) {
	return f.claimed, f.claimErr
}

func TestPanel_LoadAndClaim(t *testing.T) {
	backend := &fakeAchievements{
		resp: &api.AchievementsResponse{
			Achievements: []api.Achievement{
				{UUID: "a1", Tier: api.TierGold, Unlocked: true},
				{UUID: "a2", Tier: api.TierBronze, Progress: intPtr(90)},
			},
			Streak: &api.Streak{CurrentStreak: 3, LongestStreak: 5, LastActivityDate: "2024-05-01"},
		},
	}
	store := &memSeen{seen: map[string]bool{"a1": true}, seeded: true}
	panel := NewPanel(backend, NewTracker(store), utils.NewNopLogger())

	var unlocked []api.Achievement
	panel.OnUnlock = func(list []api.Achievement) { unlocked = append(unlocked, list...) }

	panel.Load(context.Background())
	state := panel.Snapshot()
	if len(state.Achievements) != 2 || state.Streak == nil || state.Loading {
		t.Fatalf("Unexpected panel state: %+v", state)
	}
	if state.Stats().Completion != 50 {
		t.Errorf("Expected 50%% completion, got %d", state.Stats().Completion)
	}
	if len(unlocked) != 0 {
		t.Errorf("No new unlocks expected on load, got %+v", unlocked)
	}

	panel.SetFilter(FilterLocked)
	groups := panel.Snapshot().Groups()
	if len(groups) != 1 || groups[0].Tier != api.TierBronze {
		t.Errorf("Expected only the bronze group, got %+v", groups)
	}

	backend.claimed = &api.Achievement{UUID: "a2", Tier: api.TierBronze, Unlocked: true, Progress: intPtr(100)}
	if err := panel.Claim(context.Background(), "a2"); err != nil {
		t.Fatalf("Unexpected claim error: %v", err)
	}
	if !panel.Snapshot().Achievements[1].Unlocked {
		t.Errorf("Expected claimed achievement replaced")
	}
	if len(unlocked) != 1 || unlocked[0].UUID != "a2" {
		t.Errorf("Expected a2 announced after claim, got %+v", unlocked)
	}
}

func TestPanel_LoadFailureLeavesEmpty(t *testing.T) {
	backend := &fakeAchievements{err: api.ErrUnauthorized}
	panel := NewPanel(backend, nil, utils.NewNopLogger())

	panel.Load(context.Background())
	state := panel.Snapshot()
	if len(state.Achievements) != 0 || state.Loading {
		t.Errorf("Expected empty, idle panel after failure, got %+v", state)
	}

	backend.claimErr = errors.New("nope")
	if err := panel.Claim(context.Background(), "a1"); err == nil {
		t.Errorf("Expected claim error")
	}
}
