package gamification

import (
	"fmt"
	"math"
	"time"

	"apex-client/api"
)

// MotivationText is shown when the streak has lapsed
const MotivationText = "Your streak ended. Come back daily to build your streak!"

var activityLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// StreakView is the derived display state of a streak
type StreakView struct {
	Current   int
	Longest   int
	DaysSince int
	Active    bool
}

// NewStreakView derives display state from a streak at time now. An
// unparseable activity date yields an inactive streak with DaysSince -1.
func NewStreakView(s api.Streak, now time.Time) StreakView {
	view := StreakView{Current: s.CurrentStreak, Longest: s.LongestStreak, DaysSince: -1}

	last, err := ParseActivityDate(s.LastActivityDate)
	if err != nil {
		return view
	}
	view.DaysSince = DaysSince(last, now)
	view.Active = IsActive(view.DaysSince)
	return view
}

// ParseActivityDate accepts a date or a timestamp
func ParseActivityDate(s string) (time.Time, error) {
	for _, layout := range activityLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised activity date %q", s)
}

// DaysSince is the number of whole days elapsed from last to now
func DaysSince(last, now time.Time) int {
	return int(math.Floor(now.Sub(last).Hours() / 24))
}

// IsActive reports whether a streak is still running
func IsActive(daysSince int) bool {
	return daysSince <= 1
}

// DayLabel returns "day" for one and "days" otherwise
func DayLabel(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// CurrentLabel is the caption under the current streak number
func (v StreakView) CurrentLabel() string {
	return DayLabel(v.Current) + " streak"
}

// LongestLabel is the longest-streak line
func (v StreakView) LongestLabel() string {
	return fmt.Sprintf("%d days", v.Longest)
}
