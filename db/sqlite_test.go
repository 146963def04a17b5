package db

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "apex.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSession_SaveLoadClear(t *testing.T) {
	database := newTestDB(t)

	s, err := database.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if s != nil {
		t.Fatalf("expected no session on a fresh database, got %+v", s)
	}

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := database.SaveSession(StoredSession{Token: "t1", Email: "ana@example.com", ExpiresAt: exp}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := database.SaveSession(StoredSession{Token: "t2", Email: "ana@example.com", ExpiresAt: exp}); err != nil {
		t.Fatalf("second SaveSession failed: %v", err)
	}

	s, err = database.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if s == nil || s.Token != "t2" {
		t.Fatalf("expected latest session, got %+v", s)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("Expected expiry %v, Got %v", exp, s.ExpiresAt)
	}

	if err := database.ClearSession(); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	s, _ = database.LoadSession()
	if s != nil {
		t.Errorf("expected session cleared, got %+v", s)
	}
}

func TestSession_NoExpiry(t *testing.T) {
	database := newTestDB(t)

	if err := database.SaveSession(StoredSession{Token: "opaque"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	s, err := database.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if !s.ExpiresAt.IsZero() {
		t.Errorf("expected zero expiry, got %v", s.ExpiresAt)
	}
}

func TestSeenAchievements(t *testing.T) {
	database := newTestDB(t)

	if err := database.MarkAchievementsSeen([]string{"a1", "a2"}); err != nil {
		t.Fatalf("MarkAchievementsSeen failed: %v", err)
	}
	// Marking again is harmless
	if err := database.MarkAchievementsSeen([]string{"a2", "a3"}); err != nil {
		t.Fatalf("MarkAchievementsSeen failed: %v", err)
	}

	seen, err := database.SeenAchievements()
	if err != nil {
		t.Fatalf("SeenAchievements failed: %v", err)
	}
	if len(seen) != 3 || !seen["a1"] || !seen["a2"] || !seen["a3"] {
		t.Errorf("unexpected seen set: %v", seen)
	}
}

func TestSettings(t *testing.T) {
	database := newTestDB(t)

	if !database.GetBool("ui.show_sidebar", true) {
		t.Errorf("expected default true for unset key")
	}
	if err := database.SetBool("ui.show_sidebar", false); err != nil {
		t.Fatalf("SetBool failed: %v", err)
	}
	if database.GetBool("ui.show_sidebar", true) {
		t.Errorf("expected stored false")
	}

	if err := database.SetSetting("ui.last_tab", "achievements"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	v, err := database.GetSetting("ui.last_tab", "conversation")
	if err != nil || v != "achievements" {
		t.Errorf("Expected achievements, Got %q (err %v)", v, err)
	}
}

func TestAchievementsSeeded(t *testing.T) {
	database := newTestDB(t)

	seeded, err := database.AchievementsSeeded()
	if err != nil || seeded {
		t.Fatalf("Expected unseeded fresh database, got %v (err %v)", seeded, err)
	}
	if err := database.MarkAchievementsSeeded(); err != nil {
		t.Fatalf("MarkAchievementsSeeded failed: %v", err)
	}
	seeded, err = database.AchievementsSeeded()
	if err != nil || !seeded {
		t.Errorf("Expected seeded after marking, got %v (err %v)", seeded, err)
	}
}
