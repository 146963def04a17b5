package db

import (
	"fmt"
	"time"
)

// SeenAchievements returns the ids of unlocked achievements already announced
func (db *DB) SeenAchievements() (map[string]bool, error) {
	rows, err := db.conn.Query("SELECT uuid FROM seen_achievements")
	if err != nil {
		return nil, fmt.Errorf("failed to list seen achievements: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan seen achievement: %w", err)
		}
		seen[id] = true
	}

	return seen, rows.Err()
}

// MarkAchievementsSeen records that the given achievements were announced
func (db *DB) MarkAchievementsSeen(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO seen_achievements (uuid, seen_at) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, id := range ids {
		if _, err := stmt.Exec(id, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to mark achievement %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen achievements: %w", err)
	}
	return nil
}

const settingAchievementsSeeded = "achievements_seeded"

// AchievementsSeeded reports whether a first batch of achievements has been
// recorded
func (db *DB) AchievementsSeeded() (bool, error) {
	value, err := db.GetSetting(settingAchievementsSeeded, "false")
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// MarkAchievementsSeeded records that the first batch has been seen
func (db *DB) MarkAchievementsSeeded() error {
	return db.SetBool(settingAchievementsSeeded, true)
}
