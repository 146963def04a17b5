package api

import (
	"context"
	"fmt"
)

type claimRequest struct {
	AchievementUUID string `json:"achievement_uuid"`
}

type claimResponse struct {
	Achievement Achievement `json:"achievement"`
}

// Achievements fetches the user's achievements and, when the backend
// includes it, the activity streak.
func (c *Client) Achievements(ctx context.Context) (*AchievementsResponse, error) {
	var resp AchievementsResponse
	if err := c.getJSON(ctx, "/api/v1/gamification/achievements", &resp); err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	for i := range resp.Achievements {
		clampProgress(&resp.Achievements[i])
	}
	return &resp, nil
}

// ClaimAchievement claims a progressed achievement and returns the updated record
func (c *Client) ClaimAchievement(ctx context.Context, id string) (*Achievement, error) {
	var resp claimResponse
	if err := c.postJSON(ctx, "/api/v1/gamification/achievements/claim", claimRequest{AchievementUUID: id}, &resp); err != nil {
		return nil, fmt.Errorf("claim achievement %s: %w", id, err)
	}
	clampProgress(&resp.Achievement)
	return &resp.Achievement, nil
}
