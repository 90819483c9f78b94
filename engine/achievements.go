package engine

import (
	"fmt"
	"time"

	"github.com/im-Amrith/DriveGuard1/models"
)

// evaluateAchievements scans the unearned catalog against the user's trip
// history and commits every newly satisfied definition. A failure evaluating
// one definition is logged and skipped so the rest of the catalog still gets
// its pass. Earned achievements are never revoked.
func (e *Engine) evaluateAchievements(repo Repository, user *models.User, trips []models.Trip, now time.Time) ([]models.Achievement, error) {
	defs, err := repo.UnearnedAchievements(user.ID)
	if err != nil {
		return nil, err
	}

	var unlocked []models.Achievement
	for _, def := range defs {
		ok, err := achievementSatisfied(def, trips, now)
		if err != nil {
			e.log.Warnf("skipping achievement %q: %v", def.Name, err)
			continue
		}
		if !ok {
			continue
		}
		earned := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: def.ID,
			EarnedAt:      now,
		}
		if err := repo.AppendEarnedAchievement(&earned); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, def)
	}
	return unlocked, nil
}

// achievementSatisfied tests one catalog definition. Trips arrive
// most-recent-first, which the consecutive-run criterion relies on.
func achievementSatisfied(def models.Achievement, trips []models.Trip, now time.Time) (bool, error) {
	threshold := def.CriteriaValue

	switch AchievementCriteria(def.CriteriaType) {
	case AchievementFirstTrip, AchievementTotalTrips:
		return len(trips) >= threshold, nil

	case AchievementZeroAlerts:
		count := 0
		for _, t := range trips {
			if t.AlertCount == 0 {
				count++
			}
		}
		return count >= threshold, nil

	case AchievementLongTrip:
		for _, t := range trips {
			if t.DurationSeconds >= threshold {
				return true, nil
			}
		}
		return false, nil

	case AchievementWeeklyTrips:
		weekAgo := now.AddDate(0, 0, -7)
		count := 0
		for _, t := range trips {
			if t.Timestamp.After(weekAgo) {
				count++
			}
		}
		return count >= threshold, nil

	case AchievementConsecutiveZeroAlerts:
		run := 0
		for _, t := range trips {
			if t.AlertCount != 0 {
				break
			}
			run++
		}
		return run >= threshold, nil

	case AchievementPerfectScores:
		count := 0
		for _, t := range trips {
			if RateSafetyScore(t.DurationSeconds, t.AlertCount, t.YawnCount) == 100 {
				count++
			}
		}
		return count >= threshold, nil

	default:
		return false, fmt.Errorf("unknown achievement criteria %q", def.CriteriaType)
	}
}
