package engine

import (
	"fmt"
	"time"

	"github.com/im-Amrith/DriveGuard1/models"
)

// Badge score thresholds for the safety-based criteria.
const (
	longSafeTripMinScore   = 90
	highSafetyTripMinScore = 95
)

// evaluateBadges mirrors achievement evaluation over the active badge catalog
// and credits each unlocked badge's point reward to the user exactly once.
func (e *Engine) evaluateBadges(repo Repository, user *models.User, trips []models.Trip, streak *models.UserStreak, now time.Time) ([]models.Badge, error) {
	defs, err := repo.UnearnedBadges(user.ID)
	if err != nil {
		return nil, err
	}

	var unlocked []models.Badge
	for _, def := range defs {
		ok, err := badgeSatisfied(def, trips, streak)
		if err != nil {
			e.log.Warnf("skipping badge %q: %v", def.Name, err)
			continue
		}
		if !ok {
			continue
		}
		earned := models.UserBadge{
			UserID:   user.ID,
			BadgeID:  def.ID,
			EarnedAt: now,
		}
		if err := repo.AppendEarnedBadge(&earned); err != nil {
			return nil, err
		}
		user.Points += def.PointsReward
		unlocked = append(unlocked, def)
	}
	return unlocked, nil
}

func badgeSatisfied(def models.Badge, trips []models.Trip, streak *models.UserStreak) (bool, error) {
	threshold := def.CriteriaValue

	switch BadgeCriteria(def.CriteriaType) {
	case BadgeNightTrips:
		count := 0
		for _, t := range trips {
			h := t.Timestamp.Hour()
			if (h >= 22 || h < 5) && t.AlertCount == 0 {
				count++
			}
		}
		return count >= threshold, nil

	case BadgeLongSafeTrip:
		for _, t := range trips {
			if t.DurationSeconds >= threshold &&
				TripSafetyScore(t.DurationSeconds, t.AlertCount, t.YawnCount) >= longSafeTripMinScore {
				return true, nil
			}
		}
		return false, nil

	case BadgeZeroAlertTrips:
		count := 0
		for _, t := range trips {
			if t.AlertCount == 0 {
				count++
			}
		}
		return count >= threshold, nil

	case BadgeMorningTrips:
		count := 0
		for _, t := range trips {
			if h := t.Timestamp.Hour(); h >= 5 && h < 8 {
				count++
			}
		}
		return count >= threshold, nil

	case BadgeStreakDays:
		return streak != nil && streak.LongestStreak >= threshold, nil

	case BadgeHighSafetyTrips:
		count := 0
		for _, t := range trips {
			if TripSafetyScore(t.DurationSeconds, t.AlertCount, t.YawnCount) >= highSafetyTripMinScore {
				count++
			}
		}
		return count >= threshold, nil

	default:
		return false, fmt.Errorf("unknown badge criteria %q", def.CriteriaType)
	}
}
