package engine

import (
	"time"

	"github.com/im-Amrith/DriveGuard1/models"
)

// advanceChallenges recomputes progress for every challenge whose window
// contains now, completes the ones that reached their target and credits
// their point rewards. Completed rows are skipped forever after.
func (e *Engine) advanceChallenges(repo Repository, user *models.User, trips []models.Trip, now time.Time) ([]models.Challenge, error) {
	defs, err := repo.ActiveChallenges(now)
	if err != nil {
		return nil, err
	}

	var completed []models.Challenge
	for _, def := range defs {
		uc, err := repo.UserChallenge(user.ID, def.ID)
		if err != nil {
			return nil, err
		}
		if uc.Completed {
			continue
		}

		switch ChallengeCriteria(def.CriteriaType) {
		case ChallengeZeroAlertTrips:
			count := 0
			for _, t := range trips {
				if t.AlertCount == 0 && !t.Timestamp.Before(def.StartDate) && !t.Timestamp.After(def.EndDate) {
					count++
				}
			}
			uc.Progress = count

		case ChallengeDailyTrip:
			uc.Progress = 0
			for _, t := range trips {
				if sameDay(t.Timestamp, now) {
					uc.Progress = 1
					break
				}
			}

		case ChallengeHighSafetyStreak:
			// Progress for this criterion has never advanced in production;
			// kept as a no-op until the scoring window semantics are decided.

		default:
			e.log.Warnf("skipping challenge %q: unknown criteria %q", def.Name, def.CriteriaType)
			continue
		}

		if uc.Progress >= def.CriteriaValue {
			uc.Completed = true
			ts := now
			uc.CompletedAt = &ts
			user.Points += def.PointsReward
			completed = append(completed, def)
		}

		if err := repo.SaveUserChallenge(uc); err != nil {
			return nil, err
		}
	}
	return completed, nil
}
