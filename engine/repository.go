package engine

import (
	"time"

	"github.com/im-Amrith/DriveGuard1/models"
)

// Repository is the persistence contract the engine evaluates against. A
// transaction spans one full evaluation pass, so a pass either commits all
// of its unlocks, credits and counter updates or none of them.
type Repository interface {
	// Transact runs fn against a transactional view of the repository and
	// commits iff fn returns nil.
	Transact(fn func(Repository) error) error

	// User loads a user for update. Implementations should take a write
	// lock on the row so concurrent evaluation passes for the same user
	// serialize at the store even without the engine's own lock.
	User(id uint) (*models.User, error)
	SaveUser(u *models.User) error

	Trip(id uint) (*models.Trip, error)
	SaveTrip(t *models.Trip) error
	// TripsByUser returns the user's trips ordered most-recent-first.
	TripsByUser(userID uint) ([]models.Trip, error)

	// Streak returns the user's streak record, creating a zeroed one on
	// first use.
	Streak(userID uint) (*models.UserStreak, error)
	SaveStreak(s *models.UserStreak) error

	// UnearnedAchievements returns catalog entries the user has not earned
	// yet; already-earned definitions are filtered at the store.
	UnearnedAchievements(userID uint) ([]models.Achievement, error)
	AppendEarnedAchievement(ua *models.UserAchievement) error

	// UnearnedBadges mirrors UnearnedAchievements and additionally excludes
	// deactivated badge definitions.
	UnearnedBadges(userID uint) ([]models.Badge, error)
	AppendEarnedBadge(ub *models.UserBadge) error

	// ActiveChallenges returns active definitions whose window contains now
	// (inclusive on both ends).
	ActiveChallenges(now time.Time) ([]models.Challenge, error)
	// UserChallenge returns the user's progress row for a challenge,
	// creating it with zero progress on first use.
	UserChallenge(userID, challengeID uint) (*models.UserChallenge, error)
	SaveUserChallenge(uc *models.UserChallenge) error

	EmergencyContacts(userID uint) ([]models.EmergencyContact, error)

	StoreItem(id uint) (*models.StoreItem, error)
	SaveStoreItem(it *models.StoreItem) error
	AppendRedemption(r *models.Redemption) error
}
