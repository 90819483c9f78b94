package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/im-Amrith/DriveGuard1/models"
)

// EscalationThreshold is the exact in-trip alert count that triggers the
// one-time emergency notification. The equality test in LogAlert is what
// makes the notification fire at most once per trip.
const EscalationThreshold = 6

// Engine runs the scoring and gamification evaluation passes. Each trigger
// operation executes its full fan-out synchronously inside one repository
// transaction, serialized per user.
type Engine struct {
	repo     Repository
	notifier Notifier
	log      *zap.SugaredLogger

	userLocks sync.Map // uint -> *sync.Mutex
}

// New creates an Engine. A nil logger is replaced with a no-op one.
func New(repo Repository, notifier Notifier, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{repo: repo, notifier: notifier, log: log}
}

// lockUser serializes evaluation passes for one user. Cross-user operations
// proceed in parallel.
func (e *Engine) lockUser(userID uint) func() {
	v, _ := e.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// TripInput carries the telemetry of a finalized trip.
type TripInput struct {
	StartLocation   string
	EndLocation     string
	DurationSeconds int
	AlertCount      int
	YawnCount       int
	Timestamp       time.Time
}

func (in TripInput) validate() error {
	if strings.TrimSpace(in.StartLocation) == "" || strings.TrimSpace(in.EndLocation) == "" {
		return fmt.Errorf("%w: start and end locations are required", ErrValidation)
	}
	if in.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrValidation)
	}
	if in.AlertCount < 0 || in.YawnCount < 0 {
		return fmt.Errorf("%w: alert and yawn counts cannot be negative", ErrValidation)
	}
	return nil
}

// TripResult is the outcome of one trip-finalization fan-out.
type TripResult struct {
	Trip                models.Trip          `json:"trip"`
	PointsEarned        int                  `json:"points_earned"`
	TotalPoints         int                  `json:"total_points"`
	SafetyScore         int                  `json:"safety_score"`
	CurrentStreak       int                  `json:"current_streak"`
	NewAchievements     []models.Achievement `json:"new_achievements"`
	NewBadges           []models.Badge       `json:"new_badges"`
	CompletedChallenges []models.Challenge   `json:"completed_challenges"`
}

// FinalizeTrip stores a completed trip and fans out, in order, to the points
// calculator, streak tracker, achievement evaluator, badge evaluator and
// challenge tracker, all against the same trip-history snapshot.
func (e *Engine) FinalizeTrip(userID uint, in TripInput) (*TripResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	unlock := e.lockUser(userID)
	defer unlock()

	now := time.Now().UTC()
	ts := in.Timestamp
	if ts.IsZero() {
		ts = now
	}

	var result TripResult
	err := e.repo.Transact(func(repo Repository) error {
		user, err := repo.User(userID)
		if err != nil {
			return err
		}

		trip := models.Trip{
			UserID:          userID,
			StartLocation:   in.StartLocation,
			EndLocation:     in.EndLocation,
			DurationSeconds: in.DurationSeconds,
			AlertCount:      in.AlertCount,
			YawnCount:       in.YawnCount,
			Timestamp:       ts,
		}
		if err := repo.SaveTrip(&trip); err != nil {
			return err
		}

		award := CalculateTripAward(in.DurationSeconds, in.AlertCount, in.YawnCount)
		user.Points += award.Points

		streak, err := repo.Streak(userID)
		if err != nil {
			return err
		}
		current := AdvanceStreak(streak, ts)
		if err := repo.SaveStreak(streak); err != nil {
			return err
		}

		trips, err := repo.TripsByUser(userID)
		if err != nil {
			return err
		}

		achievements, err := e.evaluateAchievements(repo, user, trips, now)
		if err != nil {
			return err
		}
		badges, err := e.evaluateBadges(repo, user, trips, streak, now)
		if err != nil {
			return err
		}
		challenges, err := e.advanceChallenges(repo, user, trips, now)
		if err != nil {
			return err
		}

		if err := repo.SaveUser(user); err != nil {
			return err
		}

		result = TripResult{
			Trip:                trip,
			PointsEarned:        award.Points,
			TotalPoints:         user.Points,
			SafetyScore:         award.SafetyScore,
			CurrentStreak:       current,
			NewAchievements:     achievements,
			NewBadges:           badges,
			CompletedChallenges: challenges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateTripCounts applies final alert/yawn counts to an existing trip and
// re-runs the unlock evaluators. Counts only ever increase. The per-trip
// point award and the streak were settled when the trip was first finalized
// and are not granted again.
func (e *Engine) UpdateTripCounts(userID, tripID uint, alertCount, yawnCount int) (*TripResult, error) {
	if alertCount < 0 || yawnCount < 0 {
		return nil, fmt.Errorf("%w: alert and yawn counts cannot be negative", ErrValidation)
	}

	unlock := e.lockUser(userID)
	defer unlock()

	now := time.Now().UTC()

	var result TripResult
	err := e.repo.Transact(func(repo Repository) error {
		user, err := repo.User(userID)
		if err != nil {
			return err
		}
		trip, err := repo.Trip(tripID)
		if err != nil {
			return err
		}
		if trip.UserID != userID {
			return ErrNotFound
		}
		if alertCount < trip.AlertCount || yawnCount < trip.YawnCount {
			return fmt.Errorf("%w: alert and yawn counts cannot decrease", ErrValidation)
		}

		trip.AlertCount = alertCount
		trip.YawnCount = yawnCount
		if err := repo.SaveTrip(trip); err != nil {
			return err
		}

		streak, err := repo.Streak(userID)
		if err != nil {
			return err
		}
		trips, err := repo.TripsByUser(userID)
		if err != nil {
			return err
		}

		achievements, err := e.evaluateAchievements(repo, user, trips, now)
		if err != nil {
			return err
		}
		badges, err := e.evaluateBadges(repo, user, trips, streak, now)
		if err != nil {
			return err
		}
		challenges, err := e.advanceChallenges(repo, user, trips, now)
		if err != nil {
			return err
		}

		if err := repo.SaveUser(user); err != nil {
			return err
		}

		result = TripResult{
			Trip:                *trip,
			TotalPoints:         user.Points,
			SafetyScore:         TripSafetyScore(trip.DurationSeconds, trip.AlertCount, trip.YawnCount),
			CurrentStreak:       streak.CurrentStreak,
			NewAchievements:     achievements,
			NewBadges:           badges,
			CompletedChallenges: challenges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AlertResult reports the outcome of logging one drowsiness alert.
type AlertResult struct {
	AlertCount       int  `json:"current_alert_count"`
	NotificationSent bool `json:"emergency_notification_sent"`
}

// LogAlert increments a trip's alert count by exactly one. When the count
// lands exactly on the escalation threshold the user's emergency contacts
// are notified; delivery failure never rolls back the increment.
func (e *Engine) LogAlert(userID, tripID uint) (*AlertResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	var trip *models.Trip
	var user *models.User
	var contacts []models.EmergencyContact

	err := e.repo.Transact(func(repo Repository) error {
		var err error
		trip, err = repo.Trip(tripID)
		if err != nil {
			return err
		}
		if trip.UserID != userID {
			return ErrNotFound
		}
		user, err = repo.User(userID)
		if err != nil {
			return err
		}

		trip.AlertCount++
		if err := repo.SaveTrip(trip); err != nil {
			return err
		}

		if trip.AlertCount == EscalationThreshold {
			contacts, err = repo.EmergencyContacts(userID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := AlertResult{AlertCount: trip.AlertCount}
	// Delivery happens after the increment is committed so a provider
	// outage cannot lose the alert itself.
	if trip.AlertCount == EscalationThreshold && len(contacts) > 0 {
		result.NotificationSent = e.notifier.Notify(user, contacts, trip.AlertCount, trip.StartLocation, trip.EndLocation)
		if !result.NotificationSent {
			e.log.Warnf("emergency notification for trip %d was not delivered", trip.ID)
		}
	}
	return &result, nil
}

// RedemptionResult reports a successful store redemption.
type RedemptionResult struct {
	ItemName        string `json:"item_name"`
	PointsSpent     int    `json:"points_spent"`
	RemainingPoints int    `json:"remaining_points"`
	Reference       string `json:"reference"`
}

// RedeemItem debits the user's points for a store item, decrements finite
// stock and appends a completed ledger entry, all in one transaction.
func (e *Engine) RedeemItem(userID, itemID uint) (*RedemptionResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	var result RedemptionResult
	err := e.repo.Transact(func(repo Repository) error {
		user, err := repo.User(userID)
		if err != nil {
			return err
		}
		item, err := repo.StoreItem(itemID)
		if err != nil {
			return err
		}
		if !item.IsActive {
			return ErrNotFound
		}
		if item.Stock == 0 {
			return ErrOutOfStock
		}
		if user.Points < item.PointsCost {
			return ErrInsufficientPoints
		}

		user.Points -= item.PointsCost
		if item.Stock > 0 {
			item.Stock--
			if err := repo.SaveStoreItem(item); err != nil {
				return err
			}
		}

		entry := models.Redemption{
			UserID:      userID,
			StoreItemID: item.ID,
			PointsSpent: item.PointsCost,
			Reference:   uuid.NewString(),
			Status:      "completed",
			RedeemedAt:  time.Now().UTC(),
		}
		if err := repo.AppendRedemption(&entry); err != nil {
			return err
		}
		if err := repo.SaveUser(user); err != nil {
			return err
		}

		result = RedemptionResult{
			ItemName:        item.Name,
			PointsSpent:     entry.PointsSpent,
			RemainingPoints: user.Points,
			Reference:       entry.Reference,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
