package engine

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/im-Amrith/DriveGuard1/models"
)

// fakeRepo is an in-memory Repository for engine tests. Transactions are not
// rolled back on failure; tests assert on the success paths they exercise.
type fakeRepo struct {
	users          map[uint]*models.User
	trips          map[uint]*models.Trip
	nextTripID     uint
	streaks        map[uint]*models.UserStreak
	achievements   []models.Achievement
	earnedAchs     []models.UserAchievement
	badges         []models.Badge
	earnedBadges   []models.UserBadge
	challenges     []models.Challenge
	userChallenges map[[2]uint]*models.UserChallenge
	contacts       map[uint][]models.EmergencyContact
	items          map[uint]*models.StoreItem
	redemptions    []models.Redemption
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:          make(map[uint]*models.User),
		trips:          make(map[uint]*models.Trip),
		streaks:        make(map[uint]*models.UserStreak),
		userChallenges: make(map[[2]uint]*models.UserChallenge),
		contacts:       make(map[uint][]models.EmergencyContact),
		items:          make(map[uint]*models.StoreItem),
	}
}

func (f *fakeRepo) Transact(fn func(Repository) error) error { return fn(f) }

func (f *fakeRepo) User(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) SaveUser(u *models.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Trip(id uint) (*models.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) SaveTrip(t *models.Trip) error {
	if t.ID == 0 {
		f.nextTripID++
		t.ID = f.nextTripID
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	cp := *t
	f.trips[t.ID] = &cp
	return nil
}

func (f *fakeRepo) TripsByUser(userID uint) ([]models.Trip, error) {
	var out []models.Trip
	for _, t := range f.trips {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeRepo) Streak(userID uint) (*models.UserStreak, error) {
	s, ok := f.streaks[userID]
	if !ok {
		s = &models.UserStreak{UserID: userID}
		f.streaks[userID] = s
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) SaveStreak(s *models.UserStreak) error {
	cp := *s
	f.streaks[s.UserID] = &cp
	return nil
}

func (f *fakeRepo) UnearnedAchievements(userID uint) ([]models.Achievement, error) {
	earned := make(map[uint]bool)
	for _, ua := range f.earnedAchs {
		if ua.UserID == userID {
			earned[ua.AchievementID] = true
		}
	}
	var out []models.Achievement
	for _, def := range f.achievements {
		if !earned[def.ID] {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendEarnedAchievement(ua *models.UserAchievement) error {
	f.earnedAchs = append(f.earnedAchs, *ua)
	return nil
}

func (f *fakeRepo) UnearnedBadges(userID uint) ([]models.Badge, error) {
	earned := make(map[uint]bool)
	for _, ub := range f.earnedBadges {
		if ub.UserID == userID {
			earned[ub.BadgeID] = true
		}
	}
	var out []models.Badge
	for _, def := range f.badges {
		if def.IsActive && !earned[def.ID] {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendEarnedBadge(ub *models.UserBadge) error {
	f.earnedBadges = append(f.earnedBadges, *ub)
	return nil
}

func (f *fakeRepo) ActiveChallenges(now time.Time) ([]models.Challenge, error) {
	var out []models.Challenge
	for _, def := range f.challenges {
		if def.IsActive && !now.Before(def.StartDate) && !now.After(def.EndDate) {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *fakeRepo) UserChallenge(userID, challengeID uint) (*models.UserChallenge, error) {
	key := [2]uint{userID, challengeID}
	uc, ok := f.userChallenges[key]
	if !ok {
		uc = &models.UserChallenge{UserID: userID, ChallengeID: challengeID}
		f.userChallenges[key] = uc
	}
	cp := *uc
	return &cp, nil
}

func (f *fakeRepo) SaveUserChallenge(uc *models.UserChallenge) error {
	cp := *uc
	f.userChallenges[[2]uint{uc.UserID, uc.ChallengeID}] = &cp
	return nil
}

func (f *fakeRepo) EmergencyContacts(userID uint) ([]models.EmergencyContact, error) {
	return f.contacts[userID], nil
}

func (f *fakeRepo) StoreItem(id uint) (*models.StoreItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeRepo) SaveStoreItem(it *models.StoreItem) error {
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeRepo) AppendRedemption(r *models.Redemption) error {
	r.ID = uint(len(f.redemptions) + 1)
	f.redemptions = append(f.redemptions, *r)
	return nil
}

// stubNotifier records escalation deliveries and returns a configurable outcome.
type stubNotifier struct {
	calls  int
	result bool
}

func (s *stubNotifier) Notify(user *models.User, contacts []models.EmergencyContact, alertCount int, startLocation, endLocation string) bool {
	s.calls++
	return s.result
}

func newTestEngine(repo *fakeRepo) (*Engine, *stubNotifier) {
	notifier := &stubNotifier{result: true}
	return New(repo, notifier, nil), notifier
}

func midday(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestFinalizeTripAwardsPointsAndStreak(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Email: "driver@example.com"}
	eng, _ := newTestEngine(repo)

	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation:   "Home",
		EndLocation:     "Office",
		DurationSeconds: 5400,
		Timestamp:       midday(2026, 3, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, 45, result.PointsEarned)
	assert.Equal(t, 100, result.SafetyScore)
	assert.Equal(t, 1, result.CurrentStreak)
	assert.Equal(t, 45, result.TotalPoints)
	assert.Equal(t, 45, repo.users[1].Points)
	assert.NotZero(t, result.Trip.ID)
}

func TestFinalizeTripValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	eng, _ := newTestEngine(repo)

	_, err := eng.FinalizeTrip(1, TripInput{StartLocation: " ", EndLocation: "B", DurationSeconds: 60})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = eng.FinalizeTrip(1, TripInput{StartLocation: "A", EndLocation: "B", DurationSeconds: -1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = eng.FinalizeTrip(1, TripInput{StartLocation: "A", EndLocation: "B", AlertCount: -2})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFinalizeTripUnknownUser(t *testing.T) {
	repo := newFakeRepo()
	eng, _ := newTestEngine(repo)

	_, err := eng.FinalizeTrip(99, TripInput{StartLocation: "A", EndLocation: "B", DurationSeconds: 60})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAchievementUnlockedOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.achievements = []models.Achievement{
		{ID: 1, Name: "Road Warrior", CriteriaType: "first_trip", CriteriaValue: 1},
	}
	eng, _ := newTestEngine(repo)

	first, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 10),
	})
	require.NoError(t, err)
	require.Len(t, first.NewAchievements, 1)
	assert.Equal(t, "Road Warrior", first.NewAchievements[0].Name)

	second, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "B", EndLocation: "A", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 11),
	})
	require.NoError(t, err)
	assert.Empty(t, second.NewAchievements)
	assert.Len(t, repo.earnedAchs, 1)
}

func TestBadgeRewardCreditedOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.badges = []models.Badge{
		{ID: 1, Name: "Zero Hero", CriteriaType: "zero_alert_trips", CriteriaValue: 2, PointsReward: 75, IsActive: true},
	}
	eng, _ := newTestEngine(repo)

	first, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 10),
	})
	require.NoError(t, err)
	assert.Empty(t, first.NewBadges)

	second, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "B", EndLocation: "A", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 11),
	})
	require.NoError(t, err)
	require.Len(t, second.NewBadges, 1)
	// Two flawless trips at 45 each plus the one-time badge reward.
	assert.Equal(t, 45+45+75, repo.users[1].Points)

	third, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 12),
	})
	require.NoError(t, err)
	assert.Empty(t, third.NewBadges)
	assert.Equal(t, 45+45+75+45, repo.users[1].Points)
	assert.Len(t, repo.earnedBadges, 1)
}

func TestInactiveBadgeNeverEvaluated(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.badges = []models.Badge{
		{ID: 1, Name: "Retired", CriteriaType: "zero_alert_trips", CriteriaValue: 1, PointsReward: 500, IsActive: false},
	}
	eng, _ := newTestEngine(repo)

	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 10),
	})
	require.NoError(t, err)
	assert.Empty(t, result.NewBadges)
	assert.Equal(t, 45, repo.users[1].Points)
}

func TestUnknownCriteriaIsSkippedNotFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.achievements = []models.Achievement{
		{ID: 1, Name: "Mystery", CriteriaType: "not_a_real_criterion", CriteriaValue: 1},
		{ID: 2, Name: "Road Warrior", CriteriaType: "first_trip", CriteriaValue: 1},
	}
	eng, _ := newTestEngine(repo)

	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
		Timestamp: midday(2026, 3, 10),
	})
	require.NoError(t, err)
	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, "Road Warrior", result.NewAchievements[0].Name)
}

func TestDailyTripChallengeCompletes(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	now := time.Now().UTC()
	repo.challenges = []models.Challenge{
		{
			ID: 1, Name: "Daily Driver", ChallengeType: "daily",
			CriteriaType: "daily_trip", CriteriaValue: 1, PointsReward: 30,
			StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), IsActive: true,
		},
	}
	eng, _ := newTestEngine(repo)

	result, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
	})
	require.NoError(t, err)
	require.Len(t, result.CompletedChallenges, 1)
	assert.Equal(t, "Daily Driver", result.CompletedChallenges[0].Name)
	assert.Equal(t, 45+30, repo.users[1].Points)

	uc := repo.userChallenges[[2]uint{1, 1}]
	require.NotNil(t, uc)
	assert.True(t, uc.Completed)
	require.NotNil(t, uc.CompletedAt)

	// A later trip must not complete or credit the challenge again.
	_, err = eng.FinalizeTrip(1, TripInput{
		StartLocation: "B", EndLocation: "A", DurationSeconds: 600,
	})
	require.NoError(t, err)
	assert.Equal(t, 45+30+45, repo.users[1].Points)
}

func TestUpdateTripCountsMonotonic(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	eng, _ := newTestEngine(repo)

	created, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 3600,
		AlertCount: 2, YawnCount: 1, Timestamp: midday(2026, 3, 10),
	})
	require.NoError(t, err)
	pointsAfterFinalize := repo.users[1].Points

	_, err = eng.UpdateTripCounts(1, created.Trip.ID, 1, 1)
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := eng.UpdateTripCounts(1, created.Trip.ID, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Trip.AlertCount)
	assert.Equal(t, 2, updated.Trip.YawnCount)
	assert.Equal(t, TripSafetyScore(3600, 3, 2), updated.SafetyScore)
	// The original award stands; an update grants no new base points.
	assert.Equal(t, 0, updated.PointsEarned)
	assert.Equal(t, pointsAfterFinalize, repo.users[1].Points)
}

func TestUpdateTripCountsWrongOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.users[2] = &models.User{ID: 2}
	eng, _ := newTestEngine(repo)

	created, err := eng.FinalizeTrip(1, TripInput{
		StartLocation: "A", EndLocation: "B", DurationSeconds: 600,
	})
	require.NoError(t, err)

	_, err = eng.UpdateTripCounts(2, created.Trip.ID, 1, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogAlertEscalatesExactlyOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.contacts[1] = []models.EmergencyContact{
		{ID: 1, UserID: 1, Name: "Pat", Email: "pat@example.com", NotificationType: models.NotifyEmail},
	}
	trip := &models.Trip{UserID: 1, StartLocation: "A", EndLocation: "B", Timestamp: midday(2026, 3, 10)}
	require.NoError(t, repo.SaveTrip(trip))

	eng, notifier := newTestEngine(repo)

	for i := 1; i < EscalationThreshold; i++ {
		result, err := eng.LogAlert(1, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, i, result.AlertCount)
		assert.False(t, result.NotificationSent)
	}
	assert.Zero(t, notifier.calls)

	result, err := eng.LogAlert(1, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, EscalationThreshold, result.AlertCount)
	assert.True(t, result.NotificationSent)
	assert.Equal(t, 1, notifier.calls)

	// Past the threshold the notification never fires again.
	result, err = eng.LogAlert(1, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, EscalationThreshold+1, result.AlertCount)
	assert.False(t, result.NotificationSent)
	assert.Equal(t, 1, notifier.calls)
}

func TestLogAlertDeliveryFailureKeepsIncrement(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	repo.contacts[1] = []models.EmergencyContact{
		{ID: 1, UserID: 1, Name: "Pat", Email: "pat@example.com", NotificationType: models.NotifyEmail},
	}
	trip := &models.Trip{UserID: 1, StartLocation: "A", EndLocation: "B", AlertCount: EscalationThreshold - 1}
	require.NoError(t, repo.SaveTrip(trip))

	eng, notifier := newTestEngine(repo)
	notifier.result = false

	result, err := eng.LogAlert(1, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, EscalationThreshold, result.AlertCount)
	assert.False(t, result.NotificationSent)
	assert.Equal(t, EscalationThreshold, repo.trips[trip.ID].AlertCount)
}

func TestLogAlertWithoutContactsSkipsDelivery(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1}
	trip := &models.Trip{UserID: 1, StartLocation: "A", EndLocation: "B", AlertCount: EscalationThreshold - 1}
	require.NoError(t, repo.SaveTrip(trip))

	eng, notifier := newTestEngine(repo)

	result, err := eng.LogAlert(1, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, EscalationThreshold, result.AlertCount)
	assert.False(t, result.NotificationSent)
	assert.Zero(t, notifier.calls)
}

func TestRedeemItemFiniteStock(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Points: 100}
	repo.items[1] = &models.StoreItem{ID: 1, Name: "Car Wash", PointsCost: 50, Stock: 1, IsActive: true}
	eng, _ := newTestEngine(repo)

	result, err := eng.RedeemItem(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Car Wash", result.ItemName)
	assert.Equal(t, 50, result.PointsSpent)
	assert.Equal(t, 50, result.RemainingPoints)
	assert.NotEmpty(t, result.Reference)
	assert.Equal(t, 0, repo.items[1].Stock)
	require.Len(t, repo.redemptions, 1)
	assert.Equal(t, "completed", repo.redemptions[0].Status)

	_, err = eng.RedeemItem(1, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 50, repo.users[1].Points)
}

func TestRedeemItemUnlimitedStock(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Points: 200}
	repo.items[1] = &models.StoreItem{ID: 1, Name: "Discount", PointsCost: 50, Stock: models.UnlimitedStock, IsActive: true}
	eng, _ := newTestEngine(repo)

	_, err := eng.RedeemItem(1, 1)
	require.NoError(t, err)
	_, err = eng.RedeemItem(1, 1)
	require.NoError(t, err)

	assert.Equal(t, models.UnlimitedStock, repo.items[1].Stock)
	assert.Equal(t, 100, repo.users[1].Points)
	assert.Len(t, repo.redemptions, 2)
}

func TestRedeemItemInsufficientPoints(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Points: 10}
	repo.items[1] = &models.StoreItem{ID: 1, Name: "Car Wash", PointsCost: 50, Stock: 5, IsActive: true}
	eng, _ := newTestEngine(repo)

	_, err := eng.RedeemItem(1, 1)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 10, repo.users[1].Points)
	assert.Equal(t, 5, repo.items[1].Stock)
	assert.Empty(t, repo.redemptions)
}

func TestRedeemItemInactive(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Points: 100}
	repo.items[1] = &models.StoreItem{ID: 1, Name: "Gone", PointsCost: 50, Stock: 5, IsActive: false}
	eng, _ := newTestEngine(repo)

	_, err := eng.RedeemItem(1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedemptionReferencesAreUnique(t *testing.T) {
	repo := newFakeRepo()
	repo.users[1] = &models.User{ID: 1, Points: 300}
	repo.items[1] = &models.StoreItem{ID: 1, Name: "Discount", PointsCost: 50, Stock: models.UnlimitedStock, IsActive: true}
	eng, _ := newTestEngine(repo)

	first, err := eng.RedeemItem(1, 1)
	require.NoError(t, err)
	second, err := eng.RedeemItem(1, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.Reference, second.Reference)
}
