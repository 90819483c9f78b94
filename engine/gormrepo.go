package engine

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/im-Amrith/DriveGuard1/models"
)

// GormRepository implements Repository on a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps a gorm connection (or transaction) as a Repository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Transact opens a database transaction and hands fn a repository bound to it.
func (r *GormRepository) Transact(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// User loads a user with a row-level write lock inside a transaction.
func (r *GormRepository) User(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) SaveUser(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *GormRepository) Trip(id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *GormRepository) SaveTrip(t *models.Trip) error {
	return r.db.Save(t).Error
}

func (r *GormRepository) TripsByUser(userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&trips).Error
	return trips, err
}

// Streak fetches or lazily creates the user's streak record.
func (r *GormRepository) Streak(userID uint) (*models.UserStreak, error) {
	var rec models.UserStreak
	err := r.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.UserStreak{UserID: userID}
		if err := r.db.Create(&rec).Error; err != nil {
			return nil, err
		}
		return &rec, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepository) SaveStreak(s *models.UserStreak) error {
	return r.db.Save(s).Error
}

func (r *GormRepository) UnearnedAchievements(userID uint) ([]models.Achievement, error) {
	earned := r.db.Model(&models.UserAchievement{}).
		Select("achievement_id").
		Where("user_id = ?", userID)

	var defs []models.Achievement
	err := r.db.Where("id NOT IN (?)", earned).Find(&defs).Error
	return defs, err
}

func (r *GormRepository) AppendEarnedAchievement(ua *models.UserAchievement) error {
	return r.db.Create(ua).Error
}

func (r *GormRepository) UnearnedBadges(userID uint) ([]models.Badge, error) {
	earned := r.db.Model(&models.UserBadge{}).
		Select("badge_id").
		Where("user_id = ?", userID)

	var defs []models.Badge
	err := r.db.Where("is_active = ?", true).Where("id NOT IN (?)", earned).Find(&defs).Error
	return defs, err
}

func (r *GormRepository) AppendEarnedBadge(ub *models.UserBadge) error {
	return r.db.Create(ub).Error
}

func (r *GormRepository) ActiveChallenges(now time.Time) ([]models.Challenge, error) {
	var defs []models.Challenge
	err := r.db.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).Find(&defs).Error
	return defs, err
}

// UserChallenge fetches or lazily creates the user's progress row.
func (r *GormRepository) UserChallenge(userID, challengeID uint) (*models.UserChallenge, error) {
	var uc models.UserChallenge
	err := r.db.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&uc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		uc = models.UserChallenge{UserID: userID, ChallengeID: challengeID}
		if err := r.db.Create(&uc).Error; err != nil {
			return nil, err
		}
		return &uc, nil
	}
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *GormRepository) SaveUserChallenge(uc *models.UserChallenge) error {
	return r.db.Save(uc).Error
}

func (r *GormRepository) EmergencyContacts(userID uint) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact
	err := r.db.Where("user_id = ?", userID).Find(&contacts).Error
	return contacts, err
}

func (r *GormRepository) StoreItem(id uint) (*models.StoreItem, error) {
	var item models.StoreItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *GormRepository) SaveStoreItem(it *models.StoreItem) error {
	return r.db.Save(it).Error
}

func (r *GormRepository) AppendRedemption(red *models.Redemption) error {
	return r.db.Create(red).Error
}
