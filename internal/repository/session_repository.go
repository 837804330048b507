package repository

import (
	"github.com/mnhthng/ascent/internal/model"
	"gorm.io/gorm"
)

// CompletedStatuses are the submitted-or-later session states used to anchor
// the user's current level. Expired sessions never produce a result and are
// deliberately absent.
var CompletedStatuses = []string{
	model.SessionSubmitted,
	model.SessionEvaluated,
	model.SessionCounsellingGenerated,
}

type SessionRepository interface {
	// Create persists a new session. The partial unique index on
	// (user_id) WHERE status = 'in_progress' makes concurrent creates for
	// the same user fail with a duplicate-key error.
	Create(session *model.TestSession) error
	Update(session *model.TestSession) error
	FindByID(id uint) (*model.TestSession, error)
	FindInProgressByUser(userID uint) (*model.TestSession, error)
	// FindLatestCompletedByUser returns the most recent submitted-or-later
	// session by creation time, or gorm.ErrRecordNotFound.
	FindLatestCompletedByUser(userID uint) (*model.TestSession, error)
	FindAllByUser(userID uint) ([]model.TestSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.TestSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.TestSession) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) FindByID(id uint) (*model.TestSession, error) {
	var session model.TestSession
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindInProgressByUser(userID uint) (*model.TestSession, error) {
	var session model.TestSession
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.SessionInProgress).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindLatestCompletedByUser(userID uint) (*model.TestSession, error) {
	var session model.TestSession
	err := r.db.
		Where("user_id = ? AND status IN ?", userID, CompletedStatuses).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByUser(userID uint) ([]model.TestSession, error) {
	var sessions []model.TestSession
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}
