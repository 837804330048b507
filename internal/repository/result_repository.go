package repository

import (
	"github.com/mnhthng/ascent/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(result *model.TestResult) error
	FindBySessionID(sessionID uint) (*model.TestResult, error)
	// FindEvaluatedByUserAndLevel returns all evaluated results the user
	// earned at the given level, oldest first, for the level calculator.
	FindEvaluatedByUserAndLevel(userID uint, level int) ([]model.TestResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.TestResult) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) FindBySessionID(sessionID uint) (*model.TestResult, error) {
	var result model.TestResult
	if err := r.db.Where("session_id = ?", sessionID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindEvaluatedByUserAndLevel(userID uint, level int) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.
		Where("user_id = ? AND level = ? AND status = ?", userID, level, model.ResultEvaluated).
		Order("created_at ASC").
		Find(&results).Error
	return results, err
}
