package repository

import (
	"github.com/mnhthng/ascent/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository interface {
	// Upsert writes the answer keyed on (user_id, question_id). A repeated
	// write overwrites the payload and resets the grading fields; the
	// conflict clause makes last-write-wins atomic at the storage layer.
	Upsert(answer *model.Answer) error
	FindBySession(sessionID uint) ([]model.Answer, error)
	CountBySession(sessionID uint) (int64, error)
	Update(answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(answer *model.Answer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"session_id", "subject", "section", "question_type",
			"selected_option", "answer_text", "is_correct",
			"marks_awarded", "max_marks", "time_spent_sec", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *answerRepository) FindBySession(sessionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("session_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

func (r *answerRepository) CountBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}
