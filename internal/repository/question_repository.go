package repository

import (
	"github.com/mnhthng/ascent/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionFilter is the context tuple used to match a learner to questions.
// Empty optional fields are not constrained.
type QuestionFilter struct {
	EducationLevel string
	EducationStage string
	Stream         string
	Section        string
	Subject        string
	Difficulty     string
}

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	// FindUnseen returns active questions matching the filter, excluding
	// every question the user has ever answered, in any session.
	FindUnseen(userID uint, filter QuestionFilter, limit int) ([]model.Question, error)
	// InsertGenerated inserts AI-sourced questions, silently skipping rows
	// that collide on the content uniqueness index. It returns the subset
	// that was actually inserted.
	InsertGenerated(questions []model.Question) ([]model.Question, error)
	FindAll(filter QuestionFilter, limit, offset int) ([]model.Question, error)
	Deactivate(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func applyFilter(db *gorm.DB, filter QuestionFilter) *gorm.DB {
	if filter.EducationLevel != "" {
		db = db.Where("education_level = ?", filter.EducationLevel)
	}
	if filter.EducationStage != "" {
		db = db.Where("education_stage = ?", filter.EducationStage)
	}
	if filter.Stream != "" {
		db = db.Where("stream = ?", filter.Stream)
	}
	if filter.Section != "" {
		db = db.Where("section = ?", filter.Section)
	}
	if filter.Subject != "" {
		db = db.Where("subject = ?", filter.Subject)
	}
	if filter.Difficulty != "" {
		db = db.Where("difficulty = ?", filter.Difficulty)
	}
	return db
}

func (r *questionRepository) FindUnseen(userID uint, filter QuestionFilter, limit int) ([]model.Question, error) {
	// Exclusion is permanent and global: the subquery covers the user's
	// whole answer history, with no session or time bound.
	seen := r.db.Model(&model.Answer{}).
		Distinct("question_id").
		Where("user_id = ?", userID)

	var questions []model.Question
	err := applyFilter(r.db.Where("is_active = ?", true), filter).
		Where("id NOT IN (?)", seen).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

type contentKey struct {
	hash, educationLevel, section, subject string
}

func contentKeyOf(q *model.Question) contentKey {
	return contentKey{q.ContentHash, q.EducationLevel, q.Section, q.Subject}
}

func (r *questionRepository) InsertGenerated(questions []model.Question) ([]model.Question, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	hashes := make([]string, 0, len(questions))
	batch := make(map[contentKey]bool, len(questions))
	for i := range questions {
		hashes = append(hashes, questions[i].ContentHash)
		batch[contentKeyOf(&questions[i])] = true
	}

	var before []model.Question
	if err := r.db.Where("content_hash IN ?", hashes).Find(&before).Error; err != nil {
		return nil, err
	}
	preexisting := make(map[contentKey]bool, len(before))
	for i := range before {
		preexisting[contentKeyOf(&before[i])] = true
	}

	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&questions).Error; err != nil {
		return nil, err
	}

	// The batch insert backfills returned IDs positionally, so a skipped
	// duplicate can steal the ID of a row that did land. Re-select by
	// content key to attribute inserted rows correctly.
	var after []model.Question
	if err := r.db.Where("content_hash IN ?", hashes).Find(&after).Error; err != nil {
		return nil, err
	}
	inserted := make([]model.Question, 0, len(questions))
	for i := range after {
		key := contentKeyOf(&after[i])
		if batch[key] && !preexisting[key] {
			inserted = append(inserted, after[i])
		}
	}
	return inserted, nil
}

func (r *questionRepository) FindAll(filter QuestionFilter, limit, offset int) ([]model.Question, error) {
	var questions []model.Question
	err := applyFilter(r.db.Model(&model.Question{}), filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Deactivate(id uint) error {
	return r.db.Model(&model.Question{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
