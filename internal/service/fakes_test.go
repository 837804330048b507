package service

import (
	"context"
	"sort"

	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the storage-layer contracts the
// services rely on: gorm.ErrRecordNotFound for misses, gorm.ErrDuplicatedKey
// for uniqueness violations, and the one-open-session-per-user partial index
// on session create.

type fakeSessionRepo struct {
	sessions map[uint]*model.TestSession
	nextID   uint
	// findInProgressMisses forces that many not-found results from
	// FindInProgressByUser, simulating the lookup/create race window.
	findInProgressMisses int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uint]*model.TestSession)}
}

func (r *fakeSessionRepo) Create(session *model.TestSession) error {
	if session.Status == model.SessionInProgress {
		for _, s := range r.sessions {
			if s.UserID == session.UserID && s.Status == model.SessionInProgress {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.nextID++
	session.ID = r.nextID
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Update(session *model.TestSession) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindByID(id uint) (*model.TestSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (r *fakeSessionRepo) FindInProgressByUser(userID uint) (*model.TestSession, error) {
	if r.findInProgressMisses > 0 {
		r.findInProgressMisses--
		return nil, gorm.ErrRecordNotFound
	}
	for _, id := range r.sortedIDs() {
		s := r.sessions[id]
		if s.UserID == userID && s.Status == model.SessionInProgress {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindLatestCompletedByUser(userID uint) (*model.TestSession, error) {
	ids := r.sortedIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		s := r.sessions[ids[i]]
		if s.UserID != userID {
			continue
		}
		for _, status := range repository.CompletedStatuses {
			if s.Status == status {
				return s, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindAllByUser(userID uint) ([]model.TestSession, error) {
	var out []model.TestSession
	ids := r.sortedIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		if s := r.sessions[ids[i]]; s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) sortedIDs() []uint {
	ids := make([]uint, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type answerKey struct {
	UserID     uint
	QuestionID uint
}

type fakeAnswerRepo struct {
	answers map[answerKey]*model.Answer
	nextID  uint
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{answers: make(map[answerKey]*model.Answer)}
}

func (r *fakeAnswerRepo) Upsert(answer *model.Answer) error {
	key := answerKey{UserID: answer.UserID, QuestionID: answer.QuestionID}
	if existing, ok := r.answers[key]; ok {
		answer.ID = existing.ID
	} else {
		r.nextID++
		answer.ID = r.nextID
	}
	stored := *answer
	r.answers[key] = &stored
	return nil
}

func (r *fakeAnswerRepo) FindBySession(sessionID uint) ([]model.Answer, error) {
	var out []model.Answer
	for _, key := range r.sortedKeys() {
		if a := r.answers[key]; a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnswerRepo) CountBySession(sessionID uint) (int64, error) {
	var n int64
	for _, a := range r.answers {
		if a.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAnswerRepo) Update(answer *model.Answer) error {
	key := answerKey{UserID: answer.UserID, QuestionID: answer.QuestionID}
	if _, ok := r.answers[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *answer
	r.answers[key] = &stored
	return nil
}

func (r *fakeAnswerRepo) sortedKeys() []answerKey {
	keys := make([]answerKey, 0, len(r.answers))
	for key := range r.answers {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return r.answers[keys[i]].ID < r.answers[keys[j]].ID })
	return keys
}

func (r *fakeAnswerRepo) seen(userID, questionID uint) bool {
	_, ok := r.answers[answerKey{UserID: userID, QuestionID: questionID}]
	return ok
}

type contentKey struct {
	Hash           string
	EducationLevel string
	Section        string
	Subject        string
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
	nextID    uint
	// answers lets FindUnseen exclude everything the user ever answered.
	answers *fakeAnswerRepo
}

func newFakeQuestionRepo(answers *fakeAnswerRepo) *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]*model.Question), answers: answers}
}

func (r *fakeQuestionRepo) add(q model.Question) model.Question {
	r.nextID++
	q.ID = r.nextID
	r.questions[q.ID] = &q
	return q
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	key := contentKey{question.ContentHash, question.EducationLevel, question.Section, question.Subject}
	for _, q := range r.questions {
		if (contentKey{q.ContentHash, q.EducationLevel, q.Section, q.Subject}) == key {
			return gorm.ErrDuplicatedKey
		}
	}
	*question = r.add(*question)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) FindByIDs(ids []uint) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindUnseen(userID uint, filter repository.QuestionFilter, limit int) ([]model.Question, error) {
	var out []model.Question
	for _, id := range r.sortedIDs() {
		q := r.questions[id]
		if !q.IsActive || !matchesFilter(q, filter) {
			continue
		}
		if r.answers != nil && r.answers.seen(userID, q.ID) {
			continue
		}
		out = append(out, *q)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) InsertGenerated(questions []model.Question) ([]model.Question, error) {
	var inserted []model.Question
	for _, q := range questions {
		if err := r.Create(&q); err != nil {
			continue
		}
		inserted = append(inserted, q)
	}
	return inserted, nil
}

func (r *fakeQuestionRepo) FindAll(filter repository.QuestionFilter, limit, offset int) ([]model.Question, error) {
	var matched []model.Question
	for _, id := range r.sortedIDs() {
		if q := r.questions[id]; matchesFilter(q, filter) {
			matched = append(matched, *q)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeQuestionRepo) Deactivate(id uint) error {
	q, ok := r.questions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.IsActive = false
	return nil
}

func (r *fakeQuestionRepo) sortedIDs() []uint {
	ids := make([]uint, 0, len(r.questions))
	for id := range r.questions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func matchesFilter(q *model.Question, f repository.QuestionFilter) bool {
	if f.EducationLevel != "" && q.EducationLevel != f.EducationLevel {
		return false
	}
	if f.EducationStage != "" && q.EducationStage != f.EducationStage {
		return false
	}
	if f.Stream != "" && q.Stream != f.Stream {
		return false
	}
	if f.Section != "" && q.Section != f.Section {
		return false
	}
	if f.Subject != "" && q.Subject != f.Subject {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	return true
}

type fakeResultRepo struct {
	results []*model.TestResult
	nextID  uint
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{}
}

func (r *fakeResultRepo) Create(result *model.TestResult) error {
	for _, existing := range r.results {
		if existing.SessionID == result.SessionID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	result.ID = r.nextID
	stored := *result
	r.results = append(r.results, &stored)
	return nil
}

func (r *fakeResultRepo) FindBySessionID(sessionID uint) (*model.TestResult, error) {
	for _, result := range r.results {
		if result.SessionID == sessionID {
			return result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindEvaluatedByUserAndLevel(userID uint, level int) ([]model.TestResult, error) {
	var out []model.TestResult
	for _, result := range r.results {
		if result.UserID == userID && result.Level == level && result.Status == model.ResultEvaluated {
			out = append(out, *result)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uint]*model.UserProfile
	nextID   uint
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]*model.UserProfile)}
}

func (r *fakeProfileRepo) FindByUserID(userID uint) (*model.UserProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *fakeProfileRepo) Upsert(profile *model.UserProfile) error {
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else {
		r.nextID++
		profile.ID = r.nextID
	}
	stored := *profile
	r.profiles[profile.UserID] = &stored
	return nil
}

// fakeGenerator scripts the AI backfill path.
type fakeGenerator struct {
	generate func(params GenerationParams) ([]model.Question, error)
	calls    []GenerationParams
}

func (g *fakeGenerator) GenerateQuestions(_ context.Context, params GenerationParams) ([]model.Question, error) {
	g.calls = append(g.calls, params)
	if g.generate == nil {
		return nil, nil
	}
	return g.generate(params)
}
