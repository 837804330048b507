package service

import (
	"fmt"

	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
)

// Promotion policy. A level is only left upward: two consecutive scores at
// or above the fast-track threshold promote immediately, otherwise a
// sufficient average over all attempts at the level does. Fewer than
// minAttemptsAtLevel evaluated attempts never promote, so a single strong
// test cannot cause level volatility.
const (
	minAttemptsAtLevel    = 2
	fastTrackThreshold    = 75
	averageScoreThreshold = 65.0
)

type LevelService interface {
	// NextLevel decides the level for the user's next session from their
	// persisted evaluated results. Deterministic and monotonic: identical
	// history yields the same answer, and the answer never drops below
	// the current level.
	NextLevel(userID uint) (int, error)
	// DifficultyForLevel maps a level to its difficulty tier.
	DifficultyForLevel(level int) string
}

type levelService struct {
	sessionRepo repository.SessionRepository
	resultRepo  repository.ResultRepository
}

func NewLevelService(sessionRepo repository.SessionRepository, resultRepo repository.ResultRepository) LevelService {
	return &levelService{sessionRepo: sessionRepo, resultRepo: resultRepo}
}

func (s *levelService) NextLevel(userID uint) (int, error) {
	current := 1
	latest, err := s.sessionRepo.FindLatestCompletedByUser(userID)
	switch {
	case err == nil:
		current = latest.Level
	case repository.IsNotFound(err):
		// First test, no history to consult.
		return 1, nil
	default:
		return 0, fmt.Errorf("resolving current level for user %d: %w", userID, err)
	}

	results, err := s.resultRepo.FindEvaluatedByUserAndLevel(userID, current)
	if err != nil {
		return 0, fmt.Errorf("loading evaluated results for user %d level %d: %w", userID, current, err)
	}

	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.ScorePercentage
	}
	next := current + promotionDelta(scores)
	if next != current {
		log.Info().Uint("userID", userID).Int("from", current).Int("to", next).Msg("Level promotion")
	}
	return next, nil
}

// promotionDelta evaluates the rule set against the chronologically ordered
// scores at the current level and returns 0 or 1.
func promotionDelta(scores []int) int {
	if len(scores) < minAttemptsAtLevel {
		return 0
	}
	if scores[len(scores)-1] >= fastTrackThreshold && scores[len(scores)-2] >= fastTrackThreshold {
		return 1
	}
	sum := 0
	for _, sc := range scores {
		sum += sc
	}
	if float64(sum)/float64(len(scores)) >= averageScoreThreshold {
		return 1
	}
	return 0
}

func (s *levelService) DifficultyForLevel(level int) string {
	switch {
	case level <= 2:
		return model.DifficultyEasy
	case level <= 4:
		return model.DifficultyMedium
	default:
		return model.DifficultyHard
	}
}
