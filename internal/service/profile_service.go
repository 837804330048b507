package service

import (
	"fmt"

	"github.com/mnhthng/ascent/internal/dto"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProfileService maintains the education context the session builder reads.
type ProfileService interface {
	GetProfile(userID uint) (*dto.ProfileDTO, error)
	UpsertProfile(userID uint, req dto.UpsertProfileRequest) (*dto.ProfileDTO, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(userID uint) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrIncompleteProfile
		}
		return nil, fmt.Errorf("loading profile for user %d: %w", userID, err)
	}
	return toProfileDTO(profile)
}

func (s *profileService) UpsertProfile(userID uint, req dto.UpsertProfileRequest) (*dto.ProfileDTO, error) {
	profile := model.UserProfile{
		UserID:         userID,
		EducationLevel: req.EducationLevel,
		EducationStage: req.EducationStage,
		Stream:         req.Stream,
	}
	if err := profile.SetInterests(req.Interests); err != nil {
		return nil, fmt.Errorf("encoding interests: %w", err)
	}
	if err := s.profileRepo.Upsert(&profile); err != nil {
		return nil, fmt.Errorf("saving profile for user %d: %w", userID, err)
	}
	log.Info().Uint("userID", userID).Str("educationLevel", req.EducationLevel).Msg("Profile saved")
	return toProfileDTO(&profile)
}

func toProfileDTO(profile *model.UserProfile) (*dto.ProfileDTO, error) {
	interests, err := profile.InterestList()
	if err != nil {
		return nil, fmt.Errorf("decoding interests: %w", err)
	}
	return &dto.ProfileDTO{
		UserID:         profile.UserID,
		EducationLevel: profile.EducationLevel,
		EducationStage: profile.EducationStage,
		Stream:         profile.Stream,
		Interests:      interests,
	}, nil
}
