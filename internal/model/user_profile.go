package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserProfile holds the education context the session builder needs. A user
// without an education level or at least one interest cannot start a test.
type UserProfile struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	EducationLevel string         `json:"education_level"`
	EducationStage string         `json:"education_stage,omitempty"`
	Stream         string         `json:"stream,omitempty"`
	Interests      datatypes.JSON `json:"interests"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// InterestList decodes the declared interests.
func (p *UserProfile) InterestList() ([]string, error) {
	if len(p.Interests) == 0 {
		return nil, nil
	}
	var interests []string
	if err := json.Unmarshal(p.Interests, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

// SetInterests encodes the declared interests for storage.
func (p *UserProfile) SetInterests(interests []string) error {
	raw, err := json.Marshal(interests)
	if err != nil {
		return err
	}
	p.Interests = datatypes.JSON(raw)
	return nil
}

// Complete reports whether the profile satisfies the session builder's
// precondition: an education level and at least one interest.
func (p *UserProfile) Complete() bool {
	interests, err := p.InterestList()
	return p.EducationLevel != "" && err == nil && len(interests) > 0
}
