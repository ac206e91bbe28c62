package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
	"github.com/dmitrijs2005/pdstore/internal/client/models"
)

// ProfileService reads and updates the signed-in user's profile.
type ProfileService interface {
	Profile(ctx context.Context) (*models.Profile, error)
	SubmitSurvey(ctx context.Context, survey models.Survey) (*models.Profile, error)
	Challenges(ctx context.Context) ([]models.Challenge, error)
}

type profileService struct {
	client client.Client
}

func NewProfileService(c client.Client) ProfileService {
	return &profileService{client: c}
}

func (s *profileService) Profile(ctx context.Context) (*models.Profile, error) {
	p, err := s.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SubmitSurvey drops duplicate challenge ids before sending; the server
// treats the list as a set.
func (s *profileService) SubmitSurvey(ctx context.Context, survey models.Survey) (*models.Profile, error) {
	seen := make(map[int64]struct{}, len(survey.Challenges))
	ids := make([]int64, 0, len(survey.Challenges))
	for _, id := range survey.Challenges {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	survey.Challenges = ids

	p, err := s.client.SubmitSurvey(ctx, survey)
	if err != nil {
		return nil, fmt.Errorf("submit survey: %w", err)
	}
	return p, nil
}

func (s *profileService) Challenges(ctx context.Context) ([]models.Challenge, error) {
	list, err := s.client.Challenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return list, nil
}
