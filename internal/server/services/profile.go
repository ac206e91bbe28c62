package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/dmitrijs2005/pdstore/internal/common"
	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server/models"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProfileService reads and reconciles survey profiles.
type ProfileService struct {
	db          dbx.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db dbx.DB, m repomanager.RepositoryManager, logger logging.Logger) *ProfileService {
	return &ProfileService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "profiles"),
	}
}

// SubmitSurvey stores the survey answers of userID and makes its challenge
// set equal to challengeIDs, all in one transaction.
//
// The user row is locked first, so concurrent submissions for the same user
// apply one after another and the stored set is always exactly one of the
// submitted sets. Nil fields keep their stored value. Any failure leaves
// the profile as it was.
func (s *ProfileService) SubmitSurvey(ctx context.Context, userID string, fields models.ProfileFields, challengeIDs []int64) (*models.ProfileView, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrUserNotFound
	}

	var view *models.ProfileView
	err := s.db.WithTx(ctx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		if _, err := users.LockByID(ctx, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return storeError("lock user", err)
		}

		ids, err := normalizeChallengeIDs(challengeIDs)
		if err != nil {
			return err
		}
		if err := validateFields(fields); err != nil {
			return err
		}

		found, err := s.repomanager.Challenges(tx).FindByIDs(ctx, ids)
		if err != nil {
			return storeError("find challenges", err)
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return &common.UnknownChallengeError{IDs: missing}
		}

		if err := users.UpdateProfile(ctx, userID, fields); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrUserNotFound
			}
			return storeError("update profile", err)
		}
		if err := s.repomanager.Memberships(tx).Replace(ctx, userID, ids); err != nil {
			return storeError("replace challenges", err)
		}

		view, err = s.readProfile(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, storeError("submit survey", err)
	}

	s.logger.Info(ctx, "survey updated", "user_id", userID, "challenges", len(view.Challenges))
	return view, nil
}

// GetProfile returns the profile of userID as seen in one snapshot.
// A user who never submitted the survey has nil fields and no challenges.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileView, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrUserNotFound
	}

	var view *models.ProfileView
	err := s.db.WithTx(ctx, dbx.ReadSnapshot, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		view, err = s.readProfile(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, storeError("get profile", err)
	}
	return view, nil
}

// ListChallenges returns the challenge catalog ordered by id.
func (s *ProfileService) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	list, err := s.repomanager.Challenges(s.db).List(ctx)
	if err != nil {
		return nil, storeError("list challenges", err)
	}
	return list, nil
}

func (s *ProfileService) readProfile(ctx context.Context, tx dbx.DBTX, userID string) (*models.ProfileView, error) {
	user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, storeError("get user", err)
	}

	list, err := s.repomanager.Memberships(tx).ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list user challenges", err)
	}
	if list == nil {
		list = []models.Challenge{}
	}

	return &models.ProfileView{
		UserID:     user.ID,
		Email:      user.Email,
		Fields:     user.Profile,
		Challenges: list,
	}, nil
}

// normalizeChallengeIDs returns the distinct ids in ascending order.
func normalizeChallengeIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, common.ErrNoChallenges
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out), nil
}

// missingIDs returns the ids of want that are absent from found.
// Both are ordered by id.
func missingIDs(want []int64, found []models.Challenge) []int64 {
	var missing []int64
	j := 0
	for _, id := range want {
		for j < len(found) && found[j].ID < id {
			j++
		}
		if j < len(found) && found[j].ID == id {
			continue
		}
		missing = append(missing, id)
	}
	return missing
}

func validateFields(f models.ProfileFields) error {
	checks := []struct {
		name  string
		value *string
		limit int
	}{
		{"name", f.Name, models.MaxNameLen},
		{"location", f.Location, models.MaxLocationLen},
		{"age_range", f.AgeRange, models.MaxAgeRangeLen},
		{"interaction_preference", f.InteractionPreference, models.MaxInteractionPreferenceLen},
		{"other_interaction_preference", f.OtherInteractionPreference, models.MaxOtherPreferenceLen},
	}
	for _, c := range checks {
		if c.value != nil && utf8.RuneCountInString(*c.value) > c.limit {
			return fmt.Errorf("%w: %s longer than %d characters", common.ErrInvalidInput, c.name, c.limit)
		}
	}
	return nil
}
