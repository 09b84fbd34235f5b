package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/model"
)

func TestProfileService_GetPublicProfile(t *testing.T) {
	userID := uuid.New()

	baseProfile := func() *model.Profile {
		return &model.Profile{
			ID:     uuid.New(),
			UserID: userID,
			PersonalInfo: model.PersonalInfo{
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
				Phone:     "+44 123",
			},
			Settings: model.Settings{
				IsPublic:     true,
				ShowEmail:    true,
				ShowPhone:    true,
				AllowContact: true,
			},
		}
	}

	t.Run("visible profile passes through", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(baseProfile(), nil)

		service := NewProfileService(mockRepo)
		profile, err := service.GetPublicProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, "ada@example.com", profile.PersonalInfo.Email)
		assert.Equal(t, "+44 123", profile.PersonalInfo.Phone)
	})

	t.Run("hidden contact fields are blanked", func(t *testing.T) {
		p := baseProfile()
		p.Settings.ShowEmail = false
		p.Settings.ShowPhone = false

		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(p, nil)

		service := NewProfileService(mockRepo)
		profile, err := service.GetPublicProfile(context.Background(), userID)

		assert.NoError(t, err)
		assert.Empty(t, profile.PersonalInfo.Email)
		assert.Empty(t, profile.PersonalInfo.Phone)
		// the stored profile itself stays untouched
		assert.Equal(t, "ada@example.com", p.PersonalInfo.Email)
	})

	t.Run("private profile reads as missing", func(t *testing.T) {
		p := baseProfile()
		p.Settings.IsPublic = false

		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(p, nil)

		service := NewProfileService(mockRepo)
		profile, err := service.GetPublicProfile(context.Background(), userID)

		assert.Equal(t, apperrors.ErrProfileNotFound, err)
		assert.Nil(t, profile)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo)
		_, err := service.GetPublicProfile(context.Background(), userID)

		assert.Equal(t, apperrors.ErrProfileNotFound, err)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()

	t.Run("patches only the provided fields", func(t *testing.T) {
		profile := &model.Profile{
			ID:     profileID,
			UserID: userID,
			PersonalInfo: model.PersonalInfo{
				FirstName: "Old",
				LastName:  "Name",
				Bio:       "untouched",
			},
		}
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("Update", mock.Anything, profile).Return(nil)

		first := "New"
		service := NewProfileService(mockRepo)
		updated, err := service.UpdateProfile(context.Background(), userID, UpdateProfileInput{
			PersonalInfo: &PersonalInfoInput{FirstName: &first},
		})

		assert.NoError(t, err)
		assert.Equal(t, "New", updated.PersonalInfo.FirstName)
		assert.Equal(t, "Name", updated.PersonalInfo.LastName)
		assert.Equal(t, "untouched", updated.PersonalInfo.Bio)
	})

	t.Run("certifications replace wholesale", func(t *testing.T) {
		profile := &model.Profile{ID: profileID, UserID: userID}
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("Update", mock.Anything, profile).Return(nil)
		mockRepo.On("ReplaceCertifications", mock.Anything, profileID, mock.MatchedBy(func(certs []model.Certification) bool {
			return len(certs) == 1 && certs[0].Name == "CKA"
		})).Return(nil)

		service := NewProfileService(mockRepo)
		certs := []CertificationInput{{Name: "CKA", Issuer: "CNCF", IssueDate: time.Now()}}
		_, err := service.UpdateProfile(context.Background(), userID, UpdateProfileInput{Certifications: &certs})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileService_AddExperience(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	profile := &model.Profile{ID: profileID, UserID: userID}

	t.Run("current entry demotes the others", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("AddExperience", mock.Anything, mock.AnythingOfType("*model.Experience")).Return(nil)
		mockRepo.On("DemoteCurrentExperience", mock.Anything, profileID, mock.Anything).Return(nil)

		service := NewProfileService(mockRepo)
		_, err := service.AddExperience(context.Background(), userID, ExperienceInput{
			Company:   "Acme",
			Position:  "Engineer",
			StartDate: time.Now(),
			IsCurrent: true,
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("past entry skips demotion", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("AddExperience", mock.Anything, mock.AnythingOfType("*model.Experience")).Return(nil)

		service := NewProfileService(mockRepo)
		_, err := service.AddExperience(context.Background(), userID, ExperienceInput{
			Company:   "Acme",
			Position:  "Engineer",
			StartDate: time.Now(),
		})

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "DemoteCurrentExperience", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileService_DeleteEntries(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	entryID := uuid.New()
	profile := &model.Profile{ID: profileID, UserID: userID}

	t.Run("deleting a missing entry", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("DeleteExperience", mock.Anything, profileID, entryID).Return(int64(0), nil)

		service := NewProfileService(mockRepo)
		_, err := service.DeleteExperience(context.Background(), userID, entryID)

		assert.Equal(t, apperrors.ErrEntryNotFound, err)
	})

	t.Run("deleting an existing entry", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		mockRepo.On("DeleteProject", mock.Anything, profileID, entryID).Return(int64(1), nil)

		service := NewProfileService(mockRepo)
		_, err := service.DeleteProject(context.Background(), userID, entryID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileService_UpdateEducation_MissingEntry(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	entryID := uuid.New()

	mockRepo := new(MockProfileRepository)
	mockRepo.On("FindByUserID", mock.Anything, userID).Return(&model.Profile{ID: profileID, UserID: userID}, nil)
	mockRepo.On("FindEducation", mock.Anything, profileID, entryID).Return(nil, gorm.ErrRecordNotFound)

	service := NewProfileService(mockRepo)
	_, err := service.UpdateEducation(context.Background(), userID, entryID, EducationInput{Institution: "X", Degree: "BSc", StartDate: time.Now()})

	assert.Equal(t, apperrors.ErrEntryNotFound, err)
}

func TestNormalizeCurrentExperience(t *testing.T) {
	entries := []model.Experience{
		{Company: "a", IsCurrent: true},
		{Company: "b", IsCurrent: false},
		{Company: "c", IsCurrent: true},
	}
	NormalizeCurrentExperience(entries)

	assert.False(t, entries[0].IsCurrent)
	assert.False(t, entries[1].IsCurrent)
	assert.True(t, entries[2].IsCurrent, "the last-flagged entry wins")

	// already consistent input stays untouched
	NormalizeCurrentExperience(entries)
	assert.True(t, entries[2].IsCurrent)
}

func TestNormalizeCurrentEducation(t *testing.T) {
	entries := []model.Education{
		{Institution: "a", IsCurrent: true},
		{Institution: "b", IsCurrent: true},
	}
	NormalizeCurrentEducation(entries)

	assert.False(t, entries[0].IsCurrent)
	assert.True(t, entries[1].IsCurrent)

	none := []model.Education{{Institution: "x"}}
	NormalizeCurrentEducation(none)
	assert.False(t, none[0].IsCurrent)
}
