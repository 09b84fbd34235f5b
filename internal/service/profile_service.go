package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/model"
	"folio/internal/repository"
)

// PersonalInfoInput patches the CV header; nil fields stay untouched.
type PersonalInfoInput struct {
	FirstName    *string
	LastName     *string
	Title        *string
	Email        *string
	Phone        *string
	Location     *string
	Website      *string
	Linkedin     *string
	Github       *string
	ProfileImage *string
	Bio          *string
}

// CertificationInput is one certification entry, replacing the stored
// list wholesale on profile update.
type CertificationInput struct {
	Name          string
	Issuer        string
	IssueDate     time.Time
	ExpiryDate    *time.Time
	CredentialID  string
	CredentialURL string
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	PersonalInfo   *PersonalInfoInput
	Skills         *model.SkillSet
	Certifications *[]CertificationInput
}

// ExperienceInput is a validated experience entry.
type ExperienceInput struct {
	Company      string
	Position     string
	Location     string
	StartDate    time.Time
	EndDate      *time.Time
	Description  string
	Technologies []string
	IsCurrent    bool
}

// EducationInput is a validated education entry.
type EducationInput struct {
	Institution string
	Degree      string
	Field       string
	StartDate   time.Time
	EndDate     *time.Time
	GPA         *float64
	Description string
	IsCurrent   bool
}

// ProjectInput is a validated project entry.
type ProjectInput struct {
	Title        string
	Description  string
	Technologies []string
	GithubURL    string
	LiveURL      string
	Image        string
	Featured     bool
	StartDate    *time.Time
	EndDate      *time.Time
}

// ProfileService handles CV data and its nested entries.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*model.Profile, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) (*model.Profile, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)

	AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (*model.Profile, error)
	UpdateExperience(ctx context.Context, userID, entryID uuid.UUID, in ExperienceInput) (*model.Profile, error)
	DeleteExperience(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error)

	AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (*model.Profile, error)
	UpdateEducation(ctx context.Context, userID, entryID uuid.UUID, in EducationInput) (*model.Profile, error)
	DeleteEducation(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error)

	AddProject(ctx context.Context, userID uuid.UUID, in ProjectInput) (*model.Profile, error)
	UpdateProject(ctx context.Context, userID, entryID uuid.UUID, in ProjectInput) (*model.Profile, error)
	DeleteProject(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.findProfile(ctx, userID)
}

// UpdateProfile patches personal info, skills and certifications.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.PersonalInfo != nil {
		applyPersonalInfo(&profile.PersonalInfo, in.PersonalInfo)
	}
	if in.Skills != nil {
		profile.Skills = datatypes.NewJSONType(*in.Skills)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if in.Certifications != nil {
		certs := make([]model.Certification, 0, len(*in.Certifications))
		for _, c := range *in.Certifications {
			certs = append(certs, model.Certification{
				Name:          c.Name,
				Issuer:        c.Issuer,
				IssueDate:     c.IssueDate,
				ExpiryDate:    c.ExpiryDate,
				CredentialID:  c.CredentialID,
				CredentialURL: c.CredentialURL,
			})
		}
		if err := s.profileRepo.ReplaceCertifications(ctx, profile.ID, certs); err != nil {
			return nil, fmt.Errorf("replace certifications: %w", err)
		}
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Settings = settings
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return profile, nil
}

// GetPublicProfile returns the visitor view of a profile: hidden profiles
// read as missing, and contact fields honor the visibility settings.
func (s *profileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.Settings.IsPublic {
		return nil, apperrors.ErrProfileNotFound
	}

	public := *profile
	if !public.Settings.ShowEmail {
		public.PersonalInfo.Email = ""
	}
	if !public.Settings.ShowPhone {
		public.PersonalInfo.Phone = ""
	}
	return &public, nil
}

func (s *profileService) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &model.Experience{
		ProfileID:    profile.ID,
		Company:      in.Company,
		Position:     in.Position,
		Location:     in.Location,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Description:  in.Description,
		Technologies: in.Technologies,
		IsCurrent:    in.IsCurrent,
	}
	if err := s.profileRepo.AddExperience(ctx, entry); err != nil {
		return nil, fmt.Errorf("add experience: %w", err)
	}
	// The newest current entry wins; demote the rest.
	if entry.IsCurrent {
		if err := s.profileRepo.DemoteCurrentExperience(ctx, profile.ID, entry.ID); err != nil {
			return nil, fmt.Errorf("normalize current experience: %w", err)
		}
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) UpdateExperience(ctx context.Context, userID, entryID uuid.UUID, in ExperienceInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.profileRepo.FindExperience(ctx, profile.ID, entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Company = in.Company
	entry.Position = in.Position
	entry.Location = in.Location
	entry.StartDate = in.StartDate
	entry.EndDate = in.EndDate
	entry.Description = in.Description
	entry.Technologies = in.Technologies
	entry.IsCurrent = in.IsCurrent

	if err := s.profileRepo.UpdateExperience(ctx, entry); err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	if entry.IsCurrent {
		if err := s.profileRepo.DemoteCurrentExperience(ctx, profile.ID, entry.ID); err != nil {
			return nil, fmt.Errorf("normalize current experience: %w", err)
		}
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) DeleteExperience(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.profileRepo.DeleteExperience(ctx, profile.ID, entryID)
	if err != nil {
		return nil, fmt.Errorf("delete experience: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrEntryNotFound
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &model.Education{
		ProfileID:   profile.ID,
		Institution: in.Institution,
		Degree:      in.Degree,
		Field:       in.Field,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		GPA:         in.GPA,
		Description: in.Description,
		IsCurrent:   in.IsCurrent,
	}
	if err := s.profileRepo.AddEducation(ctx, entry); err != nil {
		return nil, fmt.Errorf("add education: %w", err)
	}
	if entry.IsCurrent {
		if err := s.profileRepo.DemoteCurrentEducation(ctx, profile.ID, entry.ID); err != nil {
			return nil, fmt.Errorf("normalize current education: %w", err)
		}
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) UpdateEducation(ctx context.Context, userID, entryID uuid.UUID, in EducationInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.profileRepo.FindEducation(ctx, profile.ID, entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Institution = in.Institution
	entry.Degree = in.Degree
	entry.Field = in.Field
	entry.StartDate = in.StartDate
	entry.EndDate = in.EndDate
	entry.GPA = in.GPA
	entry.Description = in.Description
	entry.IsCurrent = in.IsCurrent

	if err := s.profileRepo.UpdateEducation(ctx, entry); err != nil {
		return nil, fmt.Errorf("update education: %w", err)
	}
	if entry.IsCurrent {
		if err := s.profileRepo.DemoteCurrentEducation(ctx, profile.ID, entry.ID); err != nil {
			return nil, fmt.Errorf("normalize current education: %w", err)
		}
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) DeleteEducation(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.profileRepo.DeleteEducation(ctx, profile.ID, entryID)
	if err != nil {
		return nil, fmt.Errorf("delete education: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrEntryNotFound
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) AddProject(ctx context.Context, userID uuid.UUID, in ProjectInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &model.Project{
		ProfileID:    profile.ID,
		Title:        in.Title,
		Description:  in.Description,
		Technologies: in.Technologies,
		GithubURL:    in.GithubURL,
		LiveURL:      in.LiveURL,
		Image:        in.Image,
		Featured:     in.Featured,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
	if err := s.profileRepo.AddProject(ctx, entry); err != nil {
		return nil, fmt.Errorf("add project: %w", err)
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) UpdateProject(ctx context.Context, userID, entryID uuid.UUID, in ProjectInput) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.profileRepo.FindProject(ctx, profile.ID, entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, err
	}

	entry.Title = in.Title
	entry.Description = in.Description
	entry.Technologies = in.Technologies
	entry.GithubURL = in.GithubURL
	entry.LiveURL = in.LiveURL
	entry.Image = in.Image
	entry.Featured = in.Featured
	entry.StartDate = in.StartDate
	entry.EndDate = in.EndDate

	if err := s.profileRepo.UpdateProject(ctx, entry); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) DeleteProject(ctx context.Context, userID, entryID uuid.UUID) (*model.Profile, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.profileRepo.DeleteProject(ctx, profile.ID, entryID)
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrEntryNotFound
	}

	return s.findProfile(ctx, userID)
}

func (s *profileService) findProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func applyPersonalInfo(info *model.PersonalInfo, in *PersonalInfoInput) {
	if in.FirstName != nil {
		info.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		info.LastName = *in.LastName
	}
	if in.Title != nil {
		info.Title = *in.Title
	}
	if in.Email != nil {
		info.Email = *in.Email
	}
	if in.Phone != nil {
		info.Phone = *in.Phone
	}
	if in.Location != nil {
		info.Location = *in.Location
	}
	if in.Website != nil {
		info.Website = *in.Website
	}
	if in.Linkedin != nil {
		info.Linkedin = *in.Linkedin
	}
	if in.Github != nil {
		info.Github = *in.Github
	}
	if in.ProfileImage != nil {
		info.ProfileImage = *in.ProfileImage
	}
	if in.Bio != nil {
		info.Bio = *in.Bio
	}
}

// NormalizeCurrentExperience keeps at most one entry flagged current,
// preferring the last-flagged one. Used when a profile is written with
// its nested entries in bulk (seeding, imports).
func NormalizeCurrentExperience(entries []model.Experience) {
	last := -1
	for i := range entries {
		if entries[i].IsCurrent {
			last = i
		}
	}
	for i := range entries {
		if entries[i].IsCurrent && i != last {
			entries[i].IsCurrent = false
		}
	}
}

// NormalizeCurrentEducation mirrors NormalizeCurrentExperience for
// education entries.
func NormalizeCurrentEducation(entries []model.Education) {
	last := -1
	for i := range entries {
		if entries[i].IsCurrent {
			last = i
		}
	}
	for i := range entries {
		if entries[i].IsCurrent && i != last {
			entries[i].IsCurrent = false
		}
	}
}
