package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"folio/internal/model"
)

// ProfileRepository defines persistence operations for profiles and
// their nested CV entries. Child rows are addressed by their own IDs,
// always scoped to the owning profile.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	ReplaceCertifications(ctx context.Context, profileID uuid.UUID, certs []model.Certification) error

	AddExperience(ctx context.Context, entry *model.Experience) error
	FindExperience(ctx context.Context, profileID, entryID uuid.UUID) (*model.Experience, error)
	UpdateExperience(ctx context.Context, entry *model.Experience) error
	DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) (int64, error)
	DemoteCurrentExperience(ctx context.Context, profileID, exceptID uuid.UUID) error

	AddEducation(ctx context.Context, entry *model.Education) error
	FindEducation(ctx context.Context, profileID, entryID uuid.UUID) (*model.Education, error)
	UpdateEducation(ctx context.Context, entry *model.Education) error
	DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) (int64, error)
	DemoteCurrentEducation(ctx context.Context, profileID, exceptID uuid.UUID) error

	AddProject(ctx context.Context, entry *model.Project) error
	FindProject(ctx context.Context, profileID, entryID uuid.UUID) (*model.Project, error)
	UpdateProject(ctx context.Context, entry *model.Project) error
	DeleteProject(ctx context.Context, profileID, entryID uuid.UUID) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Preload("Experience", orderByCreated).
		Preload("Education", orderByCreated).
		Preload("Projects", orderByCreated).
		Preload("Certifications", orderByCreated).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit("Experience", "Education", "Projects", "Certifications").Save(profile).Error
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	var profile model.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select("Experience", "Education", "Projects", "Certifications").
		Delete(&profile).Error
}

func (r *profileRepository) ReplaceCertifications(ctx context.Context, profileID uuid.UUID, certs []model.Certification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profileID).Delete(&model.Certification{}).Error; err != nil {
			return err
		}
		for i := range certs {
			certs[i].ProfileID = profileID
		}
		if len(certs) == 0 {
			return nil
		}
		return tx.Create(&certs).Error
	})
}

func (r *profileRepository) AddExperience(ctx context.Context, entry *model.Experience) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *profileRepository) FindExperience(ctx context.Context, profileID, entryID uuid.UUID) (*model.Experience, error) {
	var entry model.Experience
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *profileRepository) UpdateExperience(ctx context.Context, entry *model.Experience) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&model.Experience{})
	return res.RowsAffected, res.Error
}

// DemoteCurrentExperience clears the current flag on every entry except
// the given one, keeping the one-current invariant in a single UPDATE.
func (r *profileRepository) DemoteCurrentExperience(ctx context.Context, profileID, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Experience{}).
		Where("profile_id = ? AND id <> ? AND is_current = ?", profileID, exceptID, true).
		UpdateColumn("is_current", false).Error
}

func (r *profileRepository) AddEducation(ctx context.Context, entry *model.Education) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *profileRepository) FindEducation(ctx context.Context, profileID, entryID uuid.UUID) (*model.Education, error) {
	var entry model.Education
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *profileRepository) UpdateEducation(ctx context.Context, entry *model.Education) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&model.Education{})
	return res.RowsAffected, res.Error
}

func (r *profileRepository) DemoteCurrentEducation(ctx context.Context, profileID, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Education{}).
		Where("profile_id = ? AND id <> ? AND is_current = ?", profileID, exceptID, true).
		UpdateColumn("is_current", false).Error
}

func (r *profileRepository) AddProject(ctx context.Context, entry *model.Project) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *profileRepository) FindProject(ctx context.Context, profileID, entryID uuid.UUID) (*model.Project, error) {
	var entry model.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *profileRepository) UpdateProject(ctx context.Context, entry *model.Project) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *profileRepository) DeleteProject(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&model.Project{})
	return res.RowsAffected, res.Error
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
