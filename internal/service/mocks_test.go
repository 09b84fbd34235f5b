package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"folio/internal/model"
	"folio/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileRepository) ReplaceCertifications(ctx context.Context, profileID uuid.UUID, certs []model.Certification) error {
	args := m.Called(ctx, profileID, certs)
	return args.Error(0)
}

func (m *MockProfileRepository) AddExperience(ctx context.Context, entry *model.Experience) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) FindExperience(ctx context.Context, profileID, entryID uuid.UUID) (*model.Experience, error) {
	args := m.Called(ctx, profileID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Experience), args.Error(1)
}

func (m *MockProfileRepository) UpdateExperience(ctx context.Context, entry *model.Experience) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID, entryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) DemoteCurrentExperience(ctx context.Context, profileID, exceptID uuid.UUID) error {
	args := m.Called(ctx, profileID, exceptID)
	return args.Error(0)
}

func (m *MockProfileRepository) AddEducation(ctx context.Context, entry *model.Education) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) FindEducation(ctx context.Context, profileID, entryID uuid.UUID) (*model.Education, error) {
	args := m.Called(ctx, profileID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Education), args.Error(1)
}

func (m *MockProfileRepository) UpdateEducation(ctx context.Context, entry *model.Education) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID, entryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) DemoteCurrentEducation(ctx context.Context, profileID, exceptID uuid.UUID) error {
	args := m.Called(ctx, profileID, exceptID)
	return args.Error(0)
}

func (m *MockProfileRepository) AddProject(ctx context.Context, entry *model.Project) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) FindProject(ctx context.Context, profileID, entryID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, profileID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProfileRepository) UpdateProject(ctx context.Context, entry *model.Project) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteProject(ctx context.Context, profileID, entryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID, entryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlogRepository is a mock implementation of BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) List(ctx context.Context, filter repository.PostFilter, offset, limit int) ([]model.BlogPost, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockContactRepository) List(ctx context.Context, offset, limit int) ([]model.ContactMessage, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ContactMessage), args.Error(1)
}

func (m *MockContactRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendContactNotification(msg *model.ContactMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}
