package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"folio/internal/model"
)

// PostFilter narrows blog post listings. A nil Published means no
// published constraint (admin listings); public listings pass true.
type PostFilter struct {
	Published *bool
	Category  string
	Tag       string
	Search    string
}

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.BlogPost, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository builds a GORM-backed repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) FindPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email")
		}).
		Where("slug = ? AND published = ?", slug, true).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.BlogPost{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blogRepository) List(ctx context.Context, filter PostFilter, offset, limit int) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "email")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var total int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.BlogPost{}), filter).
		Count(&total).Error
	return total, err
}

func (r *blogRepository) Update(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BlogPost{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter in a single UPDATE. The read and
// increment are not transactional with each other; a benign race under
// concurrent reads is acceptable.
func (r *blogRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *blogRepository) applyFilter(q *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(filter.Tag))
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?",
			needle, needle, needle,
		)
	}
	return q
}
