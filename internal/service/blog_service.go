package service

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"folio/internal/auth"
	"folio/internal/cache"
	apperrors "folio/internal/errors"
	"folio/internal/model"
	"folio/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	postCacheKeyPrefix = "post:slug:"
	postCacheTTL       = 5 * time.Minute
	wordsPerMinute     = 200
)

// ListOptions narrow and page a blog listing.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Search   string
	// IncludeDrafts lifts the published-only default for admin listings.
	IncludeDrafts bool
}

// CreatePostInput carries a validated create request.
type CreatePostInput struct {
	Title     string
	Slug      string
	Excerpt   string
	Content   string
	Category  string
	Tags      []string
	Published bool
	Featured  bool
}

// UpdatePostInput carries a partial update; nil fields stay untouched.
type UpdatePostInput struct {
	Title     *string
	Excerpt   *string
	Content   *string
	Category  *string
	Tags      *[]string
	Published *bool
	Featured  *bool
}

// BlogService handles blog content operations.
type BlogService interface {
	ListPosts(ctx context.Context, opts ListOptions) ([]model.BlogPost, *Pagination, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	CreatePost(ctx context.Context, authorID uuid.UUID, in CreatePostInput) (*model.BlogPost, error)
	UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, in UpdatePostInput) (*model.BlogPost, error)
	DeletePost(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error
}

type blogService struct {
	blogRepo repository.BlogRepository
	cache    *cache.Client
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository, cache *cache.Client) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		cache:    cache,
	}
}

// ListPosts returns a page of posts, newest first, published-only unless
// drafts are requested.
func (s *blogService) ListPosts(ctx context.Context, opts ListOptions) ([]model.BlogPost, *Pagination, error) {
	page, limit := normalizePage(opts.Page, opts.Limit)

	filter := repository.PostFilter{
		Category: opts.Category,
		Tag:      opts.Tag,
		Search:   opts.Search,
	}
	if !opts.IncludeDrafts {
		published := true
		filter.Published = &published
	}

	posts, err := s.blogRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.blogRepo.Count(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	return posts, newPagination(page, limit, total), nil
}

// GetPostBySlug returns a published post and bumps its view counter.
// The counter update is best-effort; a failure only logs.
func (s *blogService) GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	if data, _ := s.cache.Get(ctx, postCacheKeyPrefix+slug); data != nil {
		var post model.BlogPost
		if err := json.Unmarshal(data, &post); err == nil {
			s.bumpViews(ctx, post.ID, slug)
			return &post, nil
		}
	}

	post, err := s.blogRepo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if data, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, postCacheKeyPrefix+slug, data, postCacheTTL)
	}

	s.bumpViews(ctx, post.ID, slug)
	return post, nil
}

func (s *blogService) bumpViews(ctx context.Context, id uuid.UUID, slug string) {
	if err := s.blogRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn().Err(err).Str("slug", slug).Msg("view counter increment failed")
	}
}

// CreatePost stores a new post, deriving the slug from the title when the
// request does not supply one.
func (s *blogService) CreatePost(ctx context.Context, authorID uuid.UUID, in CreatePostInput) (*model.BlogPost, error) {
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}

	taken, err := s.blogRepo.SlugExists(ctx, slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrSlugTaken
	}

	post := &model.BlogPost{
		Title:    in.Title,
		Slug:     slug,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Tags:     in.Tags,
		AuthorID: authorID,
		Featured: in.Featured,
		ReadTime: estimateReadTime(in.Content),
	}
	if in.Published {
		now := time.Now()
		post.Published = true
		post.PublishedAt = &now
	}

	if err := s.blogRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost applies a partial update under the owner-or-admin rule.
// A changed title re-derives the slug; the first transition to published
// stamps PublishedAt, which never resets afterwards.
func (s *blogService) UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID, in UpdatePostInput) (*model.BlogPost, error) {
	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if !auth.CanModify(actorID, actorRole, post.AuthorID) {
		return nil, apperrors.ErrForbidden
	}

	oldSlug := post.Slug

	if in.Title != nil && *in.Title != post.Title {
		post.Title = *in.Title
		post.Slug = Slugify(*in.Title)
		taken, err := s.blogRepo.SlugExists(ctx, post.Slug, post.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrSlugTaken
		}
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		post.Content = *in.Content
		post.ReadTime = estimateReadTime(*in.Content)
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.Tags != nil {
		post.Tags = *in.Tags
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}
	if in.Published != nil {
		post.Published = *in.Published
		if post.Published && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := s.blogRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, postCacheKeyPrefix+oldSlug)
	if post.Slug != oldSlug {
		_ = s.cache.Delete(ctx, postCacheKeyPrefix+post.Slug)
	}

	return post, nil
}

// DeletePost removes a post under the owner-or-admin rule.
func (s *blogService) DeletePost(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) error {
	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}

	if !auth.CanModify(actorID, actorRole, post.AuthorID) {
		return apperrors.ErrForbidden
	}

	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, postCacheKeyPrefix+post.Slug)
	return nil
}

// estimateReadTime approximates reading minutes at 200 words per minute,
// with a one minute floor.
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
