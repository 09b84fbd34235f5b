package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "folio/internal/errors"
	"folio/internal/model"
	"folio/internal/repository"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"REST vs GraphQL!", "rest-vs-graphql"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Go 1.24 Release Notes", "go-124-release-notes"},
		{"already-a-slug", "already-a-slug"},
		{"Ünïcödé stripped", "ncd-stripped"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := Slugify(tt.title)
			assert.Equal(t, tt.expected, got)
			// idempotent: slugging a slug changes nothing
			assert.Equal(t, got, Slugify(got))
		})
	}
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, 1, estimateReadTime(""))
	assert.Equal(t, 1, estimateReadTime("a few words only"))
	assert.Equal(t, 1, estimateReadTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, estimateReadTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 3, estimateReadTime(strings.Repeat("word ", 450)))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		total    int64
		expected Pagination
	}{
		{
			name: "first of three pages", page: 1, limit: 10, total: 25,
			expected: Pagination{CurrentPage: 1, TotalPages: 3, TotalPosts: 25, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			expected: Pagination{CurrentPage: 2, TotalPages: 3, TotalPosts: 25, HasNext: true, HasPrev: true},
		},
		{
			name: "last page", page: 3, limit: 10, total: 25,
			expected: Pagination{CurrentPage: 3, TotalPages: 3, TotalPosts: 25, HasNext: false, HasPrev: true},
		},
		{
			name: "exact fit", page: 2, limit: 10, total: 20,
			expected: Pagination{CurrentPage: 2, TotalPages: 2, TotalPosts: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "empty listing", page: 1, limit: 10, total: 0,
			expected: Pagination{CurrentPage: 1, TotalPages: 0, TotalPosts: 0, HasNext: false, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, *newPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(-3, 1000)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = normalizePage(4, 20)
	assert.Equal(t, 4, page)
	assert.Equal(t, 20, limit)
}

func TestBlogService_ListPosts(t *testing.T) {
	t.Run("defaults to published only", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostFilter) bool {
			return f.Published != nil && *f.Published
		}), 0, 10).Return([]model.BlogPost{{Title: "one"}}, nil)
		mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		service := NewBlogService(mockRepo, nil)
		posts, pagination, err := service.ListPosts(context.Background(), ListOptions{})

		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, 1, pagination.CurrentPage)
		mockRepo.AssertExpectations(t)
	})

	t.Run("admin listing includes drafts", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.PostFilter) bool {
			return f.Published == nil
		}), 10, 10).Return([]model.BlogPost{}, nil)
		mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)

		service := NewBlogService(mockRepo, nil)
		_, pagination, err := service.ListPosts(context.Background(), ListOptions{Page: 2, IncludeDrafts: true})

		assert.NoError(t, err)
		assert.Equal(t, 3, pagination.TotalPages)
		assert.True(t, pagination.HasNext)
		mockRepo.AssertExpectations(t)
	})
}

func TestBlogService_GetPostBySlug(t *testing.T) {
	t.Run("found bumps views", func(t *testing.T) {
		postID := uuid.New()
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindPublishedBySlug", mock.Anything, "hello-world").Return(&model.BlogPost{
			ID:        postID,
			Slug:      "hello-world",
			Published: true,
		}, nil)
		mockRepo.On("IncrementViews", mock.Anything, postID).Return(nil)

		service := NewBlogService(mockRepo, nil)
		post, err := service.GetPostBySlug(context.Background(), "hello-world")

		assert.NoError(t, err)
		assert.Equal(t, "hello-world", post.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing or draft reads as not found", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindPublishedBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		service := NewBlogService(mockRepo, nil)
		post, err := service.GetPostBySlug(context.Background(), "nope")

		assert.Equal(t, apperrors.ErrPostNotFound, err)
		assert.Nil(t, post)
	})
}

func TestBlogService_CreatePost(t *testing.T) {
	authorID := uuid.New()

	t.Run("derives slug and stamps publishedAt", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("SlugExists", mock.Anything, "my-first-post", uuid.Nil).Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		service := NewBlogService(mockRepo, nil)
		post, err := service.CreatePost(context.Background(), authorID, CreatePostInput{
			Title:     "My First Post",
			Content:   strings.Repeat("word ", 400),
			Category:  model.CategoryTutorial,
			Published: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "my-first-post", post.Slug)
		assert.Equal(t, authorID, post.AuthorID)
		assert.Equal(t, 2, post.ReadTime)
		assert.True(t, post.Published)
		assert.NotNil(t, post.PublishedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("draft has no publishedAt", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("SlugExists", mock.Anything, "draft", uuid.Nil).Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		service := NewBlogService(mockRepo, nil)
		post, err := service.CreatePost(context.Background(), authorID, CreatePostInput{
			Title:    "Draft",
			Content:  "short",
			Category: model.CategoryNews,
		})

		assert.NoError(t, err)
		assert.False(t, post.Published)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("taken slug conflicts", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("SlugExists", mock.Anything, "taken", uuid.Nil).Return(true, nil)

		service := NewBlogService(mockRepo, nil)
		post, err := service.CreatePost(context.Background(), authorID, CreatePostInput{Title: "Taken"})

		assert.Equal(t, apperrors.ErrSlugTaken, err)
		assert.Nil(t, post)
	})
}

func TestBlogService_UpdatePost(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	postID := uuid.New()

	existing := func() *model.BlogPost {
		return &model.BlogPost{
			ID:       postID,
			Title:    "Original Title",
			Slug:     "original-title",
			Content:  "content",
			AuthorID: ownerID,
		}
	}

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(existing(), nil)

		service := NewBlogService(mockRepo, nil)
		_, err := service.UpdatePost(context.Background(), otherID, model.RoleUser, postID, UpdatePostInput{})

		assert.Equal(t, apperrors.ErrForbidden, err)
	})

	t.Run("admin may edit any post", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		service := NewBlogService(mockRepo, nil)
		excerpt := "new excerpt"
		post, err := service.UpdatePost(context.Background(), otherID, model.RoleAdmin, postID, UpdatePostInput{Excerpt: &excerpt})

		assert.NoError(t, err)
		assert.Equal(t, "new excerpt", post.Excerpt)
	})

	t.Run("title change re-derives the slug", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(existing(), nil)
		mockRepo.On("SlugExists", mock.Anything, "brand-new-title", postID).Return(false, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.BlogPost")).Return(nil)

		service := NewBlogService(mockRepo, nil)
		title := "Brand New Title"
		post, err := service.UpdatePost(context.Background(), ownerID, model.RoleUser, postID, UpdatePostInput{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "brand-new-title", post.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("first publish stamps publishedAt once", func(t *testing.T) {
		post := existing()
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(post, nil)
		mockRepo.On("Update", mock.Anything, post).Return(nil)

		service := NewBlogService(mockRepo, nil)
		published := true

		updated, err := service.UpdatePost(context.Background(), ownerID, model.RoleUser, postID, UpdatePostInput{Published: &published})
		assert.NoError(t, err)
		assert.NotNil(t, updated.PublishedAt)
		firstStamp := *updated.PublishedAt

		// Unpublish and republish: the stamp survives.
		unpublished := false
		_, err = service.UpdatePost(context.Background(), ownerID, model.RoleUser, postID, UpdatePostInput{Published: &unpublished})
		assert.NoError(t, err)

		updated, err = service.UpdatePost(context.Background(), ownerID, model.RoleUser, postID, UpdatePostInput{Published: &published})
		assert.NoError(t, err)
		assert.Equal(t, firstStamp, *updated.PublishedAt)
	})

	t.Run("missing post", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)

		service := NewBlogService(mockRepo, nil)
		_, err := service.UpdatePost(context.Background(), ownerID, model.RoleUser, postID, UpdatePostInput{})

		assert.Equal(t, apperrors.ErrPostNotFound, err)
	})
}

func TestBlogService_DeletePost(t *testing.T) {
	ownerID := uuid.New()
	postID := uuid.New()

	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(&model.BlogPost{ID: postID, AuthorID: ownerID, Slug: "x"}, nil)
		mockRepo.On("Delete", mock.Anything, postID).Return(nil)

		service := NewBlogService(mockRepo, nil)
		assert.NoError(t, service.DeletePost(context.Background(), ownerID, model.RoleUser, postID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		mockRepo := new(MockBlogRepository)
		mockRepo.On("FindByID", mock.Anything, postID).Return(&model.BlogPost{ID: postID, AuthorID: ownerID, Slug: "x"}, nil)

		service := NewBlogService(mockRepo, nil)
		err := service.DeletePost(context.Background(), uuid.New(), model.RoleUser, postID)

		assert.Equal(t, apperrors.ErrForbidden, err)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
