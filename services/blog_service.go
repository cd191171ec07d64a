package services

import (
	"context"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

// BlogService handles cache-through reads and invalidating writes for blog
// posts
type BlogService struct {
	store database.Storage
	cache Cache
}

// NewBlogService creates a new blog service
func NewBlogService(store database.Storage, cache Cache) *BlogService {
	return &BlogService{
		store: store,
		cache: cache,
	}
}

// ListPosts returns the published blog listing, serving from cache when
// possible
func (s *BlogService) ListPosts(ctx context.Context) ([]model.BlogListItem, error) {
	key := cache.BlogListKey()

	items := []model.BlogListItem{}
	if cacheGet(ctx, s.cache, key, &items) {
		return items, nil
	}

	items, err := s.store.ListPublishedPosts(ctx)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, items, cache.BlogListTTL)
	return items, nil
}

// GetPostBySlug returns a published post, serving from cache when possible
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	key := cache.BlogDetailKey(slug)

	var post model.BlogPost
	if cacheGet(ctx, s.cache, key, &post) {
		return &post, nil
	}

	found, err := s.store.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, s.cache, key, found, cache.BlogDetailTTL)
	return found, nil
}

// CreatePost validates slug uniqueness, creates the post, then invalidates
// the blog listing
func (s *BlogService) CreatePost(ctx context.Context, post *model.BlogPost) error {
	taken, err := s.store.PostSlugTaken(ctx, post.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return err
	}

	s.invalidate(ctx, post.Slug)
	return nil
}

// UpdatePost persists changes to a post and invalidates the affected cache
// entries. oldSlug covers renames.
func (s *BlogService) UpdatePost(ctx context.Context, post *model.BlogPost, oldSlug string) error {
	taken, err := s.store.PostSlugTaken(ctx, post.Slug, post.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return err
	}

	slugs := []string{post.Slug}
	if oldSlug != "" && oldSlug != post.Slug {
		slugs = append(slugs, oldSlug)
	}
	s.invalidate(ctx, slugs...)
	return nil
}

// DeletePost removes a post and invalidates the affected cache entries
func (s *BlogService) DeletePost(ctx context.Context, id uint) error {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, post.Slug)
	return nil
}

func (s *BlogService) invalidate(ctx context.Context, slugs ...string) {
	keys := []string{cache.BlogListKey()}
	for _, slug := range slugs {
		keys = append(keys, cache.BlogDetailKey(slug))
	}
	cacheInvalidate(ctx, s.cache, keys)
}
