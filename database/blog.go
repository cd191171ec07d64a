package database

import (
	"context"
	"errors"

	"github.com/langmarket/api/model"
	"gorm.io/gorm"
)

// ListPublishedPosts returns the projected blog listing, newest first.
// Drafts never appear on the public surface.
func (s *GORMStore) ListPublishedPosts(ctx context.Context) ([]model.BlogListItem, error) {
	items := []model.BlogListItem{}
	err := s.db.WithContext(ctx).Model(&model.BlogPost{}).
		Select("title, slug, created_at").
		Where("status = ?", model.PostStatusPublished).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetPublishedPostBySlug returns a published post with its author preloaded
func (s *GORMStore) GetPublishedPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := s.db.WithContext(ctx).Preload("Author").
		Where("slug = ? AND status = ?", slug, model.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// AdminListPosts returns full post records for the admin panel, newest
// first, drafts included
func (s *GORMStore) AdminListPosts(ctx context.Context, page, limit int) ([]model.BlogPost, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.BlogPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []model.BlogPost{}
	err := s.db.WithContext(ctx).Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPostByID returns a post by primary key regardless of status
func (s *GORMStore) GetPostByID(ctx context.Context, id uint) (*model.BlogPost, error) {
	var post model.BlogPost
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost inserts a new blog post
func (s *GORMStore) CreatePost(ctx context.Context, post *model.BlogPost) error {
	return s.db.WithContext(ctx).Create(post).Error
}

// UpdatePost persists changes to an existing blog post
func (s *GORMStore) UpdatePost(ctx context.Context, post *model.BlogPost) error {
	return s.db.WithContext(ctx).Save(post).Error
}

// DeletePost soft-deletes a blog post
func (s *GORMStore) DeletePost(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PostSlugTaken reports whether another post already owns the slug
func (s *GORMStore) PostSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.BlogPost{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
