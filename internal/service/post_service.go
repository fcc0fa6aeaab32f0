package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agentdesk/internal/cache"
	"agentdesk/internal/errors"
	"agentdesk/internal/model"
	"agentdesk/internal/repository"
)

const postCacheTTL = 5 * time.Minute

// PostService handles the CRUD demo content.
type PostService interface {
	CreatePost(ctx context.Context, title string, content *string) (*model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, id uint, title string, content *string) (*model.Post, error)
	DeletePost(ctx context.Context, id uint) error
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.Client
}

// NewPostService builds a PostService with repository and cache.
func NewPostService(repo repository.PostRepository, cache *cache.Client) PostService {
	return &postService{repo: repo, cache: cache}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func (s *postService) CreatePost(ctx context.Context, title string, content *string) (*model.Post, error) {
	post := &model.Post{
		Title:   title,
		Content: content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID with read-through caching.
func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.repo.List(ctx)
}

func (s *postService) UpdatePost(ctx context.Context, id uint, title string, content *string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, err
	}

	post.Title = title
	post.Content = content
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
