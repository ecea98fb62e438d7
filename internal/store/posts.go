package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Visibility selects which post states a listing may return.
type Visibility int

const (
	// VisibilityPublic is the anonymous view: public posts only.
	VisibilityPublic Visibility = iota
	// VisibilityMember is the authenticated non-admin view: everything
	// except drafts.
	VisibilityMember
	// VisibilityAll is the admin view.
	VisibilityAll
)

// PostStore manages blog posts.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create inserts a post. PublishedAt is stamped when the post is
// created directly in the public state.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Status == models.PostStatusPublic && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *PostStore) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("Post not found"), nil)
	}
	return &post, nil
}

// List returns posts filtered by visibility and, when categoryID is
// non-nil, restricted to that category.
func (s *PostStore) List(ctx context.Context, vis Visibility, categoryID *uint) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{})
	switch vis {
	case VisibilityPublic:
		q = q.Where("status = ?", models.PostStatusPublic)
	case VisibilityMember:
		q = q.Where("status <> ?", models.PostStatusDraft)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var posts []models.Post
	if err := q.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}

// PostUpdate carries the fields of a partial post update.
type PostUpdate struct {
	CategoryID *uint
	Title      *string
	Content    *string
	Status     *string
}

// Update applies a partial update. Moving a post into the public state
// stamps PublishedAt if it was never published before.
func (s *PostStore) Update(ctx context.Context, id uint, upd PostUpdate) (*models.Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.CategoryID != nil {
		fields["category_id"] = *upd.CategoryID
	}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.Status != nil {
		fields["status"] = *upd.Status
		if *upd.Status == models.PostStatusPublic && post.PublishedAt == nil {
			fields["published_at"] = time.Now().UTC()
		}
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(post).Updates(fields).Error; err != nil {
			return nil, apperr.Internal(err)
		}
	}
	return post, nil
}

func (s *PostStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Post not found")
	}
	return nil
}
