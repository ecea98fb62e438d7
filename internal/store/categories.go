package store

import (
	"context"

	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// CategoryStore manages post categories.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return translate(err, nil, apperr.Duplicate("Category already exists"))
	}
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("category not found"), nil)
	}
	return &category, nil
}

func (s *CategoryStore) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("category not found"), nil)
	}
	return &category, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(category).Update("name", name).Error
	if err != nil {
		return nil, translate(err, nil, apperr.Duplicate("Category already exists"))
	}
	return category, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("category not found")
	}
	return nil
}
