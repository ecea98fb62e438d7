package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// UserStore manages user records.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// UserUpdate carries the fields of a partial user update. Nil fields are
// left untouched.
type UserUpdate struct {
	Username *string
	Password *string
	IsAdmin  *bool
}

// Create inserts a new user. The email/username uniqueness check is a
// courtesy pre-read; the unique indexes are what actually enforce it,
// so a concurrent duplicate still comes back as DuplicateUser.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", user.Email, user.Username).
		First(&existing).Error
	if err == nil {
		return apperr.DuplicateUser("Email or username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err, nil, apperr.DuplicateUser("Email or username already exists"))
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("User not found"), nil)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("User not found"), nil)
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, translate(err, apperr.NotFound("User not found"), nil)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Update applies a partial update. A username change is rejected with
// DuplicateUser when the new name is held by a different user; setting
// the caller's own current username is a no-op on the uniqueness check.
func (s *UserStore) Update(ctx context.Context, id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Username != nil && *upd.Username != user.Username {
		var other models.User
		err := s.db.WithContext(ctx).
			Where("username = ? AND id <> ?", *upd.Username, id).
			First(&other).Error
		if err == nil {
			return nil, apperr.DuplicateUser("Username already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
		fields["username"] = *upd.Username
	}
	if upd.Password != nil {
		fields["password"] = *upd.Password
	}
	if upd.IsAdmin != nil {
		fields["is_admin"] = *upd.IsAdmin
	}

	if len(fields) > 0 {
		err := s.db.WithContext(ctx).Model(user).Updates(fields).Error
		if err != nil {
			return nil, translate(err, nil, apperr.DuplicateUser("Username already exists"))
		}
	}
	return user, nil
}

// Delete removes a user, failing with NotFound when no row matched.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}
