// Package models defines the GORM models for the blog API.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash and is
// empty for accounts created through a federated identity provider.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"user_id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"size:128" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Category is a post category with a globally unique name.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"category_id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

// Post visibility states.
const (
	PostStatusDraft    = "draft"
	PostStatusPublic   = "public"
	PostStatusArchived = "archived"
)

// Post is a blog entry owned by a user and filed under a category.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"post_id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	CategoryID  uint       `gorm:"index;not null" json:"category_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     *string    `json:"content"`
	Status      string     `gorm:"size:16;not null;default:draft;index" json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// ValidPostStatus reports whether s is one of the known post states.
func ValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusPublic, PostStatusArchived:
		return true
	}
	return false
}
