package auth

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:255" json:"full_name"`

	RoleID uint     `gorm:"not null" json:"role_id"`
	Role   UserRole `gorm:"foreignKey:RoleID;references:ID" json:"role"`

	// Approval gate for regular users. Staff (admin/reviewer) bypass it.
	IsApproved       bool `gorm:"default:false" json:"is_approved"`
	ProfileCompleted bool `gorm:"default:false" json:"profile_completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserRole struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"size:50;uniqueIndex;not null" json:"role_name"` // user, admin, reviewer
	Description string `gorm:"size:255" json:"description"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
