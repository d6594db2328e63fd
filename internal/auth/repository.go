package auth

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByIdentifier(identifier string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Update(user *User) error
	SetApproval(userID uint, approved bool, profileCompleted bool) error
	SetProfileCompleted(userID uint, completed bool) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// FindByIdentifier resolves a login identifier against username or email.
func (r *repository) FindByIdentifier(identifier string) (*User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	var u User
	err := r.db.Preload("Role").
		Where("username = ? OR email = ?", ident, ident).
		First(&u).Error
	return &u, err
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", strings.ToLower(email)).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", strings.ToLower(name)).First(&role).Error
	return &role, err
}

func (r *repository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

func (r *repository) SetApproval(userID uint, approved bool, profileCompleted bool) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_approved":       approved,
		"profile_completed": profileCompleted,
	}).Error
}

func (r *repository) SetProfileCompleted(userID uint, completed bool) error {
	return r.db.Model(&User{}).Where("id = ?", userID).
		Update("profile_completed", completed).Error
}
