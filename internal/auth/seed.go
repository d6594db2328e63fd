package auth

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Chelo123Mau/P-RENAPP/config"
	"github.com/Chelo123Mau/P-RENAPP/internal/submission"
)

// SeedUserRoles inserts the fixed role set if missing.
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: submission.RoleUser, Description: "Solicitante"},
		{RoleName: submission.RoleAdmin, Description: "Administrador"},
		{RoleName: submission.RoleReviewer, Description: "Revisor"},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("✅ Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedAdminUser creates the initial admin account from env config.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	email := cfg.AdminEmail
	password := cfg.AdminPassword
	if email == "" || password == "" {
		log.Println("ℹ️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var role UserRole
	if err := db.Where("role_name = ?", submission.RoleAdmin).First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:         "admin",
		Email:            email,
		PasswordHash:     string(hash),
		FullName:         "Administrador RENAPP",
		RoleID:           role.ID,
		IsApproved:       true,
		ProfileCompleted: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", email)
	return nil
}
