// Package users provides database operations for the member directory.
package users

import (
	"gorm.io/gorm"

	"github.com/shelflife/shelflife/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user.
func (r *Repository) Create(user *entities.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by record ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByAdmissionNumber retrieves a user by admission number.
func (r *Repository) GetByAdmissionNumber(admno string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("admission_number = ?", admno).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMembers returns every non-admin user.
func (r *Repository) GetMembers() ([]entities.User, error) {
	var members []entities.User
	err := r.db.Where("role <> ?", entities.UserRoleAdmin).Order("name").Find(&members).Error
	return members, err
}

// HasAdmin reports whether at least one administrator account exists.
func (r *Repository) HasAdmin() (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("role = ?", entities.UserRoleAdmin).Count(&count).Error
	return count > 0, err
}
