// Package auth implements the member directory (registration and login)
// and the access gate that protects mutating endpoints.
package auth

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"gorm.io/gorm"

	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/database/users"
	"github.com/shelflife/shelflife/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrFieldsRequired       = errors.New("all fields are required")
	ErrEmailInvalid         = errors.New("invalid email format")
	ErrEmailTaken           = errors.New("user already exists")
	ErrAdmissionNumberTaken = errors.New("admission number already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// RegisterInput carries the fields collected at registration.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	AdmissionNumber string
	Branch          string
	Semester        string
}

// Service handles registration and credential checks.
type Service struct {
	db     *gorm.DB
	users  *users.Repository
	config config.Auth
}

// NewService creates a new directory service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{db: db, users: users.NewRepository(db), config: cfg}
}

// Register creates a new member. Duplicate email and duplicate admission
// number are rejected with distinct errors so callers can tell which
// field collided.
func (s *Service) Register(in RegisterInput) (*entities.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" ||
		in.AdmissionNumber == "" || in.Branch == "" || in.Semester == "" {
		return nil, ErrFieldsRequired
	}
	if len(in.Email) > 254 || !emailPattern.MatchString(in.Email) {
		return nil, ErrEmailInvalid
	}

	var existing entities.User
	err := s.db.Where("email = ? OR admission_number = ?", in.Email, in.AdmissionNumber).
		First(&existing).Error
	if err == nil {
		if existing.Email == in.Email {
			return nil, ErrEmailTaken
		}
		return nil, ErrAdmissionNumberTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(in.Password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:            in.Name,
		Email:           in.Email,
		PasswordHash:    passwordHash,
		AdmissionNumber: in.AdmissionNumber,
		Branch:          in.Branch,
		Semester:        in.Semester,
		Role:            entities.UserRoleMember,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user. A missing
// account and a wrong password both map to ErrInvalidCredentials so the
// response doesn't leak which one it was.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// EnsureAdmin seeds the bootstrap administrator when no admin account
// exists yet. A blank admin email or password skips seeding.
func (s *Service) EnsureAdmin() error {
	if s.config.AdminEmail == "" || s.config.AdminPassword == "" {
		return nil
	}

	hasAdmin, err := s.users.HasAdmin()
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if hasAdmin {
		return nil
	}

	passwordHash, err := HashPassword(s.config.AdminPassword, s.config.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &entities.User{
		Name:            s.config.AdminName,
		Email:           s.config.AdminEmail,
		PasswordHash:    passwordHash,
		AdmissionNumber: "ADMIN-1",
		Branch:          "administration",
		Semester:        "-",
		Role:            entities.UserRoleAdmin,
	}
	if err := s.users.Create(admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Printf("Seeded administrator account %s", admin.Email)
	return nil
}
