package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sentinel/internal/audit"
	"sentinel/internal/authz"
	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
)

// Passwords shorter than this are rejected on setup and registration.
const minPasswordLength = 12

// userService handles user and authentication business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Setup creates the first admin user. It refuses to run once any user exists.
func (s *userService) Setup(meta audit.RequestMeta, email, password, name string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrSetupComplete
	}
	return s.createUser(nil, meta, email, password, name, models.RoleAdmin)
}

// Register creates a user. Only admins may register new users.
func (s *userService) Register(actor authz.Actor, meta audit.RequestMeta, email, password, name string, role models.Role) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return s.createUser(&actor.ID, meta, email, password, name, role)
}

func (s *userService) createUser(creatorID *string, meta audit.RequestMeta, email, password, name string, role models.Role) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 12 characters")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:    strings.ToLower(email),
		Name:     name,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, creatorID, meta)
		return rec.Created(models.EntityUser, user.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AttemptLogin verifies credentials, stamps last_login_at, and writes a Login
// audit entry. The lookup error and the password error collapse into the same
// response so the endpoint can't be used to enumerate emails.
func (s *userService) AttemptLogin(meta audit.RequestMeta, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("last_login_at", now).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		rec := audit.NewRecorder(tx, &user.ID, meta)
		return rec.LoggedIn(user.ID)
	})
	if err != nil {
		return nil, err
	}

	user.LastLoginAt = &now
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
