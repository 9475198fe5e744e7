package services

import (
	"errors"
	"time"

	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/internal/utils"
	"github.com/scriptvault/backend/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User     *models.User `json:"user"`
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register creates a new account. The password is hashed before persistence
// and the plaintext is never stored.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	if err := models.ValidateRegistration(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewDuplicateEmail()
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		IsActive: true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, expireAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token, ExpireAt: expireAt}, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password yield the same error so the response never reveals which part
// was wrong. The active flag is checked after lookup but before the
// password comparison.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, response.NewValidation("Please provide email and password", "email", "password")
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthenticated("Invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewAccountDeactivated()
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthenticated("Invalid credentials")
	}

	token, expireAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token, ExpireAt: expireAt}, nil
}

// GetCurrentUser resolves a verified caller identity back to its account.
func (s *AuthService) GetCurrentUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile overwrites name and email, validated against the same
// constraints as registration.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	if err := models.ValidateProfile(req.Name, req.Email); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", req.Email, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewDuplicateEmail()
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"name":  req.Name,
		"email": req.Email,
	}).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	if len(req.NewPassword) < models.MinPasswordLen {
		return response.NewValidation("New password is too short", "new_password")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("User not found")
		}
		return err
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return response.NewValidation("Incorrect old password", "old_password")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Update("password", hash).Error
}
